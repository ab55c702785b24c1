// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

// LoopBudget bounds the number of proposal rounds the matcher may run.
// The deferred-acceptance loop is conjectured, but not proven, to
// converge within bookings*attendees rounds; the budget turns a
// violation of that bound into a detectable condition instead of an
// endless loop. Whether exhaustion is fatal is the caller's decision.
type LoopBudget struct {
	max   int
	ticks int
}

func NewLoopBudget(max int) *LoopBudget {
	return &LoopBudget{max: max}
}

// Tick consumes one round and reports whether the budget is now
// exhausted.
func (l *LoopBudget) Tick() bool {
	l.ticks++
	return l.ticks > l.max
}

// Ticks returns the number of rounds consumed so far.
func (l *LoopBudget) Ticks() int { return l.ticks }

// Exhausted reports whether a previous Tick went over budget.
func (l *LoopBudget) Exhausted() bool { return l.ticks > l.max }
