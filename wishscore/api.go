// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wishscore composes pluggable scoring criteria into the
// single scalar score the matcher ranks bookings by.
package wishscore

import "github.com/ferienpass/damatch"

// Criterion scores one aspect of a booking. Implementations must be
// total, pure functions of the booking and whatever static context
// they were constructed with; the matcher evaluates them exactly once
// per booking, before the proposal loop starts.
type Criterion interface {
	Score(b *damatch.Booking) float64
}

// CriterionFunc adapts a plain function to the Criterion interface.
type CriterionFunc func(b *damatch.Booking) float64

func (f CriterionFunc) Score(b *damatch.Booking) float64 { return f(b) }
