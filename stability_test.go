// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

import "testing"

func TestIsStable_StableAssignment(t *testing.T) {
	cc := NewConflictChecker(nil, 0, AlignNone)

	high := &Booking{ID: "high", AttendeeID: "a", Score: 2}
	low := &Booking{ID: "low", AttendeeID: "b", Score: 1}

	o1 := NewOccasionAgent(&Occasion{ID: "o1", MaxSpots: 1}, nil)
	o2 := NewOccasionAgent(&Occasion{ID: "o2", MaxSpots: 1}, nil)
	a1 := NewAttendeeAgent("a", []*Booking{high}, -1, cc)
	a2 := NewAttendeeAgent("b", []*Booking{low}, -1, cc)

	o1.Accept(a1, high)
	o2.Accept(a2, low)

	if !IsStable([]*AttendeeAgent{a1, a2}, []*OccasionAgent{o1, o2}) {
		t.Error("an assignment without blocking pairs must be stable")
	}
}

// Occasion-local preference functions that disagree about the two
// bookings create a textbook blocking pair: each occasion would rather
// hold the other's booking.
func TestIsStable_BlockingPair(t *testing.T) {
	cc := NewConflictChecker(nil, 0, AlignNone)

	x := &Booking{ID: "x", AttendeeID: "a"}
	y := &Booking{ID: "y", AttendeeID: "b"}

	prefers := func(want *Booking) func(*Booking) float64 {
		return func(b *Booking) float64 {
			if b == want {
				return 10
			}
			return 1
		}
	}

	o1 := NewOccasionAgent(&Occasion{ID: "o1", MaxSpots: 1}, prefers(y))
	o2 := NewOccasionAgent(&Occasion{ID: "o2", MaxSpots: 1}, prefers(x))
	a1 := NewAttendeeAgent("a", []*Booking{x}, -1, cc)
	a2 := NewAttendeeAgent("b", []*Booking{y}, -1, cc)

	o1.Accept(a1, x)
	o2.Accept(a2, y)

	if IsStable([]*AttendeeAgent{a1, a2}, []*OccasionAgent{o1, o2}) {
		t.Error("mutually preferred swap partners must be reported unstable")
	}
}

func TestIsStable_EmptyAgents(t *testing.T) {
	if !IsStable(nil, nil) {
		t.Error("no agents means no blocking pairs")
	}
}
