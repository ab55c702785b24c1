// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

import "testing"

func TestOccasionAgent_Full(t *testing.T) {
	t.Run("SpareCapacity", func(t *testing.T) {
		o := NewOccasionAgent(&Occasion{ID: "o", MaxSpots: 1}, nil)
		if o.Full() {
			t.Error("an empty occasion with capacity must not be full")
		}
	})

	t.Run("ZeroSpots", func(t *testing.T) {
		o := NewOccasionAgent(&Occasion{ID: "o", MaxSpots: 0}, nil)
		if !o.Full() {
			t.Error("a zero-capacity occasion is always full")
		}
	})
}

func TestOccasionAgent_Preferred(t *testing.T) {
	cc := NewConflictChecker(nil, 0, AlignNone)
	low := &Booking{ID: "low", AttendeeID: "a", Score: 1}
	high := &Booking{ID: "high", AttendeeID: "b", Score: 2}

	o := NewOccasionAgent(&Occasion{ID: "o", MaxSpots: 2}, nil)
	o.Accept(NewAttendeeAgent("a", []*Booking{low}, -1, cc), low)
	o.Accept(NewAttendeeAgent("b", []*Booking{high}, -1, cc), high)

	t.Run("StrictlyLowerLoses", func(t *testing.T) {
		candidate := &Booking{ID: "cand", Score: 1.5}
		if got := o.Preferred(candidate); got != low {
			t.Errorf("Preferred = %v, want the strictly lower-scored booking", got)
		}
	})

	t.Run("EqualScoreHolds", func(t *testing.T) {
		candidate := &Booking{ID: "cand", Score: 1}
		if got := o.Preferred(candidate); got != nil {
			t.Errorf("Preferred = %v, want nil for an equal-or-lower candidate", got)
		}
	})
}

func TestOccasionAgent_Match(t *testing.T) {
	occasions := []*Occasion{{ID: "o", ActivityID: "swim", MaxSpots: 1}}
	cc := NewConflictChecker(occasions, 0, AlignNone)

	t.Run("SpareCapacityAccepts", func(t *testing.T) {
		o := NewOccasionAgent(occasions[0], nil)
		b := &Booking{ID: "b", OccasionID: "o", AttendeeID: "a", Score: 1}
		a := NewAttendeeAgent("a", []*Booking{b}, -1, cc)
		if !o.Match(a, b) {
			t.Fatal("an occasion with spare capacity must accept")
		}
		if !o.Holds(b) || len(a.Accepted()) != 1 {
			t.Error("accept must be recorded on both agents")
		}
	})

	t.Run("FullDisplacesLowerScored", func(t *testing.T) {
		o := NewOccasionAgent(occasions[0], nil)
		loser := &Booking{ID: "loser", OccasionID: "o", AttendeeID: "a", Score: 1}
		winner := &Booking{ID: "winner", OccasionID: "o", AttendeeID: "b", Score: 2}
		la := NewAttendeeAgent("a", []*Booking{loser}, -1, cc)
		wa := NewAttendeeAgent("b", []*Booking{winner}, -1, cc)

		o.Match(la, loser)
		if !o.Match(wa, winner) {
			t.Fatal("a higher-scored candidate must displace the held booking")
		}
		if !o.Holds(winner) || o.Holds(loser) {
			t.Error("the winner must replace the loser in the held set")
		}
		if len(la.Wishlist()) != 1 {
			t.Error("the displaced booking must return to its attendee's wishlist")
		}
	})

	t.Run("FullRejectsEqualScore", func(t *testing.T) {
		o := NewOccasionAgent(occasions[0], nil)
		held := &Booking{ID: "held", OccasionID: "o", AttendeeID: "a", Score: 1}
		candidate := &Booking{ID: "cand", OccasionID: "o", AttendeeID: "b", Score: 1}
		ha := NewAttendeeAgent("a", []*Booking{held}, -1, cc)
		ca := NewAttendeeAgent("b", []*Booking{candidate}, -1, cc)

		o.Match(ha, held)
		if o.Match(ca, candidate) {
			t.Fatal("an equal-scored candidate must be rejected")
		}
		if len(ca.Wishlist()) != 1 {
			t.Error("a rejected candidate stays on the wishlist")
		}
	})
}
