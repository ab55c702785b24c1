// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

import (
	"math"
	"sort"
)

// noLimit disables the per-attendee acceptance limit.
const noLimit = math.MaxInt

// AttendeeAgent owns one attendee's bookings for the duration of a
// matching run, split into three disjoint sets: the wishlist of
// undecided candidates, the accepted set and the blocked set. Their
// union is the attendee's full booking set at all times.
type AttendeeAgent struct {
	ID string

	wishlist []*Booking
	accepted map[*Booking]struct{}
	blocked  map[*Booking]struct{}

	limit     int
	conflicts *ConflictChecker
}

// NewAttendeeAgent builds an agent over the attendee's bookings. All
// bookings start out on the wishlist, ordered by descending priority
// with the booking ID as stable tiebreaker. A negative limit means
// unlimited.
func NewAttendeeAgent(id string, bookings []*Booking, limit int, conflicts *ConflictChecker) *AttendeeAgent {
	if limit < 0 {
		limit = noLimit
	}
	a := &AttendeeAgent{
		ID:        id,
		wishlist:  make([]*Booking, len(bookings)),
		accepted:  make(map[*Booking]struct{}),
		blocked:   make(map[*Booking]struct{}),
		limit:     limit,
		conflicts: conflicts,
	}
	copy(a.wishlist, bookings)
	a.sortWishlist()
	return a
}

func bookingLess(a, b *Booking) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.ID < b.ID
}

func (a *AttendeeAgent) sortWishlist() {
	sort.SliceStable(a.wishlist, func(i, j int) bool {
		return bookingLess(a.wishlist[i], a.wishlist[j])
	})
}

// Wishlist returns the undecided bookings in the attendee's preference
// order. The returned slice is a copy; it stays usable while Accept
// and Deny mutate the agent.
func (a *AttendeeAgent) Wishlist() []*Booking {
	w := make([]*Booking, len(a.wishlist))
	copy(w, a.wishlist)
	return w
}

// Accepted returns the accepted bookings in unspecified order.
func (a *AttendeeAgent) Accepted() []*Booking {
	out := make([]*Booking, 0, len(a.accepted))
	for b := range a.accepted {
		out = append(out, b)
	}
	return out
}

// Blocked returns the blocked bookings in unspecified order.
func (a *AttendeeAgent) Blocked() []*Booking {
	out := make([]*Booking, 0, len(a.blocked))
	for b := range a.blocked {
		out = append(out, b)
	}
	return out
}

// Accept moves a wishlist booking into the accepted set. When the
// acceptance limit is reached the whole remaining wishlist is blocked;
// otherwise only wishlist bookings conflicting with the new acceptance
// are blocked.
func (a *AttendeeAgent) Accept(b *Booking) {
	a.removeWish(b)
	a.accepted[b] = struct{}{}

	if len(a.accepted) >= a.limit {
		for _, w := range a.wishlist {
			a.blocked[w] = struct{}{}
		}
		a.wishlist = a.wishlist[:0]
		return
	}

	kept := a.wishlist[:0]
	for _, w := range a.wishlist {
		if a.conflicts.Conflict(b, w) {
			a.blocked[w] = struct{}{}
		} else {
			kept = append(kept, w)
		}
	}
	a.wishlist = kept
}

// Deny moves an accepted booking back onto the wishlist, then recovers
// every blocked booking that no longer conflicts with the remaining
// accepted set. Recovery is what lets a displaced booking compete
// again later in the run.
func (a *AttendeeAgent) Deny(b *Booking) {
	delete(a.accepted, b)
	a.wishlist = append(a.wishlist, b)

	for w := range a.blocked {
		conflicting := false
		for acc := range a.accepted {
			if a.conflicts.Conflict(acc, w) {
				conflicting = true
				break
			}
		}
		if !conflicting {
			delete(a.blocked, w)
			a.wishlist = append(a.wishlist, w)
		}
	}
	a.sortWishlist()
}

// IsValid reports whether no two accepted bookings conflict with each
// other. A false result indicates a defect in the matching loop, not
// a data problem.
func (a *AttendeeAgent) IsValid() bool {
	acc := a.Accepted()
	for i := 0; i < len(acc); i++ {
		for j := i + 1; j < len(acc); j++ {
			if a.conflicts.Conflict(acc[i], acc[j]) {
				return false
			}
		}
	}
	return true
}

func (a *AttendeeAgent) removeWish(b *Booking) {
	for i, w := range a.wishlist {
		if w == b {
			a.wishlist = append(a.wishlist[:i], a.wishlist[i+1:]...)
			return
		}
	}
}
