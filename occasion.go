// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

// OccasionAgent owns one occasion's capacity and the bookings it
// currently holds, together with a backreference from each held
// booking to the attendee agent that proposed it.
type OccasionAgent struct {
	ID       string
	MaxSpots int

	held    map[*Booking]*AttendeeAgent
	scoreOf func(*Booking) float64
}

// NewOccasionAgent builds an agent for one occasion. scoreOf supplies
// the preference order over bookings; nil reads the cached
// Booking.Score. The stability checker constructs agents with its own
// preference function.
func NewOccasionAgent(o *Occasion, scoreOf func(*Booking) float64) *OccasionAgent {
	if scoreOf == nil {
		scoreOf = func(b *Booking) float64 { return b.Score }
	}
	return &OccasionAgent{
		ID:       o.ID,
		MaxSpots: o.MaxSpots,
		held:     make(map[*Booking]*AttendeeAgent),
		scoreOf:  scoreOf,
	}
}

// Full reports whether the occasion holds max_spots bookings.
func (o *OccasionAgent) Full() bool {
	return len(o.held) >= o.MaxSpots
}

// Holds reports whether b is currently held by this occasion.
func (o *OccasionAgent) Holds(b *Booking) bool {
	_, ok := o.held[b]
	return ok
}

// Bookings returns the held bookings in unspecified order.
func (o *OccasionAgent) Bookings() []*Booking {
	out := make([]*Booking, 0, len(o.held))
	for b := range o.held {
		out = append(out, b)
	}
	return out
}

// Preferred returns a held booking that would lose to the candidate,
// i.e. one whose score is strictly lower, or nil if every held
// booking scores at least as high. When several qualify the first in
// map iteration order wins: the tie-break is arbitrary within one run
// and callers must not rely on a specific choice. That nondeterminism
// is deliberate; deterministic callers pre-pin scores instead.
func (o *OccasionAgent) Preferred(candidate *Booking) *Booking {
	score := o.scoreOf(candidate)
	for b := range o.held {
		if o.scoreOf(b) < score {
			return b
		}
	}
	return nil
}

// Accept records the booking as held and notifies its attendee agent.
func (o *OccasionAgent) Accept(a *AttendeeAgent, b *Booking) {
	o.held[b] = a
	a.Accept(b)
}

// Deny releases a held booking back to its attendee agent.
func (o *OccasionAgent) Deny(b *Booking) {
	a := o.held[b]
	delete(o.held, b)
	if a != nil {
		a.Deny(b)
	}
}

// Match is the per-proposal decision rule: accept outright while there
// is spare capacity, displace a strictly lower-scored held booking
// when full, otherwise reject. A rejected candidate stays on its
// attendee's wishlist and may be retried in a later round.
func (o *OccasionAgent) Match(a *AttendeeAgent, candidate *Booking) bool {
	if !o.Full() {
		o.Accept(a, candidate)
		return true
	}
	if loser := o.Preferred(candidate); loser != nil {
		o.Deny(loser)
		o.Accept(a, candidate)
		return true
	}
	return false
}
