// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrBudgetExhausted is returned when the proposal loop exceeds
	// its round budget and HardBudget is set. It signals a violated
	// convergence assumption, not a data problem.
	ErrBudgetExhausted = errors.New("damatch: proposal loop budget exhausted")

	// ErrInvalidMatching is returned by the post-run validity check
	// when an attendee ended up with two conflicting accepted
	// bookings. It always indicates a defect in the matching loop.
	ErrInvalidMatching = errors.New("damatch: attendee holds conflicting accepted bookings")

	// ErrUnstableMatching is returned by the optional stability check
	// when the result contains a blocking pair.
	ErrUnstableMatching = errors.New("damatch: matching contains a blocking pair")
)

// Match runs deferred acceptance over the bookings and occasions and
// partitions the bookings into open, accepted and blocked sets.
//
// Scores are computed once up front; afterwards attendees repeatedly
// propose their most-preferred remaining wish to its occasion, which
// accepts outright, displaces a lower-scored held booking, or rejects.
// The loop stops at a fixed point (a round without any successful
// proposal) or when the round budget of bookings*attendees runs out.
// With HardBudget the latter is an error; otherwise the partial
// partition achieved so far is returned, which is still a complete
// partition of the input.
func (m *Matcher) Match(bookings []*Booking, occasions []*Occasion) (Result, error) {
	m.init()

	if m.sort {
		sort.SliceStable(bookings, func(i, j int) bool {
			return bookings[i].AttendeeID < bookings[j].AttendeeID
		})
	}

	// Scoring happens exactly once, before the loop. The scorer must
	// not be consulted again while the matching is in flight.
	if m.Scorer != nil {
		for _, b := range bookings {
			b.Score = m.Scorer.Score(b)
		}
	}

	conflicts := NewConflictChecker(occasions, m.MinutesBetween, m.Align)

	occAgents := make(map[string]*OccasionAgent, len(occasions))
	for _, o := range occasions {
		occAgents[o.ID] = NewOccasionAgent(o, nil)
	}

	byAttendee := make(map[string][]*Booking)
	var attendeeOrder []string
	for _, b := range bookings {
		if _, ok := occAgents[b.OccasionID]; !ok {
			return Result{}, fmt.Errorf("booking %s refers to unknown occasion %s", b.ID, b.OccasionID)
		}
		if _, ok := byAttendee[b.AttendeeID]; !ok {
			attendeeOrder = append(attendeeOrder, b.AttendeeID)
		}
		byAttendee[b.AttendeeID] = append(byAttendee[b.AttendeeID], b)
	}

	attAgents := make([]*AttendeeAgent, 0, len(attendeeOrder))
	for _, id := range attendeeOrder {
		attAgents = append(attAgents, NewAttendeeAgent(id, byAttendee[id], m.limitFor(id), conflicts))
	}

	budget := NewLoopBudget(len(bookings) * len(attAgents))

	for {
		var candidates []*AttendeeAgent
		for _, a := range attAgents {
			if len(a.wishlist) > 0 {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) == 0 {
			break
		}

		if budget.Tick() {
			if m.hard {
				return Result{}, fmt.Errorf("%w after %d rounds", ErrBudgetExhausted, budget.Ticks())
			}
			if m.Verbose {
				fmt.Println("budget exhausted after", budget.Ticks(), "rounds, stopping early")
			}
			break
		}

		matched := false
		// Candidates are worked off last-in-first-out. The order is
		// not semantically significant but is stable for one input
		// order.
		for i := len(candidates) - 1; i >= 0; i-- {
			a := candidates[i]
			for _, b := range a.Wishlist() {
				if occAgents[b.OccasionID].Match(a, b) {
					// The accept just mutated the wishlist; trying
					// further entries of the stale copy is unsafe.
					matched = true
					break
				}
			}
		}

		if m.Verbose {
			fmt.Println("round", budget.Ticks(), "candidates:", len(candidates), "matched:", matched)
		}

		if !matched {
			break
		}
	}

	if m.validity {
		for _, a := range attAgents {
			if !a.IsValid() {
				return Result{}, fmt.Errorf("%w (attendee %s)", ErrInvalidMatching, a.ID)
			}
		}
	}

	if m.StabilityCheck {
		occList := make([]*OccasionAgent, 0, len(occAgents))
		for _, o := range occAgents {
			occList = append(occList, o)
		}
		if !IsStable(attAgents, occList) {
			return Result{}, ErrUnstableMatching
		}
	}

	var res Result
	for _, a := range attAgents {
		res.Open = append(res.Open, a.wishlist...)
		res.Accepted = append(res.Accepted, a.Accepted()...)
		res.Blocked = append(res.Blocked, a.Blocked()...)
	}
	sortByID(res.Open)
	sortByID(res.Accepted)
	sortByID(res.Blocked)
	return res, nil
}

func sortByID(bookings []*Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ID < bookings[j].ID
	})
}
