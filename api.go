// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package damatch provides deferred-acceptance matching of activity
// bookings to occasions, respecting occasion capacity, per-attendee
// acceptance limits and time-overlap constraints.
package damatch

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a booking. The matcher itself only
// reads it for diagnostics; callers translate the returned partition
// into state updates.
type State int

const (
	StateOpen State = iota
	StateAccepted
	StateBlocked
	StateCancelled
	StateDenied
)

var stateNames = map[State]string{
	StateOpen:      "open",
	StateAccepted:  "accepted",
	StateBlocked:   "blocked",
	StateCancelled: "cancelled",
	StateDenied:    "denied",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for st, n := range stateNames {
		if n == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown booking state %q", s)
}

func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *State) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("booking state must be a JSON string, got %s", data)
	}
	st, err := ParseState(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Alignment stretches every date range to fully cover its containing
// calendar period before overlaps are computed.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignDay
	AlignWeek
	AlignMonth
)

var alignNames = map[Alignment]string{
	AlignNone:  "none",
	AlignDay:   "day",
	AlignWeek:  "week",
	AlignMonth: "month",
}

func (a Alignment) String() string {
	if n, ok := alignNames[a]; ok {
		return n
	}
	return fmt.Sprintf("alignment(%d)", int(a))
}

// ParseAlignment is the inverse of Alignment.String.
func ParseAlignment(s string) (Alignment, error) {
	for a, n := range alignNames {
		if n == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

// DateRange is a half-open interval [Start, End). A range with
// Start == End is a point in time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Booking is one attendee's wish to attend one occasion. The matcher
// writes Score once before the proposal loop and treats it as
// read-only afterwards; all other fields are caller-owned.
type Booking struct {
	ID         string      `json:"id"`
	OccasionID string      `json:"occasion"`
	AttendeeID string      `json:"attendee"`
	State      State       `json:"state"`
	Priority   int         `json:"priority"`
	Ranges     []DateRange `json:"ranges"`

	Score float64 `json:"-"`
}

// Occasion is one capacity-limited time slot of an activity. The
// matcher never mutates occasions.
type Occasion struct {
	ID         string      `json:"id"`
	ActivityID string      `json:"activity"`
	MaxSpots   int         `json:"max_spots"`
	Ranges     []DateRange `json:"ranges"`

	// SkipOverlapCheck excludes this occasion's bookings from every
	// conflict rule, including anti-affinity.
	SkipOverlapCheck bool `json:"skip_overlap_check"`
}

// Scorer computes the score occasions use to rank candidate bookings,
// higher is better. It must be a pure function of the booking and is
// invoked exactly once per booking, before the proposal loop starts.
type Scorer interface {
	Score(b *Booking) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(b *Booking) float64

func (f ScorerFunc) Score(b *Booking) float64 { return f(b) }

// Result partitions the input bookings into three disjoint sets whose
// union is exactly the input. Each slice is sorted by booking ID.
type Result struct {
	Open     []*Booking `json:"open"`
	Accepted []*Booking `json:"accepted"`
	Blocked  []*Booking `json:"blocked"`
}

// Matcher configures one deferred-acceptance run. Pointer-typed fields
// fall back to their documented defaults when nil.
type Matcher struct {
	// Scorer computes booking scores up front. When nil, the
	// pre-attached Booking.Score values are used as-is.
	Scorer Scorer

	ValidityCheck  *bool // default true
	StabilityCheck bool  // expensive, tests and verification only
	HardBudget     *bool // default true
	SortBookings   *bool // default true

	// DefaultLimit caps how many bookings one attendee may have
	// accepted. Nil means unlimited. AttendeeLimits overrides the
	// default per attendee ID.
	DefaultLimit   *int
	AttendeeLimits map[string]int

	MinutesBetween int
	Align          Alignment

	Verbose bool

	validity bool
	hard     bool
	sort     bool
	limit    int
}

func (m *Matcher) init() {
	if m.ValidityCheck == nil {
		m.validity = true
	} else {
		m.validity = *m.ValidityCheck
	}

	if m.HardBudget == nil {
		m.hard = true
	} else {
		m.hard = *m.HardBudget
	}

	if m.SortBookings == nil {
		m.sort = true
	} else {
		m.sort = *m.SortBookings
	}

	if m.DefaultLimit == nil {
		m.limit = noLimit
	} else {
		m.limit = *m.DefaultLimit
	}
}

func (m *Matcher) limitFor(attendeeID string) int {
	if l, ok := m.AttendeeLimits[attendeeID]; ok {
		return l
	}
	return m.limit
}
