// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishscore

import "github.com/ferienpass/damatch"

// Priority scores a booking by the priority its attendee assigned.
type Priority struct{}

func (Priority) Score(b *damatch.Booking) float64 {
	return float64(b.Priority)
}

// OrganiserRating scores bookings by a static per-attendee rating,
// e.g. an organiser preferring returning attendees. Unknown attendees
// score 0.
type OrganiserRating map[string]float64

func (r OrganiserRating) Score(b *damatch.Booking) float64 {
	return r[b.AttendeeID]
}

// GroupCohesion favours bookings whose attendee shares a group with
// other attendees wishing for the same occasion, so groups tend to
// land in the same occasion together. The wish counts are frozen at
// construction time, keeping the criterion pure during the run.
type GroupCohesion struct {
	groups map[string]string
	wishes map[string]map[string]int // group -> occasion -> members wishing
}

func NewGroupCohesion(groups map[string]string, bookings []*damatch.Booking) *GroupCohesion {
	wishes := make(map[string]map[string]int)
	for _, b := range bookings {
		g, ok := groups[b.AttendeeID]
		if !ok {
			continue
		}
		if wishes[g] == nil {
			wishes[g] = make(map[string]int)
		}
		wishes[g][b.OccasionID]++
	}
	return &GroupCohesion{groups: groups, wishes: wishes}
}

// Score returns the number of other group members wishing for the
// same occasion.
func (c *GroupCohesion) Score(b *damatch.Booking) float64 {
	g, ok := c.groups[b.AttendeeID]
	if !ok {
		return 0
	}
	n := c.wishes[g][b.OccasionID]
	if n <= 1 {
		return 0
	}
	return float64(n - 1)
}
