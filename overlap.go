// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

import "time"

// ConflictChecker decides whether two bookings, or a booking and an
// occasion, may not be held at the same time. It applies the
// configured buffer between bookings, the calendar alignment and the
// anti-affinity rule for bookings of the same activity.
type ConflictChecker struct {
	minutesBetween int
	align          Alignment
	occasions      map[string]*Occasion
}

// NewConflictChecker builds a checker over the given occasions.
// Bookings are resolved to their occasion by OccasionID; a booking
// whose occasion is unknown only conflicts by time.
func NewConflictChecker(occasions []*Occasion, minutesBetween int, align Alignment) *ConflictChecker {
	occs := make(map[string]*Occasion, len(occasions))
	for _, o := range occasions {
		occs[o.ID] = o
	}
	return &ConflictChecker{
		minutesBetween: minutesBetween,
		align:          align,
		occasions:      occs,
	}
}

// Conflict reports whether bookings a and b may not both be accepted.
// Two bookings of the same activity always conflict (anti-affinity),
// even on disjoint dates. An occasion flagged SkipOverlapCheck never
// conflicts with anything.
func (c *ConflictChecker) Conflict(a, b *Booking) bool {
	oa := c.occasions[a.OccasionID]
	ob := c.occasions[b.OccasionID]
	if oa != nil && oa.SkipOverlapCheck {
		return false
	}
	if ob != nil && ob.SkipOverlapCheck {
		return false
	}
	if oa != nil && ob != nil && oa.ActivityID != "" && oa.ActivityID == ob.ActivityID {
		return true
	}
	return Overlaps(a.Ranges, b.Ranges, c.minutesBetween, c.align)
}

// OccasionConflict reports whether booking b collides with occasion o
// as a whole, e.g. a candidate against an occasion's full schedule.
func (c *ConflictChecker) OccasionConflict(b *Booking, o *Occasion) bool {
	if o.SkipOverlapCheck {
		return false
	}
	if ob := c.occasions[b.OccasionID]; ob != nil {
		if ob.SkipOverlapCheck {
			return false
		}
		if ob.ActivityID != "" && ob.ActivityID == o.ActivityID {
			return true
		}
	}
	return Overlaps(b.Ranges, o.Ranges, c.minutesBetween, c.align)
}

// Overlaps reports whether any range from a intersects any range from
// b after alignment stretching and end-buffer extension. Without a
// buffer, ranges are half-open: back-to-back ranges do not overlap,
// while a point range intersects itself and any range containing its
// instant. With a buffer the boundary is closed: two ranges whose gap
// equals the buffer exactly still conflict.
func Overlaps(a, b []DateRange, minutesBetween int, align Alignment) bool {
	buffer := time.Duration(minutesBetween) * time.Minute
	for _, ra := range a {
		ra = ra.aligned(align)
		for _, rb := range b {
			if intersects(ra, rb.aligned(align), buffer) {
				return true
			}
		}
	}
	return false
}

func intersects(a, b DateRange, buffer time.Duration) bool {
	if buffer > 0 {
		aEnd := a.End.Add(buffer)
		bEnd := b.End.Add(buffer)
		return !a.Start.After(bEnd) && !b.Start.After(aEnd)
	}

	aPoint := a.Start.Equal(a.End)
	bPoint := b.Start.Equal(b.End)
	switch {
	case aPoint && bPoint:
		return a.Start.Equal(b.Start)
	case aPoint:
		return !a.Start.Before(b.Start) && a.Start.Before(b.End)
	case bPoint:
		return !b.Start.Before(a.Start) && b.Start.Before(a.End)
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// aligned stretches the range to fully cover the calendar periods it
// touches, in the range's own time zone. A range ending exactly on a
// period boundary does not spill into the next period; a point range
// grows to cover the whole period containing its instant.
func (r DateRange) aligned(align Alignment) DateRange {
	switch align {
	case AlignDay:
		return r.stretch(startOfDay, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) })
	case AlignWeek:
		return r.stretch(startOfWeek, func(t time.Time) time.Time { return t.AddDate(0, 0, 7) })
	case AlignMonth:
		return r.stretch(startOfMonth, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) })
	}
	return r
}

func (r DateRange) stretch(floor, next func(time.Time) time.Time) DateRange {
	start := floor(r.Start)
	end := floor(r.End)
	if r.End.After(end) || r.End.Equal(r.Start) {
		end = next(end)
	}
	return DateRange{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek truncates to Monday 00:00.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
