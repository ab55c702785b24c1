// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package damatch

// IsStable independently verifies that a finished matching contains no
// blocking pair. For every accepted booking it probes every occasion
// not holding it: if that occasion would displace one of its own
// bookings for the candidate, and some other occasion would in turn
// take the displaced booking while the first occasion would also take
// what the other offers back, the mutual-improvement cycle marks the
// matching unstable.
//
// The walk is cubic to quartic in bookings and occasions and exists
// for tests and design verification only; never run it on a
// production path.
func IsStable(attendees []*AttendeeAgent, occasions []*OccasionAgent) bool {
	for _, a := range attendees {
		for b := range a.accepted {
			for _, o := range occasions {
				if o.Holds(b) {
					continue
				}
				over := o.Preferred(b)
				if over == nil {
					continue
				}
				for _, o2 := range occasions {
					if o2 == o {
						continue
					}
					offer := o2.Preferred(over)
					if offer == nil {
						continue
					}
					if o.Preferred(offer) != nil {
						return false
					}
				}
			}
		}
	}
	return true
}
