// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package periodstore

import "github.com/ferienpass/damatch"

type stateUpdate struct {
	id    string
	state damatch.State
}

// stateUpdates turns a match result into the minimal list of booking
// state writes: one update per booking whose target state differs
// from its loaded state, skipping cancelled and denied bookings.
func stateUpdates(res damatch.Result) []stateUpdate {
	var updates []stateUpdate

	collect := func(bookings []*damatch.Booking, target damatch.State) {
		for _, b := range bookings {
			if b.State == damatch.StateCancelled || b.State == damatch.StateDenied {
				continue
			}
			if b.State == target {
				continue
			}
			updates = append(updates, stateUpdate{id: b.ID, state: target})
		}
	}

	collect(res.Open, damatch.StateOpen)
	collect(res.Accepted, damatch.StateAccepted)
	collect(res.Blocked, damatch.StateBlocked)
	return updates
}
