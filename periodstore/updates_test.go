// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package periodstore

import (
	"testing"

	"github.com/ferienpass/damatch"
)

func TestStateUpdates(t *testing.T) {
	res := damatch.Result{
		Open: []*damatch.Booking{
			{ID: "stays-open", State: damatch.StateOpen},
			{ID: "reopened", State: damatch.StateAccepted},
		},
		Accepted: []*damatch.Booking{
			{ID: "newly-accepted", State: damatch.StateOpen},
			{ID: "stays-accepted", State: damatch.StateAccepted},
			{ID: "was-cancelled", State: damatch.StateCancelled},
		},
		Blocked: []*damatch.Booking{
			{ID: "newly-blocked", State: damatch.StateOpen},
			{ID: "was-denied", State: damatch.StateDenied},
		},
	}

	got := make(map[string]damatch.State)
	for _, u := range stateUpdates(res) {
		if _, dup := got[u.id]; dup {
			t.Errorf("booking %s updated twice", u.id)
		}
		got[u.id] = u.state
	}

	want := map[string]damatch.State{
		"reopened":       damatch.StateOpen,
		"newly-accepted": damatch.StateAccepted,
		"newly-blocked":  damatch.StateBlocked,
	}
	if len(got) != len(want) {
		t.Errorf("updates = %v, want %v", got, want)
	}
	for id, state := range want {
		if got[id] != state {
			t.Errorf("update[%s] = %v, want %v", id, got[id], state)
		}
	}
}
