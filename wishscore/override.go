// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishscore

import "github.com/ferienpass/damatch"

// Record pins the score of one booking.
type Record struct {
	BookingID string
	Score     float64
}

type overrideScorer struct {
	orig damatch.Scorer
	recs map[string]float64
}

// NewOverrideScorer wraps a scorer with per-booking score pins. A
// booking listed in records scores its pinned value; everything else
// falls through to orig (or 0 when orig is nil). Besides manual
// organiser corrections this is the hook for callers that need a
// fully deterministic tie-break: pin distinct scores and the
// occasions' arbitrary choice among equals never triggers.
func NewOverrideScorer(orig damatch.Scorer, records []Record) damatch.Scorer {
	recs := make(map[string]float64, len(records))
	for _, rec := range records {
		recs[rec.BookingID] = rec.Score
	}
	return &overrideScorer{
		orig: orig,
		recs: recs,
	}
}

func (s *overrideScorer) Score(b *damatch.Booking) float64 {
	if v, ok := s.recs[b.ID]; ok {
		return v
	}
	if s.orig == nil {
		return 0
	}
	return s.orig.Score(b)
}
