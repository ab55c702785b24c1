// Copyright 2026 the damatch authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wishscore

import "github.com/ferienpass/damatch"

// Weighted scales one criterion's contribution.
type Weighted struct {
	Criterion Criterion
	Weight    float64
}

// Additive sums its weighted criteria into one score. It implements
// damatch.Scorer.
type Additive []Weighted

func (a Additive) Score(b *damatch.Booking) float64 {
	var sum float64
	for _, w := range a {
		sum += w.Weight * w.Criterion.Score(b)
	}
	return sum
}

// Sum combines criteria with unit weight.
func Sum(crits ...Criterion) Additive {
	a := make(Additive, len(crits))
	for i, c := range crits {
		a[i] = Weighted{Criterion: c, Weight: 1.0}
	}
	return a
}
