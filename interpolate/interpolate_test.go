// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interpolate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/portage/geometry"
)

func constField(vals map[int]float64) SourceField {
	return SourceField{Value: func(id int) float64 { return vals[id] }}
}

func TestInterpolate1stOrderConstantPreservation(t *testing.T) {
	// spec.md §8.1: a constant source field must map to the same constant
	// regardless of how the target cell is covered by source pieces.
	weights := []Weight{
		{SourceID: 0, Moments: geometry.Moments{Volume: 0.3}},
		{SourceID: 1, Moments: geometry.Moments{Volume: 0.5}},
		{SourceID: 2, Moments: geometry.Moments{Volume: 0.2}},
	}
	field := constField(map[int]float64{0: 7, 1: 7, 2: 7})
	got, ok := Interpolate(FirstOrder, weights, field)
	if !ok {
		t.Fatal("expected overlap")
	}
	if math.Abs(got-7) > 1e-12 {
		t.Errorf("got %v, want 7", got)
	}
}

func TestInterpolate1stOrderEmpty(t *testing.T) {
	_, ok := Interpolate(FirstOrder, nil, SourceField{})
	if ok {
		t.Error("expected ok=false for no overlap")
	}
}

func TestInterpolate2ndOrderLinearFieldExact(t *testing.T) {
	// phi(x,y) = 2x + 3y + 5 over two overlap pieces of a target square;
	// 2nd order combination must reproduce phi exactly at the target
	// centroid when every source piece carries the exact local gradient
	// (spec.md §8.2).
	phi := func(p geometry.Point) float64 { return 2*p.X() + 3*p.Y() + 5 }
	grad := geometry.NewPoint2(2, 3)

	srcCentroids := map[int]geometry.Point{
		0: geometry.NewPoint2(0.25, 0.75),
		1: geometry.NewPoint2(0.75, 0.75),
	}
	weights := []Weight{
		{SourceID: 0, Moments: geometry.Moments{Volume: 0.5, Moment1: srcCentroids[0].Scale(0.5)}},
		{SourceID: 1, Moments: geometry.Moments{Volume: 0.5, Moment1: srcCentroids[1].Scale(0.5)}},
	}
	field := SourceField{
		Value:    func(id int) float64 { return phi(srcCentroids[id]) },
		Gradient: func(id int) geometry.Point { return grad },
		Centroid: func(id int) geometry.Point { return srcCentroids[id] },
	}
	got, ok := Interpolate(SecondOrder, weights, field)
	if !ok {
		t.Fatal("expected overlap")
	}
	targetCentroid := geometry.NewPoint2(0.5, 0.75)
	want := phi(targetCentroid)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInterpolateCommutativeAssociative(t *testing.T) {
	// spec.md §8.6: the result must not depend on the order weights are
	// summed in.
	vals := map[int]float64{0: 3, 1: -2, 2: 9, 3: 0.5}
	weights := []Weight{
		{SourceID: 0, Moments: geometry.Moments{Volume: 0.1}},
		{SourceID: 1, Moments: geometry.Moments{Volume: 0.2}},
		{SourceID: 2, Moments: geometry.Moments{Volume: 0.3}},
		{SourceID: 3, Moments: geometry.Moments{Volume: 0.4}},
	}
	field := constField(vals)
	base, _ := Interpolate(FirstOrder, weights, field)

	shuffled := make([]Weight, len(weights))
	copy(shuffled, weights)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, _ := Interpolate(FirstOrder, shuffled, field)
		if math.Abs(got-base) > 1e-12 {
			t.Errorf("order-dependent result: got %v, want %v", got, base)
		}
	}
}

func TestTotalOverlapVolume(t *testing.T) {
	weights := []Weight{
		{Moments: geometry.Moments{Volume: 0.3}},
		{Moments: geometry.Moments{Volume: 0.4}},
	}
	if got := TotalOverlapVolume(weights); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("got %v, want 0.7", got)
	}
}
