// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gradient

import (
	"math"
	"testing"

	"github.com/cpmech/portage/geometry"
)

func TestReconstructLinearFieldExact(t *testing.T) {
	// phi(x,y) = 2x + 3y + 5; on a regular stencil the least-squares fit
	// should reproduce the exact gradient (2,3) (spec.md §8.2).
	phi := func(p geometry.Point) float64 { return 2*p.X() + 3*p.Y() + 5 }
	center := geometry.NewPoint2(1, 1)
	neighbors := []geometry.Point{
		geometry.NewPoint2(2, 1),
		geometry.NewPoint2(0, 1),
		geometry.NewPoint2(1, 2),
		geometry.NewPoint2(1, 0),
	}
	vals := make([]float64, len(neighbors))
	for i, n := range neighbors {
		vals[i] = phi(n)
	}
	acc := Accumulate{Center: center, CenterValue: phi(center), Neighbors: neighbors, NeighborVal: vals, Weighter: UniformWeight}
	grad, err := acc.Reconstruct(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(grad.X()-2) > 1e-9 || math.Abs(grad.Y()-3) > 1e-9 {
		t.Errorf("grad = (%v,%v), want (2,3)", grad.X(), grad.Y())
	}
}

func TestBarthJespersenBounds(t *testing.T) {
	center := geometry.NewPoint2(0, 0)
	centerVal := 50.0
	grad := geometry.NewPoint2(1000, 0) // wildly steep, unlimited would blow bounds
	phiMin, phiMax := 30.0, 100.0
	verts := []geometry.Point{geometry.NewPoint2(1, 0), geometry.NewPoint2(-1, 0)}
	limited := BarthJespersen(center, centerVal, phiMin, phiMax, grad, verts)
	for _, v := range verts {
		recon := centerVal + limited.Dot(v.Sub(center))
		if recon < phiMin-1e-9 || recon > phiMax+1e-9 {
			t.Errorf("reconstructed value %v at %v out of bounds [%v,%v]", recon, v, phiMin, phiMax)
		}
	}
}
