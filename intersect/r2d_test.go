// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intersect

import (
	"math"
	"testing"

	"github.com/cpmech/portage/geometry"
)

func quad(x0, y0, x1, y1 float64) []geometry.Point {
	return []geometry.Point{
		geometry.NewPoint2(x0, y0),
		geometry.NewPoint2(x1, y0),
		geometry.NewPoint2(x1, y1),
		geometry.NewPoint2(x0, y1),
	}
}

func TestIntersectR2DFullOverlap(t *testing.T) {
	tol := geometry.DefaultTolerances()
	pieces := IntersectR2D(quad(0, 0, 1, 1), quad(0, 0, 1, 1), tol)
	if len(pieces) != 1 {
		t.Fatalf("expected exactly 1 piece, got %d", len(pieces))
	}
	if math.Abs(pieces[0].Volume-1.0) > 1e-12 {
		t.Errorf("volume = %v, want 1", pieces[0].Volume)
	}
}

func TestIntersectR2DPartialOverlap(t *testing.T) {
	tol := geometry.DefaultTolerances()
	// target [0,1]x[0,1], candidate [0.5,1.5]x[0.5,1.5]: overlap is
	// [0.5,1]x[0.5,1], area 0.25.
	pieces := IntersectR2D(quad(0, 0, 1, 1), quad(0.5, 0.5, 1.5, 1.5), tol)
	if len(pieces) != 1 {
		t.Fatalf("expected exactly 1 piece, got %d", len(pieces))
	}
	if math.Abs(pieces[0].Volume-0.25) > 1e-12 {
		t.Errorf("volume = %v, want 0.25", pieces[0].Volume)
	}
	c := pieces[0].Centroid()
	if math.Abs(c.X()-0.75) > 1e-12 || math.Abs(c.Y()-0.75) > 1e-12 {
		t.Errorf("centroid = (%v,%v), want (0.75,0.75)", c.X(), c.Y())
	}
}

func TestIntersectR2DNoOverlap(t *testing.T) {
	tol := geometry.DefaultTolerances()
	pieces := IntersectR2D(quad(0, 0, 1, 1), quad(5, 5, 6, 6), tol)
	if len(pieces) != 0 {
		t.Errorf("expected no overlap, got %d pieces", len(pieces))
	}
}

func TestIntersectR2DNonConvexCandidate(t *testing.T) {
	tol := geometry.DefaultTolerances()
	// an L-shaped (non-convex) candidate covering the left half of a 2x2
	// square plus a notch, intersected against the full square [0,2]x[0,2].
	lshape := []geometry.Point{
		geometry.NewPoint2(0, 0),
		geometry.NewPoint2(2, 0),
		geometry.NewPoint2(2, 1),
		geometry.NewPoint2(1, 1),
		geometry.NewPoint2(1, 2),
		geometry.NewPoint2(0, 2),
	}
	pieces := IntersectR2D(quad(0, 0, 2, 2), lshape, tol)
	var total float64
	for _, m := range pieces {
		total += m.Volume
	}
	// L-shape area = 2*1 + 1*1 = 3
	if math.Abs(total-3.0) > 1e-9 {
		t.Errorf("total overlap volume = %v, want 3", total)
	}
}

func TestSweptQuad2DVolume(t *testing.T) {
	// edge from (0,0)-(0,1) translated by (1,0): swept area should be 1x1=1.
	srcA := geometry.NewPoint2(0, 0)
	srcB := geometry.NewPoint2(0, 1)
	tgtA := geometry.NewPoint2(1, 0)
	tgtB := geometry.NewPoint2(1, 1)
	m, err := SweptQuad2D(srcA, srcB, tgtA, tgtB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(math.Abs(m.Volume)-1.0) > 1e-12 {
		t.Errorf("|volume| = %v, want 1", math.Abs(m.Volume))
	}
}
