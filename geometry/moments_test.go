// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"math"
	"testing"
)

// checkMoments checks that m matches the expected volume and centroid to
// within tol, in the manner of gofem's shp.CheckShape helpers.
func checkMoments(t *testing.T, m Moments, wantVol float64, wantCentroid Point, tol float64) {
	t.Helper()
	if math.Abs(m.Volume-wantVol) > tol {
		t.Errorf("volume = %v, want %v", m.Volume, wantVol)
	}
	c := m.Centroid()
	for i := 0; i < wantCentroid.Dim; i++ {
		if math.Abs(c.Coords[i]-wantCentroid.Coords[i]) > tol {
			t.Errorf("centroid[%d] = %v, want %v", i, c.Coords[i], wantCentroid.Coords[i])
		}
	}
}

func TestPolygonMomentsUnitSquare(t *testing.T) {
	square := []Point{
		NewPoint2(0, 0),
		NewPoint2(1, 0),
		NewPoint2(1, 1),
		NewPoint2(0, 1),
	}
	m := PolygonMoments(square)
	checkMoments(t, m, 1.0, NewPoint2(0.5, 0.5), 1e-12)
}

func TestPolygonMomentsTriangle(t *testing.T) {
	tri := []Point{NewPoint2(0, 0), NewPoint2(4, 0), NewPoint2(0, 3)}
	m := PolygonMoments(tri)
	checkMoments(t, m, 6.0, NewPoint2(4.0/3.0, 1.0), 1e-12)
}

func TestPolygonMomentsClockwiseIsNegative(t *testing.T) {
	square := []Point{
		NewPoint2(0, 0),
		NewPoint2(0, 1),
		NewPoint2(1, 1),
		NewPoint2(1, 0),
	}
	m := PolygonMoments(square)
	if m.Volume >= 0 {
		t.Errorf("expected negative signed area for clockwise winding, got %v", m.Volume)
	}
}

// unitCube returns the six faces of the unit cube [0,1]^3, each wound so
// its outward normal points away from the cube (right-hand rule).
func unitCube() []Face {
	p := func(x, y, z float64) Point { return NewPoint3(x, y, z) }
	return []Face{
		{Verts: []Point{p(0, 0, 0), p(0, 1, 0), p(1, 1, 0), p(1, 0, 0)}}, // z=0, normal -z
		{Verts: []Point{p(0, 0, 1), p(1, 0, 1), p(1, 1, 1), p(0, 1, 1)}}, // z=1, normal +z
		{Verts: []Point{p(0, 0, 0), p(1, 0, 0), p(1, 0, 1), p(0, 0, 1)}}, // y=0, normal -y
		{Verts: []Point{p(0, 1, 0), p(0, 1, 1), p(1, 1, 1), p(1, 1, 0)}}, // y=1, normal +y
		{Verts: []Point{p(0, 0, 0), p(0, 0, 1), p(0, 1, 1), p(0, 1, 0)}}, // x=0, normal -x
		{Verts: []Point{p(1, 0, 0), p(1, 1, 0), p(1, 1, 1), p(1, 0, 1)}}, // x=1, normal +x
	}
}

func TestPolyhedronMomentsUnitCube(t *testing.T) {
	m := PolyhedronMoments(unitCube())
	checkMoments(t, m, 1.0, NewPoint3(0.5, 0.5, 0.5), 1e-12)
}

func TestIsConvex2D(t *testing.T) {
	square := []Point{NewPoint2(0, 0), NewPoint2(1, 0), NewPoint2(1, 1), NewPoint2(0, 1)}
	if !IsConvex2D(square, 1e-14) {
		t.Errorf("square should be convex")
	}
	// a simple dart / arrowhead shape is non-convex.
	dart := []Point{NewPoint2(0, 0), NewPoint2(2, 0), NewPoint2(1, 0.3), NewPoint2(2, 2), NewPoint2(0, 2)}
	if IsConvex2D(dart, 1e-14) {
		t.Errorf("dart should be non-convex")
	}
}

func TestSolveNormalEquations2x2(t *testing.T) {
	a := [][]float64{{2, 0}, {0, 3}}
	b := []float64{4, 9}
	x, err := SolveNormalEquations(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(x[0]-2) > 1e-12 || math.Abs(x[1]-3) > 1e-12 {
		t.Errorf("x = %v, want [2 3]", x)
	}
}

func TestSolveNormalEquationsSingularFallsBackToPseudoInverse(t *testing.T) {
	// rank-deficient: both rows identical.
	a := [][]float64{{1, 1}, {1, 1}}
	b := []float64{2, 2}
	x, err := SolveNormalEquations(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// minimum-norm solution to x0+x1=2 is [1,1].
	if math.Abs(x[0]-1) > 1e-9 || math.Abs(x[1]-1) > 1e-9 {
		t.Errorf("x = %v, want [1 1]", x)
	}
}
