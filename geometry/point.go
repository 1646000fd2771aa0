// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geometry implements the fixed-dimension points, vectors, dense
// solves and moment integration shared by every stage of the remap
// pipeline.
package geometry

import "math"

// Point is a point (or vector) in 2 or 3 dimensions. Only the first Dim
// components of Coords are meaningful; the struct is fixed-size so it can be
// passed by value without escaping to the heap in the hot intersect loops.
type Point struct {
	Coords [3]float64
	Dim    int
}

// NewPoint2 returns a 2D point.
func NewPoint2(x, y float64) Point {
	return Point{Coords: [3]float64{x, y, 0}, Dim: 2}
}

// NewPoint3 returns a 3D point.
func NewPoint3(x, y, z float64) Point {
	return Point{Coords: [3]float64{x, y, z}, Dim: 3}
}

// X, Y, Z are the individual components; Z is zero and meaningless for 2D
// points.
func (p Point) X() float64 { return p.Coords[0] }
func (p Point) Y() float64 { return p.Coords[1] }
func (p Point) Z() float64 { return p.Coords[2] }

// Add returns p+q.
func (p Point) Add(q Point) Point {
	r := p
	for i := 0; i < p.Dim; i++ {
		r.Coords[i] = p.Coords[i] + q.Coords[i]
	}
	return r
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	r := p
	for i := 0; i < p.Dim; i++ {
		r.Coords[i] = p.Coords[i] - q.Coords[i]
	}
	return r
}

// Scale returns s*p.
func (p Point) Scale(s float64) Point {
	r := p
	for i := 0; i < p.Dim; i++ {
		r.Coords[i] = p.Coords[i] * s
	}
	return r
}

// Dot returns the inner product of p and q.
func (p Point) Dot(q Point) float64 {
	var s float64
	for i := 0; i < p.Dim; i++ {
		s += p.Coords[i] * q.Coords[i]
	}
	return s
}

// Cross returns p x q. For 2D points this is the scalar z-component of the
// cross product (treating both as lying in the xy-plane), stored in
// Coords[2] of a Dim-2 point with Coords[0] and Coords[1] zero; for 3D
// points it is the full vector cross product.
func (p Point) Cross(q Point) Point {
	if p.Dim == 2 {
		return Point{Coords: [3]float64{0, 0, p.Coords[0]*q.Coords[1] - p.Coords[1]*q.Coords[0]}, Dim: 2}
	}
	return NewPoint3(
		p.Coords[1]*q.Coords[2]-p.Coords[2]*q.Coords[1],
		p.Coords[2]*q.Coords[0]-p.Coords[0]*q.Coords[2],
		p.Coords[0]*q.Coords[1]-p.Coords[1]*q.Coords[0],
	)
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Centroid returns the arithmetic mean of pts. Panics on an empty slice; the
// caller is always iterating a non-empty vertex list.
func Centroid(pts []Point) Point {
	dim := pts[0].Dim
	c := Point{Dim: dim}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1.0 / float64(len(pts)))
}
