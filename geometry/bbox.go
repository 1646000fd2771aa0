// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import "math"

// BBox is an axis-aligned bounding box in 2 or 3 dimensions, shaped after
// ctessum/geom's Bounds (Min/Max point pair) but generalized to D ∈ {2,3}
// since Bounds is hardwired to 2D.
type BBox struct {
	Min, Max Point
	Dim      int
}

// EmptyBBox returns an inverted (empty) bounding box of the given dimension,
// ready to be grown with Expand.
func EmptyBBox(dim int) BBox {
	inf := math.Inf(1)
	b := BBox{Dim: dim}
	for i := 0; i < dim; i++ {
		b.Min.Coords[i] = inf
		b.Max.Coords[i] = -inf
	}
	b.Min.Dim, b.Max.Dim = dim, dim
	return b
}

// Expand grows b in place so that it contains p.
func (b *BBox) Expand(p Point) {
	for i := 0; i < b.Dim; i++ {
		if p.Coords[i] < b.Min.Coords[i] {
			b.Min.Coords[i] = p.Coords[i]
		}
		if p.Coords[i] > b.Max.Coords[i] {
			b.Max.Coords[i] = p.Coords[i]
		}
	}
}

// FromPoints returns the bounding box of pts.
func FromPoints(pts []Point) BBox {
	b := EmptyBBox(pts[0].Dim)
	for _, p := range pts {
		b.Expand(p)
	}
	return b
}

// Union returns the smallest bounding box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	r := b
	for i := 0; i < b.Dim; i++ {
		if o.Min.Coords[i] < r.Min.Coords[i] {
			r.Min.Coords[i] = o.Min.Coords[i]
		}
		if o.Max.Coords[i] > r.Max.Coords[i] {
			r.Max.Coords[i] = o.Max.Coords[i]
		}
	}
	return r
}

// Overlaps reports whether b and o intersect, inset inward on every face by
// eps (spec.md §4.4 step 2: this excludes mere face-touch when eps > 0).
func (b BBox) Overlaps(o BBox, eps float64) bool {
	for i := 0; i < b.Dim; i++ {
		if b.Max.Coords[i]-eps < o.Min.Coords[i]+eps {
			return false
		}
		if o.Max.Coords[i]-eps < b.Min.Coords[i]+eps {
			return false
		}
	}
	return true
}

// LongestAxis returns the index of the axis along which b is longest; used
// by the k-d tree build to choose a split axis (spec.md §4.5).
func (b BBox) LongestAxis() int {
	axis := 0
	longest := b.Max.Coords[0] - b.Min.Coords[0]
	for i := 1; i < b.Dim; i++ {
		length := b.Max.Coords[i] - b.Min.Coords[i]
		if length > longest {
			longest = length
			axis = i
		}
	}
	return axis
}

// Center returns the midpoint of b.
func (b BBox) Center() Point {
	return b.Min.Add(b.Max).Scale(0.5)
}
