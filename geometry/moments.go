// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

// Moments holds the 0th and 1st geometric moments of a region: Volume is
// the signed area (2D) or volume (3D); Moment1 is ∫x dV, i.e. the centroid
// scaled by Volume (spec.md §4.1, GLOSSARY "Moment"). Carrying Volume*
// centroid rather than centroid directly is what makes moments additive
// across disjoint pieces, which intersect.go and interpolate.go both rely
// on.
type Moments struct {
	Volume  float64
	Moment1 Point
}

// Add returns the sum of two moment sets; moments of disjoint pieces of a
// region add linearly, which is how intersect.go combines multiple
// non-convex clip pieces into a single candidate's contribution (spec.md
// §4.6.1).
func (m Moments) Add(o Moments) Moments {
	m1 := m.Moment1
	if m1.Dim == 0 {
		// zero-value receiver (e.g. a fresh accumulator): take o's dimension
		// so Point.Add sums every coordinate.
		m1.Dim = o.Moment1.Dim
	}
	return Moments{Volume: m.Volume + o.Volume, Moment1: m1.Add(o.Moment1)}
}

// Centroid returns Moment1/Volume. When Volume is exactly 0 it returns
// Moment1 unchanged instead of dividing; callers still check Volume against
// MinimalIntersectionVolume before trusting the result.
func (m Moments) Centroid() Point {
	if m.Volume == 0 {
		return m.Moment1
	}
	return m.Moment1.Scale(1 / m.Volume)
}

// triangleMoments returns the signed area and first moment of the triangle
// (a,b,c) in 2D, oriented counter-clockwise-positive.
func triangleMoments(a, b, c Point) Moments {
	ab := b.Sub(a)
	ac := c.Sub(a)
	// z-component of (b-a) x (c-a), halved.
	area := 0.5 * (ab.Coords[0]*ac.Coords[1] - ab.Coords[1]*ac.Coords[0])
	centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
	return Moments{Volume: area, Moment1: centroid.Scale(area)}
}

// PolygonMoments computes the 0th/1st moments of a (possibly non-convex, but
// non-self-intersecting) polygon given in winding order, by fan
// triangulation from vertex 0 (spec.md §4.1). Signed according to vertex
// orientation: counter-clockwise winding yields positive volume.
func PolygonMoments(verts []Point) Moments {
	var total Moments
	if len(verts) < 3 {
		return total
	}
	v0 := verts[0]
	for i := 1; i+1 < len(verts); i++ {
		total = total.Add(triangleMoments(v0, verts[i], verts[i+1]))
	}
	return total
}

// tetrahedronMoments returns the signed volume and first moment of the
// tetrahedron (a,b,c,d).
func tetrahedronMoments(a, b, c, d Point) Moments {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	vol := ac.Cross(ad).Dot(ab) / 6.0
	centroid := a.Add(b).Add(c).Add(d).Scale(0.25)
	return Moments{Volume: vol, Moment1: centroid.Scale(vol)}
}

// Face is one polyhedron face given as an ordered, winding-consistent list
// of vertices.
type Face struct {
	Verts []Point
}

// PolyhedronMoments computes the 0th/1st moments of a polyhedron given as a
// list of faces, by decomposing each face into triangles from its own
// centroid and forming tetrahedra with the cell centroid, summing signed
// tetrahedron moments (spec.md §4.1).
func PolyhedronMoments(faces []Face) Moments {
	if len(faces) == 0 {
		return Moments{}
	}
	// cell centroid: mean of all face vertices, a cheap interior
	// reference point for the tet fan; any interior point works because
	// tetrahedron signs cancel correctly over a closed, consistently
	// wound surface.
	var allVerts []Point
	for _, f := range faces {
		allVerts = append(allVerts, f.Verts...)
	}
	cellCentroid := Centroid(allVerts)

	var total Moments
	for _, f := range faces {
		if len(f.Verts) < 3 {
			continue
		}
		faceCentroid := Centroid(f.Verts)
		n := len(f.Verts)
		for i := 0; i < n; i++ {
			a := f.Verts[i]
			b := f.Verts[(i+1)%n]
			total = total.Add(tetrahedronMoments(cellCentroid, faceCentroid, a, b))
		}
	}
	return total
}

// IsConvex2D reports whether the polygon verts (in winding order) is convex
// to within eps, via the sign of successive cross products (spec.md §4.6,
// "non-convex output polygon detected via sign-change of successive
// cross-products").
func IsConvex2D(verts []Point, eps float64) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	var sign float64
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		c := verts[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b)).Coords[2]
		if abs(cross) < eps {
			continue
		}
		s := 1.0
		if cross < 0 {
			s = -1.0
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
