// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intersect

import (
	"math"
	"sort"

	"github.com/cpmech/portage/geometry"
)

// IntersectR3D computes the 0th/1st moments of the overlap between the
// convex target polyhedron and the convex candidate polyhedron (spec.md
// §4.6.2). The target is decomposed into tetrahedra from its own centroid
// through triangulated faces (the same fan decomposition
// geometry.PolyhedronMoments uses), the candidate is turned into its face
// planes, and each tet is clipped against those half-space planes in
// turn — an exact tet-cell clip for the convex case, which is what this
// component exists to serve: mesh cells used in practice (quads,
// hexahedra, and their refinements) are convex.
func IntersectR3D(targetFaces, candidateFaces []geometry.Face, tol geometry.Tolerances) []geometry.Moments {
	tets := decomposeTets(targetFaces)
	planes := facePlanes(candidateFaces)

	var pieces []geometry.Moments
	for _, tet := range tets {
		poly := tetFaces(tet)
		for _, pl := range planes {
			poly = clipPolyhedronByPlane(poly, pl.normal, pl.point)
			if len(poly) == 0 {
				break
			}
		}
		if len(poly) == 0 {
			continue
		}
		m := geometry.PolyhedronMoments(poly)
		if m.Volume <= 0 {
			continue
		}
		pieces = append(pieces, m)
	}
	return filterMoments(pieces, tol)
}

type tetrahedron [4]geometry.Point

// decomposeTets fans each face of faces from the polyhedron's own centroid,
// matching geometry.PolyhedronMoments' own decomposition so intersect and
// the raw-moment computation agree on what a "cell" decomposes into.
func decomposeTets(faces []geometry.Face) []tetrahedron {
	var allVerts []geometry.Point
	for _, f := range faces {
		allVerts = append(allVerts, f.Verts...)
	}
	if len(allVerts) == 0 {
		return nil
	}
	center := geometry.Centroid(allVerts)

	var tets []tetrahedron
	for _, f := range faces {
		if len(f.Verts) < 3 {
			continue
		}
		faceCentroid := geometry.Centroid(f.Verts)
		n := len(f.Verts)
		for i := 0; i < n; i++ {
			a := f.Verts[i]
			b := f.Verts[(i+1)%n]
			tets = append(tets, tetrahedron{center, faceCentroid, a, b})
		}
	}
	return tets
}

// tetFaces returns the 4 triangular faces of tet, outward-wound consistent
// with the tetrahedron's own positive-volume orientation (the decomposition
// in decomposeTets always winds tets with positive signed volume, given
// consistently outward-wound input faces).
func tetFaces(tet tetrahedron) []geometry.Face {
	a, b, c, d := tet[0], tet[1], tet[2], tet[3]
	return []geometry.Face{
		{Verts: []geometry.Point{a, c, b}},
		{Verts: []geometry.Point{a, b, d}},
		{Verts: []geometry.Point{a, d, c}},
		{Verts: []geometry.Point{b, c, d}},
	}
}

type plane struct {
	normal geometry.Point // outward normal of the half-space's "kept" side boundary
	point  geometry.Point
}

// facePlanes returns the outward-facing clip planes of a convex polyhedron:
// points with normal.(x-point) > 0 are outside the polyhedron.
func facePlanes(faces []geometry.Face) []plane {
	planes := make([]plane, 0, len(faces))
	for _, f := range faces {
		if len(f.Verts) < 3 {
			continue
		}
		n := faceNormal(f.Verts)
		planes = append(planes, plane{normal: n, point: f.Verts[0]})
	}
	return planes
}

func faceNormal(verts []geometry.Point) geometry.Point {
	var normal geometry.Point
	normal.Dim = 3
	centroid := geometry.Centroid(verts)
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i].Sub(centroid)
		b := verts[(i+1)%n].Sub(centroid)
		normal = normal.Add(a.Cross(b))
	}
	l := normal.Norm()
	if l == 0 {
		return normal
	}
	return normal.Scale(1 / l)
}

// clipPolyhedronByPlane clips the convex polyhedron faces by the half-space
// normal.(x-point) <= 0 (kept side), returning the new face list including
// a synthesized cap face where the plane slices through the solid.
func clipPolyhedronByPlane(faces []geometry.Face, normal, point geometry.Point) []geometry.Face {
	var newFaces []geometry.Face
	var capPoints []geometry.Point

	for _, f := range faces {
		clipped, newPts := clipFaceByPlane(f.Verts, normal, point)
		if len(clipped) >= 3 {
			newFaces = append(newFaces, geometry.Face{Verts: clipped})
		}
		capPoints = append(capPoints, newPts...)
	}

	if len(capPoints) >= 3 {
		cap := orderPlanarPolygon(dedupe(capPoints), normal)
		if len(cap) >= 3 {
			newFaces = append(newFaces, geometry.Face{Verts: cap})
		}
	}
	return newFaces
}

// clipFaceByPlane clips the planar convex polygon verts by the half-space
// normal.(x-point)<=0, returning the clipped polygon and the (0 or 2) new
// vertices introduced on the cutting plane, which the caller stitches into
// a cap face.
func clipFaceByPlane(verts []geometry.Point, normal, point geometry.Point) ([]geometry.Point, []geometry.Point) {
	n := len(verts)
	if n == 0 {
		return nil, nil
	}
	side := func(p geometry.Point) float64 { return normal.Dot(p.Sub(point)) }

	var out []geometry.Point
	var newPts []geometry.Point
	for i := 0; i < n; i++ {
		cur := verts[i]
		prev := verts[(i+n-1)%n]
		curIn := side(cur) <= 0
		prevIn := side(prev) <= 0
		if curIn {
			if !prevIn {
				ip := planeSegmentIntersect(prev, cur, normal, point)
				out = append(out, ip)
				newPts = append(newPts, ip)
			}
			out = append(out, cur)
		} else if prevIn {
			ip := planeSegmentIntersect(prev, cur, normal, point)
			out = append(out, ip)
			newPts = append(newPts, ip)
		}
	}
	return out, newPts
}

func planeSegmentIntersect(p1, p2, normal, point geometry.Point) geometry.Point {
	d := p2.Sub(p1)
	denom := normal.Dot(d)
	if denom == 0 {
		return p1
	}
	t := normal.Dot(point.Sub(p1)) / denom
	return p1.Add(d.Scale(t))
}

// dedupe removes near-duplicate points (shared face corners produce the
// same cut point more than once).
func dedupe(pts []geometry.Point) []geometry.Point {
	const eps = 1e-12
	var out []geometry.Point
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p.Sub(q).Norm() < eps {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// orderPlanarPolygon sorts coplanar points by angle around their centroid,
// in a local 2D basis whose cross product equals normal, so the resulting
// polygon winds outward-consistent with normal (spec.md §4.6.2: the cap
// face closing a plane cut must carry the cutting plane's own outward
// orientation).
func orderPlanarPolygon(pts []geometry.Point, normal geometry.Point) []geometry.Point {
	if len(pts) < 3 {
		return pts
	}
	u := arbitraryPerp(normal)
	v := normal.Cross(u)
	centroid := geometry.Centroid(pts)

	type angled struct {
		p   geometry.Point
		ang float64
	}
	as := make([]angled, len(pts))
	for i, p := range pts {
		d := p.Sub(centroid)
		as[i] = angled{p: p, ang: math.Atan2(d.Dot(v), d.Dot(u))}
	}
	sort.Slice(as, func(i, j int) bool { return as[i].ang < as[j].ang })
	out := make([]geometry.Point, len(as))
	for i, a := range as {
		out[i] = a.p
	}
	return out
}

func arbitraryPerp(n geometry.Point) geometry.Point {
	ref := geometry.NewPoint3(1, 0, 0)
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = geometry.NewPoint3(0, 1, 0)
	}
	perp := n.Cross(ref)
	l := perp.Norm()
	return perp.Scale(1 / l)
}
