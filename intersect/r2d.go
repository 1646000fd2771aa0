// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package intersect implements the exact polygon/polyhedron clipping and
// moment integration stage of the remap pipeline (spec.md §4.6): polygon-
// polygon in 2D, polyhedron-polyhedron in 3D, and swept-face for
// same-topology Lagrangian remap.
package intersect

import (
	polyclip "github.com/ctessum/polyclip-go"

	"github.com/cpmech/portage/geometry"
)

// IntersectR2D computes the 0th/1st moments of the overlap between the
// convex target polygon and the candidate polygon, both given in
// counter-clockwise winding order (spec.md §4.6.1). When candidate is
// convex the fast Sutherland-Hodgman half-plane clip is used; otherwise
// (or if the fast path unexpectedly produces a non-convex result) the
// general polyclip-go reduction is used, which may return more than one
// disjoint piece for a non-convex candidate.
func IntersectR2D(target, candidate []geometry.Point, tol geometry.Tolerances) []geometry.Moments {
	if len(target) < 3 || len(candidate) < 3 {
		return nil
	}
	if geometry.IsConvex2D(candidate, tol.PolygonConvexityEps) {
		clipped := sutherlandHodgman(target, candidate)
		if len(clipped) >= 3 && geometry.IsConvex2D(clipped, tol.PolygonConvexityEps) {
			return filterMoments([]geometry.Moments{geometry.PolygonMoments(clipped)}, tol)
		}
	}
	return filterMoments(polyclipIntersect(target, candidate), tol)
}

// filterMoments drops pieces whose volume is beyond the minimal
// intersection volume tolerance (spec.md §4.6 "Error conditions: Negative
// area/volume beyond minimal_intersection_volume: fail the intersection
// for that pair") and clamps negligible negative slivers to nothing rather
// than letting them reach the driver's non-negativity invariant check
// (spec.md §3 invariant 5).
func filterMoments(pieces []geometry.Moments, tol geometry.Tolerances) []geometry.Moments {
	var out []geometry.Moments
	for _, m := range pieces {
		if m.Volume < tol.MinimalIntersectionVolume {
			continue // failed pair, per spec.md §4.6 error conditions
		}
		if m.Volume <= 0 {
			continue // negligible sliver: empty result, not an error
		}
		out = append(out, m)
	}
	return out
}

// sutherlandHodgman clips subject against the convex polygon clip, both in
// counter-clockwise winding order, returning the clipped polygon (possibly
// empty).
func sutherlandHodgman(subject, clip []geometry.Point) []geometry.Point {
	output := subject
	n := len(clip)
	for i := 0; i < n; i++ {
		if len(output) == 0 {
			return nil
		}
		a := clip[i]
		b := clip[(i+1)%n]
		input := output
		output = nil
		m := len(input)
		for j := 0; j < m; j++ {
			cur := input[j]
			prev := input[(j+m-1)%m]
			curInside := isLeft(a, b, cur)
			prevInside := isLeft(a, b, prev)
			if curInside {
				if !prevInside {
					output = append(output, segmentIntersect(prev, cur, a, b))
				}
				output = append(output, cur)
			} else if prevInside {
				output = append(output, segmentIntersect(prev, cur, a, b))
			}
		}
	}
	return output
}

// isLeft reports whether p lies on or to the left of the directed edge a->b
// (inside, for a CCW-wound clip polygon).
func isLeft(a, b, p geometry.Point) bool {
	ab := b.Sub(a)
	ap := p.Sub(a)
	return ab.Coords[0]*ap.Coords[1]-ab.Coords[1]*ap.Coords[0] >= 0
}

// segmentIntersect returns the intersection of line (p1,p2) with line
// (p3,p4), assumed to actually cross (callers only invoke this when the
// endpoints straddle the clip edge).
func segmentIntersect(p1, p2, p3, p4 geometry.Point) geometry.Point {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.Coords[0]*d2.Coords[1] - d1.Coords[1]*d2.Coords[0]
	if denom == 0 {
		return p1
	}
	t := ((p3.Coords[0]-p1.Coords[0])*d2.Coords[1] - (p3.Coords[1]-p1.Coords[1])*d2.Coords[0]) / denom
	return p1.Add(d1.Scale(t))
}

// polyclipIntersect computes target ∩ candidate via polyclip-go's general
// (non-convex-capable) reduction, returning one Moments per disjoint
// output contour (spec.md §4.6.1: "Non-convex candidates may yield
// multiple disjoint pieces").
func polyclipIntersect(target, candidate []geometry.Point) []geometry.Moments {
	subj := toPolyclip(target)
	clip := toPolyclip(candidate)
	result := subj.Construct(polyclip.INTERSECTION, clip)
	out := make([]geometry.Moments, 0, len(result))
	for _, contour := range result {
		pts := make([]geometry.Point, len(contour))
		for i, pt := range contour {
			pts[i] = geometry.NewPoint2(pt.X, pt.Y)
		}
		out = append(out, geometry.PolygonMoments(pts))
	}
	return out
}

func toPolyclip(pts []geometry.Point) polyclip.Polygon {
	contour := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		contour[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return polyclip.Polygon{contour}
}
