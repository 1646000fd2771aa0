// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intersect

import (
	"fmt"

	"github.com/cpmech/portage/geometry"
)

// ErrSweptFaceTwist is returned when a swept face's two component triangles
// (2D) or its tetrahedral decomposition (3D) disagree in sign, meaning the
// face inverted between source and target positions. spec.md §9 resolves
// the original implementation's ambiguity here explicitly: a twisted swept
// face aborts, it does not silently continue with a signed area computed
// from inconsistent triangles.
type ErrSweptFaceTwist struct {
	FaceNodes []int
}

func (e ErrSweptFaceTwist) Error() string {
	return fmt.Sprintf("intersect: swept face twisted between source and target positions (nodes %v)", e.FaceNodes)
}

// SweptQuad2D computes the moments of the quadrilateral swept by a 2D face
// (an edge with endpoints a,b) as it moves from its source position to its
// target position (spec.md §4.6.3). The swept region is built from
// srcA,srcB,tgtB,tgtA so that it closes into a simple quadrilateral; its
// sign is positive when the face moved so as to sweep area out of the cell
// on this side (flows to the face-neighbor), negative when it swept area
// in (flows to the cell itself).
func SweptQuad2D(srcA, srcB, tgtA, tgtB geometry.Point) (geometry.Moments, error) {
	quad := []geometry.Point{srcA, srcB, tgtB, tgtA}
	s1 := triangleSign2D(srcA, srcB, tgtB)
	s2 := triangleSign2D(srcA, tgtB, tgtA)
	if s1 != 0 && s2 != 0 && s1 != s2 {
		return geometry.Moments{}, ErrSweptFaceTwist{}
	}
	return geometry.PolygonMoments(quad), nil
}

func triangleSign2D(a, b, c geometry.Point) int {
	ab := b.Sub(a)
	ac := c.Sub(a)
	cross := ab.Coords[0]*ac.Coords[1] - ab.Coords[1]*ac.Coords[0]
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	default:
		return 0
	}
}

// SweptHex3D computes the moments of the hexahedron swept by a 3D
// quadrilateral face (source corners srcQuad, target corners tgtQuad, both
// in the same winding order) as it moves from source to target position
// (spec.md §4.6.3). Twist is detected by decomposing the hexahedron into
// 24 tets (one per edge of each of its 6 faces, from the face centroid to
// a shared interior point) and checking that all nonzero ones agree in
// sign.
func SweptHex3D(srcQuad, tgtQuad [4]geometry.Point) (geometry.Moments, error) {
	faces := []geometry.Face{
		{Verts: []geometry.Point{srcQuad[0], srcQuad[1], srcQuad[2], srcQuad[3]}},
		{Verts: []geometry.Point{tgtQuad[3], tgtQuad[2], tgtQuad[1], tgtQuad[0]}},
		{Verts: []geometry.Point{srcQuad[0], tgtQuad[0], tgtQuad[1], srcQuad[1]}},
		{Verts: []geometry.Point{srcQuad[1], tgtQuad[1], tgtQuad[2], srcQuad[2]}},
		{Verts: []geometry.Point{srcQuad[2], tgtQuad[2], tgtQuad[3], srcQuad[3]}},
		{Verts: []geometry.Point{srcQuad[3], tgtQuad[3], tgtQuad[0], srcQuad[0]}},
	}

	var allVerts []geometry.Point
	for _, f := range faces {
		allVerts = append(allVerts, f.Verts...)
	}
	center := geometry.Centroid(allVerts)

	var sign int
	for _, f := range faces {
		faceCentroid := geometry.Centroid(f.Verts)
		n := len(f.Verts)
		for i := 0; i < n; i++ {
			a := f.Verts[i]
			b := f.Verts[(i+1)%n]
			vol := tetSignedVolume(center, faceCentroid, a, b)
			if vol == 0 {
				continue
			}
			s := 1
			if vol < 0 {
				s = -1
			}
			if sign == 0 {
				sign = s
			} else if s != sign {
				return geometry.Moments{}, ErrSweptFaceTwist{}
			}
		}
	}
	return geometry.PolyhedronMoments(faces), nil
}

func tetSignedVolume(a, b, c, d geometry.Point) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	return ac.Cross(ad).Dot(ab) / 6.0
}
