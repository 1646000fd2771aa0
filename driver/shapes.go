// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/mesh"
)

// Shape is the geometric input intersect.go consumes for one entity: a
// winding-ordered polygon in 2D, a set of winding-ordered faces in 3D.
// Search only needs bounding boxes (already cached on the mesh), so this
// type exists purely at the intersect boundary.
type Shape struct {
	Dim     int
	Verts2D []geometry.Point
	Faces3D []geometry.Face
}

// CellShape extracts cell c's polygon (2D) or face set (3D) directly from
// the mesh adjacency, mirroring flatmesh.cellNodePoints/cellFaces.
func CellShape(m mesh.Mesh, c int) Shape {
	if m.SpaceDimension() == 2 {
		nodes := m.CellGetNodes(c)
		verts := make([]geometry.Point, len(nodes))
		for i, n := range nodes {
			verts[i] = m.NodeGetCoordinates(n)
		}
		return Shape{Dim: 2, Verts2D: verts}
	}
	faceIDs, dirs := m.CellGetFacesAndDirs(c)
	faces := make([]geometry.Face, len(faceIDs))
	for i, f := range faceIDs {
		nodeIDs := m.FaceGetNodes(f)
		verts := make([]geometry.Point, len(nodeIDs))
		for j, n := range nodeIDs {
			verts[j] = m.NodeGetCoordinates(n)
		}
		if !dirs[i] {
			for a, b := 0, len(verts)-1; a < b; a, b = a+1, b-1 {
				verts[a], verts[b] = verts[b], verts[a]
			}
		}
		faces[i] = geometry.Face{Verts: verts}
	}
	return Shape{Dim: 3, Faces3D: faces}
}

// DualShape extracts node n's dual-cell shape. flatmesh's CSR
// representation stores only the dual cell's centroid/volume (spec.md
// §4.3's "wedge==corner" simplification), not an explicit boundary
// polygon, so the dual cell's axis-aligned bounding box stands in for its
// true shape here. This is a deliberate approximation, not an oversight:
// node-centered remap is exact under this approximation only when dual
// cells are themselves axis-aligned boxes (e.g. structured grids); for
// general unstructured duals it trades exactness for having a concrete
// shape to intersect at all. See DESIGN.md's driver section.
func DualShape(m mesh.Mesh, n int) Shape {
	box := m.NodeDualBoundingBox(n)
	if m.SpaceDimension() == 2 {
		return Shape{Dim: 2, Verts2D: boxToQuad(box)}
	}
	return Shape{Dim: 3, Faces3D: boxToHexFaces(box)}
}

func boxToQuad(b geometry.BBox) []geometry.Point {
	x0, y0 := b.Min.X(), b.Min.Y()
	x1, y1 := b.Max.X(), b.Max.Y()
	return []geometry.Point{
		geometry.NewPoint2(x0, y0),
		geometry.NewPoint2(x1, y0),
		geometry.NewPoint2(x1, y1),
		geometry.NewPoint2(x0, y1),
	}
}

func boxToHexFaces(b geometry.BBox) []geometry.Face {
	x0, y0, z0 := b.Min.X(), b.Min.Y(), b.Min.Z()
	x1, y1, z1 := b.Max.X(), b.Max.Y(), b.Max.Z()
	p := func(x, y, z float64) geometry.Point { return geometry.NewPoint3(x, y, z) }
	// 8 corners, outward-winding faces (consistent with geometry.unitCube
	// in geometry's own tests).
	v := [8]geometry.Point{
		p(x0, y0, z0), p(x1, y0, z0), p(x1, y1, z0), p(x0, y1, z0),
		p(x0, y0, z1), p(x1, y0, z1), p(x1, y1, z1), p(x0, y1, z1),
	}
	quad := func(a, b, c, d int) geometry.Face {
		return geometry.Face{Verts: []geometry.Point{v[a], v[b], v[c], v[d]}}
	}
	return []geometry.Face{
		quad(0, 3, 2, 1), // bottom
		quad(4, 5, 6, 7), // top
		quad(0, 1, 5, 4), // front
		quad(1, 2, 6, 5), // right
		quad(2, 3, 7, 6), // back
		quad(3, 0, 4, 7), // left
	}
}
