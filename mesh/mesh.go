// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/portage/geometry"

// Mesh is the abstract mesh contract consumed by the remap pipeline
// (spec.md §6), the portage analogue of gofem's ele.Element interface: a
// narrow contract every downstream stage programs against without knowing
// the concrete representation (native wrapper vs. flatmesh.FlatMesh).
type Mesh interface {
	// SpaceDimension returns 2 or 3.
	SpaceDimension() int

	NumOwnedCells() int
	NumGhostCells() int
	NumOwnedNodes() int
	NumGhostNodes() int
	NumOwnedFaces() int // 3D only; 0 in 2D
	NumGhostFaces() int // 3D only; 0 in 2D

	// CellGetNodes returns the ordered node indices of cell c.
	CellGetNodes(c int) []int
	// CellGetFacesAndDirs returns the face indices and orientation bits of
	// cell c (3D only).
	CellGetFacesAndDirs(c int) (faces []int, dirs []bool)
	// FaceGetNodes returns the node indices of face f in winding order.
	FaceGetNodes(f int) []int
	// FaceGetCells returns the 1 or 2 cells incident on face f.
	FaceGetCells(f int) []int

	NodeGetCoordinates(n int) geometry.Point
	CellCentroid(c int) geometry.Point
	CellVolume(c int) float64

	// Dual-mesh variants for node-centered remap.
	NodeGetCorners(n int) []int
	NodeGetWedges(n int) []int
	CornerCentroid(corner int) geometry.Point
	CornerVolume(corner int) float64

	OnExteriorBoundary(kind Kind, id int) bool

	CellGlobalID(c int) int64
	NodeGlobalID(n int) int64
	FaceGlobalID(f int) int64

	// CellBoundingBox and NodeDualBoundingBox are used by search.go to
	// build the k-d tree; flatmesh caches these in finish_init, matching
	// spec.md §4.3.
	CellBoundingBox(c int) geometry.BBox
	NodeDualBoundingBox(n int) geometry.BBox

	// CellNeighbors/NodeNeighbors list the face-adjacent cells / the
	// node-adjacent nodes used by gradient reconstruction (spec.md §4.7).
	CellNeighbors(c int) []int
	NodeNeighbors(n int) []int
}

// NumCounts returns a Kind-indexed Counts pair (owned, owned+ghost) for the
// given mesh; it returns a zero Counts for an unknown Kind.
func NumCounts(m Mesh, kind Kind) Counts {
	switch kind {
	case Cell:
		return Counts{Owned: m.NumOwnedCells(), All: m.NumOwnedCells() + m.NumGhostCells()}
	case Node:
		return Counts{Owned: m.NumOwnedNodes(), All: m.NumOwnedNodes() + m.NumGhostNodes()}
	case Face:
		return Counts{Owned: m.NumOwnedFaces(), All: m.NumOwnedFaces() + m.NumGhostFaces()}
	default:
		return Counts{}
	}
}
