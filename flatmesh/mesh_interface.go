// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatmesh

import (
	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/mesh"
)

func (m *FlatMesh) SpaceDimension() int { return m.Dim }

func (m *FlatMesh) NumOwnedCells() int { return m.NumOwnedCellsVal }
func (m *FlatMesh) NumGhostCells() int { return m.NumGhostCellsVal }
func (m *FlatMesh) NumOwnedNodes() int { return m.NumOwnedNodesVal }
func (m *FlatMesh) NumGhostNodes() int { return m.NumGhostNodesVal }
func (m *FlatMesh) NumOwnedFaces() int { return m.NumOwnedFacesVal }
func (m *FlatMesh) NumGhostFaces() int { return m.NumGhostFacesVal }

func (m *FlatMesh) CellGetNodes(c int) []int {
	return m.CellToNode[m.cellOffset[c]:m.cellOffset[c+1]]
}

func (m *FlatMesh) CellGetFacesAndDirs(c int) (faces []int, dirs []bool) {
	lo, hi := m.cellFaceOffset[c], m.cellFaceOffset[c+1]
	return m.CellToFace[lo:hi], m.CellToFaceDirs[lo:hi]
}

func (m *FlatMesh) FaceGetNodes(f int) []int {
	return m.FaceToNode[m.faceOffset[f]:m.faceOffset[f+1]]
}

func (m *FlatMesh) FaceGetCells(f int) []int {
	var out []int
	for _, c := range m.FaceToCells[f] {
		if c >= 0 {
			out = append(out, c)
		}
	}
	return out
}

func (m *FlatMesh) NodeGetCoordinates(n int) geometry.Point {
	lo := n * m.Dim
	if m.Dim == 2 {
		return geometry.NewPoint2(m.Coords[lo], m.Coords[lo+1])
	}
	return geometry.NewPoint3(m.Coords[lo], m.Coords[lo+1], m.Coords[lo+2])
}

func (m *FlatMesh) CellCentroid(c int) geometry.Point { return m.cellCentroid[c] }
func (m *FlatMesh) CellVolume(c int) float64          { return m.cellVolume[c] }

func (m *FlatMesh) NodeGetCorners(n int) []int { return m.nodeToCorners[n] }
func (m *FlatMesh) NodeGetWedges(n int) []int  { return m.nodeToCorners[n] } // wedge==corner, see buildCorners doc

func (m *FlatMesh) CornerCentroid(corner int) geometry.Point { return m.cornerCentroid[corner] }
func (m *FlatMesh) CornerVolume(corner int) float64          { return m.cornerVolume[corner] }

func (m *FlatMesh) OnExteriorBoundary(kind mesh.Kind, id int) bool {
	switch kind {
	case mesh.Cell:
		return m.boundaryCells[id]
	case mesh.Node:
		return m.boundaryNodes[id]
	case mesh.Face:
		return m.boundaryFaces[id]
	default:
		return false
	}
}

func (m *FlatMesh) CellGlobalID(c int) int64 { return m.CellGIDs[c] }
func (m *FlatMesh) NodeGlobalID(n int) int64 { return m.NodeGIDs[n] }
func (m *FlatMesh) FaceGlobalID(f int) int64 { return m.FaceGIDs[f] }

func (m *FlatMesh) CellBoundingBox(c int) geometry.BBox    { return m.cellBBox[c] }
func (m *FlatMesh) NodeDualBoundingBox(n int) geometry.BBox { return m.nodeDualBBox[n] }

func (m *FlatMesh) CellNeighbors(c int) []int { return m.cellNeighbors[c] }
func (m *FlatMesh) NodeNeighbors(n int) []int { return m.nodeNeighbors[n] }
