// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package flatmesh implements the redistribution-friendly, contiguous
// mesh/state container of spec.md §4.3: coordinates as one interleaved
// array, cell/face/node adjacency as CSR pairs, no owning-pointer graph.
// This is the representation distribute.go reshuffles between partitions
// and the one the reference test fixtures build directly.
package flatmesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/mesh"
)

// FlatMesh is the CSR-backed mesh container of spec.md §4.3. Fields are
// exported so the distributor (which rebuilds them wholesale after an
// exchange round) and test fixtures can populate them directly; callers
// must call FinishInit after populating before passing the mesh to the
// driver.
type FlatMesh struct {
	Dim int

	// Coordinates: interleaved Dim*|nodes| flat array.
	Coords []float64

	NumOwnedNodesVal, NumGhostNodesVal int
	NumOwnedCellsVal, NumGhostCellsVal int
	NumOwnedFacesVal, NumGhostFacesVal int // 3D only

	// Cell -> node adjacency, CSR: cell c's nodes are
	// CellToNode[offset(c):offset(c)+CellNodeCounts[c]].
	CellNodeCounts []int
	CellToNode     []int

	// Cell -> face adjacency (3D only), CSR, with a parallel orientation
	// bit per incidence.
	CellFaceCounts []int
	CellToFace     []int
	CellToFaceDirs []bool

	// Face -> node adjacency (3D only), CSR.
	FaceNodeCounts []int
	FaceToNode     []int
	// FaceToCells holds 1 (boundary) or 2 (interior) incident cells per
	// face, one slice per face; a boundary face may carry a -1 entry.
	FaceToCells [][]int

	CellGIDs []int64
	NodeGIDs []int64
	FaceGIDs []int64

	// cached by FinishInit.
	cellOffset     []int
	cellFaceOffset []int
	faceOffset     []int

	cellCentroid []geometry.Point
	cellVolume   []float64
	cellBBox     []geometry.BBox

	nodeToCells   [][]int
	cellNeighbors [][]int
	nodeNeighbors [][]int

	boundaryCells map[int]bool
	boundaryNodes map[int]bool
	boundaryFaces map[int]bool // 3D only

	// corner/wedge dual-mesh bookkeeping: one corner per (cell, local
	// node) incidence, numbered in CellToNode iteration order. Wedges
	// coincide with corners in this implementation: a full sub-tetrahedral
	// wedge decomposition is not needed by anything the interpolator
	// computes (wedge/corner only ever appear as an undifferentiated
	// control-volume piece in moment sums), so one dual piece per
	// (cell,node) incidence already satisfies "node's dual cell is the
	// union of the corners incident on that node" (spec.md §4.5) exactly.
	cornerOfIncidence []int // parallel to CellToNode: corner id for that incidence
	cornerCell        []int
	cornerNode        []int
	nodeToCorners      [][]int
	cornerCentroid     []geometry.Point
	cornerVolume       []float64
	nodeDualBBox       []geometry.BBox

	finished bool
}

// New returns an empty flat mesh of the given space dimension, ready to be
// populated by the caller (or by distribute.go) before FinishInit.
func New(dim int) *FlatMesh {
	return &FlatMesh{Dim: dim}
}

// SetNumOwnedCells and the sibling setters below are the two mutators
// spec.md §4.3 adds on top of the read-only §6 contract.
func (m *FlatMesh) SetNumOwnedCells(owned, all int) {
	m.NumOwnedCellsVal, m.NumGhostCellsVal = owned, all-owned
}
func (m *FlatMesh) SetNumOwnedNodes(owned, all int) {
	m.NumOwnedNodesVal, m.NumGhostNodesVal = owned, all-owned
}
func (m *FlatMesh) SetNumOwnedFaces(owned, all int) {
	m.NumOwnedFacesVal, m.NumGhostFacesVal = owned, all-owned
}

func prefixSum(counts []int) []int {
	offsets := make([]int, len(counts)+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}
	return offsets
}

// FinishInit computes and caches cell centroids and volumes, builds inverse
// adjacency (node->cell), stores bounding boxes, and builds the
// (cell,node) corner table used for node-centered remap (spec.md §4.3).
func (m *FlatMesh) FinishInit() error {
	m.cellOffset = prefixSum(m.CellNodeCounts)
	ncells := len(m.CellNodeCounts)
	if m.Dim == 3 {
		m.cellFaceOffset = prefixSum(m.CellFaceCounts)
		m.faceOffset = prefixSum(m.FaceNodeCounts)
	}

	m.cellCentroid = make([]geometry.Point, ncells)
	m.cellVolume = make([]float64, ncells)
	m.cellBBox = make([]geometry.BBox, ncells)

	for c := 0; c < ncells; c++ {
		pts := m.cellNodePoints(c)
		box := geometry.FromPoints(pts)
		m.cellBBox[c] = box
		if m.Dim == 2 {
			mm := geometry.PolygonMoments(pts)
			if mm.Volume <= 0 {
				return chk.Err("flatmesh: cell %d has non-positive area %g; check node winding", c, mm.Volume)
			}
			m.cellVolume[c] = mm.Volume
			m.cellCentroid[c] = mm.Centroid()
		} else {
			faces := m.cellFaces(c)
			mm := geometry.PolyhedronMoments(faces)
			if mm.Volume <= 0 {
				return chk.Err("flatmesh: cell %d has non-positive volume %g; check face winding", c, mm.Volume)
			}
			m.cellVolume[c] = mm.Volume
			m.cellCentroid[c] = mm.Centroid()
		}
	}

	m.buildInverseAdjacency()
	m.buildNeighbors()
	m.buildCorners()
	m.finished = true
	return nil
}

func (m *FlatMesh) cellNodePoints(c int) []Point2Or3 {
	nodes := m.CellGetNodes(c)
	pts := make([]Point2Or3, len(nodes))
	for i, n := range nodes {
		pts[i] = m.NodeGetCoordinates(n)
	}
	return pts
}

// Point2Or3 is an alias kept local to flatmesh for readability at call
// sites that build point slices from node indices.
type Point2Or3 = geometry.Point

func (m *FlatMesh) cellFaces(c int) []geometry.Face {
	faceIDs, dirs := m.CellGetFacesAndDirs(c)
	faces := make([]geometry.Face, len(faceIDs))
	for i, f := range faceIDs {
		nodeIDs := m.FaceGetNodes(f)
		verts := make([]geometry.Point, len(nodeIDs))
		for j, n := range nodeIDs {
			verts[j] = m.NodeGetCoordinates(n)
		}
		if !dirs[i] {
			reverse(verts)
		}
		faces[i] = geometry.Face{Verts: verts}
	}
	return faces
}

func reverse(pts []geometry.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

func (m *FlatMesh) buildInverseAdjacency() {
	nnodes := m.NumOwnedNodesVal + m.NumGhostNodesVal
	m.nodeToCells = make([][]int, nnodes)
	ncells := len(m.CellNodeCounts)
	for c := 0; c < ncells; c++ {
		for _, n := range m.CellGetNodes(c) {
			m.nodeToCells[n] = append(m.nodeToCells[n], c)
		}
	}
}

// buildNeighbors computes cell face-neighbors (2D: cells sharing an edge;
// 3D: cells sharing a face) and node node-neighbors (nodes sharing a cell),
// the stencils gradient.go's least-squares fit iterates over (spec.md
// §4.7).
func (m *FlatMesh) buildNeighbors() {
	ncells := len(m.CellNodeCounts)
	m.cellNeighbors = make([][]int, ncells)
	m.boundaryCells = map[int]bool{}
	m.boundaryNodes = map[int]bool{}
	m.boundaryFaces = map[int]bool{}
	if m.Dim == 3 {
		for f, cells := range m.FaceToCells {
			valid := 0
			for _, c := range cells {
				if c >= 0 {
					valid++
				}
			}
			if valid <= 1 {
				m.boundaryFaces[f] = true
				for _, c := range cells {
					if c >= 0 {
						m.boundaryCells[c] = true
						for _, n := range m.FaceGetNodes(f) {
							m.boundaryNodes[n] = true
						}
					}
				}
			}
		}
		for c := 0; c < ncells; c++ {
			faceIDs, _ := m.CellGetFacesAndDirs(c)
			for _, f := range faceIDs {
				for _, nc := range m.FaceToCells[f] {
					if nc != c && nc >= 0 {
						m.cellNeighbors[c] = append(m.cellNeighbors[c], nc)
					}
				}
			}
		}
	} else {
		// 2D: two cells are face-neighbors iff they share an edge, i.e.
		// two consecutive nodes in winding order. Build an edge->cells map.
		type edgeKey struct{ a, b int }
		edgeCells := map[edgeKey][]int{}
		key := func(a, b int) edgeKey {
			if a > b {
				a, b = b, a
			}
			return edgeKey{a, b}
		}
		for c := 0; c < ncells; c++ {
			nodes := m.CellGetNodes(c)
			n := len(nodes)
			for i := 0; i < n; i++ {
				k := key(nodes[i], nodes[(i+1)%n])
				edgeCells[k] = append(edgeCells[k], c)
			}
		}
		for k, cells := range edgeCells {
			if len(cells) == 2 {
				a, b := cells[0], cells[1]
				m.cellNeighbors[a] = append(m.cellNeighbors[a], b)
				m.cellNeighbors[b] = append(m.cellNeighbors[b], a)
			} else {
				m.boundaryCells[cells[0]] = true
				m.boundaryNodes[k.a] = true
				m.boundaryNodes[k.b] = true
			}
		}
	}

	nnodes := m.NumOwnedNodesVal + m.NumGhostNodesVal
	m.nodeNeighbors = make([][]int, nnodes)
	seen := make([]map[int]bool, nnodes)
	for n := 0; n < nnodes; n++ {
		seen[n] = map[int]bool{}
	}
	for c := 0; c < ncells; c++ {
		nodes := m.CellGetNodes(c)
		for _, n1 := range nodes {
			for _, n2 := range nodes {
				if n1 != n2 && !seen[n1][n2] {
					seen[n1][n2] = true
					m.nodeNeighbors[n1] = append(m.nodeNeighbors[n1], n2)
				}
			}
		}
	}
}

func (m *FlatMesh) buildCorners() {
	ncells := len(m.CellNodeCounts)
	nnodes := m.NumOwnedNodesVal + m.NumGhostNodesVal
	m.nodeToCorners = make([][]int, nnodes)
	m.cornerOfIncidence, m.cornerCell, m.cornerNode = nil, nil, nil
	m.cornerCentroid, m.cornerVolume = nil, nil
	var id int
	for c := 0; c < ncells; c++ {
		nodes := m.CellGetNodes(c)
		for _, n := range nodes {
			m.cornerOfIncidence = append(m.cornerOfIncidence, id)
			m.cornerCell = append(m.cornerCell, c)
			m.cornerNode = append(m.cornerNode, n)
			vol := m.cellVolume[c] / float64(len(nodes))
			centroid := m.cellCentroid[c].Add(m.NodeGetCoordinates(n)).Scale(0.5)
			m.cornerVolume = append(m.cornerVolume, vol)
			m.cornerCentroid = append(m.cornerCentroid, centroid)
			m.nodeToCorners[n] = append(m.nodeToCorners[n], id)
			id++
		}
	}
	m.nodeDualBBox = make([]geometry.BBox, nnodes)
	for n := 0; n < nnodes; n++ {
		box := geometry.EmptyBBox(m.Dim)
		for _, c := range m.nodeToCells[n] {
			box = box.Union(m.cellBBox[c])
		}
		m.nodeDualBBox[n] = box
	}
}

var _ mesh.Mesh = (*FlatMesh)(nil)
