// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/mesh"
)

// Searcher answers "which source entities might overlap this target
// entity" for one entity kind, built once over the source mesh and reused
// across the idempotent repeated queries spec.md §8.5 requires.
type Searcher struct {
	tree *Tree
	kind mesh.Kind
	eps  float64
}

// NewCellSearcher builds a Searcher over the owned+ghost cells of src,
// used for cell-centered remap (spec.md §4.5).
func NewCellSearcher(src mesh.Mesh, eps float64) *Searcher {
	n := src.NumOwnedCells() + src.NumGhostCells()
	boxes := make([]geometry.BBox, n)
	for c := 0; c < n; c++ {
		boxes[c] = src.CellBoundingBox(c)
	}
	return &Searcher{tree: BuildAll(boxes), kind: mesh.Cell, eps: eps}
}

// NewNodeSearcher builds a Searcher over the dual cells (node control
// volumes) of src, used for node-centered remap; the dual's bounding box
// is the union of incident cells' boxes (spec.md §4.5), already computed
// by flatmesh.FinishInit / any mesh.Mesh implementation's
// NodeDualBoundingBox.
func NewNodeSearcher(src mesh.Mesh, eps float64) *Searcher {
	n := src.NumOwnedNodes() + src.NumGhostNodes()
	boxes := make([]geometry.BBox, n)
	for i := 0; i < n; i++ {
		boxes[i] = src.NodeDualBoundingBox(i)
	}
	return &Searcher{tree: BuildAll(boxes), kind: mesh.Node, eps: eps}
}

// CandidatesForBox returns the source entity indices whose control-volume
// bounding box overlaps box.
func (s *Searcher) CandidatesForBox(box geometry.BBox) []int {
	return s.tree.Query(box, s.eps)
}

// CandidatesForCell returns source cell candidates for target cell tgtCell
// of tgt.
func (s *Searcher) CandidatesForCell(tgt mesh.Mesh, tgtCell int) []int {
	return s.CandidatesForBox(tgt.CellBoundingBox(tgtCell))
}

// CandidatesForNode returns source dual-cell candidates for target node
// tgtNode of tgt.
func (s *Searcher) CandidatesForNode(tgt mesh.Mesh, tgtNode int) []int {
	return s.CandidatesForBox(tgt.NodeDualBoundingBox(tgtNode))
}
