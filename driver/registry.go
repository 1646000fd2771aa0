// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/intersect"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/search"
)

// SearchAlgorithm and IntersectAlgorithm are the two template parameters
// of spec.md §4.10's compute_interpolation_weights<Search,Intersect>();
// expressed here as a name-resolved registry rather than a Go generic
// parameter, the same pattern gofem's mdl/conduct.New uses to resolve a
// named constitutive Model at configuration time.
type SearchAlgorithm func(src mesh.Mesh, kind mesh.Kind, tol geometry.Tolerances) CandidateFinder

// CandidateFinder returns candidate source entity indices overlapping a
// given target shape's bounding box.
type CandidateFinder interface {
	Candidates(box geometry.BBox) []int
}

type IntersectAlgorithm func(target, candidate Shape, tol geometry.Tolerances) []geometry.Moments

var searchAllocators = map[string]SearchAlgorithm{}
var intersectAllocators = map[string]IntersectAlgorithm{}

func init() {
	RegisterSearch("kdtree", newKDTreeSearch)
	RegisterIntersect("exact", exactIntersect)
}

// RegisterSearch adds a named search algorithm to the registry; callers
// can register additional strategies before calling NewDriver.
func RegisterSearch(name string, alloc SearchAlgorithm) { searchAllocators[name] = alloc }

// RegisterIntersect adds a named intersection algorithm to the registry.
func RegisterIntersect(name string, alloc IntersectAlgorithm) { intersectAllocators[name] = alloc }

func lookupSearch(name string) (SearchAlgorithm, error) {
	a, ok := searchAllocators[name]
	if !ok {
		return nil, chk.Err("search algorithm %q is not available in the driver registry", name)
	}
	return a, nil
}

func lookupIntersect(name string) (IntersectAlgorithm, error) {
	a, ok := intersectAllocators[name]
	if !ok {
		return nil, chk.Err("intersect algorithm %q is not available in the driver registry", name)
	}
	return a, nil
}

type kdtreeFinder struct {
	tree *search.Searcher
	kind mesh.Kind
}

func (f kdtreeFinder) Candidates(box geometry.BBox) []int {
	return f.tree.CandidatesForBox(box)
}

func newKDTreeSearch(src mesh.Mesh, kind mesh.Kind, tol geometry.Tolerances) CandidateFinder {
	var s *search.Searcher
	if kind == mesh.Node {
		s = search.NewNodeSearcher(src, tol.IntersectBBRelativeDist)
	} else {
		s = search.NewCellSearcher(src, tol.IntersectBBRelativeDist)
	}
	return kdtreeFinder{tree: s, kind: kind}
}

func exactIntersect(target, candidate Shape, tol geometry.Tolerances) []geometry.Moments {
	if target.Dim == 2 {
		return intersect.IntersectR2D(target.Verts2D, candidate.Verts2D, tol)
	}
	return intersect.IntersectR3D(target.Faces3D, candidate.Faces3D, tol)
}
