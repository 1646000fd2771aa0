// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package search implements the k-d tree over source entity bounding boxes
// used to enumerate intersect candidates (spec.md §4.5), shaped after
// drone115b/gobvh's recursive-build/iterative-traversal BVH but narrowed
// from a dynamic BVH to a static, median-split k-d tree: spec.md pins
// down that specific split rule (longest axis of the parent box,
// median-split) because the idempotence invariant (spec.md §8.5) requires
// the same query to always return the same candidate set, which a
// dynamically-rebalanced structure would not guarantee across repeated
// builds of the same input.
package search

import (
	"sort"

	"github.com/cpmech/portage/geometry"
)

// LeafCapacity bounds how many entities a leaf node holds before it is
// split further (spec.md §4.5: "leaves hold up to a small constant number
// of entities").
const LeafCapacity = 8

type node struct {
	box      geometry.BBox
	entities []int // leaf only
	left     int   // index into Tree.nodes, -1 if leaf
	right    int
}

// Tree is a static k-d tree over a fixed set of source entity bounding
// boxes. Queries return candidate indices whose box overlaps the query
// box; false positives are acceptable (intersect.go discards them), false
// negatives are forbidden (spec.md §4.5).
type Tree struct {
	nodes []node
	root  int
	boxes []geometry.BBox
}

// Build constructs a k-d tree over boxes, indexed 0..len(boxes)-1. Entities
// is the permutation of those indices the tree was actually built over
// (allows callers to restrict the search to a subset, e.g. one
// mismatch-repair "part").
func Build(boxes []geometry.BBox, entities []int) *Tree {
	t := &Tree{}
	if len(entities) == 0 {
		return t
	}
	idx := append([]int(nil), entities...)
	t.boxes = boxes
	t.root = t.build(boxes, idx)
	return t
}

// BuildAll is a convenience that builds over every index 0..len(boxes)-1.
func BuildAll(boxes []geometry.BBox) *Tree {
	entities := make([]int, len(boxes))
	for i := range entities {
		entities[i] = i
	}
	return Build(boxes, entities)
}

func (t *Tree) build(boxes []geometry.BBox, entities []int) int {
	n := node{left: -1, right: -1}
	box := geometry.EmptyBBox(boxes[entities[0]].Dim)
	for _, e := range entities {
		box = box.Union(boxes[e])
	}
	n.box = box

	if len(entities) <= LeafCapacity {
		n.entities = entities
		t.nodes = append(t.nodes, n)
		return len(t.nodes) - 1
	}

	axis := box.LongestAxis()
	sort.Slice(entities, func(i, j int) bool {
		return boxes[entities[i]].Center().Coords[axis] < boxes[entities[j]].Center().Coords[axis]
	})
	mid := len(entities) / 2

	idx := len(t.nodes)
	t.nodes = append(t.nodes, n) // placeholder, filled in below
	left := t.build(boxes, entities[:mid])
	right := t.build(boxes, entities[mid:])
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// Query returns all entity indices whose bounding box overlaps box, inset
// inward by eps per spec.md §4.4's face-touch exclusion convention; pass
// eps=0 for a plain overlap test.
func (t *Tree) Query(box geometry.BBox, eps float64) []int {
	if len(t.nodes) == 0 {
		return nil
	}
	var result []int
	stack := []int{t.root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[i]
		if !n.box.Overlaps(box, eps) {
			continue
		}
		if n.left < 0 {
			for _, e := range n.entities {
				if t.boxes[e].Overlaps(box, eps) {
					result = append(result, e)
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return result
}
