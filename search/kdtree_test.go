// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"sort"
	"testing"

	"github.com/cpmech/portage/geometry"
)

func box(x0, y0, x1, y1 float64) geometry.BBox {
	b := geometry.EmptyBBox(2)
	b.Expand(geometry.NewPoint2(x0, y0))
	b.Expand(geometry.NewPoint2(x1, y1))
	return b
}

func TestKDTreeFindsOverlappingBoxes(t *testing.T) {
	boxes := []geometry.BBox{
		box(0, 0, 1, 1),
		box(1, 0, 2, 1),
		box(2, 0, 3, 1),
		box(0, 1, 1, 2),
		box(5, 5, 6, 6),
	}
	tree := BuildAll(boxes)

	got := tree.Query(box(0.5, 0.5, 1.5, 1.5), 0)
	sort.Ints(got)

	want := map[int]bool{0: true, 1: true, 3: true}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected candidate %d", g)
		}
		delete(want, g)
	}
	if len(want) != 0 {
		t.Errorf("missing expected candidates: %v", want)
	}
}

func TestKDTreeNoFalseNegativesOnManyBoxes(t *testing.T) {
	var boxes []geometry.BBox
	for i := 0; i < 200; i++ {
		x := float64(i % 20)
		y := float64(i / 20)
		boxes = append(boxes, box(x, y, x+1, y+1))
	}
	tree := BuildAll(boxes)

	query := box(9.5, 4.5, 10.5, 5.5)
	got := map[int]bool{}
	for _, g := range tree.Query(query, 0) {
		got[g] = true
	}
	// brute-force reference
	for i, b := range boxes {
		if b.Overlaps(query, 0) && !got[i] {
			t.Errorf("false negative: box %d overlaps query but was not returned", i)
		}
	}
}

func TestKDTreeIdempotent(t *testing.T) {
	var boxes []geometry.BBox
	for i := 0; i < 50; i++ {
		x := float64(i)
		boxes = append(boxes, box(x, 0, x+1, 1))
	}
	tree := BuildAll(boxes)
	q := box(10, 0, 12, 1)
	first := tree.Query(q, 0)
	second := tree.Query(q, 0)
	sort.Ints(first)
	sort.Ints(second)
	if len(first) != len(second) {
		t.Fatalf("repeated queries returned different-length candidate lists")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("repeated queries diverged at %d: %d != %d", i, first[i], second[i])
		}
	}
}
