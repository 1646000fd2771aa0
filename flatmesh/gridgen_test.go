// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatmesh

import (
	"math"
	"testing"
)

// TestTranslateCopyPreservesTopologyShiftsGeometry reproduces spec.md §8
// scenario S4's setup: "same topology, rigidly translated". A translated
// copy must keep every cell's volume and node/cell counts unchanged while
// every coordinate and centroid shifts by exactly (dx,dy).
func TestTranslateCopyPreservesTopologyShiftsGeometry(t *testing.T) {
	m := NewUniformQuadGrid(3, 3, 0, 0, 1, 1)
	dx, dy := 0.25, -0.5
	out := TranslateCopy(m, dx, dy, 0)

	if out.NumOwnedCells() != m.NumOwnedCells() {
		t.Fatalf("cell count changed: got %d, want %d", out.NumOwnedCells(), m.NumOwnedCells())
	}
	if out.NumOwnedNodesVal != m.NumOwnedNodesVal {
		t.Fatalf("node count changed: got %d, want %d", out.NumOwnedNodesVal, m.NumOwnedNodesVal)
	}

	for c := 0; c < m.NumOwnedCells(); c++ {
		if math.Abs(out.CellVolume(c)-m.CellVolume(c)) > 1e-12 {
			t.Errorf("cell %d volume = %v, want %v", c, out.CellVolume(c), m.CellVolume(c))
		}
		wantX := m.CellCentroid(c).X() + dx
		wantY := m.CellCentroid(c).Y() + dy
		gotC := out.CellCentroid(c)
		if math.Abs(gotC.X()-wantX) > 1e-12 || math.Abs(gotC.Y()-wantY) > 1e-12 {
			t.Errorf("cell %d centroid = (%v,%v), want (%v,%v)", c, gotC.X(), gotC.Y(), wantX, wantY)
		}
	}

	for n := 0; n < m.NumOwnedNodesVal; n++ {
		srcCoord := m.NodeGetCoordinates(n)
		gotCoord := out.NodeGetCoordinates(n)
		if math.Abs(gotCoord.X()-(srcCoord.X()+dx)) > 1e-12 || math.Abs(gotCoord.Y()-(srcCoord.Y()+dy)) > 1e-12 {
			t.Errorf("node %d coord = (%v,%v), want (%v,%v)", n, gotCoord.X(), gotCoord.Y(), srcCoord.X()+dx, srcCoord.Y()+dy)
		}
	}
}
