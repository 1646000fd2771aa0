// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intersect

import (
	"math"
	"testing"

	"github.com/cpmech/portage/geometry"
)

// TestSweptHex3DAxialTranslation reproduces spec.md §8 scenario S4's core
// claim: a face translated along its own normal by distance h sweeps a
// region whose volume equals face area times h.
func TestSweptHex3DAxialTranslation(t *testing.T) {
	src := [4]geometry.Point{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(2, 0, 0),
		geometry.NewPoint3(2, 1, 0),
		geometry.NewPoint3(0, 1, 0),
	}
	var tgt [4]geometry.Point
	for i, p := range src {
		tgt[i] = geometry.NewPoint3(p.X(), p.Y(), p.Z()+1)
	}

	m, err := SweptHex3D(src, tgt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// face area 2x1=2, swept along its normal by 1 -> volume 2.
	if math.Abs(math.Abs(m.Volume)-2.0) > 1e-9 {
		t.Errorf("|volume| = %v, want 2", math.Abs(m.Volume))
	}
}

// TestSweptHex3DTwistAborts checks that a face whose two halves invert
// between source and target positions is rejected rather than silently
// integrated (Open Question decision #1 in DESIGN.md).
func TestSweptHex3DTwistAborts(t *testing.T) {
	src := [4]geometry.Point{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 0, 0),
		geometry.NewPoint3(1, 1, 0),
		geometry.NewPoint3(0, 1, 0),
	}
	// target quad wound the opposite way in-plane: the two ends of the
	// swept solid face in opposite directions, twisting the hexahedron.
	tgt := [4]geometry.Point{
		geometry.NewPoint3(0, 1, 1),
		geometry.NewPoint3(1, 1, 1),
		geometry.NewPoint3(1, 0, 1),
		geometry.NewPoint3(0, 0, 1),
	}
	_, err := SweptHex3D(src, tgt)
	if err == nil {
		t.Fatalf("expected ErrSweptFaceTwist, got nil")
	}
	if _, ok := err.(ErrSweptFaceTwist); !ok {
		t.Fatalf("error type = %T, want ErrSweptFaceTwist", err)
	}
}
