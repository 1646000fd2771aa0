// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"math"
	"testing"

	"github.com/cpmech/portage/flatmesh"
	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/gradient"
	"github.com/cpmech/portage/interpolate"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/repair"
	"github.com/cpmech/portage/state"
)

func newSrcTgtStates(src, tgt *flatmesh.FlatMesh, srcVals []float64) (*flatmesh.FlatState, *flatmesh.FlatState) {
	srcState := flatmesh.NewFlatState()
	srcState.AddMeshField("celldata", mesh.Cell, state.Buffer{Values: srcVals, Stride: 1})

	tgtState := flatmesh.NewFlatState()
	n := tgt.NumOwnedCells() + tgt.NumGhostCells()
	tgtState.AddMeshField("celldata", mesh.Cell, state.Buffer{Values: make([]float64, n), Stride: 1})
	return srcState, tgtState
}

// TestDriverS1ConstantFirstOrder reproduces spec.md §8 scenario S1: a
// uniform 4x4 source grid with celldata=1.25 remapped 1st-order onto a
// 5x5 target grid on the same square must reproduce 1.25 exactly.
func TestDriverS1ConstantFirstOrder(t *testing.T) {
	src := flatmesh.NewUniformQuadGrid(4, 4, 0, 0, 1, 1)
	tgt := flatmesh.NewUniformQuadGrid(5, 5, 0, 0, 1, 1)

	srcVals := make([]float64, src.NumOwnedCells())
	for i := range srcVals {
		srcVals[i] = 1.25
	}
	srcState, tgtState := newSrcTgtStates(src, tgt, srcVals)

	d := NewDriver(src, tgt, srcState, tgtState, geometry.DefaultTolerances())
	if err := d.Configure("kdtree", "exact"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := d.ComputeInterpolationWeights(mesh.Cell); err != nil {
		t.Fatalf("ComputeInterpolationWeights: %v", err)
	}
	report, err := d.Interpolate(FieldSpec{
		SourceField: "celldata", TargetField: "celldata", Kind: mesh.Cell,
		Order: interpolate.FirstOrder, Empty: repair.LeaveEmpty,
	})
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if !report.Converged {
		t.Fatalf("repair did not converge: %+v", report)
	}

	buf := tgtState.MeshGetData(mesh.Cell, "celldata")
	for c := 0; c < tgt.NumOwnedCells(); c++ {
		if math.Abs(buf.At(c)[0]-1.25) > 1e-10 {
			t.Errorf("cell %d = %v, want 1.25", c, buf.At(c)[0])
		}
	}
}

// TestDriverS2LinearSecondOrder reproduces spec.md §8 scenario S2.
func TestDriverS2LinearSecondOrder(t *testing.T) {
	src := flatmesh.NewUniformQuadGrid(4, 4, 0, 0, 1, 1)
	tgt := flatmesh.NewUniformQuadGrid(5, 5, 0, 0, 1, 1)

	srcVals := make([]float64, src.NumOwnedCells())
	for c := range srcVals {
		centroid := src.CellCentroid(c)
		srcVals[c] = centroid.X() + centroid.Y()
	}
	srcState, tgtState := newSrcTgtStates(src, tgt, srcVals)

	d := NewDriver(src, tgt, srcState, tgtState, geometry.DefaultTolerances())
	if err := d.Configure("kdtree", "exact"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := d.ComputeInterpolationWeights(mesh.Cell); err != nil {
		t.Fatalf("ComputeInterpolationWeights: %v", err)
	}
	_, err := d.Interpolate(FieldSpec{
		SourceField: "celldata", TargetField: "celldata", Kind: mesh.Cell,
		Order: interpolate.SecondOrder, Limiter: gradient.BndNoLimiter, Empty: repair.LeaveEmpty,
	})
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}

	buf := tgtState.MeshGetData(mesh.Cell, "celldata")
	for c := 0; c < tgt.NumOwnedCells(); c++ {
		centroid := tgt.CellCentroid(c)
		want := centroid.X() + centroid.Y()
		if math.Abs(buf.At(c)[0]-want) > 1e-9 {
			t.Errorf("cell %d = %v, want %v", c, buf.At(c)[0], want)
		}
	}
}

// TestDriverS5BoundednessWithBarthJespersen reproduces spec.md §8 scenario
// S5's bounded half: with the limiter on, every interior target cell must
// stay within [30,100].
func TestDriverS5BoundednessWithBarthJespersen(t *testing.T) {
	src := flatmesh.NewUniformQuadGrid(4, 4, 0, 0, 1, 1)
	tgt := flatmesh.NewUniformQuadGrid(5, 5, 0, 0, 1, 1)

	srcVals := make([]float64, src.NumOwnedCells())
	for c := range srcVals {
		if src.CellCentroid(c).X() < 0.4 {
			srcVals[c] = 30
		} else {
			srcVals[c] = 100
		}
	}
	srcState, tgtState := newSrcTgtStates(src, tgt, srcVals)

	d := NewDriver(src, tgt, srcState, tgtState, geometry.DefaultTolerances())
	if err := d.Configure("kdtree", "exact"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := d.ComputeInterpolationWeights(mesh.Cell); err != nil {
		t.Fatalf("ComputeInterpolationWeights: %v", err)
	}
	_, err := d.Interpolate(FieldSpec{
		SourceField: "celldata", TargetField: "celldata", Kind: mesh.Cell,
		Order: interpolate.SecondOrder, Limiter: gradient.BndBarthJespersen, Empty: repair.LeaveEmpty,
	})
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}

	buf := tgtState.MeshGetData(mesh.Cell, "celldata")
	for c := 0; c < tgt.NumOwnedCells(); c++ {
		if tgt.OnExteriorBoundary(mesh.Cell, c) {
			continue
		}
		v := buf.At(c)[0]
		if v < 30-1e-9 || v > 100+1e-9 {
			t.Errorf("cell %d = %v, out of [30,100]", c, v)
		}
	}
}

// TestDriverS5BoundednessBreachWithoutLimiter reproduces spec.md §8
// scenario S5's other half: the same step-function field, interpolated
// with an unlimited second-order gradient, must overshoot [30,100] on at
// least one target cell near the discontinuity. Without this case,
// TestDriverS5BoundednessWithBarthJespersen alone can't tell a working
// limiter from a gradient that never ran.
func TestDriverS5BoundednessBreachWithoutLimiter(t *testing.T) {
	src := flatmesh.NewUniformQuadGrid(4, 4, 0, 0, 1, 1)
	tgt := flatmesh.NewUniformQuadGrid(5, 5, 0, 0, 1, 1)

	srcVals := make([]float64, src.NumOwnedCells())
	for c := range srcVals {
		if src.CellCentroid(c).X() < 0.4 {
			srcVals[c] = 30
		} else {
			srcVals[c] = 100
		}
	}
	srcState, tgtState := newSrcTgtStates(src, tgt, srcVals)

	d := NewDriver(src, tgt, srcState, tgtState, geometry.DefaultTolerances())
	if err := d.Configure("kdtree", "exact"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := d.ComputeInterpolationWeights(mesh.Cell); err != nil {
		t.Fatalf("ComputeInterpolationWeights: %v", err)
	}
	_, err := d.Interpolate(FieldSpec{
		SourceField: "celldata", TargetField: "celldata", Kind: mesh.Cell,
		Order: interpolate.SecondOrder, Limiter: gradient.BndNoLimiter, Empty: repair.LeaveEmpty,
	})
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}

	buf := tgtState.MeshGetData(mesh.Cell, "celldata")
	foundViolation := false
	for c := 0; c < tgt.NumOwnedCells(); c++ {
		if tgt.OnExteriorBoundary(mesh.Cell, c) {
			continue
		}
		v := buf.At(c)[0]
		if v < 30-1e-9 || v > 100+1e-9 {
			foundViolation = true
			break
		}
	}
	if !foundViolation {
		t.Errorf("expected at least one target cell outside [30,100] without a limiter, found none")
	}
}
