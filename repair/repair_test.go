// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repair

import (
	"math"
	"testing"
)

func TestRepairLeaveEmpty(t *testing.T) {
	cells := []Cell{
		{Value: 5, Volume: 1, IsEmpty: false},
		{Value: 0, Volume: 1, IsEmpty: true},
	}
	values := []float64{5, 123}
	Repair(cells, values, 5, Options{Empty: LeaveEmpty})
	if values[1] != 0 {
		t.Errorf("empty cell value = %v, want 0", values[1])
	}
	if values[0] != 5 {
		t.Errorf("untouched cell value = %v, want 5", values[0])
	}
}

func TestRepairExtrapolateBFS(t *testing.T) {
	// three cells in a row: 0 (known=10) - 1 (empty) - 2 (empty); BFS should
	// propagate 10 from cell 0 outward.
	cells := []Cell{
		{Value: 10, Volume: 1, IsEmpty: false, Neighbors: []int{1}},
		{Value: 0, Volume: 1, IsEmpty: true, Neighbors: []int{0, 2}},
		{Value: 0, Volume: 1, IsEmpty: true, Neighbors: []int{1}},
	}
	values := []float64{10, 0, 0}
	Repair(cells, values, 10, Options{Empty: Extrapolate})
	if values[1] != 10 || values[2] != 10 {
		t.Errorf("extrapolated values = %v, want [10,10,10]", values)
	}
}

func TestRepairConstantFixupPreservesConstant(t *testing.T) {
	// a constant-field partial cell surrounded by fully-covered neighbors
	// at the same constant must come back unchanged.
	cells := []Cell{
		{Value: 7, Volume: 1, IsPartial: false},
		{Value: 7, Volume: 1, IsPartial: false},
		{Value: 3, Volume: 1, IsPartial: true, Neighbors: []int{0, 1}},
	}
	values := []float64{7, 7, 3}
	Repair(cells, values, 17, Options{Partial: Constant})
	if math.Abs(values[2]-7) > 1e-12 {
		t.Errorf("partial cell = %v, want 7", values[2])
	}
}

func TestRepairShiftedConservativeConverges(t *testing.T) {
	// S3-style scenario (spec.md §8): 3 partial cells each volume 0.2,
	// current total value 20*3=60 wants to reach mass 50; spec.md's
	// formula: each cell value = (20 - (20*3-50)/3)/0.2 = 83.3333...
	cells := []Cell{
		{Value: 100, Volume: 0.2, IsPartial: true, Neighbors: []int{1, 2}},
		{Value: 100, Volume: 0.2, IsPartial: true, Neighbors: []int{0, 2}},
		{Value: 100, Volume: 0.2, IsPartial: true, Neighbors: []int{0, 1}},
	}
	values := []float64{100, 100, 100}
	report := Repair(cells, values, 50, Options{Partial: ShiftedConservative, ConservationTol: 1e-9, MaxFixupIter: 1000})
	if !report.Converged {
		t.Fatalf("did not converge: %+v", report)
	}
	want := 83.0 + 1.0/3.0
	for i, v := range values {
		if math.Abs(v-want) > 1e-6 {
			t.Errorf("values[%d] = %v, want %v", i, v, want)
		}
	}
	var mass float64
	for i, c := range cells {
		mass += values[i] * c.Volume
	}
	if math.Abs(mass-50) > 1e-9 {
		t.Errorf("final mass = %v, want 50", mass)
	}
}

func TestRepairShiftedConservativeRespectsPart(t *testing.T) {
	// the part mechanism must restrict repair to the given subset: cell 2
	// is outside the part and must be untouched.
	cells := []Cell{
		{Value: 100, Volume: 0.2, IsPartial: true, Neighbors: []int{1}},
		{Value: 100, Volume: 0.2, IsPartial: true, Neighbors: []int{0}},
		{Value: 999, Volume: 1, IsPartial: true},
	}
	values := []float64{20, 20, 999}
	Repair(cells, values, 30, Options{Partial: ShiftedConservative, ConservationTol: 1e-9, MaxFixupIter: 1000, Part: []int{0, 1}})
	if values[2] != 999 {
		t.Errorf("cell outside part was modified: %v", values[2])
	}
}

func TestRepairLocallyConservativeLeavesRawAverage(t *testing.T) {
	cells := []Cell{{Value: 42, Volume: 1, IsPartial: true}}
	values := []float64{42}
	report := Repair(cells, values, 999, Options{Partial: LocallyConservative})
	if values[0] != 42 {
		t.Errorf("LOCALLY_CONSERVATIVE modified value: %v", values[0])
	}
	if !report.Converged {
		t.Error("expected trivially converged report")
	}
}
