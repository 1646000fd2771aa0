// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package repair implements mismatch repair for target cells that are
// only partially covered, or not covered at all, by the source domain
// (spec.md §4.9), optionally restricted to an explicit part (subset of
// target entities).
package repair

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// PartialFixupType selects the repair strategy for a partially-covered
// target cell (0 < Σw < V_tgt).
type PartialFixupType int

const (
	LocallyConservative PartialFixupType = iota
	Constant
	ShiftedConservative
)

// EmptyFixupType selects the repair strategy for an uncovered target
// cell (Σw = 0).
type EmptyFixupType int

const (
	LeaveEmpty EmptyFixupType = iota
	Extrapolate
	Fill // reserved; not implemented (spec.md §4.9)
)

// Cell is one target cell's raw remap result before repair: the
// volume-weighted value (meaningless if Covered is 0), the volume of it
// actually covered by source overlap (an absolute Σw, not a fraction), and
// its own volume and
// neighbor list for CONSTANT/SHIFTED_CONSERVATIVE/EXTRAPOLATE.
type Cell struct {
	Value      float64
	Covered    float64 // Σw for this cell
	Volume     float64
	Neighbors  []int // face-adjacent target cells, for CONSTANT/EXTRAPOLATE
	IsPartial  bool
	IsEmpty    bool
}

// Report is returned from every repair call per the spec.md §9 Open
// Question resolution that mismatch repair must surface its convergence
// state rather than silently discard it.
type Report struct {
	Iterations int
	Residual   float64
	Converged  bool
}

// Options bundles the repair call's tunables (spec.md §4.10's
// interpolate(...) parameter list).
type Options struct {
	Partial         PartialFixupType
	Empty           EmptyFixupType
	ConservationTol float64
	MaxFixupIter    int
	// Part restricts repair to this subset of cell indices into values;
	// nil means "all cells" (spec.md §4.9 "The repair can run on a part").
	Part []int
}

// Repair mutates values in place (values[i] corresponds to cells[i]) and
// returns a Report describing the SHIFTED_CONSERVATIVE iteration, if any
// ran. totalSourceMass is Σ_s(φ_src[s]·V_src[s]), the conserved quantity
// SHIFTED_CONSERVATIVE iterates toward.
func Repair(cells []Cell, values []float64, totalSourceMass float64, opt Options) Report {
	indices := opt.Part
	if indices == nil {
		indices = utl.IntRange(len(cells))
	}

	repairEmpty(cells, values, indices, opt.Empty)
	return repairPartial(cells, values, indices, totalSourceMass, opt)
}

// repairEmpty handles Σw = 0 cells per spec.md §4.9.
func repairEmpty(cells []Cell, values []float64, indices []int, mode EmptyFixupType) {
	switch mode {
	case LeaveEmpty:
		for _, i := range indices {
			if cells[i].IsEmpty {
				values[i] = 0
			}
		}
	case Extrapolate:
		extrapolateFromNearest(cells, values, indices)
	case Fill:
		chk.Panic("Fill empty-fixup is reserved and not implemented")
	}
}

// extrapolateFromNearest assigns each empty cell the value of the
// nearest non-empty cell reached by a breadth-first search over
// face adjacency (spec.md §4.9 "EXTRAPOLATE ... breadth-first over
// face adjacency").
func extrapolateFromNearest(cells []Cell, values []float64, indices []int) {
	inPart := make(map[int]bool, len(indices))
	for _, i := range indices {
		inPart[i] = true
	}
	assigned := make([]bool, len(cells))
	queue := make([]int, 0, len(cells))
	for i, c := range cells {
		if !c.IsEmpty {
			assigned[i] = true
			queue = append(queue, i)
		}
	}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, nb := range cells[cur].Neighbors {
			if nb < 0 || nb >= len(cells) || assigned[nb] {
				continue
			}
			if !inPart[nb] {
				continue
			}
			values[nb] = values[cur]
			assigned[nb] = true
			queue = append(queue, nb)
		}
	}
}

// repairPartial handles 0 < Σw < V_tgt cells per spec.md §4.9.
func repairPartial(cells []Cell, values []float64, indices []int, totalSourceMass float64, opt Options) Report {
	switch opt.Partial {
	case LocallyConservative:
		return Report{Converged: true}
	case Constant:
		constantFixup(cells, values, indices)
		return Report{Converged: true}
	case ShiftedConservative:
		return shiftedConservativeFixup(cells, values, indices, totalSourceMass, opt.ConservationTol, opt.MaxFixupIter)
	}
	return Report{Converged: true}
}

// constantFixup replaces each partial cell's value with the
// volume-weighted average of its fully/partially covered neighbors,
// which preserves a constant source field (spec.md §4.9 "CONSTANT ...
// preserves constants").
func constantFixup(cells []Cell, values []float64, indices []int) {
	orig := append([]float64(nil), values...)
	for _, i := range indices {
		c := cells[i]
		if !c.IsPartial {
			continue
		}
		var sumV, sumVal float64
		for _, nb := range c.Neighbors {
			if nb < 0 || nb >= len(cells) || cells[nb].IsEmpty {
				continue
			}
			sumV += cells[nb].Volume
			sumVal += cells[nb].Volume * orig[nb]
		}
		if sumV > 0 {
			values[i] = sumVal / sumV
		}
	}
}

// shiftedConservativeFixup iteratively subtracts the per-cell
// discrepancy Δmass/n_partial_cells/cell_volume from every partial cell
// until the global mass matches totalSourceMass to conservationTol or
// maxFixupIter is reached, per spec.md §4.9's literal formula. Grounded
// on gofem's bounded-iteration-with-tolerance Solver loops
// (SolverData.NmaxIt/Atol/Rtol): check-then-step, bail out with a
// non-convergence warning rather than looping forever.
func shiftedConservativeFixup(cells []Cell, values []float64, indices []int, totalSourceMass, conservationTol float64, maxFixupIter int) Report {
	partial := make([]int, 0, len(indices))
	for _, i := range indices {
		if cells[i].IsPartial {
			partial = append(partial, i)
		}
	}
	if len(partial) == 0 {
		return Report{Converged: true}
	}

	currentMass := func() float64 {
		var m float64
		for _, i := range indices {
			m += values[i] * cells[i].Volume
		}
		return m
	}

	iter := 0
	residual := totalSourceMass - currentMass()
	for ; iter < maxFixupIter; iter++ {
		if math.Abs(residual) <= conservationTol {
			return Report{Iterations: iter, Residual: residual, Converged: true}
		}
		perCell := residual / float64(len(partial))
		for _, i := range partial {
			if cells[i].Volume <= 0 {
				continue
			}
			values[i] += perCell / cells[i].Volume
		}
		residual = totalSourceMass - currentMass()
	}
	if math.Abs(residual) <= conservationTol {
		return Report{Iterations: iter, Residual: residual, Converged: true}
	}
	io.Pfred("shifted-conservative repair did not converge after %d iterations: residual=%v tol=%v\n", maxFixupIter, residual, conservationTol)
	return Report{Iterations: iter, Residual: residual, Converged: false}
}
