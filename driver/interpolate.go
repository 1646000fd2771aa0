// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/gradient"
	"github.com/cpmech/portage/interpolate"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/repair"
	"github.com/cpmech/portage/state"
)

// FieldSpec bundles the parameters of spec.md §4.10's
// interpolate<T,Interpolate>(src_name, tgt_name, lower_bound, upper_bound,
// limiter, partial_fixup, empty_fixup, conservation_tol, max_fixup_iter,
// optional_parts).
type FieldSpec struct {
	SourceField string
	TargetField string
	Kind        mesh.Kind
	Order       interpolate.Order
	Limiter     gradient.BoundaryPolicy
	Weighter    gradient.Weighter // nil => gradient.UniformWeight

	Partial         repair.PartialFixupType
	Empty           repair.EmptyFixupType
	ConservationTol float64
	MaxFixupIter    int

	// Part restricts both interpolation and repair to this subset of
	// target entity ids; nil means "all owned entities of Kind".
	Part []int
}

// Interpolate runs the interpolate phase of spec.md §4.10: for each
// target entity in scope, combine its cached weights (from
// ComputeInterpolationWeights) via 1st/2nd order formulas, optionally
// limited, write the result into TargetState, then repair mismatches.
// Requires the driver to be at or past Intersected for spec.Kind.
func (d *Driver) Interpolate(spec FieldSpec) (repair.Report, error) {
	if d.phase < Intersected {
		return repair.Report{}, chk.Err("driver: Interpolate called before ComputeInterpolationWeights (phase=%s)", d.phase)
	}
	entries, ok := d.weights[spec.Kind]
	if !ok {
		return repair.Report{}, chk.Err("driver: no cached weights for kind %v; call ComputeInterpolationWeights first", spec.Kind)
	}

	srcBuf := d.SourceState.MeshGetData(spec.Kind, spec.SourceField)
	tgtBuf := d.TargetState.MeshGetData(spec.Kind, spec.TargetField)

	weighter := spec.Weighter
	if weighter == nil {
		weighter = gradient.UniformWeight
	}

	indices := spec.Part
	if indices == nil {
		indices = allIndices(targetEntityCount(d.Target, spec.Kind))
	}

	repairCells := make([]repair.Cell, targetEntityCount(d.Target, spec.Kind))
	var totalSourceMass float64
	numSrc := sourceEntityCount(d.Source, spec.Kind)
	for s := 0; s < numSrc; s++ {
		totalSourceMass += srcBuf.At(s)[0] * entityVolume(d.Source, spec.Kind, s)
	}

	for _, tgtID := range indices {
		entry := entries[tgtID]
		tgtVol := entityVolume(d.Target, spec.Kind, tgtID)
		weights := toInterpolateWeights(entry)
		field := d.sourceField(spec, srcBuf, weighter)

		val, covered := interpolate.Interpolate(spec.Order, weights, field)
		sumW0 := interpolate.TotalOverlapVolume(weights)

		repairCells[tgtID] = repair.Cell{
			Value:     val,
			Covered:   sumW0,
			Volume:    tgtVol,
			Neighbors: entityNeighbors(d.Target, spec.Kind, tgtID),
			IsPartial: covered && sumW0 < tgtVol*(1-d.Tol.MinRelativeVolume),
			IsEmpty:   !covered,
		}
		tgtBuf.At(tgtID)[0] = val
	}

	values := make([]float64, len(repairCells))
	for i := range repairCells {
		values[i] = tgtBuf.At(i)[0]
	}
	report := repair.Repair(repairCells, values, totalSourceMass, repair.Options{
		Partial:         spec.Partial,
		Empty:           spec.Empty,
		ConservationTol: spec.ConservationTol,
		MaxFixupIter:    spec.MaxFixupIter,
		Part:            indices,
	})
	for _, i := range indices {
		tgtBuf.At(i)[0] = values[i]
	}

	d.phase = Done
	return report, nil
}

// sourceField builds the interpolate.SourceField accessor for spec.Order,
// reconstructing a least-squares gradient per source entity only when
// 2nd-order combination needs it.
func (d *Driver) sourceField(spec FieldSpec, srcBuf state.Buffer, weighter gradient.Weighter) interpolate.SourceField {
	value := func(id int) float64 { return srcBuf.At(id)[0] }
	if spec.Order == interpolate.FirstOrder {
		return interpolate.SourceField{Value: value}
	}
	dim := d.Source.SpaceDimension()
	gradCache := map[int]geometry.Point{}
	centroid := func(id int) geometry.Point { return entityCentroid(d.Source, spec.Kind, id) }
	gradientOf := func(id int) geometry.Point {
		if g, ok := gradCache[id]; ok {
			return g
		}
		neighbors := entityNeighbors(d.Source, spec.Kind, id)
		acc := gradient.Accumulate{
			Center:      centroid(id),
			CenterValue: value(id),
			Neighbors:   make([]geometry.Point, len(neighbors)),
			NeighborVal: make([]float64, len(neighbors)),
			Weighter:    weighter,
		}
		var neighborVals []float64
		for i, nb := range neighbors {
			acc.Neighbors[i] = centroid(nb)
			acc.NeighborVal[i] = value(nb)
			neighborVals = append(neighborVals, value(nb))
		}
		g, err := acc.Reconstruct(dim)
		if err != nil {
			g = geometry.Point{Dim: dim}
		}
		if spec.Limiter == gradient.BndBarthJespersen {
			phiMin, phiMax := gradient.Extrema(value(id), neighborVals)
			g = gradient.BarthJespersen(centroid(id), value(id), phiMin, phiMax, g, acc.Neighbors)
		} else if spec.Limiter == gradient.BndZeroGradient && d.Source.OnExteriorBoundary(spec.Kind, id) {
			g = geometry.Point{Dim: dim}
		}
		gradCache[id] = g
		return g
	}
	return interpolate.SourceField{Value: value, Gradient: gradientOf, Centroid: centroid}
}

func toInterpolateWeights(e weightEntry) []interpolate.Weight {
	out := make([]interpolate.Weight, len(e.sourceIDs))
	for i := range e.sourceIDs {
		out[i] = interpolate.Weight{SourceID: e.sourceIDs[i], Moments: e.moments[i]}
	}
	return out
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func sourceEntityCount(m mesh.Mesh, kind mesh.Kind) int {
	if kind == mesh.Node {
		return m.NumOwnedNodes() + m.NumGhostNodes()
	}
	return m.NumOwnedCells() + m.NumGhostCells()
}

// entityVolume returns a cell's volume directly, or a node's dual-cell
// volume as the sum of its incident corners' volumes (spec.md §4.5: "a
// node's dual cell is the union of the corners incident on that node").
func entityVolume(m mesh.Mesh, kind mesh.Kind, id int) float64 {
	if kind == mesh.Node {
		var v float64
		for _, corner := range m.NodeGetCorners(id) {
			v += m.CornerVolume(corner)
		}
		return v
	}
	return m.CellVolume(id)
}

func entityCentroid(m mesh.Mesh, kind mesh.Kind, id int) geometry.Point {
	if kind == mesh.Node {
		return m.NodeGetCoordinates(id)
	}
	return m.CellCentroid(id)
}

func entityNeighbors(m mesh.Mesh, kind mesh.Kind, id int) []int {
	if kind == mesh.Node {
		return m.NodeNeighbors(id)
	}
	return m.CellNeighbors(id)
}
