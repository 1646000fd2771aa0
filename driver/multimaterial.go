// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/intersect"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/repair"
)

// Reconstructor returns the InterfaceReconstructor used to split source
// cells into per-material matpolys (spec.md §9's pluggable collaborator,
// defaulting to NoMatPolys for single-material runs).
func (d *Driver) Reconstructor() intersect.InterfaceReconstructor {
	if d.reconstructor == nil {
		return intersect.NoMatPolys{}
	}
	return d.reconstructor
}

// SetReconstructor installs a non-default InterfaceReconstructor.
func (d *Driver) SetReconstructor(r intersect.InterfaceReconstructor) { d.reconstructor = r }

// InterpolateMultiMaterial runs material-aware interpolation for one
// material field (spec.md §4.8/§4.6): it reuses the cell-kind candidate
// list from ComputeInterpolationWeights(mesh.Cell), but recomputes
// intersection moments per-material against the Reconstructor's matpolys
// rather than against the whole source cell. A target cell is a member of
// the material iff its intersection moment exceeds
// driver_relative_min_mat_vol * V_tgt[c] (spec.md §8 invariant 7); cells
// below threshold simply carry no entry for this material, so Empty
// repair has no meaning here — only Partial fixup (applied across the
// member cells' own adjacency) conserves per-material mass.
func (d *Driver) InterpolateMultiMaterial(matID int, spec FieldSpec) (repair.Report, error) {
	if spec.Kind != mesh.Cell {
		return repair.Report{}, chk.Err("driver: multi-material interpolation only supports CELL entities")
	}
	if d.phase < Intersected {
		return repair.Report{}, chk.Err("driver: InterpolateMultiMaterial called before ComputeInterpolationWeights (phase=%s)", d.phase)
	}
	entries, ok := d.weights[mesh.Cell]
	if !ok {
		return repair.Report{}, chk.Err("driver: no cached cell weights; call ComputeInterpolationWeights(mesh.Cell) first")
	}

	recon := d.Reconstructor()
	srcBuf := d.SourceState.MatGetCellData(spec.SourceField, matID)
	srcCells := d.SourceState.MatGetCells(matID)

	targetIndices := spec.Part
	if targetIndices == nil {
		targetIndices = allIndices(targetEntityCount(d.Target, mesh.Cell))
	}

	var totalSourceMass float64
	for i, c := range srcCells {
		totalSourceMass += srcBuf.At(i)[0] * d.Source.CellVolume(c)
	}

	type member struct {
		cellID int
		value  float64
		covered float64
		neighbors []int
	}
	var members []member

	for _, tgtID := range targetIndices {
		tgtVol := d.Target.CellVolume(tgtID)
		tgtShape := CellShape(d.Target, tgtID)
		entry := entries[tgtID]

		var sumW0, sumNumerator float64
		for _, srcCell := range entry.sourceIDs {
			localIdx := d.SourceState.CellIndexInMaterial(srcCell, matID)
			if localIdx < 0 {
				continue
			}
			byMat, err := intersect.IntersectMultiMaterial(d.Target.SpaceDimension(), tgtShape.Verts2D, tgtShape.Faces3D, recon, srcCell, d.Tol)
			if err != nil {
				return repair.Report{}, err
			}
			pieces, present := byMat[matID]
			if !present {
				continue
			}
			val := srcBuf.At(localIdx)[0]
			for _, mm := range pieces {
				sumW0 += mm.Volume
				sumNumerator += val * mm.Volume
			}
		}

		threshold := d.Tol.DriverRelativeMinMatVol * tgtVol
		if sumW0 <= threshold {
			continue
		}
		members = append(members, member{cellID: tgtID, value: sumNumerator / sumW0, covered: sumW0})
	}

	// face-adjacency restricted to the member set, indices relative to
	// the members slice (repair.Cell.Neighbors indexes into the same
	// array it came from).
	posOf := make(map[int]int, len(members))
	for i, mb := range members {
		posOf[mb.cellID] = i
	}
	for i, mb := range members {
		for _, nb := range d.Target.CellNeighbors(mb.cellID) {
			if p, ok := posOf[nb]; ok {
				members[i].neighbors = append(members[i].neighbors, p)
			}
		}
	}

	repairCells := make([]repair.Cell, len(members))
	values := make([]float64, len(members))
	for i, mb := range members {
		vol := d.Target.CellVolume(mb.cellID)
		repairCells[i] = repair.Cell{
			Value:     mb.value,
			Covered:   mb.covered,
			Volume:    vol,
			Neighbors: mb.neighbors,
			IsPartial: mb.covered < vol*(1-d.Tol.MinRelativeVolume),
		}
		values[i] = mb.value
	}

	report := repair.Repair(repairCells, values, totalSourceMass, repair.Options{
		Partial:         spec.Partial,
		ConservationTol: spec.ConservationTol,
		MaxFixupIter:    spec.MaxFixupIter,
	})

	memberCells := make([]int, len(members))
	for i, mb := range members {
		memberCells[i] = mb.cellID
	}
	outMatID := d.TargetState.AddMaterial(d.SourceState.MaterialName(matID), memberCells)
	buf := d.TargetState.MatGetCellData(spec.TargetField, outMatID)
	for i, v := range values {
		buf.At(i)[0] = v
	}
	return report, nil
}
