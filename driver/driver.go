// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package driver implements the created->configured->distributed->
// searched->intersected->done state machine of spec.md §4.10, dispatching
// by entity kind (CELL uses the primal mesh, NODE uses the dual mesh) and
// caching candidates/weights per entity kind so one
// ComputeInterpolationWeights call services many field interpolations.
// Grounded on fem.Main's NewMain->SetStage->ZeroStage->Solver.Run phase
// sequencing.
package driver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/geometry"
	"github.com/cpmech/portage/intersect"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/state"
)

// Phase is the driver's state machine position (spec.md §4.10).
type Phase int

const (
	Created Phase = iota
	Configured
	Distributed
	Searched
	Intersected
	Done
)

func (p Phase) String() string {
	switch p {
	case Created:
		return "created"
	case Configured:
		return "configured"
	case Distributed:
		return "distributed"
	case Searched:
		return "searched"
	case Intersected:
		return "intersected"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// weightEntry is one target entity's cached (candidates, per-candidate
// moments) pair.
type weightEntry struct {
	sourceIDs []int
	moments   []geometry.Moments
}

// Driver is the entry point spec.md §4.10 describes: configure once,
// optionally distribute, then call ComputeInterpolationWeights per entity
// kind and Interpolate per field.
type Driver struct {
	Source      mesh.Mesh
	Target      mesh.Mesh
	SourceState state.State
	TargetState state.State
	Tol         geometry.Tolerances

	phase         Phase
	searchName    string
	intersectName string

	// cached per kind: target entity id -> weight entry.
	weights map[mesh.Kind]map[int]weightEntry

	reconstructor intersect.InterfaceReconstructor
}

// NewDriver constructs a Driver in the created phase.
func NewDriver(src, tgt mesh.Mesh, srcState, tgtState state.State, tol geometry.Tolerances) *Driver {
	return &Driver{
		Source:      src,
		Target:      tgt,
		SourceState: srcState,
		TargetState: tgtState,
		Tol:         tol,
		phase:       Created,
		weights:     map[mesh.Kind]map[int]weightEntry{},
	}
}

// Phase returns the driver's current state-machine position.
func (d *Driver) Phase() Phase { return d.phase }

// Configure selects the named Search/Intersect algorithms
// (spec.md §4.10's compute_interpolation_weights<Search,Intersect>
// template parameters) and transitions created -> configured. Re-calling
// Configure is allowed (idempotent within the phase) but invalidates any
// cached weights, per spec.md §4.10 "repeating an earlier phase
// invalidates all later ones".
func (d *Driver) Configure(searchName, intersectName string) error {
	if _, err := lookupSearch(searchName); err != nil {
		return err
	}
	if _, err := lookupIntersect(intersectName); err != nil {
		return err
	}
	d.searchName = searchName
	d.intersectName = intersectName
	d.phase = Configured
	d.weights = map[mesh.Kind]map[int]weightEntry{}
	return nil
}

// MarkDistributed records that the distributor (distribute.go) has run
// and repartitioned Source/Target in place; the driver itself performs no
// MPI work, it only advances its phase so later calls are valid.
func (d *Driver) MarkDistributed() error {
	if d.phase < Configured {
		return chk.Err("driver: cannot mark distributed before configure (phase=%s)", d.phase)
	}
	d.phase = Distributed
	d.weights = map[mesh.Kind]map[int]weightEntry{}
	return nil
}

// ComputeInterpolationWeights runs Search then Intersect for every owned
// target entity of the given kind, caching the (source_id, moments) list
// per target entity id. Safe to call once per kind; a field's
// Interpolate call reuses whichever kind's cache it needs (spec.md §4.10
// "a single compute_interpolation_weights services many field
// interpolations").
func (d *Driver) ComputeInterpolationWeights(kind mesh.Kind) error {
	if d.phase < Configured {
		return chk.Err("driver: ComputeInterpolationWeights called before Configure (phase=%s)", d.phase)
	}
	searchAlloc, err := lookupSearch(d.searchName)
	if err != nil {
		return err
	}
	intersectAlloc, err := lookupIntersect(d.intersectName)
	if err != nil {
		return err
	}

	finder := searchAlloc(d.Source, kind, d.Tol)

	numTarget := targetEntityCount(d.Target, kind)
	entries := make(map[int]weightEntry, numTarget)
	for tgtID := 0; tgtID < numTarget; tgtID++ {
		tgtShape := entityShape(d.Target, kind, tgtID)
		tgtBox := entityBox(d.Target, kind, tgtID)
		candidates := finder.Candidates(tgtBox)

		var sourceIDs []int
		var moments []geometry.Moments
		for _, srcID := range candidates {
			srcShape := entityShape(d.Source, kind, srcID)
			pieces := intersectAlloc(tgtShape, srcShape, d.Tol)
			for _, mm := range pieces {
				sourceIDs = append(sourceIDs, srcID)
				moments = append(moments, mm)
			}
		}
		entries[tgtID] = weightEntry{sourceIDs: sourceIDs, moments: moments}
	}

	d.weights[kind] = entries
	d.phase = Intersected
	return nil
}

func targetEntityCount(m mesh.Mesh, kind mesh.Kind) int {
	switch kind {
	case mesh.Cell:
		return m.NumOwnedCells()
	case mesh.Node:
		return m.NumOwnedNodes()
	default:
		chk.Panic("driver: unsupported entity kind %v", kind)
		return 0
	}
}

func entityShape(m mesh.Mesh, kind mesh.Kind, id int) Shape {
	if kind == mesh.Node {
		return DualShape(m, id)
	}
	return CellShape(m, id)
}

func entityBox(m mesh.Mesh, kind mesh.Kind, id int) geometry.BBox {
	if kind == mesh.Node {
		return m.NodeDualBoundingBox(id)
	}
	return m.CellBoundingBox(id)
}
