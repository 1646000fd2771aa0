// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distribute

import (
	"github.com/cpmech/portage/flatmesh"
	"github.com/cpmech/portage/geometry"
)

// Distributor runs the 8-step source redistribution of spec.md §4.4. Tol
// travels as plain data, same as everywhere else in the pipeline
// (spec.md §9).
type Distributor struct {
	Comm Communicator
	Tol  geometry.Tolerances
}

// New constructs a Distributor over comm.
func New(comm Communicator, tol geometry.Tolerances) *Distributor {
	return &Distributor{Comm: comm, Tol: tol}
}

// Distribute redistributes localSource/localSourceState so that the
// returned mesh/state contains every source cell (and its node/face
// closure) whose bounding box might overlap this rank's target partition,
// per spec.md §4.4. localTargetBox is this rank's own owned-target-cells
// bounding box (step 1's other half; computed by the caller from its
// target mesh since distribute.go only ever owns the source side).
func (d *Distributor) Distribute(localSource *flatmesh.FlatMesh, localSourceState *flatmesh.FlatState, localTargetBox geometry.BBox) (*flatmesh.FlatMesh, *flatmesh.FlatState, error) {
	if d.Comm.Size() == 1 {
		// single rank: every target box is this rank's own, so nothing to
		// redistribute; this is also the only path exercised by local
		// (non-MPI) tests, per ordering guarantee "deterministic given the
		// same rank count and partitioning".
		return localSource, localSourceState, nil
	}

	// --- step 1: bounding-box all-gather ---
	allTargetBoxes := d.allGatherBBoxes(localTargetBox)

	localSourceBox := geometry.EmptyBBox(localSource.Dim)
	for c := 0; c < localSource.NumOwnedCells(); c++ {
		localSourceBox = localSourceBox.Union(localSource.CellBoundingBox(c))
	}

	// --- step 2: overlap test, 2*machine-eps inward offset ---
	nranks := d.Comm.Size()
	sendFlag := make([]bool, nranks)
	eps := 2 * geometry.MachineEps
	for r := 0; r < nranks; r++ {
		sendFlag[r] = localSourceBox.Overlaps(allTargetBoxes[r], eps)
	}

	// learn which peers will send to us: all-gather our own sendFlag row
	// as a 0/1 int vector, then recvFlag[r] = flagMatrix[r][myRank].
	flagRow := make([]int, nranks)
	for r, v := range sendFlag {
		if v {
			flagRow[r] = 1
		}
	}
	flagMatrix := d.Comm.AllGatherInts(flagRow)
	myRank := d.Comm.Rank()
	recvFlag := make([]bool, nranks)
	for r := 0; r < nranks; r++ {
		recvFlag[r] = flagMatrix[r][myRank] == 1
	}

	// --- steps 3-4: size + payload exchange, owned-first then ghosts ---
	// Owned and ghost cells travel as two separate rounds per category so
	// the receiver can append ghost data after all owned data is placed
	// (spec.md §4.4 step 3; §5's "two rounds of point-to-point sends
	// (owned-first, then ghosts) per category").
	numOwned := localSource.NumOwnedCells()
	numGhost := localSource.NumGhostCells()
	ownedPlan := buildSendPlan(localSource, localSourceState, 0, numOwned)
	ghostPlan := buildSendPlan(localSource, localSourceState, numOwned, numOwned+numGhost)

	ownedReceived := d.exchangeRound(ownedPlan, sendFlag, recvFlag, myRank, nranks, localSource.Dim)
	ghostReceived := d.exchangeRound(ghostPlan, sendFlag, recvFlag, myRank, nranks, localSource.Dim)
	d.Comm.Barrier()
	received := append(ownedReceived, ghostReceived...)

	// --- step 5-8: concatenate + adjacency repair + materials + fields ---
	mergedMesh, mergedState, err := mergePartitions(localSource.Dim, received)
	if err != nil {
		return nil, nil, err
	}
	return mergedMesh, mergedState, nil
}

// exchangeRound runs one send/recv round of plan against every peer flagged
// in sendFlag/recvFlag, returning the payloads received (including this
// rank's own plan, if it flagged itself). Distribute calls this once for
// the owned-cell round and once for the ghost-cell round.
func (d *Distributor) exchangeRound(plan partitionPayload, sendFlag, recvFlag []bool, myRank, nranks, dim int) []partitionPayload {
	received := make([]partitionPayload, 0, nranks)
	for r := 0; r < nranks; r++ {
		if r == myRank {
			if sendFlag[r] {
				received = append(received, plan)
			}
			continue
		}
		if sendFlag[r] {
			sendPartition(d.Comm, plan, r)
		}
		if recvFlag[r] {
			received = append(received, recvPartition(d.Comm, dim, r))
		}
	}
	return received
}

func (d *Distributor) allGatherBBoxes(local geometry.BBox) []geometry.BBox {
	dim := local.Dim
	flat := make([]float64, 2*dim+1)
	flat[0] = float64(dim)
	for i := 0; i < dim; i++ {
		flat[1+i] = local.Min.Coords[i]
		flat[1+dim+i] = local.Max.Coords[i]
	}
	gathered := d.Comm.AllGatherFloats(flat)
	out := make([]geometry.BBox, len(gathered))
	for r, g := range gathered {
		gd := int(g[0])
		b := geometry.BBox{Dim: gd}
		for i := 0; i < gd; i++ {
			b.Min.Coords[i] = g[1+i]
			b.Max.Coords[i] = g[1+gd+i]
		}
		b.Min.Dim, b.Max.Dim = gd, gd
		out[r] = b
	}
	return out
}
