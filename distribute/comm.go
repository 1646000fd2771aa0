// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package distribute implements the bulk-synchronous mesh/state
// redistribution of spec.md §4.4: every target partition ends up holding
// every source entity it might overlap, before Search ever runs.
package distribute

import "github.com/cpmech/gosl/mpi"

// Communicator is the narrow set of collective and point-to-point
// operations the distributor needs (spec.md §5: "one all-gather ... two
// rounds of point-to-point sends"). It travels as an explicit
// constructor argument to New, never through package-level state
// (spec.md §9 "no global mutable process state... the MPI communicator
// is an explicit constructor argument to the distributor").
type Communicator interface {
	Rank() int
	Size() int
	Barrier()
	// AllGatherFloats returns, for every rank r, the slice that rank sent
	// as local (rank order preserved, own entry included verbatim).
	AllGatherFloats(local []float64) [][]float64
	AllGatherInts(local []int) [][]int
	SendInts(vals []int, to int)
	RecvInts(n, from int) []int
	SendFloats(vals []float64, to int)
	RecvFloats(n, from int) []float64
}

// GoslCommunicator adapts *mpi.Communicator to the Communicator
// interface. Grounded on gofem's mpi.Rank()/mpi.Size()/mpi.IsOn() usage
// (fem/main.go), generalized here to carry the communicator as a value
// rather than reading it from mpi's process-wide default.
type GoslCommunicator struct {
	comm *mpi.Communicator
}

// NewGoslCommunicator wraps the world communicator. Call mpi.Start()
// once at process startup before constructing this (gofem's main.go
// convention).
func NewGoslCommunicator() *GoslCommunicator {
	return &GoslCommunicator{comm: mpi.NewCommunicator(nil)}
}

func (g *GoslCommunicator) Rank() int  { return g.comm.Rank() }
func (g *GoslCommunicator) Size() int  { return g.comm.Size() }
func (g *GoslCommunicator) Barrier()   { g.comm.Barrier() }

func (g *GoslCommunicator) AllGatherFloats(local []float64) [][]float64 {
	n := g.comm.Size()
	sizes := g.AllGatherInts([]int{len(local)})
	out := make([][]float64, n)
	rank := g.comm.Rank()
	for r := 0; r < n; r++ {
		if r == rank {
			out[r] = append([]float64(nil), local...)
			continue
		}
		out[r] = make([]float64, sizes[r][0])
	}
	// ring exchange: every rank sends to every other rank its local
	// slice; gosl's Communicator.Send/Recv are point-to-point, so an
	// all-gather is built from Size()-1 send/recv pairs per rank, in
	// rank order to avoid deadlock (lower rank sends first).
	for r := 0; r < n; r++ {
		if r == rank {
			continue
		}
		if rank < r {
			g.comm.Send(local, r)
			out[r] = g.comm.Recv(sizes[r][0], r)
		} else {
			out[r] = g.comm.Recv(sizes[r][0], r)
			g.comm.Send(local, r)
		}
	}
	return out
}

func (g *GoslCommunicator) AllGatherInts(local []int) [][]int {
	n := g.comm.Size()
	rank := g.comm.Rank()
	out := make([][]int, n)
	out[rank] = append([]int(nil), local...)
	sizes := make([]int, n)
	sizes[rank] = len(local)
	// exchange sizes first (fixed-size, one int) so both sides know how
	// much to Recv for the payload round.
	for r := 0; r < n; r++ {
		if r == rank {
			continue
		}
		if rank < r {
			g.comm.SendI([]int{len(local)}, r)
			sizes[r] = g.comm.RecvI(1, r)[0]
		} else {
			sizes[r] = g.comm.RecvI(1, r)[0]
			g.comm.SendI([]int{len(local)}, r)
		}
	}
	for r := 0; r < n; r++ {
		if r == rank {
			continue
		}
		if rank < r {
			g.comm.SendI(local, r)
			out[r] = g.comm.RecvI(sizes[r], r)
		} else {
			out[r] = g.comm.RecvI(sizes[r], r)
			g.comm.SendI(local, r)
		}
	}
	return out
}

func (g *GoslCommunicator) SendInts(vals []int, to int)          { g.comm.SendI(vals, to) }
func (g *GoslCommunicator) RecvInts(n, from int) []int           { return g.comm.RecvI(n, from) }
func (g *GoslCommunicator) SendFloats(vals []float64, to int)    { g.comm.Send(vals, to) }
func (g *GoslCommunicator) RecvFloats(n, from int) []float64     { return g.comm.Recv(n, from) }

var _ Communicator = (*GoslCommunicator)(nil)
