// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatmesh

import "github.com/cpmech/gosl/chk"

// NewUniformQuadGrid builds a nx*ny uniform quadrilateral grid on
// [x0,x1]x[y0,y1], single-rank (all entities owned, no ghosts). It is the
// structured-mesh fixture used by the driver scenario tests of spec.md §8
// (S1, S2, S5 start from "uniform NxN quad grid on [0,1]²") and is
// equally usable as a quick-start mesh for callers outside the test
// suite.
func NewUniformQuadGrid(nx, ny int, x0, y0, x1, y1 float64) *FlatMesh {
	if nx < 1 || ny < 1 {
		chk.Panic("nx and ny must be >= 1, got nx=%d ny=%d", nx, ny)
	}
	m := New(2)
	numNodesX, numNodesY := nx+1, ny+1
	numNodes := numNodesX * numNodesY
	numCells := nx * ny

	m.Coords = make([]float64, 2*numNodes)
	dx := (x1 - x0) / float64(nx)
	dy := (y1 - y0) / float64(ny)
	nodeID := func(i, j int) int { return j*numNodesX + i }
	for j := 0; j < numNodesY; j++ {
		for i := 0; i < numNodesX; i++ {
			id := nodeID(i, j)
			m.Coords[2*id] = x0 + float64(i)*dx
			m.Coords[2*id+1] = y0 + float64(j)*dy
		}
	}
	m.SetNumOwnedNodes(numNodes, numNodes)

	m.CellNodeCounts = make([]int, numCells)
	m.CellToNode = make([]int, 0, 4*numCells)
	m.CellGIDs = make([]int64, numCells)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			c := j*nx + i
			// counter-clockwise winding, matching geometry.PolygonMoments's
			// fan-triangulation convention.
			m.CellToNode = append(m.CellToNode,
				nodeID(i, j), nodeID(i+1, j), nodeID(i+1, j+1), nodeID(i, j+1))
			m.CellNodeCounts[c] = 4
			m.CellGIDs[c] = int64(c)
		}
	}
	m.SetNumOwnedCells(numCells, numCells)

	m.NodeGIDs = make([]int64, numNodes)
	for n := 0; n < numNodes; n++ {
		m.NodeGIDs[n] = int64(n)
	}

	if err := m.FinishInit(); err != nil {
		chk.Panic("NewUniformQuadGrid: %v", err)
	}
	return m
}

// TranslateCopy returns a deep copy of m with every node coordinate
// shifted by (dx,dy,dz) (dz applies to 3D meshes only), used by the swept-face scenario of spec.md §8 (S4:
// "same topology, rigidly translated").
func TranslateCopy(m *FlatMesh, dx, dy, dz float64) *FlatMesh {
	out := &FlatMesh{}
	*out = *m
	out.Coords = append([]float64(nil), m.Coords...)
	nnodes := m.NumOwnedNodesVal + m.NumGhostNodesVal
	for n := 0; n < nnodes; n++ {
		out.Coords[m.Dim*n] += dx
		if m.Dim > 1 {
			out.Coords[m.Dim*n+1] += dy
		}
		if m.Dim > 2 {
			out.Coords[m.Dim*n+2] += dz
		}
	}
	if err := out.FinishInit(); err != nil {
		chk.Panic("TranslateCopy: %v", err)
	}
	return out
}
