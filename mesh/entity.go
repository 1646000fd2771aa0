// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh defines the abstract mesh contract the remap pipeline
// consumes (spec.md §6). The pipeline programs against this interface
// exclusively; flatmesh provides one concrete implementation.
package mesh

// Kind is the tagged entity kind carried at runtime, one of the dispatch
// axes spec.md §9 calls out (replacing the original's compile-time entity
// template parameter).
type Kind int

const (
	Cell Kind = iota
	Node
	Face
	Edge
	Wedge  // derived: node-centered dual-mesh primitive
	Corner // derived: node-centered dual-mesh primitive
)

func (k Kind) String() string {
	switch k {
	case Cell:
		return "CELL"
	case Node:
		return "NODE"
	case Face:
		return "FACE"
	case Edge:
		return "EDGE"
	case Wedge:
		return "WEDGE"
	case Corner:
		return "CORNER"
	default:
		return "UNKNOWN"
	}
}

// EntityType distinguishes partition-authoritative entities from ghost
// replicas (spec.md §3).
type EntityType int

const (
	Owned EntityType = iota
	Ghost
	All
)

// Counts is the (owned, all) pair every entity-kind count in the mesh
// contract is reported as (spec.md §3: "Every public count is a pair").
type Counts struct {
	Owned int
	All   int
}

// Ghosts returns the number of ghost (non-owned) entities.
func (c Counts) Ghosts() int { return c.All - c.Owned }
