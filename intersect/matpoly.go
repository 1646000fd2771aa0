// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intersect

import "github.com/cpmech/portage/geometry"

// MatPoly is the polygonal (2D) or polyhedral (3D) region one material
// occupies inside a multi-material cell (GLOSSARY "Matpoly").
type MatPoly struct {
	MaterialID int
	Verts2D    []geometry.Point // set when the owning mesh is 2D
	Faces3D    []geometry.Face  // set when the owning mesh is 3D
}

// InterfaceReconstructor is the pluggable external collaborator spec.md
// §4.6/§9 describes: material-interface reconstruction is out of scope for
// this library (spec.md §1) and is consumed only through this one-method
// interface, the same narrow-contract shape as gofem's mdl/conduct.Model
// registry entries.
type InterfaceReconstructor interface {
	// CellMatPolys returns the (material_id, matpoly) pairs for cell c.
	CellMatPolys(c int) ([]MatPoly, error)
}

// NoMatPolys is the default no-op InterfaceReconstructor for single-material
// runs (spec.md §9: "a default no-op implementation supports single-material
// runs").
type NoMatPolys struct{}

func (NoMatPolys) CellMatPolys(c int) ([]MatPoly, error) { return nil, nil }

var _ InterfaceReconstructor = NoMatPolys{}

// IntersectMultiMaterial intersects each of cell c's matpolys (from recon)
// against the target polygon/polyhedron, returning one moment list per
// material id present in the cell (spec.md §4.6, "Multi-material
// intersection").
func IntersectMultiMaterial(dim int, targetVerts2D []geometry.Point, targetFaces3D []geometry.Face, recon InterfaceReconstructor, c int, tol geometry.Tolerances) (map[int][]geometry.Moments, error) {
	polys, err := recon.CellMatPolys(c)
	if err != nil {
		return nil, err
	}
	out := map[int][]geometry.Moments{}
	for _, mp := range polys {
		var pieces []geometry.Moments
		if dim == 2 {
			pieces = IntersectR2D(targetVerts2D, mp.Verts2D, tol)
		} else {
			pieces = IntersectR3D(targetFaces3D, mp.Faces3D, tol)
		}
		if len(pieces) > 0 {
			out[mp.MaterialID] = append(out[mp.MaterialID], pieces...)
		}
	}
	return out, nil
}
