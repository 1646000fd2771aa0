// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state defines the abstract field-data contract consumed by the
// remap pipeline (spec.md §6) as a single State interface covering mesh
// fields and multi-material fields alike.
package state

import "github.com/cpmech/portage/mesh"

// FieldType distinguishes a plain per-entity field from a multi-material
// (material, cell) field (spec.md §3).
type FieldType int

const (
	MeshField FieldType = iota
	MultiMaterialField
)

// State is the abstract field-data contract. mesh_get_data and
// mat_get_celldata return a Buffer so the caller (interpolate.go) can both
// read source values and write target values through the same narrow
// surface, without the pipeline needing to know the state's storage layout.
type State interface {
	Names() []string
	GetEntity(name string) mesh.Kind
	FieldType(kind mesh.Kind, name string) FieldType

	// MeshGetData returns the read/write buffer for a mesh field.
	MeshGetData(kind mesh.Kind, name string) Buffer

	// MatGetCellData returns the read/write buffer for a multi-material
	// field restricted to material matID; its length equals
	// len(MatGetCells(matID)).
	MatGetCellData(name string, matID int) Buffer

	NumMaterials() int
	MaterialName(matID int) string
	MatGetCells(matID int) []int
	// CellIndexInMaterial returns the position of cell c within
	// MatGetCells(matID), i.e. the "local index in material" of spec.md §3.
	CellIndexInMaterial(c, matID int) int

	MatAddCells(matID int, cells []int)
	AddMaterial(name string, cells []int) (matID int)
}

// Buffer is a flat, stride-major array of component values for one field:
// length is numEntities*stride for a mesh field or
// len(cellsInMaterial)*stride for a material field.
type Buffer struct {
	Values []float64
	Stride int // number of components per entity; 1 for scalar fields
}

// At returns the stride-wide slice of components for the i-th entity.
func (b Buffer) At(i int) []float64 {
	return b.Values[i*b.Stride : (i+1)*b.Stride]
}

// Len returns the number of entities addressed by b.
func (b Buffer) Len() int {
	if b.Stride == 0 {
		return 0
	}
	return len(b.Values) / b.Stride
}
