// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flatmesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/state"
)

// fieldEntry is the bookkeeping record for one named field.
type fieldEntry struct {
	kind      mesh.Kind
	fieldType state.FieldType
	buf       state.Buffer // MeshField: one entry; MultiMaterialField: unused, see matBufs
}

// FlatState is the flat, contiguous state container of spec.md §4.3: one
// Buffer per mesh field, and one Buffer per (material, field) pair for
// multi-material fields, addressed by the material's own cell list.
type FlatState struct {
	fields map[string]*fieldEntry
	order  []string

	// matBufs[name][matID] holds the per-material buffer.
	matBufs map[string]map[int]state.Buffer

	matNames    []string
	matCells    [][]int
	cellIndexInMat []map[int]int // [matID][cell] -> index
}

// NewFlatState returns an empty state container.
func NewFlatState() *FlatState {
	return &FlatState{
		fields:  map[string]*fieldEntry{},
		matBufs: map[string]map[int]state.Buffer{},
	}
}

// AddMeshField registers a plain per-entity field with the given data.
func (s *FlatState) AddMeshField(name string, kind mesh.Kind, buf state.Buffer) {
	if _, exists := s.fields[name]; !exists {
		s.order = append(s.order, name)
	}
	s.fields[name] = &fieldEntry{kind: kind, fieldType: state.MeshField, buf: buf}
}

// AddMultiMaterialField registers a (material,cell) field; per-material
// data is filled in afterwards via SetMaterialCellData.
func (s *FlatState) AddMultiMaterialField(name string, kind mesh.Kind) {
	if _, exists := s.fields[name]; !exists {
		s.order = append(s.order, name)
	}
	s.fields[name] = &fieldEntry{kind: kind, fieldType: state.MultiMaterialField}
	s.matBufs[name] = map[int]state.Buffer{}
}

// SetMaterialCellData sets the buffer for field name restricted to matID.
func (s *FlatState) SetMaterialCellData(name string, matID int, buf state.Buffer) {
	s.matBufs[name][matID] = buf
}

func (s *FlatState) Names() []string { return append([]string(nil), s.order...) }

func (s *FlatState) GetEntity(name string) mesh.Kind {
	f, ok := s.fields[name]
	if !ok {
		return mesh.Cell
	}
	return f.kind
}

func (s *FlatState) FieldType(kind mesh.Kind, name string) state.FieldType {
	f, ok := s.fields[name]
	if !ok {
		return state.MeshField
	}
	return f.fieldType
}

func (s *FlatState) MeshGetData(kind mesh.Kind, name string) state.Buffer {
	f, ok := s.fields[name]
	if !ok {
		chk.Panic("flatmesh: no such mesh field %q", name)
	}
	return f.buf
}

func (s *FlatState) MatGetCellData(name string, matID int) state.Buffer {
	bufs, ok := s.matBufs[name]
	if !ok {
		chk.Panic("flatmesh: no such multi-material field %q", name)
	}
	buf, ok := bufs[matID]
	if !ok {
		// material has no data in this field yet: allocate a zeroed scalar
		// buffer over the material's cells and keep it, so writes through
		// the returned buffer persist.
		buf = state.Buffer{Values: make([]float64, len(s.matCells[matID])), Stride: 1}
		bufs[matID] = buf
	}
	return buf
}

func (s *FlatState) NumMaterials() int { return len(s.matNames) }

func (s *FlatState) MaterialName(matID int) string { return s.matNames[matID] }

func (s *FlatState) MatGetCells(matID int) []int { return s.matCells[matID] }

func (s *FlatState) CellIndexInMaterial(c, matID int) int {
	idx, ok := s.cellIndexInMat[matID][c]
	if !ok {
		return -1
	}
	return idx
}

func (s *FlatState) MatAddCells(matID int, cells []int) {
	for _, c := range cells {
		if _, exists := s.cellIndexInMat[matID][c]; exists {
			continue
		}
		s.cellIndexInMat[matID][c] = len(s.matCells[matID])
		s.matCells[matID] = append(s.matCells[matID], c)
	}
}

func (s *FlatState) AddMaterial(name string, cells []int) int {
	matID := len(s.matNames)
	s.matNames = append(s.matNames, name)
	s.matCells = append(s.matCells, nil)
	s.cellIndexInMat = append(s.cellIndexInMat, map[int]int{})
	s.MatAddCells(matID, cells)
	return matID
}

var _ state.State = (*FlatState)(nil)
