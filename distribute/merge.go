// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distribute

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/portage/flatmesh"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/state"
)

// mergePartitions implements spec.md §4.4 steps 5-8: concatenate every
// received payload, deduplicate nodes/cells/faces by global id, rewrite
// all adjacency through the resulting local numbering, unpack face
// orientation bits, reconcile materials, and reassemble field data. The
// merged mesh has no owned/ghost distinction of its own (every entity it
// holds is, from this rank's point of view, "local source data it may
// need") — ghost bookkeeping belongs to the original per-rank partitions,
// not to this transient post-exchange union.
func mergePartitions(dim int, received []partitionPayload) (*flatmesh.FlatMesh, *flatmesh.FlatState, error) {
	for _, p := range received {
		if len(p.CellNodeGIDs) != sumInts(p.CellNodeCounts) {
			return nil, nil, chk.Err("distribute: payload cell/node CSR size mismatch: got %d node refs, counts sum to %d",
				len(p.CellNodeGIDs), sumInts(p.CellNodeCounts))
		}
		if dim == 3 && len(p.CellFacePacked) != sumInts(p.CellFaceCounts) {
			return nil, nil, chk.Err("distribute: payload cell/face CSR size mismatch: got %d face refs, counts sum to %d",
				len(p.CellFacePacked), sumInts(p.CellFaceCounts))
		}
	}

	nodeIndex := map[int64]int{}
	var nodeGIDs []int64
	var coords []float64
	addNode := func(gid int64, coord []float64) int {
		if idx, ok := nodeIndex[gid]; ok {
			return idx
		}
		idx := len(nodeGIDs)
		nodeIndex[gid] = idx
		nodeGIDs = append(nodeGIDs, gid)
		coords = append(coords, coord...)
		return idx
	}

	cellIndex := map[int64]int{}
	var cellGIDs []int64
	addCell := func(gid int64) (idx int, isNew bool) {
		if idx, ok := cellIndex[gid]; ok {
			return idx, false
		}
		idx = len(cellGIDs)
		cellIndex[gid] = idx
		cellGIDs = append(cellGIDs, gid)
		return idx, true
	}

	faceIndex := map[int64]int{}
	var faceGIDs []int64
	addFace := func(gid int64) (idx int, isNew bool) {
		if idx, ok := faceIndex[gid]; ok {
			return idx, false
		}
		idx = len(faceGIDs)
		faceIndex[gid] = idx
		faceGIDs = append(faceGIDs, gid)
		return idx, true
	}

	var cellNodeCounts []int
	var cellToNode []int
	var cellFaceCounts []int
	var cellToFace []int
	var cellToFaceDirs []bool
	var faceNodeCounts []int
	var faceToNode []int
	var faceToCells [][]int

	meshFieldValues := map[string]map[int64][]float64{}
	meshFieldStride := map[string]int{}
	var meshFieldOrder []string

	for _, p := range received {
		for i, gid := range p.NodeGIDs {
			addNode(gid, p.NodeCoords[i*dim:(i+1)*dim])
		}
	}

	// node bounding-box/ownership style accounting is irrelevant past this
	// point: cell/face CSR below is rebuilt purely off global ids.
	for _, p := range received {
		cellOff := prefixSumLocal(p.CellNodeCounts)
		var faceOff []int
		if dim == 3 {
			faceOff = prefixSumLocal(p.FaceNodeCounts)
			for f, gid := range p.FaceGIDs {
				if _, isNew := addFace(gid); !isNew {
					continue
				}
				lo, hi := faceOff[f], faceOff[f+1]
				faceNodeCounts = append(faceNodeCounts, p.FaceNodeCounts[f])
				for _, ngid := range p.FaceNodeGIDs[lo:hi] {
					faceToNode = append(faceToNode, nodeIndex[ngid])
				}
			}
		}

		cellFaceOff := prefixSumLocal(p.CellFaceCounts)
		for c, gid := range p.CellGIDs {
			if _, isNew := addCell(gid); !isNew {
				continue
			}
			lo, hi := cellOff[c], cellOff[c+1]
			cellNodeCounts = append(cellNodeCounts, p.CellNodeCounts[c])
			for _, ngid := range p.CellNodeGIDs[lo:hi] {
				cellToNode = append(cellToNode, nodeIndex[ngid])
			}
			if dim == 3 {
				flo, fhi := cellFaceOff[c], cellFaceOff[c+1]
				cellFaceCounts = append(cellFaceCounts, p.CellFaceCounts[c])
				for _, packed := range p.CellFacePacked[flo:fhi] {
					fgid := packed >> 1
					dir := packed&1 == 1
					cellToFace = append(cellToFace, faceIndex[fgid])
					cellToFaceDirs = append(cellToFaceDirs, dir)
				}
			}
		}

		for _, name := range p.FieldNames {
			if _, ok := meshFieldValues[name]; !ok {
				meshFieldOrder = append(meshFieldOrder, name)
				meshFieldValues[name] = map[int64][]float64{}
			}
		}
		for i, name := range p.FieldNames {
			stride := p.FieldStride[i]
			meshFieldStride[name] = stride
			buf := p.FieldValues[i]
			dst := meshFieldValues[name]
			for c, gid := range p.CellGIDs {
				if _, exists := dst[gid]; exists {
					continue
				}
				dst[gid] = append([]float64(nil), buf[c*stride:(c+1)*stride]...)
			}
		}
	}

	// re-derive FaceToCells from the now-complete cell index, since a
	// face's incident cells may have been assigned local indices by a
	// later payload than the one that first introduced the face.
	if dim == 3 {
		faceToCells = make([][]int, len(faceGIDs))
		for _, p := range received {
			for f, gid := range p.FaceGIDs {
				idx := faceIndex[gid]
				if faceToCells[idx] != nil {
					continue
				}
				pair := p.FaceCellGIDs[f]
				var cells []int
				if c, ok := cellIndex[pair[0]]; ok && pair[0] >= 0 {
					cells = append(cells, c)
				}
				if pair[1] >= 0 {
					if c, ok := cellIndex[pair[1]]; ok {
						cells = append(cells, c)
					}
				}
				faceToCells[idx] = cells
			}
		}
	}

	matNames, matCells := reconcileMaterials(cellIndex, received)
	matFieldOrder, matFieldValues, matFieldStride := reconcileMatFields(received)

	m := flatmesh.New(dim)
	m.Coords = coords
	m.NodeGIDs = nodeGIDs
	m.CellGIDs = cellGIDs
	m.FaceGIDs = faceGIDs
	m.CellNodeCounts = cellNodeCounts
	m.CellToNode = cellToNode
	m.FaceNodeCounts = faceNodeCounts
	m.FaceToNode = faceToNode
	m.FaceToCells = faceToCells
	m.CellFaceCounts = cellFaceCounts
	m.CellToFace = cellToFace
	m.CellToFaceDirs = cellToFaceDirs
	m.SetNumOwnedNodes(len(nodeGIDs), len(nodeGIDs))
	m.SetNumOwnedCells(len(cellGIDs), len(cellGIDs))
	m.SetNumOwnedFaces(len(faceGIDs), len(faceGIDs))
	if err := m.FinishInit(); err != nil {
		return nil, nil, err
	}

	st := flatmesh.NewFlatState()
	for _, name := range meshFieldOrder {
		stride := meshFieldStride[name]
		vals := make([]float64, len(cellGIDs)*stride)
		for c, gid := range cellGIDs {
			if v, ok := meshFieldValues[name][gid]; ok {
				copy(vals[c*stride:(c+1)*stride], v)
			}
		}
		st.AddMeshField(name, mesh.Cell, state.Buffer{Values: vals, Stride: stride})
	}
	for idx, name := range matNames {
		st.AddMaterial(name, matCells[idx])
	}
	for _, name := range matFieldOrder {
		st.AddMultiMaterialField(name, mesh.Cell)
		stride := matFieldStride[name]
		for matID, matName := range matNames {
			cells := matCells[matID]
			vals := make([]float64, len(cells)*stride)
			byGID := matFieldValues[name][matName]
			for i, c := range cells {
				if v, ok := byGID[cellGIDs[c]]; ok {
					copy(vals[i*stride:(i+1)*stride], v)
				}
			}
			st.SetMaterialCellData(name, matID, state.Buffer{Values: vals, Stride: stride})
		}
	}

	return m, st, nil
}

// reconcileMatFields merges every payload's per-(material,cell)
// multi-material field values, keyed by field name then material name then
// cell global id, so the caller can re-align them to the final
// post-dedup material cell ordering.
func reconcileMatFields(received []partitionPayload) (order []string, values map[string]map[string]map[int64][]float64, stride map[string]int) {
	values = map[string]map[string]map[int64][]float64{}
	stride = map[string]int{}
	for _, p := range received {
		for _, name := range p.MatFieldNames {
			if _, ok := values[name]; !ok {
				order = append(order, name)
				values[name] = map[string]map[int64][]float64{}
			}
		}
	}
	for _, p := range received {
		for _, name := range p.MatFieldNames {
			perMat := p.MatFieldValues[name]
			for mi, matName := range p.MatNames {
				if mi >= len(perMat) {
					continue
				}
				vals, gids := perMat[mi], p.MatCellGIDs[mi]
				if len(gids) == 0 || len(vals) == 0 {
					continue
				}
				s := len(vals) / len(gids)
				stride[name] = s
				dst, ok := values[name][matName]
				if !ok {
					dst = map[int64][]float64{}
					values[name][matName] = dst
				}
				for j, gid := range gids {
					if _, exists := dst[gid]; exists {
						continue
					}
					dst[gid] = append([]float64(nil), vals[j*s:(j+1)*s]...)
				}
			}
		}
	}
	return order, values, stride
}

// reconcileMaterials merges every payload's per-material cell-global-id
// lists into de-duplicated local-index lists. The de-dup loop reads each
// raw entry into a local before deciding whether to keep it and only then
// advances the write cursor — never combining the read and the
// post-increment in one expression (Open Question decision #2 in
// DESIGN.md): doing the latter would skip evaluating the dedup map on
// every other entry once duplicates start appearing.
func reconcileMaterials(cellIndex map[int64]int, received []partitionPayload) (matNames []string, matCells [][]int) {
	matIndexByName := map[string]int{}
	for _, p := range received {
		for mi, name := range p.MatNames {
			idx, ok := matIndexByName[name]
			if !ok {
				idx = len(matNames)
				matIndexByName[name] = idx
				matNames = append(matNames, name)
				matCells = append(matCells, nil)
			}
			for _, gid := range p.MatCellGIDs[mi] {
				matCells[idx] = append(matCells[idx], cellIndex[gid])
			}
		}
	}

	for idx, all := range matCells {
		seen := map[int]bool{}
		running := 0
		for i := 0; i < len(all); i++ {
			rep := all[i]
			if seen[rep] {
				continue
			}
			seen[rep] = true
			all[running] = rep
			running++
		}
		matCells[idx] = all[:running]
	}
	return matNames, matCells
}

func prefixSumLocal(counts []int) []int {
	offsets := make([]int, len(counts)+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}
	return offsets
}

func sumInts(v []int) int {
	total := 0
	for _, x := range v {
		total += x
	}
	return total
}
