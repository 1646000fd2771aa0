// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distribute

import (
	"github.com/cpmech/portage/flatmesh"
	"github.com/cpmech/portage/mesh"
	"github.com/cpmech/portage/state"
)

// partitionPayload is one rank's cell closure for a single exchange round
// (owned cells, or ghost cells — spec.md §4.4 step 3 sends these as two
// separate rounds per category so the receiver can append ghost data
// after all owned data is placed), addressed entirely by global id so the
// receiver can merge several partitions' payloads without any of them
// knowing the others' local numbering (step 5: "converts them to global
// ids before sending").
type partitionPayload struct {
	Dim int

	NodeGIDs   []int64
	NodeCoords []float64 // Dim*len(NodeGIDs), interleaved

	CellGIDs       []int64
	CellNodeCounts []int
	CellNodeGIDs   []int64 // CSR over CellGIDs, addressed by NodeGIDs

	FaceGIDs       []int64 // 3D only
	FaceNodeCounts []int
	FaceNodeGIDs   []int64
	FaceCellGIDs   [][2]int64 // -1 sentinel for boundary

	CellFaceCounts []int
	// packed (face_gid<<1)|dir per incidence, spec.md §4.4 step 6,
	// generalized from local face ids to global ids since this travels
	// between partitions.
	CellFacePacked []int64

	MatNames    []string
	MatCellGIDs [][]int64

	FieldNames  []string
	FieldStride []int
	FieldValues [][]float64 // parallel to CellGIDs, per field

	MatFieldNames  []string
	MatFieldValues map[string][][]float64 // [fieldName][materialIndex], parallel to MatCellGIDs[materialIndex]
}

// buildSendPlan extracts the cell closure of local over the half-open
// range [lo,hi) into a global-id-addressed payload ready to ship to any
// peer. Distribute calls this once for the owned range and once for the
// ghost range (spec.md §4.4 step 3), since those travel as two separate
// rounds per category.
func buildSendPlan(local *flatmesh.FlatMesh, localState *flatmesh.FlatState, lo, hi int) partitionPayload {
	p := partitionPayload{Dim: local.Dim}
	rangeLen := hi - lo

	nodeSeen := map[int64]bool{}
	addNode := func(nd int) {
		gid := local.NodeGlobalID(nd)
		if nodeSeen[gid] {
			return
		}
		nodeSeen[gid] = true
		p.NodeGIDs = append(p.NodeGIDs, gid)
		coord := local.NodeGetCoordinates(nd)
		for i := 0; i < local.Dim; i++ {
			p.NodeCoords = append(p.NodeCoords, coord.Coords[i])
		}
	}

	p.CellGIDs = make([]int64, rangeLen)
	p.CellNodeCounts = make([]int, rangeLen)
	for i := 0; i < rangeLen; i++ {
		c := lo + i
		p.CellGIDs[i] = local.CellGlobalID(c)
		nodes := local.CellGetNodes(c)
		p.CellNodeCounts[i] = len(nodes)
		for _, nd := range nodes {
			addNode(nd)
			p.CellNodeGIDs = append(p.CellNodeGIDs, local.NodeGlobalID(nd))
		}
	}

	if local.Dim == 3 {
		faceSeen := map[int64]bool{}
		p.CellFaceCounts = make([]int, rangeLen)
		for i := 0; i < rangeLen; i++ {
			c := lo + i
			faceIDs, dirs := local.CellGetFacesAndDirs(c)
			p.CellFaceCounts[i] = len(faceIDs)
			for j, f := range faceIDs {
				fgid := local.FaceGlobalID(f)
				packed := fgid<<1 | boolToInt64(dirs[j])
				p.CellFacePacked = append(p.CellFacePacked, packed)
				if faceSeen[fgid] {
					continue
				}
				faceSeen[fgid] = true
				p.FaceGIDs = append(p.FaceGIDs, fgid)
				faceNodes := local.FaceGetNodes(f)
				p.FaceNodeCounts = append(p.FaceNodeCounts, len(faceNodes))
				for _, fn := range faceNodes {
					addNode(fn)
					p.FaceNodeGIDs = append(p.FaceNodeGIDs, local.NodeGlobalID(fn))
				}
				var pair [2]int64
				cells := local.FaceGetCells(f)
				pair[0] = local.CellGlobalID(cells[0])
				if len(cells) == 2 {
					pair[1] = local.CellGlobalID(cells[1])
				} else {
					pair[1] = -1
				}
				p.FaceCellGIDs = append(p.FaceCellGIDs, pair)
			}
		}
	}

	// matRangeCells holds, per material actually present in [lo,hi), the
	// local cell indices in that range and their position within the
	// material's full per-cell buffers (for MatGetCellData lookups below).
	// Materials with zero cells in this round are omitted entirely so
	// MatNames/MatCellGIDs/MatFieldValues stay positionally parallel
	// without encoding a material count fixed across rounds.
	type matRangeCells struct {
		matID    int
		cells    []int
		matIndex []int
	}
	var matRanges []matRangeCells
	for matID := 0; matID < localState.NumMaterials(); matID++ {
		var cells []int
		var matIndex []int
		for _, c := range localState.MatGetCells(matID) {
			if c >= lo && c < hi {
				cells = append(cells, c)
				matIndex = append(matIndex, localState.CellIndexInMaterial(c, matID))
			}
		}
		if len(cells) == 0 {
			continue
		}
		matRanges = append(matRanges, matRangeCells{matID: matID, cells: cells, matIndex: matIndex})
	}
	for _, mr := range matRanges {
		p.MatNames = append(p.MatNames, localState.MaterialName(mr.matID))
		gids := make([]int64, len(mr.cells))
		for i, c := range mr.cells {
			gids[i] = local.CellGlobalID(c)
		}
		p.MatCellGIDs = append(p.MatCellGIDs, gids)
	}

	p.MatFieldValues = map[string][][]float64{}
	for _, name := range localState.Names() {
		if localState.GetEntity(name) != mesh.Cell {
			continue
		}
		switch localState.FieldType(mesh.Cell, name) {
		case state.MeshField:
			buf := localState.MeshGetData(mesh.Cell, name)
			vals := make([]float64, rangeLen*buf.Stride)
			for i := 0; i < rangeLen; i++ {
				copy(vals[i*buf.Stride:(i+1)*buf.Stride], buf.At(lo+i))
			}
			p.FieldNames = append(p.FieldNames, name)
			p.FieldStride = append(p.FieldStride, buf.Stride)
			p.FieldValues = append(p.FieldValues, vals)
		case state.MultiMaterialField:
			p.MatFieldNames = append(p.MatFieldNames, name)
			perMat := make([][]float64, len(matRanges))
			for i, mr := range matRanges {
				buf := localState.MatGetCellData(name, mr.matID)
				stride := maxInt(buf.Stride, 1)
				vals := make([]float64, len(mr.matIndex)*stride)
				for j, pos := range mr.matIndex {
					if pos < 0 {
						continue
					}
					copy(vals[j*stride:(j+1)*stride], buf.At(pos))
				}
				perMat[i] = vals
			}
			p.MatFieldValues[name] = perMat
		}
	}

	return p
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// sendPartition ships p to rank `to` as a size-exchange round followed by
// a payload round per category (spec.md §4.4 steps 3-4). Sizes and
// payloads are encoded through encodePayload/decodePayload so the wire
// format lives in one place.
func sendPartition(comm Communicator, p partitionPayload, to int) {
	ints, floats, strs := encodePayload(p)
	comm.SendInts([]int{len(ints), len(floats), len(strs)}, to)
	comm.SendInts(ints, to)
	comm.SendFloats(floats, to)
	comm.SendInts(encodeStrings(strs), to)
}

func recvPartition(comm Communicator, dim int, from int) partitionPayload {
	sizes := comm.RecvInts(3, from)
	ints := comm.RecvInts(sizes[0], from)
	floats := comm.RecvFloats(sizes[1], from)
	strInts := comm.RecvInts(sizes[2], from)
	strs := decodeStrings(strInts)
	return decodePayload(dim, ints, floats, strs)
}
