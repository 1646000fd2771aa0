// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distribute

// The wire format below is a flat, self-describing header-then-sections
// encoding of partitionPayload, so a single size-exchange round
// (spec.md §4.4 step 3) tells the receiver exactly how much to Recv for
// the payload round (step 4). Every section is length-prefixed by the
// fixed 12-int header rather than inferred from adjacent section sizes,
// so 2D payloads (where the 3D-only face sections are simply empty) need
// no special-casing on decode.

const headerLen = 12

func encodePayload(p partitionPayload) (ints []int, floats []float64, strs []string) {
	nMats := len(p.MatNames)
	matCellCounts := make([]int, nMats)
	matCellTotal := 0
	for i, gids := range p.MatCellGIDs {
		matCellCounts[i] = len(gids)
		matCellTotal += len(gids)
	}

	header := []int{
		p.Dim,
		len(p.NodeGIDs),
		len(p.CellGIDs),
		len(p.CellNodeGIDs),
		len(p.FaceGIDs),
		len(p.FaceNodeGIDs),
		len(p.CellFaceCounts),
		len(p.CellFacePacked),
		nMats,
		matCellTotal,
		len(p.FieldNames),
		len(p.MatFieldNames),
	}
	ints = append(ints, header...)

	ints = append(ints, int64SliceToInt(p.NodeGIDs)...)
	ints = append(ints, int64SliceToInt(p.CellGIDs)...)
	ints = append(ints, p.CellNodeCounts...)
	ints = append(ints, int64SliceToInt(p.CellNodeGIDs)...)
	ints = append(ints, int64SliceToInt(p.FaceGIDs)...)
	ints = append(ints, p.FaceNodeCounts...)
	ints = append(ints, int64SliceToInt(p.FaceNodeGIDs)...)
	for _, pair := range p.FaceCellGIDs {
		ints = append(ints, int(pair[0]), int(pair[1]))
	}
	ints = append(ints, p.CellFaceCounts...)
	ints = append(ints, int64SliceToInt(p.CellFacePacked)...)
	ints = append(ints, matCellCounts...)
	for _, gids := range p.MatCellGIDs {
		ints = append(ints, int64SliceToInt(gids)...)
	}
	ints = append(ints, p.FieldStride...)
	matFieldStride := make([]int, len(p.MatFieldNames))
	for i, name := range p.MatFieldNames {
		perMat := p.MatFieldValues[name]
		for m, vals := range perMat {
			if matCellCounts[m] > 0 {
				matFieldStride[i] = len(vals) / matCellCounts[m]
				break
			}
		}
	}
	ints = append(ints, matFieldStride...)

	floats = append(floats, p.NodeCoords...)
	floats = append(floats, flatten(p.FieldValues)...)
	for _, name := range p.MatFieldNames {
		floats = append(floats, flatten(p.MatFieldValues[name])...)
	}

	strs = append(strs, p.MatNames...)
	strs = append(strs, p.FieldNames...)
	strs = append(strs, p.MatFieldNames...)
	return ints, floats, strs
}

func decodePayload(dim int, ints []int, floats []float64, strs []string) partitionPayload {
	h := ints[:headerLen]
	nNodes, nCells, nCellNodeGIDs := h[1], h[2], h[3]
	nFaces, nFaceNodeGIDs := h[4], h[5]
	nCellFaceCounts, nCellFacePacked := h[6], h[7]
	nMats, matCellTotal := h[8], h[9]
	nFields, nMatFields := h[10], h[11]

	p := partitionPayload{Dim: h[0]}
	i := headerLen

	take := func(n int) []int { s := ints[i : i+n]; i += n; return s }

	p.NodeGIDs = intSliceToInt64(take(nNodes))
	p.CellGIDs = intSliceToInt64(take(nCells))
	p.CellNodeCounts = take(nCells)
	p.CellNodeGIDs = intSliceToInt64(take(nCellNodeGIDs))
	p.FaceGIDs = intSliceToInt64(take(nFaces))
	p.FaceNodeCounts = take(nFaces)
	p.FaceNodeGIDs = intSliceToInt64(take(nFaceNodeGIDs))
	pairs := take(2 * nFaces)
	p.FaceCellGIDs = make([][2]int64, nFaces)
	for f := 0; f < nFaces; f++ {
		p.FaceCellGIDs[f] = [2]int64{int64(pairs[2*f]), int64(pairs[2*f+1])}
	}
	p.CellFaceCounts = take(nCellFaceCounts)
	p.CellFacePacked = intSliceToInt64(take(nCellFacePacked))

	matCellCounts := take(nMats)
	p.MatCellGIDs = make([][]int64, nMats)
	for m := 0; m < nMats; m++ {
		p.MatCellGIDs[m] = intSliceToInt64(take(matCellCounts[m]))
	}
	_ = matCellTotal

	p.FieldStride = take(nFields)
	matFieldStride := take(nMatFields)

	fi := 0
	take64 := func(n int) []float64 { s := floats[fi : fi+n]; fi += n; return s }

	p.NodeCoords = take64(dim * nNodes)
	p.FieldValues = make([][]float64, nFields)
	for k := 0; k < nFields; k++ {
		p.FieldValues[k] = take64(nCells * p.FieldStride[k])
	}
	p.MatFieldValues = map[string][][]float64{}

	p.MatNames = strs[:nMats]
	p.FieldNames = strs[nMats : nMats+nFields]
	p.MatFieldNames = strs[nMats+nFields : nMats+nFields+nMatFields]

	for k, name := range p.MatFieldNames {
		perMat := make([][]float64, nMats)
		for m := 0; m < nMats; m++ {
			perMat[m] = take64(matCellCounts[m] * matFieldStride[k])
		}
		p.MatFieldValues[name] = perMat
	}
	return p
}

func flatten(vv [][]float64) []float64 {
	var out []float64
	for _, v := range vv {
		out = append(out, v...)
	}
	return out
}

func int64SliceToInt(v []int64) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

func intSliceToInt64(v []int) []int64 {
	out := make([]int64, len(v))
	for i, x := range v {
		out[i] = int64(x)
	}
	return out
}

// encodeStrings/decodeStrings pack a []string into a []int (length-prefixed
// Unicode code points) since Communicator only carries ints and floats.
func encodeStrings(strs []string) []int {
	var out []int
	for _, s := range strs {
		runes := []rune(s)
		out = append(out, len(runes))
		for _, r := range runes {
			out = append(out, int(r))
		}
	}
	return out
}

func decodeStrings(data []int) []string {
	var out []string
	i := 0
	for i < len(data) {
		n := data[i]
		i++
		runes := make([]rune, n)
		for k := 0; k < n; k++ {
			runes[k] = rune(data[i+k])
		}
		i += n
		out = append(out, string(runes))
	}
	return out
}
