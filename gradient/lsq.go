// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gradient implements the weighted least-squares gradient
// reconstruction and Barth-Jespersen limiter of spec.md §4.7, operating
// identically on cell-centered and node-centered (dual-mesh) stencils.
package gradient

import "github.com/cpmech/portage/geometry"

// Weighter assigns a weight to the (i,j) neighbor pair in the least-squares
// fit; the default is uniform (w=1), with a faceted (inverse-distance)
// variant grounded on original_source/portage/support/faceted_setup.h
// (spec.md's SPEC_FULL.md domain-stack note).
type Weighter func(xi, xj geometry.Point) float64

// UniformWeight is the default weighter (spec.md §4.7: "Weights wⱼ default
// to 1").
func UniformWeight(xi, xj geometry.Point) float64 { return 1 }

// FacetedWeight is the 1/‖xⱼ−xᵢ‖ variant (spec.md §4.7: "a faceted-weight
// mode uses 1/‖xⱼ − xᵢ‖").
func FacetedWeight(xi, xj geometry.Point) float64 {
	d := xj.Sub(xi).Norm()
	if d == 0 {
		return 0
	}
	return 1 / d
}

// Accumulate bundles one entity's neighbor stencil (positions and field
// values) for the least-squares solve, the same grouping
// original_source/portage/accumulate's Accumulate collaborator performs
// before handing data to the weight/estimate stage.
type Accumulate struct {
	Center      geometry.Point
	CenterValue float64
	Neighbors   []geometry.Point
	NeighborVal []float64
	Weighter    Weighter
}

// Reconstruct solves the weighted normal equations of spec.md §4.7:
//
//	minimize Σⱼ wⱼ·(φⱼ − φᵢ − ∇φ·(xⱼ − xᵢ))²
//
// returning the reconstructed gradient ∇φ at the center. dim must be 2 or
// 3 and match the dimension of Center/Neighbors.
func (a Accumulate) Reconstruct(dim int) (geometry.Point, error) {
	w := a.Weighter
	if w == nil {
		w = UniformWeight
	}
	amat := make([][]float64, dim)
	for i := range amat {
		amat[i] = make([]float64, dim)
	}
	bvec := make([]float64, dim)

	for j, xj := range a.Neighbors {
		dx := xj.Sub(a.Center)
		wj := w(a.Center, xj)
		dphi := a.NeighborVal[j] - a.CenterValue
		for p := 0; p < dim; p++ {
			bvec[p] += wj * dx.Coords[p] * dphi
			for q := 0; q < dim; q++ {
				amat[p][q] += wj * dx.Coords[p] * dx.Coords[q]
			}
		}
	}

	sol, err := geometry.SolveNormalEquations(amat, bvec)
	if err != nil {
		return geometry.Point{}, err
	}
	grad := geometry.Point{Dim: dim}
	for i := 0; i < dim; i++ {
		grad.Coords[i] = sol[i]
	}
	return grad, nil
}
