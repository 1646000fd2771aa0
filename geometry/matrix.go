// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gosl/chk"
)

// SolveNormalEquations solves the small (2x2 or 3x3) symmetric
// normal-equations system A*x = b arising from the weighted least-squares
// gradient fit (spec.md §4.7). When A is rank-deficient (e.g. a boundary
// entity with a degenerate neighbor stencil) it falls back to a
// pseudo-inverse via SVD rather than failing the reconstruction outright;
// this is the gonum-backed path noted in SPEC_FULL.md's domain stack.
func SolveNormalEquations(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	dense := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dense.Set(i, j, a[i][j])
		}
	}
	rhs := mat.NewVecDense(n, b)
	var x mat.VecDense
	if err := x.SolveVec(dense, rhs); err != nil {
		return pseudoInverseSolve(dense, rhs, n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// pseudoInverseSolve solves A*x = b via the Moore-Penrose pseudo-inverse
// computed from the SVD of A, used when the normal equations are singular.
func pseudoInverseSolve(a *mat.Dense, b *mat.VecDense, n int) ([]float64, error) {
	var svd mat.SVD
	ok := svd.Factorize(a, mat.SVDThin)
	if !ok {
		return nil, chk.Err("geometry: SVD factorization failed while solving rank-deficient normal equations")
	}
	var pinv mat.Dense
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)
	sigmaPlus := mat.NewDense(n, n, nil)
	const tol = 1e-12
	for i, s := range values {
		if s > tol {
			sigmaPlus.Set(i, i, 1/s)
		}
	}
	var tmp mat.Dense
	tmp.Mul(&v, sigmaPlus)
	pinv.Mul(&tmp, u.T())

	var xv mat.VecDense
	xv.MulVec(&pinv, b)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = xv.AtVec(i)
	}
	return out, nil
}
