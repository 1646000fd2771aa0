// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gradient

import "github.com/cpmech/portage/geometry"

// BoundaryPolicy controls how boundary entities are limited, kept separate
// from the interior Barth-Jespersen pass so boundary cells do not
// spuriously clamp interior gradients (spec.md §4.7).
type BoundaryPolicy int

const (
	BndNoLimiter BoundaryPolicy = iota
	BndZeroGradient
	BndBarthJespersen
)

// BarthJespersen computes the largest α ∈ [0,1] such that the linear
// reconstruction φᵢ + α·∇φ·(v−xᵢ) stays within [φ_min,φ_max] at every
// sample vertex v (spec.md §4.7), then returns grad scaled by α.
//
// phiMin/phiMax should already include both the center value and its
// neighbors' values, i.e. φ_min = min(φᵢ, minⱼ φⱼ) and symmetrically for
// φ_max, per spec.md §4.7.
func BarthJespersen(center geometry.Point, centerVal, phiMin, phiMax float64, grad geometry.Point, vertices []geometry.Point) geometry.Point {
	alpha := 1.0
	for _, v := range vertices {
		delta := grad.Dot(v.Sub(center))
		recon := centerVal + delta
		var a float64
		switch {
		case delta == 0:
			a = 1
		case recon > phiMax:
			a = (phiMax - centerVal) / delta
		case recon < phiMin:
			a = (phiMin - centerVal) / delta
		default:
			a = 1
		}
		if a < alpha {
			alpha = a
		}
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return grad.Scale(alpha)
}

// ApplyBoundaryPolicy applies policy to a boundary entity's gradient,
// independent of the interior Barth-Jespersen pass (spec.md §4.7).
func ApplyBoundaryPolicy(policy BoundaryPolicy, grad geometry.Point, limited func() geometry.Point) geometry.Point {
	switch policy {
	case BndZeroGradient:
		return geometry.Point{Dim: grad.Dim}
	case BndBarthJespersen:
		return limited()
	default: // BndNoLimiter
		return grad
	}
}

// Extrema returns φ_min = min(φᵢ, minⱼ φⱼ) and φ_max = max(φᵢ, maxⱼ φⱼ)
// over centerVal and neighborVals (spec.md §4.7).
func Extrema(centerVal float64, neighborVals []float64) (min, max float64) {
	min, max = centerVal, centerVal
	for _, v := range neighborVals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}
