// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package interpolate implements the 1st/2nd order combination of source
// values and intersection moments into a target value (spec.md §4.8),
// operating identically on cells and dual cells (nodes).
package interpolate

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/portage/geometry"
)

// Weight is the (source_entity_id, moments) pair intersect.go supplies to
// the interpolator (GLOSSARY "Weight"). The interpolator must be
// commutative and associative over a list of Weights (spec.md §5, §8.6);
// both formulas below sum term-by-term and so satisfy this independent of
// list order.
type Weight struct {
	SourceID int
	Moments  geometry.Moments
}

// Order selects 1st or 2nd order combination.
type Order int

const (
	FirstOrder Order = iota
	SecondOrder
)

// SourceField provides per-source-entity data the interpolator needs:
// value, gradient (2nd order only), and source centroid (2nd order only).
type SourceField struct {
	Value    func(id int) float64
	Gradient func(id int) geometry.Point // nil for 1st order
	Centroid func(id int) geometry.Point // nil for 1st order
}

// Interpolate combines weights into a target value via First or Second
// order formulas (spec.md §4.8). The bool return reports whether the
// target entity had any overlap at all (false => empty, handled by
// repair.go's Empty_fixup_type, not an error per spec.md §7).
func Interpolate(order Order, weights []Weight, field SourceField) (float64, bool) {
	var sumW0, sumNumerator float64
	for _, w := range weights {
		w0 := w.Moments.Volume
		sumW0 += w0
		switch order {
		case FirstOrder:
			sumNumerator += field.Value(w.SourceID) * w0
		case SecondOrder:
			grad := field.Gradient(w.SourceID)
			xs := field.Centroid(w.SourceID)
			// w1 - w0*x_s, the overlap-piece first moment shifted to be
			// relative to the source centroid, per spec.md §4.8's
			// "evaluate the linear reconstruction at the centroid of
			// each overlap piece and volume-weight" formulation.
			shifted := w.Moments.Moment1.Sub(xs.Scale(w0))
			dim := grad.Dim
			correction := la.VecDot(grad.Coords[:dim], shifted.Coords[:dim])
			sumNumerator += field.Value(w.SourceID)*w0 + correction
		}
	}
	if sumW0 <= 0 {
		return 0, false
	}
	return sumNumerator / sumW0, true
}

// TotalOverlapVolume returns Σw0 over weights, used by driver.go to decide
// full/partial/empty per spec.md §4.9.
func TotalOverlapVolume(weights []Weight) float64 {
	var total float64
	for _, w := range weights {
		total += w.Moments.Volume
	}
	return total
}
