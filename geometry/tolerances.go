// Copyright 2026 The Portage Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

// Tolerances carries the five tolerance knobs referenced throughout the
// pipeline as plain data (spec.md §4.1); no package-level default is a
// singleton, it travels explicitly from driver to every stage it touches.
type Tolerances struct {
	PolygonConvexityEps       float64 // polygon_convexity_eps
	MinimalIntersectionVolume float64 // minimal_intersection_volume
	IntersectBBRelativeDist   float64 // intersect_bb_relative_distance
	MinRelativeVolume         float64 // min_relative_volume
	DriverRelativeMinMatVol   float64 // driver_relative_min_mat_vol
}

// DefaultTolerances returns the tolerances named in spec.md §4.1.
func DefaultTolerances() Tolerances {
	return Tolerances{
		PolygonConvexityEps:       1e-14,
		MinimalIntersectionVolume: -1e-14,
		IntersectBBRelativeDist:   1e-12,
		MinRelativeVolume:         1e-12,
		DriverRelativeMinMatVol:   1e-10,
	}
}

// ConservationTolFactor is the default conservation tolerance used by
// mismatch repair (spec.md §3 invariant 6) as a multiple of machine
// epsilon, so it scales with the float64 representation portage is built
// on; DefaultConservationTol turns it into the tolerance itself.
const ConservationTolFactor = 100

// MachineEps is the float64 machine epsilon, i.e. the smallest value such
// that 1+MachineEps != 1 in float64 arithmetic.
const MachineEps = 2.220446049250313e-16

// DefaultConservationTol returns 100*machine-epsilon, the default named in
// spec.md §3 invariant 6.
func DefaultConservationTol() float64 {
	return ConservationTolFactor * MachineEps
}
