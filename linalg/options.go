// SPDX-License-Identifier: MIT

package linalg

import "math"

// DefaultPivotScale multiplies machine epsilon in the default tolerance
// tol = DefaultPivotScale * n * ε * ‖A‖∞.
const DefaultPivotScale = 1.0

// machineEpsilon is the spacing of float64 values around 1.
const machineEpsilon = 0x1p-52

const (
	panicPivotTolInvalid = "linalg: WithPivotTolerance: tolerance must be finite and non-negative"
	panicPivotRelInvalid = "linalg: WithRelativePivotTolerance: scale must be finite and non-negative"
)

// Option configures a factorization. Constructors panic only on nonsensical values.
type Option func(*options)

type options struct {
	tol    float64
	hasTol bool
	rel    float64
	hasRel bool
}

// WithPivotTolerance fixes an absolute pivot tolerance: elimination fails with
// ErrSingular when the largest available |pivot| is <= tol.
// Panics if tol is negative, NaN or ±Inf.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicPivotTolInvalid)
	}

	return func(o *options) {
		o.tol = tol
		o.hasTol = true
	}
}

// WithRelativePivotTolerance sets the tolerance to rel·n·‖A‖∞ instead of the
// default ε·n·‖A‖∞. Matrices built from inexact data (finite-difference
// Jacobians) need rel well above ε. WithPivotTolerance takes precedence.
// Panics if rel is negative, NaN or ±Inf.
func WithRelativePivotTolerance(rel float64) Option {
	if rel < 0 || math.IsNaN(rel) || math.IsInf(rel, 0) {
		panic(panicPivotRelInvalid)
	}

	return func(o *options) {
		o.rel = rel
		o.hasRel = true
	}
}

func gatherOptions(user ...Option) options {
	var o options
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// DefaultPivotTolerance returns n·ε·normInf, the threshold used when no
// WithPivotTolerance option is given.
func DefaultPivotTolerance(n int, normInf float64) float64 {
	return DefaultPivotScale * float64(n) * machineEpsilon * normInf
}

// resolve returns the pivot tolerance for an n×n matrix with ‖A‖∞ = normInf.
func (o options) resolve(n int, normInf float64) float64 {
	switch {
	case o.hasTol:
		return o.tol
	case o.hasRel:
		return o.rel * float64(n) * normInf
	default:
		return DefaultPivotTolerance(n, normInf)
	}
}
