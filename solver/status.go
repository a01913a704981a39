// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nlsolve/matrix"
)

// Status is the state of one iterative solve.
//
//	Initialized → Iterating → {Converged, Diverged, MaxIterExceeded}
type Status uint8

const (
	Initialized Status = iota
	Iterating
	Converged
	Diverged
	MaxIterExceeded
)

// String returns a short human-readable tag.
func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	case MaxIterExceeded:
		return "max-iter-exceeded"
	default:
		return "unknown-status"
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Converged || s == Diverged || s == MaxIterExceeded
}

// Result is the outcome of an iterative solve. It is populated for every
// terminal status, including MaxIterExceeded and Diverged.
type Result struct {
	X            *matrix.Vector // final (or last valid) iterate
	Residual     *matrix.Vector // f(X); nil when X was never evaluated successfully
	ResidualNorm float64        // ‖f(X)‖ in the configured norm
	StepNorm     float64        // norm of the last applied update; 0 before the first one
	Iterations   int            // number of applied updates
	Status       Status
}

// Converged reports whether the solve met its convergence predicate.
func (r *Result) Converged() bool { return r != nil && r.Status == Converged }

// Scalar returns X[0], the root or minimizer of a one-dimensional solve.
// It returns NaN when X is empty or missing.
func (r *Result) Scalar() float64 {
	if r == nil || r.X == nil || r.X.Len() == 0 {
		return math.NaN()
	}

	return r.X.RawData()[0]
}

func (r *Result) String() string {
	return fmt.Sprintf("%s after %d iterations: x=%v ‖r‖=%g ‖δ‖=%g",
		r.Status, r.Iterations, r.X, r.ResidualNorm, r.StepNorm)
}
