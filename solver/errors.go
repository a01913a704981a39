// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

// ErrMaxIterExceeded is returned when the iteration cap is reached without
// meeting the convergence predicate. The accompanying Result still carries the
// last iterate and its norms.
var ErrMaxIterExceeded = errors.New("solver: maximum iterations exceeded")

// ErrDiverged is reported when an iterate or its residual becomes non-finite.
// A singular linear system also ends in status Diverged but keeps its own
// cause (linalg.ErrSingular) inside the *IterationError.
var ErrDiverged = errors.New("solver: iteration diverged")

// IterationError attaches the iteration index and the last valid iterate to a
// failure raised inside a solver loop (singular system, exhausted cap, user
// function error). It unwraps to the underlying cause.
type IterationError struct {
	Op        string    // solver name, e.g. "Newton"
	Iteration int       // number of updates applied before the failure
	X         []float64 // copy of the last valid iterate
	Err       error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("%s: iteration %d at %v: %v", e.Op, e.Iteration, e.X, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *IterationError) Unwrap() error { return e.Err }

// NewIterationError copies x so the error stays valid after the caller reuses its buffer.
func NewIterationError(op string, iter int, x []float64, err error) *IterationError {
	cp := make([]float64, len(x))
	copy(cp, x)

	return &IterationError{Op: op, Iteration: iter, X: cp, Err: err}
}
