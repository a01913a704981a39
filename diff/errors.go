// SPDX-License-Identifier: MIT

package diff

import (
	"errors"
	"fmt"
)

// ErrUserFunction marks any failure raised by a caller-supplied function.
var ErrUserFunction = errors.New("diff: user function failed")

// FuncError carries the caller's error opaquely together with the point at
// which the function was evaluated. errors.Is matches both ErrUserFunction
// and the caller's own error.
type FuncError struct {
	X   []float64 // copy of the evaluation point
	Err error     // caller's error, uninterpreted
}

func (e *FuncError) Error() string {
	return fmt.Sprintf("diff: user function failed at %v: %v", e.X, e.Err)
}

// Unwrap exposes both ErrUserFunction and the wrapped cause.
func (e *FuncError) Unwrap() []error { return []error{ErrUserFunction, e.Err} }

func newFuncError(x []float64, err error) *FuncError {
	cp := make([]float64, len(x))
	copy(cp, x)

	return &FuncError{X: cp, Err: err}
}
