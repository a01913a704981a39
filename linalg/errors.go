// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"
)

// ErrSingular is returned when elimination meets a pivot whose magnitude does
// not exceed the pivot tolerance (a NaN pivot is treated the same way).
var ErrSingular = errors.New("linalg: singular matrix")

// PivotError reports where elimination stopped. It unwraps to ErrSingular,
// so callers may match either with errors.Is(err, ErrSingular) or errors.As.
type PivotError struct {
	Col   int     // elimination column at which no acceptable pivot was found
	Pivot float64 // largest available |pivot| in that column
	Tol   float64 // tolerance in effect
}

func (e *PivotError) Error() string {
	return fmt.Sprintf("linalg: singular matrix: column %d pivot %g <= tolerance %g", e.Col, e.Pivot, e.Tol)
}

// Unwrap exposes ErrSingular to errors.Is.
func (e *PivotError) Unwrap() error { return ErrSingular }
