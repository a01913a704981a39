// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"

	"github.com/katalvlaran/nlsolve/matrix"
)

// Solve returns x such that A·x ≈ b for a square, numerically non-singular A.
// Neither a nor b is modified.
//
// Implementation:
//   - Stage 1: Factorize(a) with partial pivoting.
//   - Stage 2: validate len(b) == n; forward/backward substitution.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
//   - ErrSingular (as *PivotError) when a pivot falls below tolerance.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Solve(a matrix.Matrix, b *matrix.Vector, opts ...Option) (*matrix.Vector, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	if err := matrix.ValidateVecLen(b, a.Rows()); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	f, err := Factorize(a, opts...)
	if err != nil {
		return nil, linalgErrorf(opSolve, err)
	}

	return f.Solve(b)
}

// SolveInPlace solves A·x = b, overwriting b with x.
//
// The content of a is DESTROYED: on return its buffer holds the packed LU
// factors with rows permuted (in row-major order, and a.Layout() is RowMajor).
// The caller must not read a as the original matrix afterwards. On error a
// may be partially eliminated and b is left untouched.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n) beyond the inputs.
func SolveInPlace(a *matrix.Dense, b *matrix.Vector, opts ...Option) error {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return linalgErrorf(opSolveInPlace, err)
	}
	n := a.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return linalgErrorf(opSolveInPlace, err)
	}
	a.ConvertLayout(matrix.RowMajor)
	f, err := factorizeBuffer(a.RawData(), n, opts...)
	if err != nil {
		return linalgErrorf(opSolveInPlace, err)
	}
	x := make([]float64, n)
	f.solveRaw(x, b.RawData())
	copy(b.RawData(), x)

	return nil
}

// Inverse returns A⁻¹ computed from one factorization and n triangular solves.
// The input is not modified.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(a matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	f, err := Factorize(a, opts...)
	if err != nil {
		return nil, linalgErrorf(opInverse, err)
	}
	inv, err := f.Inverse()
	if err != nil {
		return nil, linalgErrorf(opInverse, err)
	}

	return inv, nil
}

// InverseInPlace replaces the content of a with A⁻¹, keeping a's layout.
// The original content is lost. On error a is left untouched.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrSingular.
func InverseInPlace(a *matrix.Dense, opts ...Option) error {
	inv, err := Inverse(a, opts...)
	if err != nil {
		return linalgErrorf(opInverseInPlace, err)
	}
	inv.ConvertLayout(a.Layout())
	copy(a.RawData(), inv.RawData())

	return nil
}

// Det returns the determinant of a square matrix. A matrix whose elimination
// meets an exactly zero (or NaN) pivot column has determinant 0.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func Det(a matrix.Matrix) (float64, error) {
	f, err := Factorize(a, WithPivotTolerance(0))
	if errors.Is(err, ErrSingular) {
		return 0, nil
	}
	if err != nil {
		return 0, linalgErrorf(opDet, err)
	}

	return f.Det(), nil
}
