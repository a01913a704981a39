// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nlsolve/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opFactorize      = "Factorize"
	opSolve          = "Solve"
	opSolveInPlace   = "SolveInPlace"
	opInverse        = "Inverse"
	opInverseInPlace = "InverseInPlace"
	opDet            = "Det"
)

func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// LU holds a partial-pivoting factorization P·A = L·U of a square matrix.
// L (unit diagonal, strict lower part) and U (upper part incl. diagonal) are
// packed row-major into one n×n buffer; piv[i] is the original row now at position i.
type LU struct {
	n    int
	lu   []float64
	piv  []int
	sign float64 // parity of the row permutation, for Det
	tol  float64
}

// Factorize computes the pivoted LU factorization of a copy of a.
// MAIN DESCRIPTION:
//   - Doolittle elimination with partial pivoting: at column k the row with the
//     largest |a_ik| (i ≥ k) becomes the pivot row.
//
// Implementation:
//   - Stage 1: validate non-nil and square; copy a into a row-major work buffer.
//   - Stage 2: resolve the tolerance (WithPivotTolerance, else rel·n·‖A‖∞ with rel = ε by default).
//   - Stage 3: eliminate column by column; fail fast on an unacceptable pivot.
//
// Behavior highlights:
//   - Never proceeds past a pivot with |p| <= tol; a NaN pivot also fails.
//   - The input is read-only.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (non-square).
//   - *PivotError wrapping ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Factorize(a matrix.Matrix, opts ...Option) (*LU, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, linalgErrorf(opFactorize, err)
	}
	d, err := matrix.DenseOf(a)
	if err != nil {
		return nil, linalgErrorf(opFactorize, err)
	}
	work := d.ToLayout(matrix.RowMajor).RawData()

	f, err := factorizeBuffer(work, d.Rows(), opts...)
	if err != nil {
		return nil, linalgErrorf(opFactorize, err)
	}

	return f, nil
}

// factorizeBuffer factorizes the row-major n×n buffer in place and adopts it.
func factorizeBuffer(buf []float64, n int, opts ...Option) (*LU, error) {
	tol := gatherOptions(opts...).resolve(n, maxAbsRowSum(buf, n))

	f := &LU{n: n, lu: buf, piv: make([]int, n), sign: 1, tol: tol}
	for i := range f.piv {
		f.piv[i] = i
	}

	var (
		i, j, k, p int
		best, v    float64
		pivot, lik float64
		rowK, rowI []float64
	)
	for k = 0; k < n; k++ {
		// Select the largest-magnitude pivot in column k.
		p, best = k, math.Abs(buf[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(buf[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if !(best > tol) {
			return nil, &PivotError{Col: k, Pivot: best, Tol: tol}
		}
		if p != k {
			swapRows(buf, n, p, k)
			f.piv[p], f.piv[k] = f.piv[k], f.piv[p]
			f.sign = -f.sign
		}

		rowK = buf[k*n : (k+1)*n]
		pivot = rowK[k]
		for i = k + 1; i < n; i++ {
			rowI = buf[i*n : (i+1)*n]
			lik = rowI[k] / pivot
			rowI[k] = lik
			if lik == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				rowI[j] -= lik * rowK[j]
			}
		}
	}

	return f, nil
}

func swapRows(buf []float64, n, a, b int) {
	ra := buf[a*n : (a+1)*n]
	rb := buf[b*n : (b+1)*n]
	for j := 0; j < n; j++ {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

func maxAbsRowSum(buf []float64, n int) float64 {
	var best float64
	for i := 0; i < n; i++ {
		var sum float64
		for _, v := range buf[i*n : (i+1)*n] {
			sum += math.Abs(v)
		}
		if sum > best {
			best = sum
		}
	}

	return best
}

// Size returns the order n of the factorized matrix.
func (f *LU) Size() int { return f.n }

// Tolerance returns the pivot tolerance the factorization was accepted under.
func (f *LU) Tolerance() float64 { return f.tol }

// Det returns det(A) = sign(P) · Π U_ii.
func (f *LU) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}

	return det
}

// solveRaw overwrites x (len n) with A⁻¹·b using the packed factors.
// b and x may alias only if b is already permuted, so callers pass distinct slices.
func (f *LU) solveRaw(x, b []float64) {
	n := f.n
	var (
		i, k int
		sum  float64
		row  []float64
	)
	// Forward substitution L·y = P·b (unit diagonal).
	for i = 0; i < n; i++ {
		sum = b[f.piv[i]]
		row = f.lu[i*n : (i+1)*n]
		for k = 0; k < i; k++ {
			sum -= row[k] * x[k]
		}
		x[i] = sum
	}
	// Backward substitution U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		row = f.lu[i*n : (i+1)*n]
		for k = i + 1; k < n; k++ {
			sum -= row[k] * x[k]
		}
		x[i] = sum / row[i]
	}
}

// Solve returns x with A·x = b.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
// Complexity: O(n²).
func (f *LU) Solve(b *matrix.Vector) (*matrix.Vector, error) {
	if err := matrix.ValidateVecLen(b, f.n); err != nil {
		return nil, linalgErrorf(opSolve, err)
	}
	x := make([]float64, f.n)
	f.solveRaw(x, b.RawData())

	return matrix.NewVectorFrom(x, matrix.WithNoValidateNaNInf())
}

// Inverse returns A⁻¹ by solving against each identity column.
// Complexity: O(n³).
func (f *LU) Inverse() (*matrix.Dense, error) {
	n := f.n
	out := make([]float64, n*n)
	e := make([]float64, n)
	x := make([]float64, n)
	for col := 0; col < n; col++ {
		e[col] = 1
		f.solveRaw(x, e)
		e[col] = 0
		for i := 0; i < n; i++ {
			out[i*n+col] = x[i]
		}
	}

	return matrix.NewDenseFrom(n, n, out, matrix.WithNoValidateNaNInf())
}
