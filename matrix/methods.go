// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, scalar scaling and matrix-vector products. All functions perform
// strict fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Every kernel resolves its operands to *Dense once (DenseOf) and then works on
//     flat buffers with strides, so mixed layouts are handled without per-element branching.
//   - Results are freshly allocated row-major Dense values; inputs are never mutated.

package matrix

import (
	"fmt"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opTMatVec   = "TMatVec"
	opGram      = "Gram"
	opDenseOf   = "DenseOf"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// DenseOf resolves any Matrix to a *Dense.
// MAIN DESCRIPTION:
//   - Fast path: a *Dense is returned as is (no copy, caller must not mutate it).
//   - Fallback: any other implementation is materialized into a new row-major Dense via At.
//
// Errors:
//   - ErrNilMatrix, or the first At error of the fallback.
//
// Complexity:
//   - O(1) for *Dense, O(r*c) otherwise.
func DenseOf(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDenseOf, err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out := &Dense{r: rows, c: cols, layout: RowMajor, data: make([]float64, rows*cols)}
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opDenseOf, err)
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}

// newResult allocates a row-major r×c result inheriting the numeric policy of like.
func newResult(rows, cols int, like *Dense) *Dense {
	return &Dense{
		r:              rows,
		c:              cols,
		layout:         RowMajor,
		data:           make([]float64, rows*cols),
		validateNaNInf: like.validateNaNInf,
	}
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); resolve both to *Dense.
//   - Stage 2: same layout → single flat loop; otherwise strided i→j loop.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, err := DenseOf(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := DenseOf(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res := newResult(da.r, da.c, da)
	if da.layout == RowMajor && db.layout == RowMajor {
		for k := range res.data {
			res.data[k] = da.data[k] + sign*db.data[k]
		}

		return res, nil
	}

	ars, acs := da.strides()
	brs, bcs := db.strides()
	var i, j int
	for i = 0; i < da.r; i++ {
		for j = 0; j < da.c; j++ {
			res.data[i*da.c+j] = da.data[i*ars+j*acs] + sign*db.data[i*brs+j*bcs]
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
// Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha*M as a fresh Dense.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	d, err := DenseOf(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res := newResult(d.r, d.c, d)
	rs, cs := d.strides()
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[i*d.c+j] = alpha * d.data[i*rs+j*cs]
		}
	}

	return res, nil
}

// Transpose returns Mᵀ as a fresh row-major Dense.
// For an O(1) transpose that reuses the buffer see (*Dense).TransposeInPlace.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	d, err := DenseOf(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res := newResult(d.c, d.r, d)
	rs, cs := d.strides()
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*rs+j*cs]
		}
	}

	return res, nil
}

// Mul computes the matrix product C = A × B.
// MAIN DESCRIPTION:
//   - Requires a.Cols() == b.Rows(); result is a.Rows()×b.Cols().
//
// Implementation:
//   - Stage 1: validate non-nil operands and inner dimensions.
//   - Stage 2: i→k→j loop with strides resolved once; the accumulation order is fixed.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, fmt.Errorf("%dx%d * %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}
	da, err := DenseOf(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := DenseOf(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	res := newResult(da.r, db.c, da)
	ars, acs := da.strides()
	brs, bcs := db.strides()
	var (
		i, k, j int
		aik     float64
		row     []float64
	)
	for i = 0; i < da.r; i++ {
		row = res.data[i*db.c : (i+1)*db.c]
		for k = 0; k < da.c; k++ {
			aik = da.data[i*ars+k*acs]
			if aik == 0 {
				continue
			}
			for j = 0; j < db.c; j++ {
				row[j] += aik * db.data[k*brs+j*bcs]
			}
		}
	}

	return res, nil
}

// MatVec computes y = M·x for an r×c matrix and a length-c vector.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func MatVec(m Matrix, x *Vector) (*Vector, error) {
	d, err := DenseOf(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err = ValidateVecLen(x, d.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, d.r)
	rs, cs := d.strides()
	var (
		i, j int
		sum  float64
	)
	for i = 0; i < d.r; i++ {
		sum = 0
		for j = 0; j < d.c; j++ {
			sum += d.data[i*rs+j*cs] * x.data[j]
		}
		y[i] = sum
	}

	return wrapVector(y, x.validateNaNInf), nil
}

// TMatVec computes y = Mᵀ·x for an r×c matrix and a length-r vector
// without materializing the transpose.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func TMatVec(m Matrix, x *Vector) (*Vector, error) {
	d, err := DenseOf(m)
	if err != nil {
		return nil, matrixErrorf(opTMatVec, err)
	}
	if err = ValidateVecLen(x, d.r); err != nil {
		return nil, matrixErrorf(opTMatVec, err)
	}
	y := make([]float64, d.c)
	rs, cs := d.strides()
	var (
		i, j int
		xi   float64
	)
	for i = 0; i < d.r; i++ {
		xi = x.data[i]
		for j = 0; j < d.c; j++ {
			y[j] += d.data[i*rs+j*cs] * xi
		}
	}

	return wrapVector(y, x.validateNaNInf), nil
}

// Gram computes the c×c matrix MᵀM of an r×c matrix M.
// Only the upper triangle is accumulated; the lower one is mirrored, so the
// result is exactly symmetric.
// Complexity: O(r*c²).
func Gram(m Matrix) (*Dense, error) {
	d, err := DenseOf(m)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	n := d.c
	res := newResult(n, n, d)
	rs, cs := d.strides()
	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < d.r; k++ {
				sum += d.data[k*rs+i*cs] * d.data[k*rs+j*cs]
			}
			res.data[i*n+j] = sum
			res.data[j*n+i] = sum
		}
	}

	return res, nil
}
