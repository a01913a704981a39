// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

const (
	opAllClose    = "AllClose"
	opVecAllClose = "VecAllClose"
)

// normTolerances rejects non-finite tolerances and folds signs away.
func normTolerances(rtol, atol float64) (float64, float64, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return 0, 0, ErrNaNInf
	}

	return math.Abs(rtol), math.Abs(atol), nil
}

// isClose reports |a-b| ≤ atol + rtol·|b|. NaN never compares close.
func isClose(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// AllClose checks element-wise |a-b| ≤ atol + rtol·|b| for identical shapes.
// Layouts may differ; elements are compared by logical index.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (tolerances).
//
// Complexity:
//   - Time O(r*c), Space O(1) on the *Dense path.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	rtol, atol, err := normTolerances(rtol, atol)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err = ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := DenseOf(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := DenseOf(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da.layout == db.layout {
		for k := range da.data {
			if !isClose(da.data[k], db.data[k], rtol, atol) {
				return false, nil
			}
		}
		return true, nil
	}

	ars, acs := da.strides()
	brs, bcs := db.strides()
	var i, j int
	for i = 0; i < da.r; i++ {
		for j = 0; j < da.c; j++ {
			if !isClose(da.data[i*ars+j*acs], db.data[i*brs+j*bcs], rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// VecAllClose is AllClose for vectors of equal length.
func VecAllClose(a, b *Vector, rtol, atol float64) (bool, error) {
	rtol, atol, err := normTolerances(rtol, atol)
	if err != nil {
		return false, matrixErrorf(opVecAllClose, err)
	}
	if a == nil || b == nil {
		return false, matrixErrorf(opVecAllClose, ErrNilMatrix)
	}
	if a.Len() != b.Len() {
		return false, matrixErrorf(opVecAllClose,
			fmt.Errorf("%d != %d: %w", a.Len(), b.Len(), ErrDimensionMismatch))
	}
	for k := range a.data {
		if !isClose(a.data[k], b.data[k], rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}
