// SPDX-License-Identifier: MIT

// Norms, distances and BLAS level-1 style vector updates.
// Reductions are delegated to gonum/floats so that the Euclidean norm gets
// its overflow-safe scaling for free.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// normOrder maps a Norm to the L parameter understood by gonum/floats.
func normOrder(n Norm) (float64, error) {
	switch n {
	case Euclidean:
		return 2, nil
	case Infinity:
		return math.Inf(1), nil
	case Manhattan:
		return 1, nil
	default:
		return 0, fmt.Errorf("norm %d: %w", n, ErrUnknownNorm)
	}
}

// NormOf returns the selected norm of a raw slice. An empty slice has norm 0.
func NormOf(x []float64, n Norm) (float64, error) {
	l, err := normOrder(n)
	if err != nil {
		return 0, err
	}
	if len(x) == 0 {
		return 0, nil
	}

	return floats.Norm(x, l), nil
}

// VecNorm returns the selected norm of x.
// Errors: ErrNilMatrix, ErrUnknownNorm.
func VecNorm(x *Vector, n Norm) (float64, error) {
	if x == nil {
		return 0, fmt.Errorf("VecNorm: %w", ErrNilMatrix)
	}

	return NormOf(x.data, n)
}

// Distance returns ‖a - b‖ in the selected norm.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrUnknownNorm.
func Distance(a, b *Vector, n Norm) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("Distance: %w", ErrNilMatrix)
	}
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("Distance: %d != %d: %w", a.Len(), b.Len(), ErrDimensionMismatch)
	}
	l, err := normOrder(n)
	if err != nil {
		return 0, err
	}
	if a.Len() == 0 {
		return 0, nil
	}

	return floats.Distance(a.data, b.data, l), nil
}

// Dot returns Σ a_i b_i.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Dot(a, b *Vector) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("Dot: %w", ErrNilMatrix)
	}
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("Dot: %d != %d: %w", a.Len(), b.Len(), ErrDimensionMismatch)
	}

	return floats.Dot(a.data, b.data), nil
}

// AddScaledVec performs the in-place update dst += alpha*x.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AddScaledVec(dst *Vector, alpha float64, x *Vector) error {
	if dst == nil || x == nil {
		return fmt.Errorf("AddScaledVec: %w", ErrNilMatrix)
	}
	if dst.Len() != x.Len() {
		return fmt.Errorf("AddScaledVec: %d != %d: %w", dst.Len(), x.Len(), ErrDimensionMismatch)
	}
	floats.AddScaled(dst.data, alpha, x.data)

	return nil
}

// SubVec returns a fresh vector a - b.
func SubVec(a, b *Vector) (*Vector, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("SubVec: %w", ErrNilMatrix)
	}
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("SubVec: %d != %d: %w", a.Len(), b.Len(), ErrDimensionMismatch)
	}
	out := make([]float64, a.Len())
	floats.SubTo(out, a.data, b.data)

	return wrapVector(out, a.validateNaNInf), nil
}

// ScaleVec returns a fresh vector alpha*x.
func ScaleVec(alpha float64, x *Vector) (*Vector, error) {
	if x == nil {
		return nil, fmt.Errorf("ScaleVec: %w", ErrNilMatrix)
	}
	out := make([]float64, x.Len())
	floats.ScaleTo(out, alpha, x.data)

	return wrapVector(out, x.validateNaNInf), nil
}

// MaxAbsRowSum returns the induced infinity norm of m: max_i Σ_j |m_ij|.
// An empty matrix has norm 0.
func MaxAbsRowSum(m Matrix) (float64, error) {
	d, err := DenseOf(m)
	if err != nil {
		return 0, err
	}
	rs, cs := d.strides()
	var (
		best, sum float64
		i, j      int
	)
	for i = 0; i < d.r; i++ {
		sum = 0
		for j = 0; j < d.c; j++ {
			sum += math.Abs(d.data[i*rs+j*cs])
		}
		if sum > best || math.IsNaN(sum) {
			best = sum
		}
	}

	return best, nil
}
