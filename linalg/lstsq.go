// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nlsolve/matrix"
)

const opLeastSquares = "LeastSquares"

// LeastSquares returns x minimizing ‖A·x - b‖₂ for an m×n A with m ≥ n.
// It is RegularizedLeastSquares with μ = 0.
func LeastSquares(a matrix.Matrix, b *matrix.Vector, opts ...Option) (*matrix.Vector, error) {
	return RegularizedLeastSquares(a, b, 0, opts...)
}

// RegularizedLeastSquares solves the normal equations (AᵀA + μI)·x = Aᵀb.
// A wide A (m < n) is accepted when μ > 0.
//
// Implementation:
//   - Stage 1: validate μ ≥ 0 and finite, m ≥ n unless μ > 0, len(b) == m.
//   - Stage 2: G = AᵀA (symmetric), g = Aᵀb; add μ to diag(G).
//   - Stage 3: SolveInPlace(G, g); G is a private scratch matrix.
//
// Rank-deficient A with μ = 0 yields a singular G and fails with ErrSingular.
// Forming AᵀA squares the condition number; callers needing more accuracy
// on ill-conditioned data should scale their columns first.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrNaNInf (μ).
//   - ErrSingular.
//
// Complexity:
//   - Time O(m·n² + n³), Space O(n²).
func RegularizedLeastSquares(a matrix.Matrix, b *matrix.Vector, mu float64, opts ...Option) (*matrix.Vector, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, linalgErrorf(opLeastSquares, err)
	}
	if mu < 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, linalgErrorf(opLeastSquares, fmt.Errorf("mu=%g: %w", mu, matrix.ErrNaNInf))
	}
	m, n := a.Rows(), a.Cols()
	if m < n && mu == 0 {
		return nil, linalgErrorf(opLeastSquares,
			fmt.Errorf("%d rows < %d columns: %w", m, n, matrix.ErrDimensionMismatch))
	}
	if err := matrix.ValidateVecLen(b, m); err != nil {
		return nil, linalgErrorf(opLeastSquares, err)
	}

	g, err := matrix.Gram(a)
	if err != nil {
		return nil, linalgErrorf(opLeastSquares, err)
	}
	rhs, err := matrix.TMatVec(a, b)
	if err != nil {
		return nil, linalgErrorf(opLeastSquares, err)
	}
	if mu != 0 {
		// Gram results are row-major n×n.
		buf := g.RawData()
		for i := 0; i < n; i++ {
			buf[i*n+i] += mu
		}
	}
	if err = SolveInPlace(g, rhs, opts...); err != nil {
		return nil, linalgErrorf(opLeastSquares, err)
	}

	return rhs, nil
}
