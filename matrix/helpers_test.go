// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels and layouts.
//   • Keep all data finite unless a test is about the numeric policy.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nlsolve/matrix"
)

// hide wraps any Matrix to hide its concrete type, forcing the non-*Dense
// fallback inside kernels (DenseOf materialization).
type hide struct{ matrix.Matrix }

// MustDense builds an r×c Dense from row-major values or fails the test.
func MustDense(tb testing.TB, r, c int, vals []float64, opts ...matrix.Option) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals, opts...)
	require.NoError(tb, err)

	return m
}

// MustColMajor builds an r×c Dense stored column-major from row-major values.
func MustColMajor(tb testing.TB, r, c int, vals []float64) *matrix.Dense {
	tb.Helper()

	return MustDense(tb, r, c, vals).ToLayout(matrix.ColMajor)
}

// MustVec builds a Vector or fails the test.
func MustVec(tb testing.TB, vals ...float64) *matrix.Vector {
	tb.Helper()
	v, err := matrix.NewVectorFrom(vals)
	require.NoError(tb, err)

	return v
}

// MustAt reads (i,j) or fails the test.
func MustAt(tb testing.TB, m matrix.Matrix, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	require.NoError(tb, err)

	return v
}

// RequireMatrix asserts m equals the row-major expectation within atol.
func RequireMatrix(tb testing.TB, want []float64, m matrix.Matrix, atol float64) {
	tb.Helper()
	r, c := m.Rows(), m.Cols()
	require.Len(tb, want, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.InDeltaf(tb, want[i*c+j], MustAt(tb, m, i, j), atol, "(%d,%d)", i, j)
		}
	}
}

// randDense fills an r×c Dense from a fixed seed.
func randDense(tb testing.TB, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for k := range vals {
		vals[k] = rng.Float64()*2 - 1
	}

	return MustDense(tb, r, c, vals)
}
