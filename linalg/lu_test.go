package linalg_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/nlsolve/linalg"
	"github.com/katalvlaran/nlsolve/matrix"
)

// randSystem returns a diagonally dominant (hence well-conditioned) n×n
// matrix and a right-hand side, both from a fixed seed.
func randSystem(tb testing.TB, n int, seed int64, layout matrix.Layout) (*matrix.Dense, *matrix.Vector) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	a := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = rng.Float64()*2 - 1
		}
		a[i*n+i] += float64(n)
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.Float64()*10 - 5
	}
	m, err := matrix.NewDenseFrom(n, n, a)
	require.NoError(tb, err)
	v, err := matrix.NewVectorFrom(b)
	require.NoError(tb, err)

	return m.ToLayout(layout), v
}

// relResidual returns ‖A·x - b‖₂ / ‖b‖₂.
func relResidual(tb testing.TB, a matrix.Matrix, x, b *matrix.Vector) float64 {
	tb.Helper()
	ax, err := matrix.MatVec(a, x)
	require.NoError(tb, err)
	d, err := matrix.Distance(ax, b, matrix.Euclidean)
	require.NoError(tb, err)
	nb, err := matrix.VecNorm(b, matrix.Euclidean)
	require.NoError(tb, err)

	return d / nb
}

// toGonum copies any Matrix into a gonum Dense.
func toGonum(tb testing.TB, a matrix.Matrix) *mat.Dense {
	tb.Helper()
	g := mat.NewDense(a.Rows(), a.Cols(), nil)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			v, err := a.At(i, j)
			require.NoError(tb, err)
			g.Set(i, j, v)
		}
	}

	return g
}

// LinalgSuite exercises factorization, solves, inverses and determinants.
type LinalgSuite struct {
	suite.Suite
}

// TestSolveRandom checks ‖Ax-b‖ on random well-conditioned systems of both layouts.
func (s *LinalgSuite) TestSolveRandom() {
	for _, n := range []int{1, 2, 5, 17, 40} {
		for _, layout := range []matrix.Layout{matrix.RowMajor, matrix.ColMajor} {
			a, b := randSystem(s.T(), n, int64(n)*31, layout)
			x, err := linalg.Solve(a, b)
			require.NoError(s.T(), err)
			require.Less(s.T(), relResidual(s.T(), a, x, b), 1e-9, "n=%d %s", n, layout)
		}
	}
}

// TestSolveMatchesGonum compares against gonum's LU-based solve.
func (s *LinalgSuite) TestSolveMatchesGonum() {
	a, b := randSystem(s.T(), 12, 2024, matrix.RowMajor)
	x, err := linalg.Solve(a, b)
	require.NoError(s.T(), err)

	var ref mat.VecDense
	require.NoError(s.T(), ref.SolveVec(toGonum(s.T(), a), mat.NewVecDense(b.Len(), b.RawData())))
	for i := 0; i < x.Len(); i++ {
		require.InDelta(s.T(), ref.AtVec(i), x.RawData()[i], 1e-10)
	}
}

// TestSingular verifies a rank-one 2×2 fails rather than returning garbage.
func (s *LinalgSuite) TestSingular() {
	a, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 2, 4})
	require.NoError(s.T(), err)
	b, err := matrix.NewVectorFrom([]float64{1, 1})
	require.NoError(s.T(), err)

	x, err := linalg.Solve(a, b)
	require.Nil(s.T(), x)
	require.ErrorIs(s.T(), err, linalg.ErrSingular)

	var pe *linalg.PivotError
	require.True(s.T(), errors.As(err, &pe))
	require.Equal(s.T(), 1, pe.Col)

	_, err = linalg.Inverse(a)
	require.ErrorIs(s.T(), err, linalg.ErrSingular)

	// NaN entries are never an acceptable pivot.
	nan, err := matrix.NewDenseFrom(1, 1, []float64{math.NaN()}, matrix.WithNoValidateNaNInf())
	require.NoError(s.T(), err)
	_, err = linalg.Factorize(nan)
	require.ErrorIs(s.T(), err, linalg.ErrSingular)
}

// TestPivotTolerance checks that an explicit tolerance overrides the default.
func (s *LinalgSuite) TestPivotTolerance() {
	a, err := matrix.NewDenseFrom(2, 2, []float64{1, 0, 0, 1e-6})
	require.NoError(s.T(), err)

	f, err := linalg.Factorize(a)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), linalg.DefaultPivotTolerance(2, 1), f.Tolerance(), 1e-30)

	_, err = linalg.Factorize(a, linalg.WithPivotTolerance(1e-3))
	require.ErrorIs(s.T(), err, linalg.ErrSingular)

	// rel·n·‖A‖∞ = 1e-3·2·1 rejects the 1e-6 pivot; an absolute tolerance wins in any order.
	_, err = linalg.Factorize(a, linalg.WithRelativePivotTolerance(1e-3))
	require.ErrorIs(s.T(), err, linalg.ErrSingular)
	f, err = linalg.Factorize(a, linalg.WithPivotTolerance(1e-9), linalg.WithRelativePivotTolerance(1e-3))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1e-9, f.Tolerance())

	require.Panics(s.T(), func() { linalg.WithPivotTolerance(-1) })
	require.Panics(s.T(), func() { linalg.WithRelativePivotTolerance(math.Inf(1)) })
}

// TestShapeErrors covers eager dimension checks.
func (s *LinalgSuite) TestShapeErrors() {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(s.T(), err)
	b, err := matrix.NewVector(2)
	require.NoError(s.T(), err)

	_, err = linalg.Solve(rect, b)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)

	sq, _ := randSystem(s.T(), 3, 1, matrix.RowMajor)
	_, err = linalg.Solve(sq, b)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)

	_, err = linalg.Solve(nil, b)
	require.ErrorIs(s.T(), err, matrix.ErrNilMatrix)
}

// TestInverse checks A·A⁻¹ = I and that the input is untouched.
func (s *LinalgSuite) TestInverse() {
	a, _ := randSystem(s.T(), 6, 77, matrix.ColMajor)
	orig := a.ToLayout(matrix.ColMajor)

	inv, err := linalg.Inverse(a)
	require.NoError(s.T(), err)
	prod, err := matrix.Mul(a, inv)
	require.NoError(s.T(), err)
	id, err := matrix.NewIdentity(6)
	require.NoError(s.T(), err)
	ok, err := matrix.AllClose(prod, id, 0, 1e-12)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	same, err := matrix.AllClose(a, orig, 0, 0)
	require.NoError(s.T(), err)
	require.True(s.T(), same)

	require.NoError(s.T(), linalg.InverseInPlace(a))
	require.Equal(s.T(), matrix.ColMajor, a.Layout())
	ok, err = matrix.AllClose(a, inv, 0, 0)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
}

// TestSolveInPlace checks that b is overwritten with x.
func (s *LinalgSuite) TestSolveInPlace() {
	a, b := randSystem(s.T(), 8, 5, matrix.ColMajor)
	ref, err := linalg.Solve(a, b)
	require.NoError(s.T(), err)

	require.NoError(s.T(), linalg.SolveInPlace(a, b))
	require.Equal(s.T(), matrix.RowMajor, a.Layout()) // a now holds the factors
	for i := 0; i < b.Len(); i++ {
		require.InDelta(s.T(), ref.RawData()[i], b.RawData()[i], 1e-12)
	}
}

// TestDet checks determinants including the singular case.
func (s *LinalgSuite) TestDet() {
	a, err := matrix.NewDenseFrom(3, 3, []float64{
		2, 0, 1,
		1, 3, 2,
		1, 1, 2,
	})
	require.NoError(s.T(), err)
	d, err := linalg.Det(a)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), mat.Det(toGonum(s.T(), a)), d, 1e-12)
	require.InDelta(s.T(), 6.0, d, 1e-12)

	sing, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 2, 4})
	require.NoError(s.T(), err)
	d, err = linalg.Det(sing)
	require.NoError(s.T(), err)
	require.Zero(s.T(), d)

	f, err := linalg.Factorize(a)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, f.Size())
	require.InDelta(s.T(), 6.0, f.Det(), 1e-12)
}

func TestLinalgSuite(t *testing.T) {
	suite.Run(t, new(LinalgSuite))
}
