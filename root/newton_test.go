package root_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/linalg"
	"github.com/katalvlaran/nlsolve/matrix"
	"github.com/katalvlaran/nlsolve/root"
	"github.com/katalvlaran/nlsolve/solver"
)

// phi is the golden ratio; (φ, φ) is a root of the curves system below.
var phi = (1 + math.Sqrt(5)) / 2

// curves is f(x, y) = [x² - y - 1, x - y² + 1].
var curves = diff.VectorFunc{In: 2, Out: 2, Fn: func(dst, p []float64) error {
	x, y := p[0], p[1]
	dst[0] = x*x - y - 1
	dst[1] = x - y*y + 1
	return nil
}}

func vec(t *testing.T, vals ...float64) *matrix.Vector {
	t.Helper()
	v, err := matrix.NewVectorFrom(vals)
	require.NoError(t, err)

	return v
}

// NewtonSuite exercises the vector Newton solver.
type NewtonSuite struct {
	suite.Suite
}

// TestKnownSystem checks convergence from near (1, 1).
func (s *NewtonSuite) TestKnownSystem() {
	x0 := vec(s.T(), 1, 1)
	res, err := root.Newton(curves, x0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Status)
	require.Less(s.T(), res.ResidualNorm, solver.DefaultTolerance)
	require.LessOrEqual(s.T(), res.Iterations, solver.DefaultMaxIterations)
	require.InDelta(s.T(), phi, res.X.RawData()[0], 1e-8)
	require.InDelta(s.T(), phi, res.X.RawData()[1], 1e-8)
	require.Equal(s.T(), []float64{1, 1}, x0.RawData(), "x0 must not be modified")

	// The reported residual is f(X).
	r, err := diff.Evaluate(curves, res.X)
	require.NoError(s.T(), err)
	require.Equal(s.T(), r.RawData(), res.Residual.RawData())
}

// reusedBuf is a Func that writes every result into one shared vector.
type reusedBuf struct {
	out *matrix.Vector
	fn  func(dst, p []float64) error
}

func (f *reusedBuf) Dims() (int, int) { return f.out.Len(), f.out.Len() }
func (f *reusedBuf) Eval(x *matrix.Vector) (*matrix.Vector, error) {
	return f.out, f.fn(f.out.RawData(), x.RawData())
}

// TestReusedOutputBuffer checks that the step and the reported residual use
// f(x), not whatever the Jacobian sweep left in a shared output buffer.
func (s *NewtonSuite) TestReusedOutputBuffer() {
	out, err := matrix.NewVector(2)
	require.NoError(s.T(), err)
	f := &reusedBuf{out: out, fn: curves.Fn}

	res, err := root.Newton(f, vec(s.T(), 1, 1))
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Status)
	require.Less(s.T(), res.Iterations, 10)
	require.InDelta(s.T(), phi, res.X.RawData()[0], 1e-8)
	require.InDelta(s.T(), phi, res.X.RawData()[1], 1e-8)

	r, err := diff.Evaluate(curves, res.X)
	require.NoError(s.T(), err)
	require.Equal(s.T(), r.RawData(), res.Residual.RawData())
}

// TestAlreadyConverged checks that a root as x0 costs zero updates.
func (s *NewtonSuite) TestAlreadyConverged() {
	res, err := root.Newton(curves, vec(s.T(), 0, -1))
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, res.Status)
	require.Zero(s.T(), res.Iterations)
	require.Zero(s.T(), res.StepNorm)
}

// TestDamping checks that λ < 1 still converges but needs more updates.
func (s *NewtonSuite) TestDamping() {
	full, err := root.Newton(curves, vec(s.T(), 1, 1))
	require.NoError(s.T(), err)

	damped, err := root.Newton(curves, vec(s.T(), 1, 1),
		solver.WithDamping(0.5), solver.WithMaxIterations(200))
	require.NoError(s.T(), err)
	require.Equal(s.T(), solver.Converged, damped.Status)
	require.Greater(s.T(), damped.Iterations, full.Iterations)
}

// TestNorms checks that every norm drives the same system to convergence.
func (s *NewtonSuite) TestNorms() {
	for _, n := range []matrix.Norm{matrix.Euclidean, matrix.Infinity, matrix.Manhattan} {
		res, err := root.Newton(curves, vec(s.T(), 1, 1),
			solver.WithNorm(n), solver.WithTolerance(1e-12), solver.WithStencil(diff.FivePoint))
		require.NoError(s.T(), err, n.String())
		got, err := matrix.VecNorm(res.Residual, n)
		require.NoError(s.T(), err)
		require.Less(s.T(), got, 1e-12)
	}
}

// TestSingularJacobian checks that identical rows end in Diverged with the
// last valid iterate attached.
func (s *NewtonSuite) TestSingularJacobian() {
	f := diff.VectorFunc{In: 2, Out: 2, Fn: func(dst, p []float64) error {
		dst[0] = p[0] + p[1]
		dst[1] = p[0] + p[1]
		return nil
	}}
	res, err := root.Newton(f, vec(s.T(), 1, 1))
	require.ErrorIs(s.T(), err, linalg.ErrSingular)
	require.NotNil(s.T(), res)
	require.Equal(s.T(), solver.Diverged, res.Status)
	require.Equal(s.T(), []float64{1, 1}, res.X.RawData())

	var ie *solver.IterationError
	require.True(s.T(), errors.As(err, &ie))
	require.Equal(s.T(), 0, ie.Iteration)
	require.Equal(s.T(), []float64{1, 1}, ie.X)
}

// TestProportionalRows checks that a Jacobian whose rows are multiples of each
// other is singular at the very first iterate, even though finite-difference
// noise keeps its second pivot away from exact zero.
func (s *NewtonSuite) TestProportionalRows() {
	for _, c := range []float64{2, 3, 0.1} {
		f := diff.VectorFunc{In: 2, Out: 2, Fn: func(dst, p []float64) error {
			dst[0] = p[0] + p[1] - 1
			dst[1] = c*(p[0]+p[1]) - 5
			return nil
		}}
		res, err := root.Newton(f, vec(s.T(), 0.3, 0.7))
		require.ErrorIs(s.T(), err, linalg.ErrSingular, "c=%g", c)
		require.Equal(s.T(), solver.Diverged, res.Status)
		require.Zero(s.T(), res.Iterations)
		require.Equal(s.T(), []float64{0.3, 0.7}, res.X.RawData())

		var ie *solver.IterationError
		require.True(s.T(), errors.As(err, &ie))
		require.Equal(s.T(), []float64{0.3, 0.7}, ie.X)
	}
}

// TestMaxIterExceeded checks that a system without a real root stops after
// exactly K updates and still reports the last iterate.
func (s *NewtonSuite) TestMaxIterExceeded() {
	noRoot := diff.VectorFunc{In: 1, Out: 1, Fn: func(dst, p []float64) error {
		dst[0] = p[0]*p[0] + 1
		return nil
	}}
	for _, k := range []int{1, 7, 25} {
		res, err := root.Newton(noRoot, vec(s.T(), 0.5), solver.WithMaxIterations(k))
		require.ErrorIs(s.T(), err, solver.ErrMaxIterExceeded)
		require.NotNil(s.T(), res)
		require.Equal(s.T(), solver.MaxIterExceeded, res.Status)
		require.Equal(s.T(), k, res.Iterations)
		require.GreaterOrEqual(s.T(), res.ResidualNorm, 1.0)
		require.NotNil(s.T(), res.X)
	}
}

// TestNonFiniteResidual checks that a NaN residual ends in Diverged.
func (s *NewtonSuite) TestNonFiniteResidual() {
	f := diff.VectorFunc{In: 1, Out: 1, Fn: func(dst, p []float64) error {
		dst[0] = math.Log(p[0]) // NaN for p < 0
		return nil
	}}
	res, err := root.Newton(f, vec(s.T(), -1))
	require.ErrorIs(s.T(), err, solver.ErrDiverged)
	require.Equal(s.T(), solver.Diverged, res.Status)
}

// TestEagerDimensionChecks verifies shape errors precede any evaluation.
func (s *NewtonSuite) TestEagerDimensionChecks() {
	calls := 0
	rect := diff.VectorFunc{In: 2, Out: 3, Fn: func(dst, p []float64) error {
		calls++
		return nil
	}}
	_, err := root.Newton(rect, vec(s.T(), 1, 1))
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)

	_, err = root.Newton(curves, vec(s.T(), 1, 1, 1))
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)

	_, err = root.Newton(nil, vec(s.T(), 1))
	require.ErrorIs(s.T(), err, matrix.ErrNilMatrix)
	require.Zero(s.T(), calls)
}

// TestUserFunctionError checks that caller failures abort the solve opaquely.
func (s *NewtonSuite) TestUserFunctionError() {
	boom := errors.New("out of domain")
	f := diff.VectorFunc{In: 1, Out: 1, Fn: func(dst, p []float64) error {
		if p[0] < 0.9 {
			return boom
		}
		dst[0] = p[0] - 2
		return nil
	}}
	res, err := root.Newton(f, vec(s.T(), 0))
	require.Nil(s.T(), res)
	require.ErrorIs(s.T(), err, boom)
	require.ErrorIs(s.T(), err, diff.ErrUserFunction)
}

// TestLogging checks that a logger receives per-iteration and terminal records.
func (s *NewtonSuite) TestLogging() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res, err := root.Newton(curves, vec(s.T(), 1, 1), solver.WithLogger(logger))
	require.NoError(s.T(), err)

	out := buf.String()
	require.Equal(s.T(), res.Iterations, strings.Count(out, "level=DEBUG"))
	require.Equal(s.T(), 1, strings.Count(out, "level=INFO"))
	require.Contains(s.T(), out, "op=Newton")
	require.Contains(s.T(), out, "status=converged")
}

func TestNewtonSuite(t *testing.T) {
	suite.Run(t, new(NewtonSuite))
}
