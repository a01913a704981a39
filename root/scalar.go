// SPDX-License-Identifier: MIT

package root

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/linalg"
	"github.com/katalvlaran/nlsolve/matrix"
	"github.com/katalvlaran/nlsolve/solver"
)

// scalarState records (x, f(x)) in run as length-1 vectors.
func scalarState(run *solver.Run, x, fx float64) {
	xv, _ := matrix.NewVectorFrom([]float64{x}, matrix.WithNoValidateNaNInf())
	rv, _ := matrix.NewVectorFrom([]float64{fx}, matrix.WithNoValidateNaNInf())
	run.Observe(xv, rv, math.Abs(fx))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// sameSign reports whether a and b are both non-zero with equal signs.
// Comparing sign bits avoids the underflow of a·b for tiny values.
func sameSign(a, b float64) bool {
	return a != 0 && b != 0 && math.Signbit(a) == math.Signbit(b)
}

// scalarDone applies the two-sided test shared by the scalar methods:
// the last move and the residual must both be below the tolerance.
func scalarDone(step, fx, tol float64) bool {
	return math.Abs(step) < tol && math.Abs(fx) < tol
}

// Newton1D finds a root of f from x0 with damped Newton steps, estimating
// f'(x) by finite differences (solver.WithStep / WithStencil apply).
//
// Converged when both |x_{k+1} - x_k| < ε and |f(x_{k+1})| < ε.
// A derivative at or below the pivot tolerance ends in Diverged with
// linalg.ErrSingular, exactly as a singular Jacobian does in Newton.
func Newton1D(f diff.Func1D, x0 float64, opts ...solver.Option) (*solver.Result, error) {
	if f == nil {
		return nil, rootErrorf(opNewton1D, matrix.ErrNilMatrix)
	}
	cfg := solver.NewConfig(opts...)
	run := cfg.Start(opNewton1D)
	run.Begin()

	x := x0
	fx, err := diff.Evaluate1D(f, x)
	if err != nil {
		return nil, run.Abort(nil, err)
	}
	scalarState(run, x, fx)

	var (
		d, x1, fx1 float64
		jac        *matrix.Dense
		delta      *matrix.Vector
	)
	for {
		if !finite(fx) {
			return run.Finish(solver.Diverged, solver.ErrDiverged)
		}
		if run.Exhausted() {
			return run.Finish(solver.MaxIterExceeded, nil)
		}
		if d, err = diff.Derivative(f, x, cfg.DiffOptions()...); err != nil {
			return nil, run.Abort(nil, err)
		}
		// A 1×1 solve so that the pivot tolerance policy is the same as in Newton.
		jac, _ = matrix.NewDenseFrom(1, 1, []float64{d}, matrix.WithNoValidateNaNInf())
		delta, _ = matrix.NewVectorFrom([]float64{-fx}, matrix.WithNoValidateNaNInf())
		if err = linalg.SolveInPlace(jac, delta, cfg.LinalgOptions()...); err != nil {
			if errors.Is(err, linalg.ErrSingular) {
				return run.Finish(solver.Diverged, fmt.Errorf("derivative %g at x=%g: %w", d, x, err))
			}
			return nil, run.Abort(nil, err)
		}

		x1 = x + cfg.Damping*delta.RawData()[0]
		if fx1, err = diff.Evaluate1D(f, x1); err != nil {
			return nil, run.Abort(nil, err)
		}
		scalarState(run, x1, fx1)
		run.Step(math.Abs(x1 - x))
		if scalarDone(x1-x, fx1, cfg.Tolerance) {
			return run.Finish(solver.Converged, nil)
		}
		x, fx = x1, fx1
	}
}

// Bisection halves [a, b] until both the interval width and |f| at the kept
// end point fall below ε. It requires f(a)·f(b) ≤ 0 and reports ErrNoBracket
// otherwise, before any iteration. Damping does not apply.
//
// The reported X is the end point a of the final interval (the one whose
// residual is tested).
//
// Complexity:
//   - One evaluation per iteration; the width halves every step.
func Bisection(f diff.Func1D, a, b float64, opts ...solver.Option) (*solver.Result, error) {
	if f == nil {
		return nil, rootErrorf(opBisection, matrix.ErrNilMatrix)
	}
	if !finite(a) || !finite(b) {
		return nil, rootErrorf(opBisection, matrix.ErrNaNInf)
	}
	fa, err := diff.Evaluate1D(f, a)
	if err != nil {
		return nil, rootErrorf(opBisection, err)
	}
	fb, err := diff.Evaluate1D(f, b)
	if err != nil {
		return nil, rootErrorf(opBisection, err)
	}
	if sameSign(fa, fb) {
		return nil, rootErrorf(opBisection, fmt.Errorf("f(%g)=%g, f(%g)=%g: %w", a, fa, b, fb, ErrNoBracket))
	}

	cfg := solver.NewConfig(opts...)
	run := cfg.Start(opBisection)
	run.Begin()
	scalarState(run, a, fa)

	var z, fz float64
	for {
		if scalarDone(a-b, fa, cfg.Tolerance) {
			return run.Finish(solver.Converged, nil)
		}
		if !finite(fa) {
			return run.Finish(solver.Diverged, solver.ErrDiverged)
		}
		if run.Exhausted() {
			return run.Finish(solver.MaxIterExceeded, nil)
		}

		z = a + (b-a)/2
		if fz, err = diff.Evaluate1D(f, z); err != nil {
			return nil, run.Abort(nil, err)
		}
		if sameSign(fa, fz) {
			run.Step(math.Abs(z - a))
			a, fa = z, fz
		} else {
			run.Step(math.Abs(b - z))
			b = z
		}
		scalarState(run, a, fa)
	}
}

// Secant iterates x_{k+1} = x_k - f(x_k)·(x_k - x_{k-1}) / (f(x_k) - f(x_{k-1}))
// from the two guesses x0, x1. It converges under the same two-sided test as
// Newton1D and needs no derivative. A flat secant (equal function values at
// distinct points) ends in Diverged with ErrDiverged.
func Secant(f diff.Func1D, x0, x1 float64, opts ...solver.Option) (*solver.Result, error) {
	if f == nil {
		return nil, rootErrorf(opSecant, matrix.ErrNilMatrix)
	}
	cfg := solver.NewConfig(opts...)
	run := cfg.Start(opSecant)
	run.Begin()

	f0, err := diff.Evaluate1D(f, x0)
	if err != nil {
		return nil, run.Abort(nil, err)
	}
	f1, err := diff.Evaluate1D(f, x1)
	if err != nil {
		return nil, run.Abort(nil, err)
	}
	scalarState(run, x1, f1)

	var (
		x2, f2 float64
		denom  float64
	)
	for {
		if scalarDone(x1-x0, f1, cfg.Tolerance) {
			return run.Finish(solver.Converged, nil)
		}
		if !finite(f1) {
			return run.Finish(solver.Diverged, solver.ErrDiverged)
		}
		if run.Exhausted() {
			return run.Finish(solver.MaxIterExceeded, nil)
		}
		denom = f1 - f0
		if denom == 0 {
			return run.Finish(solver.Diverged, fmt.Errorf("flat secant at x=%g: %w", x1, solver.ErrDiverged))
		}

		x2 = x1 - cfg.Damping*f1*(x1-x0)/denom
		if f2, err = diff.Evaluate1D(f, x2); err != nil {
			return nil, run.Abort(nil, err)
		}
		scalarState(run, x2, f2)
		run.Step(math.Abs(x2 - x1))
		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}
}
