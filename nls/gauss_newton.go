// SPDX-License-Identifier: MIT

package nls

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/linalg"
	"github.com/katalvlaran/nlsolve/matrix"
	"github.com/katalvlaran/nlsolve/solver"
)

const (
	opGaussNewton = "GaussNewton"
	opFitCurve    = "FitCurve"
)

func nlsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// GaussNewton minimizes ‖r(x)‖² for a residual r: Rⁿ → Rᵐ with m ≥ n
// (m < n is accepted only with μ > 0, where the ridge system stays well-posed).
// MAIN DESCRIPTION:
//   - Each iteration linearizes r at x with a finite-difference Jacobian J
//     (m×n) and solves the normal equations (JᵀJ + μI)·δ = -Jᵀr, then moves
//     x ← x + λ·δ. μ (WithRegularization) and λ (WithDamping) default to 0 and 1.
//
// Implementation:
//   - Stage 1: validate m ≥ n (when μ = 0) and len(x0) == n before any evaluation.
//   - Stage 2: loop {
//     evaluate r; record (x, r, ‖r‖);
//     ResidualCriterion: ‖r‖ < ε → Converged;
//     StepCriterion: last ‖λδ‖ < ε → Converged (x is the point after that step);
//     non-finite ‖r‖ → Diverged; K updates applied → MaxIterExceeded;
//     J; RegularizedLeastSquares(J, r, μ) → -δ; update }.
//
// Behavior highlights:
//   - Rank-deficient parameterization makes JᵀJ singular: Diverged with
//     linalg.ErrSingular inside *solver.IterationError.
//   - Intermediate Jacobians are dropped after each solve.
//   - x0 is never modified.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (m < n with μ = 0, len(x0) != n).
//   - diff.ErrUserFunction, linalg.ErrSingular, solver.ErrMaxIterExceeded,
//     solver.ErrDiverged (inside *solver.IterationError; Result populated for
//     the last three).
//
// Complexity:
//   - Per iteration: 2n+1 evaluations (central stencil), O(m·n² + n³) arithmetic.
func GaussNewton(r diff.Func, x0 *matrix.Vector, opts ...solver.Option) (*solver.Result, error) {
	if r == nil {
		return nil, nlsErrorf(opGaussNewton, matrix.ErrNilMatrix)
	}
	cfg := solver.NewConfig(opts...)
	n, m := r.Dims()
	if m < n && cfg.Regularization == 0 {
		return nil, nlsErrorf(opGaussNewton,
			fmt.Errorf("%d residuals < %d parameters: %w", m, n, matrix.ErrDimensionMismatch))
	}
	if err := matrix.ValidateVecLen(x0, n); err != nil {
		return nil, nlsErrorf(opGaussNewton, err)
	}

	run := cfg.Start(opGaussNewton)
	run.Begin()

	var (
		x         = x0.Clone()
		res, neg  *matrix.Vector
		jac       *matrix.Dense
		rn, sn    float64
		stepped   bool
		err       error
		diffOpts  = cfg.DiffOptions()
		solveOpts = cfg.LinalgOptions()
	)
	for {
		if res, err = diff.Evaluate(r, x); err != nil {
			return nil, run.Abort(x, err)
		}
		if rn, err = matrix.VecNorm(res, cfg.Norm); err != nil {
			return nil, run.Abort(x, err)
		}
		run.Observe(x, res, rn)

		switch cfg.Criterion {
		case solver.StepCriterion:
			if stepped && sn < cfg.Tolerance {
				return run.Finish(solver.Converged, nil)
			}
		default:
			if rn < cfg.Tolerance {
				return run.Finish(solver.Converged, nil)
			}
		}
		if math.IsNaN(rn) || math.IsInf(rn, 0) {
			return run.Finish(solver.Diverged, solver.ErrDiverged)
		}
		if run.Exhausted() {
			return run.Finish(solver.MaxIterExceeded, nil)
		}

		if jac, err = diff.Jacobian(r, x, diffOpts...); err != nil {
			return nil, run.Abort(x, err)
		}
		// neg = -δ, the least-squares solution of J·(-δ) ≈ r.
		if neg, err = linalg.RegularizedLeastSquares(jac, res, cfg.Regularization, solveOpts...); err != nil {
			if errors.Is(err, linalg.ErrSingular) {
				return run.Finish(solver.Diverged, err)
			}
			return nil, run.Abort(x, err)
		}

		next := x.Clone()
		if err = matrix.AddScaledVec(next, -cfg.Damping, neg); err != nil {
			return nil, run.Abort(x, err)
		}
		if sn, err = matrix.VecNorm(neg, cfg.Norm); err != nil {
			return nil, run.Abort(x, err)
		}
		sn *= cfg.Damping
		stepped = true
		run.Step(sn)
		x = next
	}
}
