// SPDX-License-Identifier: MIT

package root

import (
	"errors"
	"math"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/linalg"
	"github.com/katalvlaran/nlsolve/matrix"
	"github.com/katalvlaran/nlsolve/solver"
)

// Newton drives a square system f: Rⁿ → Rⁿ to zero from x0 with damped
// Newton steps x ← x + λ·δ, where J(x)·δ = -f(x) and J is estimated by
// finite differences.
// MAIN DESCRIPTION:
//   - Each loop first evaluates r = f(x) and records (x, r, ‖r‖) as the
//     current state, so the Result always describes the last evaluated iterate.
//   - Termination, checked in this order:
//     ‖r‖ < ε                  → Converged
//     ‖r‖ not finite           → Diverged (ErrDiverged)
//     K updates already applied → MaxIterExceeded (ErrMaxIterExceeded)
//     J singular               → Diverged (linalg.ErrSingular)
//
// Implementation:
//   - Stage 1: validate arity eagerly (n inputs, n outputs, len(x0) == n).
//   - Stage 2: loop { evaluate; test; Jacobian; SolveInPlace(J, -r); update }.
//
// Behavior highlights:
//   - x0 is never modified; every iterate is a fresh vector.
//   - The Jacobian is rebuilt at every iterate and dropped after the solve.
//   - No residual-growth monitoring: a poor x0 may wander until the cap.
//
// Returns:
//   - (*Result, nil) on convergence.
//   - (*Result, *solver.IterationError) on Diverged / MaxIterExceeded; the
//     Result still carries the last valid iterate and its norms.
//   - (nil, error) on invalid input or a failing user function.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (before any evaluation).
//   - diff.ErrUserFunction, linalg.ErrSingular, solver.ErrMaxIterExceeded,
//     solver.ErrDiverged (inside *solver.IterationError).
//
// Complexity:
//   - Per iteration: 2n+1 evaluations of f (central stencil) and O(n³) for the solve.
func Newton(f diff.Func, x0 *matrix.Vector, opts ...solver.Option) (*solver.Result, error) {
	if f == nil {
		return nil, rootErrorf(opNewton, matrix.ErrNilMatrix)
	}
	in, out := f.Dims()
	if in != out {
		return nil, rootErrorf(opNewton, matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateVecLen(x0, in); err != nil {
		return nil, rootErrorf(opNewton, err)
	}

	cfg := solver.NewConfig(opts...)
	run := cfg.Start(opNewton)
	run.Begin()

	var (
		x         = x0.Clone()
		r, delta  *matrix.Vector
		jac       *matrix.Dense
		rn, sn    float64
		err       error
		diffOpts  = cfg.DiffOptions()
		solveOpts = cfg.LinalgOptions()
	)
	for {
		if r, err = diff.Evaluate(f, x); err != nil {
			return nil, run.Abort(x, err)
		}
		if rn, err = matrix.VecNorm(r, cfg.Norm); err != nil {
			return nil, run.Abort(x, err)
		}
		run.Observe(x, r, rn)

		if rn < cfg.Tolerance {
			return run.Finish(solver.Converged, nil)
		}
		if math.IsNaN(rn) || math.IsInf(rn, 0) {
			return run.Finish(solver.Diverged, solver.ErrDiverged)
		}
		if run.Exhausted() {
			return run.Finish(solver.MaxIterExceeded, nil)
		}

		if jac, err = diff.Jacobian(f, x, diffOpts...); err != nil {
			return nil, run.Abort(x, err)
		}
		if delta, err = matrix.ScaleVec(-1, r); err != nil {
			return nil, run.Abort(x, err)
		}
		if err = linalg.SolveInPlace(jac, delta, solveOpts...); err != nil {
			if errors.Is(err, linalg.ErrSingular) {
				return run.Finish(solver.Diverged, err)
			}
			return nil, run.Abort(x, err)
		}

		// x is now owned by the recorded state; step from a copy.
		next := x.Clone()
		if err = matrix.AddScaledVec(next, cfg.Damping, delta); err != nil {
			return nil, run.Abort(x, err)
		}
		if sn, err = matrix.VecNorm(delta, cfg.Norm); err != nil {
			return nil, run.Abort(x, err)
		}
		run.Step(cfg.Damping * sn)
		x = next
	}
}
