// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/nlsolve/matrix"
)

// Log attribute keys, shared by every solver.
const (
	KeyOp           = "op"
	KeyIter         = "iter"
	KeyResidualNorm = "residual_norm"
	KeyStepNorm     = "step_norm"
	KeyStatus       = "status"
)

const (
	msgIteration = "solver iteration"
	msgFinished  = "solver finished"
	msgAborted   = "solver aborted"

	panicIllegalTransition = "solver: illegal status transition"
)

// Run tracks one solve: status transitions, the counters that end up in
// Result, and optional slog tracing. A Run is owned by a single call and is
// not safe for concurrent use.
type Run struct {
	op  string
	cfg Config
	res Result
}

// Start opens a Run in status Initialized for the operation op.
func (c Config) Start(op string) *Run {
	return &Run{op: op, cfg: c, res: Result{Status: Initialized}}
}

// Config returns the configuration the Run was started with.
func (r *Run) Config() Config { return r.cfg }

// Status returns the current state.
func (r *Run) Status() Status { return r.res.Status }

// Iterations returns the number of updates recorded so far.
func (r *Run) Iterations() int { return r.res.Iterations }

// Begin moves Initialized → Iterating. Any other source state is a programming error.
func (r *Run) Begin() {
	if r.res.Status != Initialized {
		panic(panicIllegalTransition)
	}
	r.res.Status = Iterating
}

// Observe records the current iterate and its residual. The Run keeps the
// references; callers hand over ownership.
func (r *Run) Observe(x, residual *matrix.Vector, residualNorm float64) {
	r.res.X = x
	r.res.Residual = residual
	r.res.ResidualNorm = residualNorm
}

// Step records one applied update of norm stepNorm and emits its Debug record.
// The record carries the residual norm last passed to Observe.
func (r *Run) Step(stepNorm float64) {
	r.res.Iterations++
	r.res.StepNorm = stepNorm
	if r.cfg.Logger != nil {
		r.cfg.Logger.LogAttrs(context.Background(), slog.LevelDebug, msgIteration,
			slog.String(KeyOp, r.op),
			slog.Int(KeyIter, r.res.Iterations),
			slog.Float64(KeyResidualNorm, r.res.ResidualNorm),
			slog.Float64(KeyStepNorm, stepNorm),
		)
	}
}

// Exhausted reports whether the iteration cap has been reached.
func (r *Run) Exhausted() bool { return r.res.Iterations >= r.cfg.MaxIterations }

// Finish moves Iterating → s (terminal) and returns the populated Result.
//
// Returned error:
//   - Converged: nil.
//   - MaxIterExceeded: *IterationError wrapping ErrMaxIterExceeded.
//   - Diverged: *IterationError wrapping cause (ErrDiverged when cause is nil).
//
// The Result is returned in every case.
func (r *Run) Finish(s Status, cause error) (*Result, error) {
	if r.res.Status != Iterating || !s.Terminal() {
		panic(panicIllegalTransition)
	}
	r.res.Status = s

	var err error
	switch s {
	case MaxIterExceeded:
		err = NewIterationError(r.op, r.res.Iterations, rawOf(r.res.X), ErrMaxIterExceeded)
	case Diverged:
		if cause == nil {
			cause = ErrDiverged
		}
		err = NewIterationError(r.op, r.res.Iterations, rawOf(r.res.X), cause)
	}

	if r.cfg.Logger != nil {
		lvl := slog.LevelInfo
		if s != Converged {
			lvl = slog.LevelWarn
		}
		r.cfg.Logger.LogAttrs(context.Background(), lvl, msgFinished,
			slog.String(KeyOp, r.op),
			slog.String(KeyStatus, s.String()),
			slog.Int(KeyIter, r.res.Iterations),
			slog.Float64(KeyResidualNorm, r.res.ResidualNorm),
			slog.Float64(KeyStepNorm, r.res.StepNorm),
		)
	}
	res := r.res

	return &res, err
}

// Abort reports a failure that is not a solver outcome (user function error,
// arity violation mid-run). It returns cause wrapped in *IterationError and
// leaves the status untouched. A nil x falls back to the last observed iterate.
func (r *Run) Abort(x *matrix.Vector, cause error) error {
	if x == nil {
		x = r.res.X
	}
	if r.cfg.Logger != nil {
		r.cfg.Logger.LogAttrs(context.Background(), slog.LevelWarn, msgAborted,
			slog.String(KeyOp, r.op),
			slog.Int(KeyIter, r.res.Iterations),
			slog.Any("error", cause),
		)
	}

	return NewIterationError(r.op, r.res.Iterations, rawOf(x), cause)
}

func rawOf(x *matrix.Vector) []float64 {
	if x == nil {
		return nil
	}

	return x.RawData()
}
