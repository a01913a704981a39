// Package solver holds what the iterative solvers (root, nls) share:
// per-call configuration, the status machine, the Result type and the
// error taxonomy for in-loop failures.
//
// Configuration:
//
//	cfg := solver.NewConfig(
//	    solver.WithTolerance(1e-12),
//	    solver.WithMaxIterations(50),
//	    solver.WithDamping(0.5),
//	    solver.WithLogger(slog.Default()),
//	)
//
// Every option has a Default* constant; nothing is process-wide.
//
// Status machine:
//
//	Initialized → Iterating → {Converged, Diverged, MaxIterExceeded}
//
// Errors:
//
//	ErrMaxIterExceeded  cap reached; Result still carries the best iterate.
//	ErrDiverged         non-finite iterate or residual.
//	*IterationError     wraps any in-loop cause (linalg.ErrSingular,
//	                    diff.ErrUserFunction, ...) with the iteration index
//	                    and a copy of the last valid iterate.
//
// Tracing:
//
//	With WithLogger set, each applied update emits one Debug record
//	(iter, residual_norm, step_norm) and each terminal transition one
//	Info (converged) or Warn record.
package solver
