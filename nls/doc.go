// Package nls fits parameters by nonlinear least squares.
//
// What & Why:
//
//	GaussNewton minimizes ‖r(x)‖² for a residual function r: Rⁿ → Rᵐ
//	(m ≥ n, or any m when μ > 0). Each step solves the normal equations of the linearized
//	problem
//
//	    (JᵀJ + μI)·δ = -Jᵀr
//
//	with J the m×n finite-difference Jacobian (row i = residual i). μ = 0
//	gives plain Gauss-Newton; a small fixed μ > 0 keeps JᵀJ invertible
//	for nearly rank-deficient models (a fixed Levenberg term, not an
//	adaptive Levenberg-Marquardt schedule).
//
// Convergence:
//
//	solver.StepCriterion (default)      ‖λ·δ‖ < ε
//	solver.ResidualCriterion            ‖r(x)‖ < ε
//
//	The residual test suits exact-fit problems only: on data whose best
//	fit leaves ‖r‖ > 0 it never triggers and the fit ends in
//	solver.ErrMaxIterExceeded.
//
// Curve:
//
//	Curve wraps (t, y) observations and a ModelFunc into a residual
//	function; FitCurve checks the data before fitting.
//
//	c := nls.Curve{
//	    Model:  func(t float64, p []float64) float64 { return p[0]*t + p[1] },
//	    T:      ts, Y: ys, Params: 2,
//	}
//	res, err := nls.FitCurve(c, p0)
package nls
