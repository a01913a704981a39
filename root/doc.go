// Package root finds zeros of nonlinear functions.
//
// What & Why:
//
//	Newton solves square systems f: Rⁿ → Rⁿ with a finite-difference
//	Jacobian and a partial-pivot LU solve per iteration. The scalar
//	helpers cover the one-dimensional case:
//	  • Newton1D   numeric derivative, quadratic near a simple root
//	  • Secant     two starting points, no derivative
//	  • Bisection  bracketing, always converges on a sign change
//
// Termination (Newton):
//
//	r = f(x) is evaluated at the top of every iteration.
//	  ‖r‖ < ε                 → Converged
//	  K updates applied        → MaxIterExceeded (x_K and ‖f(x_K)‖ reported)
//	  J(x) singular            → Diverged (last valid x reported)
//	Damping λ ∈ (0,1] scales every step uniformly; there is no line search.
//
// Termination (scalar methods):
//
//	Converged when both the last move and |f| fall below ε.
//
// All methods take solver.Option values and return *solver.Result.
package root
