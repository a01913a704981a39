// Package diff estimates derivatives by finite differences.
//
// What & Why:
//
//	Solvers need the Jacobian of a user function at every iterate but the
//	function is a black box. diff perturbs one input at a time and combines
//	the outputs with a fixed stencil:
//	  • Central   (default)  error O(h²), 2 evaluations per input
//	  • Forward               error O(h),  1 evaluation per input (+ f(x))
//	  • FivePoint             error O(h⁴), 4 evaluations per input
//
//	The step for input i is h·max(|x_i|, 1), so coordinates near zero do not
//	collapse the step and large coordinates do not drown it in rounding.
//	The O(hᵏ) error is inherent to the method, not a defect.
//
// Conventions:
//
//	Jacobian(f, x) returns an m×n matrix for f: Rⁿ → Rᵐ: row i = output i,
//	column j = input j. Gradient returns a length-n vector.
//
// Errors:
//
//	Arity mismatches surface as matrix.ErrDimensionMismatch before any
//	evaluation (input) or at the first evaluation (output). Failures inside
//	the user function surface as *FuncError, matching ErrUserFunction.
package diff
