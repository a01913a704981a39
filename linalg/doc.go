// Package linalg solves dense square linear systems.
//
// Every solve goes through an LU factorization with partial pivoting: at each
// elimination column the largest-magnitude candidate becomes the pivot, and
// elimination stops with ErrSingular as soon as that candidate does not exceed
// the pivot tolerance. The default tolerance is n·ε·‖A‖∞; WithPivotTolerance
// replaces it with an absolute threshold.
//
//	x, err := linalg.Solve(A, b)
//	if errors.Is(err, linalg.ErrSingular) { ... }
//
// Solve, Inverse and Det leave their inputs untouched. SolveInPlace and
// InverseInPlace take temporary exclusive write access to the caller's matrix
// and document what it holds afterwards.
//
// Complexity: factorization O(n³); each additional right-hand side O(n²).
package linalg
