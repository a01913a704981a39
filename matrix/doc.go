// Package matrix offers the dense vector/matrix store used by the solvers.
//
// The matrix package provides:
//
//   - Dense: an owned flat buffer tagged with its Layout (RowMajor or ColMajor),
//     safe At/Set accessors, O(1) transpose-by-tag and explicit layout conversion.
//   - Vector: an owned fixed-length buffer.
//   - View: a non-owning (row, col, rows, cols) descriptor for regional
//     extraction, assignment and in-place subtraction.
//   - Kernels: Add, Sub, Scale, Mul, Transpose, MatVec, TMatVec, Gram.
//   - Norms and distances (Euclidean, Infinity, Manhattan) backed by gonum/floats.
//
// All public operations return sentinel errors (see errors.go) instead of
// panicking; match them with errors.Is.
package matrix
