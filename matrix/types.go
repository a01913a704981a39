// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense store and its kernels.
// This file contains ONLY the public Matrix contract and the small enums
// (Layout, Norm) carried alongside buffers. Errors and options live in
// dedicated files (errors.go, options.go).
package matrix

// Layout tags the storage order of a Dense buffer.
// The tag is consulted once per logical operation (see strides), never per element.
type Layout uint8

const (
	// RowMajor stores element (i,j) at offset i*cols + j.
	RowMajor Layout = iota
	// ColMajor stores element (i,j) at offset j*rows + i.
	ColMajor
)

// String returns a short human-readable tag.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "unknown-layout"
	}
}

// Norm selects a vector norm for convergence checks and distances.
type Norm uint8

const (
	// Euclidean is the L2 norm sqrt(Σ x_i²).
	Euclidean Norm = iota
	// Infinity is the max-abs norm max |x_i|.
	Infinity
	// Manhattan is the L1 norm Σ |x_i|.
	Manhattan
)

// String returns a short human-readable tag.
func (n Norm) String() string {
	switch n {
	case Euclidean:
		return "euclidean"
	case Infinity:
		return "infinity"
	case Manhattan:
		return "manhattan"
	default:
		return "unknown-norm"
	}
}

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
