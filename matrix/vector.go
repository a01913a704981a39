// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Vector is a fixed-length sequence of float64 values owning its buffer.
// The length is set at construction and never changes.
type Vector struct {
	data           []float64
	validateNaNInf bool
}

var _ fmt.Stringer = (*Vector)(nil)

// NewVector creates a vector of length n filled with DefaultFill (or WithFill).
// WithLayout is accepted and ignored.
//
// Errors:
//   - ErrInvalidDimensions when n < 0.
func NewVector(n int, opts ...Option) (*Vector, error) {
	if n < 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)
	buf := make([]float64, n)
	if o.fill != 0 {
		for i := range buf {
			buf[i] = o.fill
		}
	}

	return &Vector{data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// NewVectorFrom creates a vector holding a copy of data.
//
// Errors:
//   - ErrNaNInf when the numeric policy is on and data holds a non-finite value.
func NewVectorFrom(data []float64, opts ...Option) (*Vector, error) {
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("Vector.NewFrom: element %d: %w", k, ErrNaNInf)
			}
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Vector{data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// wrapVector adopts buf without copying. Internal kernels use it for freshly
// allocated results they own exclusively.
func wrapVector(buf []float64, validateNaNInf bool) *Vector {
	return &Vector{data: buf, validateNaNInf: validateNaNInf}
}

// Len returns the vector dimension.
func (v *Vector) Len() int { return len(v.data) }

// At returns element i or ErrOutOfRange.
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, fmt.Errorf("Vector.At(%d): %w", i, ErrOutOfRange)
	}

	return v.data[i], nil
}

// Set stores x at index i, honoring the numeric policy.
func (v *Vector) Set(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("Vector.Set(%d): %w", i, ErrOutOfRange)
	}
	if v.validateNaNInf && (math.IsNaN(x) || math.IsInf(x, 0)) {
		return fmt.Errorf("Vector.Set(%d): %w", i, ErrNaNInf)
	}
	v.data[i] = x

	return nil
}

// RawData exposes the backing buffer. Writes bypass the numeric policy.
func (v *Vector) RawData() []float64 { return v.data }

// Clone returns an independent copy with the same policy.
func (v *Vector) Clone() *Vector {
	cp := make([]float64, len(v.data))
	copy(cp, v.data)

	return &Vector{data: cp, validateNaNInf: v.validateNaNInf}
}

// CopyFrom overwrites v with the contents of src (lengths must match).
func (v *Vector) CopyFrom(src *Vector) error {
	if src == nil {
		return fmt.Errorf("Vector.CopyFrom: %w", ErrNilMatrix)
	}
	if len(src.data) != len(v.data) {
		return fmt.Errorf("Vector.CopyFrom: %d != %d: %w", len(src.data), len(v.data), ErrDimensionMismatch)
	}
	copy(v.data, src.data)

	return nil
}

// String renders the vector as "[a, b, c]".
func (v *Vector) String() string {
	var b strings.Builder
	b.WriteString(_fmtRowOpen)
	for i, x := range v.data {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		fmt.Fprintf(&b, "%g", x)
	}
	b.WriteString("]")

	return b.String()
}
