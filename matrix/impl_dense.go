// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row- or column-major) & safe accessors.
//
// Purpose:
//   - Provide a flat buffer tagged with its Layout; element (i,j) lives at i*rs + j*cs
//     where (rs, cs) are the strides derived once from the tag.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); TransposeInPlace: O(1);
//     ToLayout / ConvertLayout: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"      // method tag used in error wrappers
	ctxSet     = "Set"     // method tag used in error wrappers
	ctxApply   = "Apply"   // method tag used in error wrappers
	ctxNewFrom = "NewFrom" // ctor tag for NewDenseFrom
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps the sentinel reachable via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete dense matrix owning its buffer.
//   - r,c hold dimensions (rows, cols), both >= 0.
//   - layout tags how data is ordered; it never changes without the data moving with it.
//   - data is a flat buffer of length r*c.
//   - validateNaNInf enables optional NaN/Inf rejection in Set.
type Dense struct {
	r, c           int
	layout         Layout
	data           []float64
	validateNaNInf bool
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c matrix filled with DefaultFill (or WithFill).
// MAIN DESCRIPTION:
//   - Public constructor for Dense with shape validation and resolved options.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrInvalidDimensions.
//   - Stage 2: allocate buffer, apply fill, record layout and numeric policy.
//
// Behavior highlights:
//   - 0×N and N×0 shapes are legal and hold a zero-length buffer.
//   - No panics on user errors; returns sentinel errors.
//
// Errors:
//   - ErrInvalidDimensions (negative shape).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	buf := make([]float64, rows*cols)
	if o.fill != 0 {
		for i := range buf {
			buf[i] = o.fill
		}
	}

	return &Dense{
		r:              rows,
		c:              cols,
		layout:         o.layout,
		data:           buf,
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom creates an r×c matrix from a copy of data, which is read in the
// layout selected by opts (row-major unless WithLayout(ColMajor) is given).
//
// Errors:
//   - ErrInvalidDimensions when rows/cols are negative or len(data) != rows*cols.
//   - ErrNaNInf when the numeric policy is on and data holds a non-finite value.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("Dense.%s: element %d: %w", ctxNewFrom, k, ErrNaNInf)
			}
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{
		r:              rows,
		c:              cols,
		layout:         o.layout,
		data:           buf,
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// Rows returns the row count. No side effects.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Layout reports the storage order of the backing buffer.
func (m *Dense) Layout() Layout { return m.layout }

// RawData exposes the backing buffer in Layout() order.
// Writes through the returned slice bypass the numeric policy; the slice is
// only valid until the next layout conversion.
func (m *Dense) RawData() []float64 { return m.data }

// strides returns (rowStride, colStride) for the stored layout.
// This is the single branch on the layout tag per logical operation.
func (m *Dense) strides() (rs, cs int) {
	if m.layout == ColMajor {
		return 1, m.r
	}

	return m.c, 1
}

// indexOf computes the flat offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}
	rs, cs := m.strides()

	return row*rs + col*cs, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite v under the policy.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same layout and numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.copyDense()
}

// copyDense is the concrete-typed twin of Clone used inside the package.
func (m *Dense) copyDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		layout:         m.layout,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// String renders the matrix row by row independent of layout.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	rs, cs := m.strides()
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&b, "%g", m.data[i*rs+j*cs])
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// TransposeInPlace transposes m by swapping its dimensions and flipping the
// layout tag. The buffer is not touched: a row-major r×c matrix and a
// column-major c×r matrix share the same bytes.
// Complexity: O(1).
func (m *Dense) TransposeInPlace() {
	m.r, m.c = m.c, m.r
	if m.layout == RowMajor {
		m.layout = ColMajor
	} else {
		m.layout = RowMajor
	}
}

// ToLayout returns an independent copy of m stored in layout l.
// Complexity: O(r*c).
func (m *Dense) ToLayout(l Layout) *Dense {
	if l == m.layout {
		return m.copyDense()
	}
	out := &Dense{
		r:              m.r,
		c:              m.c,
		layout:         l,
		data:           make([]float64, len(m.data)),
		validateNaNInf: m.validateNaNInf,
	}
	copyStrided(out, m)

	return out
}

// ConvertLayout reorders the backing buffer of m into layout l in place.
// The logical matrix is unchanged; only RawData ordering and Layout() move.
// Complexity: O(r*c) time, O(r*c) scratch.
func (m *Dense) ConvertLayout(l Layout) {
	if l == m.layout {
		return
	}
	moved := m.ToLayout(l)
	copy(m.data, moved.data)
	m.layout = l
}

// copyStrided writes every logical element of src into dst (same shape, any layouts).
func copyStrided(dst, src *Dense) {
	drs, dcs := dst.strides()
	srs, scs := src.strides()
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			dst.data[i*drs+j*dcs] = src.data[i*srs+j*scs]
		}
	}
}

// Fill sets every element to v, honoring the numeric policy.
func (m *Dense) Fill(v float64) error {
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return fmt.Errorf("Dense.Fill: %w", ErrNaNInf)
	}
	for k := range m.data {
		m.data[k] = v
	}

	return nil
}

// Apply replaces each element with f(i,j,v) in-place.
// MAIN DESCRIPTION:
//   - In-place map with policy enforcement and deterministic order.
//
// Implementation:
//   - Stage 1: nested loops i→j; strides computed once.
//   - Stage 2: compute new value; reject NaN/Inf if policy enabled.
//   - Stage 3: write back.
//
// Behavior highlights:
//   - Early error aborts; elements written before the error remain updated.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	rs, cs := m.strides()
	var i, j, off int
	var nv float64
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			off = i*rs + j*cs
			nv = f(i, j, m.data[off])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			m.data[off] = nv
		}
	}

	return nil
}

// Row returns a copy of row i as a plain slice.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("Dense.Row(%d): %w", i, ErrOutOfRange)
	}
	rs, cs := m.strides()
	out := make([]float64, m.c)
	for j := range out {
		out[j] = m.data[i*rs+j*cs]
	}

	return out, nil
}

// Col returns a copy of column j as a plain slice.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, fmt.Errorf("Dense.Col(%d): %w", j, ErrOutOfRange)
	}
	rs, cs := m.strides()
	out := make([]float64, m.r)
	for i := range out {
		out[i] = m.data[i*rs+j*cs]
	}

	return out, nil
}
