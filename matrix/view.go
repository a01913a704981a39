// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// View is a non-owning descriptor of the rectangular region
// [Row, Row+Rows) × [Col, Col+Cols) of some parent matrix.
// A View holds no reference to the parent; it is resolved against a Dense on use.
type View struct {
	Row, Col   int // top-left corner in the parent
	Rows, Cols int // region height and width
}

// validateIn checks that v lies fully inside an r×c parent.
func (v View) validateIn(r, c int) error {
	if v.Row < 0 || v.Col < 0 || v.Rows < 0 || v.Cols < 0 ||
		v.Row+v.Rows > r || v.Col+v.Cols > c {
		return fmt.Errorf("View(%d,%d,%d,%d) in %dx%d: %w", v.Row, v.Col, v.Rows, v.Cols, r, c, ErrOutOfRange)
	}

	return nil
}

// Extract copies the region v of m into a new Dense with m's layout and policy.
//
// Errors:
//   - ErrOutOfRange when v does not lie fully within m.
//
// Complexity: O(v.Rows*v.Cols).
func (m *Dense) Extract(v View) (*Dense, error) {
	if err := v.validateIn(m.r, m.c); err != nil {
		return nil, fmt.Errorf("Dense.Extract: %w", err)
	}
	out := &Dense{
		r:              v.Rows,
		c:              v.Cols,
		layout:         m.layout,
		data:           make([]float64, v.Rows*v.Cols),
		validateNaNInf: m.validateNaNInf,
	}
	srs, scs := m.strides()
	drs, dcs := out.strides()
	var i, j int
	for i = 0; i < v.Rows; i++ {
		for j = 0; j < v.Cols; j++ {
			out.data[i*drs+j*dcs] = m.data[(v.Row+i)*srs+(v.Col+j)*scs]
		}
	}

	return out, nil
}

// Assign writes src into the region v of m. src must be v.Rows×v.Cols.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange, ErrDimensionMismatch, ErrNaNInf (policy).
func (m *Dense) Assign(v View, src Matrix) error {
	return m.regionUpdate("Assign", v, src, func(_, s float64) float64 { return s })
}

// SubtractAt subtracts src from the region v of m in place: m[v] -= src.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange, ErrDimensionMismatch, ErrNaNInf (policy).
func (m *Dense) SubtractAt(v View, src Matrix) error {
	return m.regionUpdate("SubtractAt", v, src, func(d, s float64) float64 { return d - s })
}

// regionUpdate is the shared kernel behind Assign and SubtractAt.
// The whole region is computed into scratch first so a policy violation leaves m untouched.
func (m *Dense) regionUpdate(tag string, v View, src Matrix, op func(dst, s float64) float64) error {
	if err := ValidateNotNil(src); err != nil {
		return fmt.Errorf("Dense.%s: %w", tag, err)
	}
	if err := v.validateIn(m.r, m.c); err != nil {
		return fmt.Errorf("Dense.%s: %w", tag, err)
	}
	if src.Rows() != v.Rows || src.Cols() != v.Cols {
		return fmt.Errorf("Dense.%s: src %dx%d vs view %dx%d: %w",
			tag, src.Rows(), src.Cols(), v.Rows, v.Cols, ErrDimensionMismatch)
	}
	rs, cs := m.strides()
	scratch := make([]float64, v.Rows*v.Cols)
	var (
		i, j int
		s    float64
		err  error
	)
	for i = 0; i < v.Rows; i++ {
		for j = 0; j < v.Cols; j++ {
			if s, err = src.At(i, j); err != nil {
				return fmt.Errorf("Dense.%s: %w", tag, err)
			}
			scratch[i*v.Cols+j] = op(m.data[(v.Row+i)*rs+(v.Col+j)*cs], s)
		}
	}
	if m.validateNaNInf {
		if err = validateFinite(scratch); err != nil {
			return fmt.Errorf("Dense.%s: %w", tag, err)
		}
	}
	for i = 0; i < v.Rows; i++ {
		for j = 0; j < v.Cols; j++ {
			m.data[(v.Row+i)*rs+(v.Col+j)*cs] = scratch[i*v.Cols+j]
		}
	}

	return nil
}
