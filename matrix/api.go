// SPDX-License-Identifier: MIT

package matrix

// NewZeros returns an r×c zero matrix (alias of NewDense for readability at call sites).
func NewZeros(rows, cols int, opts ...Option) (*Dense, error) {
	return NewDense(rows, cols, opts...)
}

// NewOnes returns an r×c matrix with every element equal to 1.
func NewOnes(rows, cols int, opts ...Option) (*Dense, error) {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)

	return NewDense(rows, cols, append(all, WithFill(1))...)
}

// NewIdentity returns the n×n identity matrix.
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	return NewEye(n, n, opts...)
}

// NewEye returns an r×c matrix with ones on the main diagonal
// (min(r,c) of them) and zeros elsewhere.
func NewEye(rows, cols int, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	// The fill option is meaningless here; the diagonal overrides it.
	for k := range m.data {
		m.data[k] = 0
	}
	rs, cs := m.strides()
	rank := min(rows, cols)
	for i := 0; i < rank; i++ {
		m.data[i*rs+i*cs] = 1
	}

	return m, nil
}

// ZerosLike returns a zero matrix with the shape and layout of d.
func ZerosLike(d *Dense) (*Dense, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}

	return NewDense(d.r, d.c, WithLayout(d.layout))
}

// IdentityLike returns an identity matrix matching a square d.
func IdentityLike(d *Dense) (*Dense, error) {
	if err := ValidateSquareNonNil(d); err != nil {
		return nil, err
	}

	return NewIdentity(d.r, WithLayout(d.layout))
}
