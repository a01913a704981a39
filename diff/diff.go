// SPDX-License-Identifier: MIT

package diff

import (
	"fmt"

	"github.com/katalvlaran/nlsolve/matrix"
)

// Operation name constants for unified error wrapping.
const (
	opDerivative = "Derivative"
	opGradient   = "Gradient"
	opJacobian   = "Jacobian"
)

func diffErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// sampler evaluates the function at a perturbed point and returns its m outputs.
type sampler func(p []float64) ([]float64, error)

// sweep fills out (row-major m×n) with ∂f_i/∂x_j estimated by the configured stencil.
// MAIN DESCRIPTION:
//   - One working copy of x is perturbed along one axis at a time and restored afterwards.
//
// Implementation:
//   - Stage 1 (Forward only): evaluate f(x) once as the base value.
//   - Stage 2: for each input j, evaluate at the stencil points and combine.
//
// Behavior highlights:
//   - Central uses the representable step (x+h) - (x-h) as denominator to cancel
//     the rounding of the perturbation itself.
//   - Exactly one evaluation per perturbed point; nothing is cached across calls.
//
// Complexity:
//   - Evaluations: n+1 (Forward), 2n (Central), 4n (FivePoint); Space O(n+m).
func sweep(x []float64, m int, o Options, sample sampler, out []float64) error {
	n := len(x)
	p := make([]float64, n)
	copy(p, x)

	var (
		base, f1, f2, f3, f4 []float64
		err                  error
	)
	if o.Stencil == Forward {
		if base, err = sample(p); err != nil {
			return err
		}
	}

	var (
		i, j      int
		xj, h, dd float64
	)
	for j = 0; j < n; j++ {
		xj = x[j]
		h = o.stepAt(xj)
		switch o.Stencil {
		case Forward:
			p[j] = xj + h
			dd = p[j] - xj
			if f1, err = sample(p); err != nil {
				return err
			}
			for i = 0; i < m; i++ {
				out[i*n+j] = (f1[i] - base[i]) / dd
			}
		case FivePoint:
			p[j] = xj - 2*h
			if f1, err = sample(p); err != nil {
				return err
			}
			p[j] = xj - h
			if f2, err = sample(p); err != nil {
				return err
			}
			p[j] = xj + h
			if f3, err = sample(p); err != nil {
				return err
			}
			p[j] = xj + 2*h
			if f4, err = sample(p); err != nil {
				return err
			}
			for i = 0; i < m; i++ {
				out[i*n+j] = (f1[i] - f4[i] + 8*(f3[i]-f2[i])) / (12 * h)
			}
		default:
			p[j] = xj + h
			if f1, err = sample(p); err != nil {
				return err
			}
			dd = p[j]
			p[j] = xj - h
			if f2, err = sample(p); err != nil {
				return err
			}
			dd -= p[j]
			for i = 0; i < m; i++ {
				out[i*n+j] = (f1[i] - f2[i]) / dd
			}
		}
		p[j] = xj
	}

	return nil
}

// Derivative estimates f'(x) for a function of one variable.
//
// Errors:
//   - ErrUserFunction (as *FuncError) when f fails.
func Derivative(f Func1D, x float64, opts ...Option) (float64, error) {
	if f == nil {
		return 0, diffErrorf(opDerivative, matrix.ErrNilMatrix)
	}
	o := NewOptions(opts...)
	out := make([]float64, 1)
	err := sweep([]float64{x}, 1, o, func(p []float64) ([]float64, error) {
		v, err := Evaluate1D(f, p[0])
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}, out)
	if err != nil {
		return 0, diffErrorf(opDerivative, err)
	}

	return out[0], nil
}

// Gradient estimates ∇f(x) for a scalar function f: Rⁿ → R.
// The result is a fresh length-n vector owned by the caller.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (len(x) != f.Dim()).
//   - ErrUserFunction (as *FuncError) when f fails.
func Gradient(f ScalarFunc, x *matrix.Vector, opts ...Option) (*matrix.Vector, error) {
	if f == nil {
		return nil, diffErrorf(opGradient, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateVecLen(x, f.Dim()); err != nil {
		return nil, diffErrorf(opGradient, err)
	}
	o := NewOptions(opts...)
	out := make([]float64, x.Len())
	err := sweep(x.RawData(), 1, o, func(p []float64) ([]float64, error) {
		pv, err := matrix.NewVectorFrom(p, matrix.WithNoValidateNaNInf())
		if err != nil {
			return nil, err
		}
		v, err := evalScalar(f, pv)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}, out)
	if err != nil {
		return nil, diffErrorf(opGradient, err)
	}

	return matrix.NewVectorFrom(out, matrix.WithNoValidateNaNInf())
}

// Jacobian estimates the m×n Jacobian of f: Rⁿ → Rᵐ at x.
// Row i holds the partials of output i; column j those with respect to input j.
// The result is a fresh row-major Dense owned by the caller; non-finite entries
// are kept so that a downstream solve reports them as a singular pivot.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (input or output arity).
//   - ErrUserFunction (as *FuncError) when f fails.
//
// Complexity:
//   - 2n evaluations for Central; O(m·n) memory.
func Jacobian(f Func, x *matrix.Vector, opts ...Option) (*matrix.Dense, error) {
	if f == nil {
		return nil, diffErrorf(opJacobian, matrix.ErrNilMatrix)
	}
	in, m := f.Dims()
	if err := matrix.ValidateVecLen(x, in); err != nil {
		return nil, diffErrorf(opJacobian, err)
	}
	o := NewOptions(opts...)
	out := make([]float64, m*in)
	err := sweep(x.RawData(), m, o, func(p []float64) ([]float64, error) {
		pv, err := matrix.NewVectorFrom(p, matrix.WithNoValidateNaNInf())
		if err != nil {
			return nil, err
		}
		y, err := evalUnchecked(f, pv, m)
		if err != nil {
			return nil, err
		}
		// The function may hand back an internal buffer; stencil points must not alias.
		return append([]float64(nil), y.RawData()...), nil
	}, out)
	if err != nil {
		return nil, diffErrorf(opJacobian, err)
	}

	return matrix.NewDenseFrom(m, in, out, matrix.WithNoValidateNaNInf())
}
