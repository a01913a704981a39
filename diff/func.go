// SPDX-License-Identifier: MIT

package diff

import (
	"fmt"

	"github.com/katalvlaran/nlsolve/matrix"
)

// Func is a vector-valued function f: Rⁿ → Rᵐ with declared arity.
// Eval must be a pure function of x and must not retain or modify x. It may
// return the same internal buffer on every call; callers in this module copy.
type Func interface {
	// Dims reports the input arity n and the output arity m.
	Dims() (in, out int)
	// Eval returns f(x), a vector of length m.
	Eval(x *matrix.Vector) (*matrix.Vector, error)
}

// ScalarFunc is a scalar-valued function f: Rⁿ → R with declared input arity.
type ScalarFunc interface {
	Dim() int
	Eval(x *matrix.Vector) (float64, error)
}

// Func1D is a scalar function of one variable.
type Func1D func(x float64) (float64, error)

// VectorFunc adapts a plain slice callback to Func.
// Fn receives a zeroed dst of length Out and must fill it; it must not modify x.
type VectorFunc struct {
	In, Out int
	Fn      func(dst, x []float64) error
}

var _ Func = VectorFunc{}

// Dims implements Func.
func (f VectorFunc) Dims() (int, int) { return f.In, f.Out }

// Eval implements Func.
func (f VectorFunc) Eval(x *matrix.Vector) (*matrix.Vector, error) {
	dst, err := matrix.NewVector(f.Out, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	if err = f.Fn(dst.RawData(), x.RawData()); err != nil {
		return nil, err
	}

	return dst, nil
}

// ScalarFuncOf adapts a plain slice callback to ScalarFunc.
type ScalarFuncOf struct {
	In int
	Fn func(x []float64) (float64, error)
}

var _ ScalarFunc = ScalarFuncOf{}

// Dim implements ScalarFunc.
func (f ScalarFuncOf) Dim() int { return f.In }

// Eval implements ScalarFunc.
func (f ScalarFuncOf) Eval(x *matrix.Vector) (float64, error) { return f.Fn(x.RawData()) }

// Evaluate calls f at x with the boundary checks every solver relies on:
// len(x) must equal the declared input arity, a caller error is wrapped in
// *FuncError, and the result must have the declared output arity.
// The returned vector is a copy owned by the caller, so later calls to f
// cannot change it.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, ErrUserFunction.
func Evaluate(f Func, x *matrix.Vector) (*matrix.Vector, error) {
	if f == nil {
		return nil, fmt.Errorf("Evaluate: nil function: %w", matrix.ErrNilMatrix)
	}
	in, out := f.Dims()
	if err := matrix.ValidateVecLen(x, in); err != nil {
		return nil, fmt.Errorf("Evaluate: input arity %d: %w", in, err)
	}

	y, err := evalUnchecked(f, x, out)
	if err != nil {
		return nil, err
	}

	return y.Clone(), nil
}

// evalUnchecked skips the input check for hot loops whose point is known good.
func evalUnchecked(f Func, x *matrix.Vector, out int) (*matrix.Vector, error) {
	y, err := f.Eval(x)
	if err != nil {
		return nil, newFuncError(x.RawData(), err)
	}
	if y == nil || y.Len() != out {
		got := 0
		if y != nil {
			got = y.Len()
		}
		return nil, fmt.Errorf("Evaluate: output arity %d, got %d: %w", out, got, matrix.ErrDimensionMismatch)
	}

	return y, nil
}

// EvaluateScalar calls a ScalarFunc at x, checking the input arity and
// wrapping a caller error in *FuncError.
func EvaluateScalar(f ScalarFunc, x *matrix.Vector) (float64, error) {
	if f == nil {
		return 0, fmt.Errorf("EvaluateScalar: nil function: %w", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateVecLen(x, f.Dim()); err != nil {
		return 0, fmt.Errorf("EvaluateScalar: input arity %d: %w", f.Dim(), err)
	}

	return evalScalar(f, x)
}

// evalScalar calls a ScalarFunc at x and wraps a caller error.
func evalScalar(f ScalarFunc, x *matrix.Vector) (float64, error) {
	v, err := f.Eval(x)
	if err != nil {
		return 0, newFuncError(x.RawData(), err)
	}

	return v, nil
}

// Evaluate1D calls a Func1D at x and wraps a caller error in *FuncError.
func Evaluate1D(f Func1D, x float64) (float64, error) {
	v, err := f(x)
	if err != nil {
		return 0, newFuncError([]float64{x}, err)
	}

	return v, nil
}
