// SPDX-License-Identifier: MIT

package nls

import (
	"fmt"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/matrix"
	"github.com/katalvlaran/nlsolve/solver"
)

// ModelFunc evaluates a parametric model at abscissa t with parameters p.
// It must not modify p.
type ModelFunc func(t float64, p []float64) float64

// Curve turns observations (T[i], Y[i]) and a model into the residual
// function r_i(p) = Model(T[i], p) - Y[i], usable with GaussNewton.
type Curve struct {
	Model  ModelFunc
	T, Y   []float64
	Params int // number of model parameters n
}

var _ diff.Func = Curve{}

// Dims implements diff.Func: n parameters in, one residual per observation out.
func (c Curve) Dims() (int, int) { return c.Params, len(c.T) }

// Eval implements diff.Func.
func (c Curve) Eval(p *matrix.Vector) (*matrix.Vector, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(c.T))
	params := p.RawData()
	for i, t := range c.T {
		out[i] = c.Model(t, params) - c.Y[i]
	}

	return matrix.NewVectorFrom(out, matrix.WithNoValidateNaNInf())
}

func (c Curve) validate() error {
	if c.Model == nil {
		return fmt.Errorf("Curve: nil model: %w", matrix.ErrNilMatrix)
	}
	if len(c.T) != len(c.Y) {
		return fmt.Errorf("Curve: %d abscissae, %d observations: %w", len(c.T), len(c.Y), matrix.ErrDimensionMismatch)
	}
	if c.Params < 0 {
		return fmt.Errorf("Curve: %d parameters: %w", c.Params, matrix.ErrInvalidDimensions)
	}

	return nil
}

// FitCurve validates c and runs GaussNewton from p0.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrInvalidDimensions
//     for a malformed Curve; otherwise as GaussNewton.
func FitCurve(c Curve, p0 *matrix.Vector, opts ...solver.Option) (*solver.Result, error) {
	if err := c.validate(); err != nil {
		return nil, nlsErrorf(opFitCurve, err)
	}

	return GaussNewton(c, p0, opts...)
}
