// SPDX-License-Identifier: MIT

package diff

import "math"

// Stencil selects the finite-difference formula.
type Stencil uint8

const (
	// Central is (f(x+h) - f(x-h)) / 2h, error O(h²), 2 evaluations per input.
	Central Stencil = iota
	// Forward is (f(x+h) - f(x)) / h, error O(h), 1 evaluation per input plus f(x).
	Forward
	// FivePoint is (f(x-2h) - f(x+2h) + 8(f(x+h) - f(x-h))) / 12h, error O(h⁴),
	// 4 evaluations per input.
	FivePoint
)

// String returns a short human-readable tag.
func (s Stencil) String() string {
	switch s {
	case Central:
		return "central"
	case Forward:
		return "forward"
	case FivePoint:
		return "five-point"
	default:
		return "unknown-stencil"
	}
}

// Default base steps per stencil, chosen near the optimum that balances
// truncation against rounding error (ε^(1/3), ε^(1/2), ε^(1/5) respectively).
// The effective step for input i is h·max(|x_i|, 1).
const (
	DefaultCentralStep   = 6.0554544523933395e-06
	DefaultForwardStep   = 1.4901161193847656e-08
	DefaultFivePointStep = 6e-4

	DefaultStencil = Central
)

const (
	panicStepInvalid    = "diff: WithStep: step must be finite and > 0"
	panicStencilInvalid = "diff: WithStencil: unknown stencil"
)

// Option configures a differentiation call.
type Option func(*Options)

// Options is the resolved configuration of a differentiation call.
type Options struct {
	Step    float64 // base step h; 0 selects the stencil default
	Stencil Stencil
}

// WithStep fixes the base step h. Panics unless h is finite and positive.
func WithStep(h float64) Option {
	if !(h > 0) || math.IsInf(h, 0) {
		panic(panicStepInvalid)
	}

	return func(o *Options) { o.Step = h }
}

// WithStencil selects the finite-difference formula.
func WithStencil(s Stencil) Option {
	if s > FivePoint {
		panic(panicStencilInvalid)
	}

	return func(o *Options) { o.Stencil = s }
}

// NewOptions resolves opts over the defaults. Solvers use it to carry a
// differentiation configuration across iterations.
func NewOptions(opts ...Option) Options {
	o := Options{Stencil: DefaultStencil}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Step == 0 {
		o.Step = defaultStep(o.Stencil)
	}

	return o
}

func defaultStep(s Stencil) float64 {
	switch s {
	case Forward:
		return DefaultForwardStep
	case FivePoint:
		return DefaultFivePointStep
	default:
		return DefaultCentralStep
	}
}

// stepAt returns the effective step for coordinate value xi.
func (o Options) stepAt(xi float64) float64 {
	return o.Step * math.Max(math.Abs(xi), 1)
}
