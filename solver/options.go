// SPDX-License-Identifier: MIT

// Package solver: functional configuration shared by the iterative solvers.
// This file defines:
//   - Option / Config (functional options resolved per call),
//   - documented defaults (constants, single source of truth),
//   - WithX constructors with strong validation (panic on nonsensical values).
//
// Design goals:
//   - No global state: every call resolves its own Config.
//   - No dead switches: each option is consumed by at least one solver.
package solver

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/linalg"
	"github.com/katalvlaran/nlsolve/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the convergence threshold ε.
	DefaultTolerance = 1e-9

	// DefaultMaxIterations is the iteration cap K.
	DefaultMaxIterations = 100

	// DefaultDamping is the fixed step scale λ (1 = full Newton / Gauss-Newton step).
	DefaultDamping = 1.0

	// DefaultNorm measures residuals and steps.
	DefaultNorm = matrix.Euclidean

	// DefaultCriterion is the fitter's convergence test. A fit to noisy data
	// never drives ‖r‖ to zero, so the default stops on the step size.
	DefaultCriterion = StepCriterion

	// DefaultRegularization is the fitter's μ in (JᵀJ + μI)δ = -Jᵀr.
	DefaultRegularization = 0.0

	// DefaultPivotScale is rel in the pivot tolerance rel·n·‖J‖∞ of every linear
	// solve inside an iteration. It is √ε: finite-difference Jacobians carry
	// noise far above ε, so a pivot at ε·‖J‖∞ is indistinguishable from zero.
	DefaultPivotScale = 1.4901161193847656e-08
)

// Criterion selects what the least-squares fitter compares against the tolerance.
type Criterion uint8

const (
	// ResidualCriterion converges when ‖r(x)‖ < ε.
	ResidualCriterion Criterion = iota
	// StepCriterion converges when ‖δ‖ < ε.
	StepCriterion
)

// String returns a short human-readable tag.
func (c Criterion) String() string {
	switch c {
	case ResidualCriterion:
		return "residual"
	case StepCriterion:
		return "step"
	default:
		return "unknown-criterion"
	}
}

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid  = "solver: WithTolerance: tolerance must be finite and > 0"
	panicMaxIterInvalid    = "solver: WithMaxIterations: cap must be >= 1"
	panicDampingInvalid    = "solver: WithDamping: factor must lie in (0, 1]"
	panicNormInvalid       = "solver: WithNorm: unknown norm"
	panicCriterionInvalid  = "solver: WithCriterion: unknown criterion"
	panicRegInvalid        = "solver: WithRegularization: mu must be finite and >= 0"
	panicPivotScaleInvalid = "solver: WithPivotScale: scale must be finite and >= 0"
)

// Option mutates a Config. Constructors panic only on nonsensical values.
type Option func(*Config)

// Config is the resolved configuration of one solver call.
type Config struct {
	Tolerance      float64
	MaxIterations  int
	Damping        float64
	Norm           matrix.Norm
	Criterion      Criterion
	Regularization float64
	PivotScale     float64
	Logger         *slog.Logger // nil disables tracing

	diffOpts   []diff.Option
	linalgOpts []linalg.Option
}

// WithTolerance sets the convergence threshold ε.
func WithTolerance(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicToleranceInvalid)
	}

	return func(c *Config) { c.Tolerance = eps }
}

// WithMaxIterations sets the iteration cap K.
func WithMaxIterations(k int) Option {
	if k < 1 {
		panic(panicMaxIterInvalid)
	}

	return func(c *Config) { c.MaxIterations = k }
}

// WithDamping sets the fixed step scale λ ∈ (0, 1].
func WithDamping(lambda float64) Option {
	if !(lambda > 0) || lambda > 1 {
		panic(panicDampingInvalid)
	}

	return func(c *Config) { c.Damping = lambda }
}

// WithNorm selects the norm used for residual and step tests.
func WithNorm(n matrix.Norm) Option {
	if n != matrix.Euclidean && n != matrix.Infinity && n != matrix.Manhattan {
		panic(panicNormInvalid)
	}

	return func(c *Config) { c.Norm = n }
}

// WithCriterion selects the fitter's convergence test.
func WithCriterion(cr Criterion) Option {
	if cr != ResidualCriterion && cr != StepCriterion {
		panic(panicCriterionInvalid)
	}

	return func(c *Config) { c.Criterion = cr }
}

// WithRegularization sets μ ≥ 0 added to the diagonal of JᵀJ by the fitter.
func WithRegularization(mu float64) Option {
	if mu < 0 || math.IsNaN(mu) || math.IsInf(mu, 0) {
		panic(panicRegInvalid)
	}

	return func(c *Config) { c.Regularization = mu }
}

// WithStep sets the finite-difference base step h (see diff.WithStep).
func WithStep(h float64) Option {
	o := diff.WithStep(h)

	return func(c *Config) { c.diffOpts = append(c.diffOpts, o) }
}

// WithStencil selects the finite-difference stencil (see diff.WithStencil).
func WithStencil(s diff.Stencil) Option {
	o := diff.WithStencil(s)

	return func(c *Config) { c.diffOpts = append(c.diffOpts, o) }
}

// WithPivotTolerance fixes the linear-solve pivot tolerance (see linalg.WithPivotTolerance).
func WithPivotTolerance(tol float64) Option {
	o := linalg.WithPivotTolerance(tol)

	return func(c *Config) { c.linalgOpts = append(c.linalgOpts, o) }
}

// WithPivotScale sets rel in the relative pivot tolerance rel·n·‖J‖∞.
// WithPivotTolerance, when also given, wins.
func WithPivotScale(rel float64) Option {
	if rel < 0 || math.IsNaN(rel) || math.IsInf(rel, 0) {
		panic(panicPivotScaleInvalid)
	}

	return func(c *Config) { c.PivotScale = rel }
}

// WithLogger enables per-iteration Debug records and one terminal record per call.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig resolves opts over the defaults (last option wins).
func NewConfig(opts ...Option) Config {
	c := Config{
		Tolerance:      DefaultTolerance,
		MaxIterations:  DefaultMaxIterations,
		Damping:        DefaultDamping,
		Norm:           DefaultNorm,
		Criterion:      DefaultCriterion,
		Regularization: DefaultRegularization,
		PivotScale:     DefaultPivotScale,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}

	return c
}

// DiffOptions returns the differentiation options collected from WithStep / WithStencil.
func (c Config) DiffOptions() []diff.Option { return c.diffOpts }

// LinalgOptions returns the linear-solve options: the relative tolerance from
// PivotScale followed by any WithPivotTolerance override.
func (c Config) LinalgOptions() []linalg.Option {
	out := make([]linalg.Option, 0, len(c.linalgOpts)+1)
	out = append(out, linalg.WithRelativePivotTolerance(c.PivotScale))

	return append(out, c.linalgOpts...)
}
