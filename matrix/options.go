// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for dense construction.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultLayout is the storage order used when no WithLayout option is given.
	DefaultLayout = RowMajor

	// DefaultValidateNaNInf toggles strict finite-value validation on Set and on
	// construction from caller data.
	DefaultValidateNaNInf = true

	// DefaultFill is the initial value of every element.
	DefaultFill = 0.0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicLayoutInvalid = "matrix: WithLayout: layout must be RowMajor or ColMajor"
	panicFillInvalid   = "matrix: WithFill: value must be finite"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options is the resolved construction policy. Fields are unexported; public
// APIs consume ...Option.
type Options struct {
	layout         Layout
	validateNaNInf bool
	fill           float64
}

// WithLayout selects the storage order of the constructed Dense.
// Panics if l is neither RowMajor nor ColMajor.
func WithLayout(l Layout) Option {
	if l != RowMajor && l != ColMajor {
		panic(panicLayoutInvalid)
	}

	return func(o *Options) { o.layout = l }
}

// WithValidateNaNInf enables rejection of NaN/±Inf on Set and on ingestion.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-value guard. Kernels that must carry
// non-finite intermediates (e.g. a Jacobian of a diverging function) use this so
// that the failure surfaces downstream as a singular pivot instead.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithFill initializes every element to v (NewDense / NewVector only).
// Panics if v is NaN or ±Inf.
func WithFill(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(panicFillInvalid)
	}

	return func(o *Options) { o.fill = v }
}

// defaultOptions returns the zero-configuration policy.
func defaultOptions() Options {
	return Options{
		layout:         DefaultLayout,
		validateNaNInf: DefaultValidateNaNInf,
		fill:           DefaultFill,
	}
}

// gatherOptions applies user options over defaults in order (last wins).
// Nil options are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
