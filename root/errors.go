// SPDX-License-Identifier: MIT

package root

import (
	"errors"
	"fmt"
)

// ErrNoBracket is returned by Bisection when f(a) and f(b) have the same strict sign.
var ErrNoBracket = errors.New("root: interval does not bracket a root")

// Operation names used in error wrapping and log records.
const (
	opNewton    = "Newton"
	opNewton1D  = "Newton1D"
	opBisection = "Bisection"
	opSecant    = "Secant"
)

func rootErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
