package root_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/matrix"
	"github.com/katalvlaran/nlsolve/root"
	"github.com/katalvlaran/nlsolve/solver"
)

// ExampleNewton solves x² - y = 1, x - y² = -1 from (1, 1).
func ExampleNewton() {
	f := diff.VectorFunc{In: 2, Out: 2, Fn: func(dst, p []float64) error {
		dst[0] = p[0]*p[0] - p[1] - 1
		dst[1] = p[0] - p[1]*p[1] + 1
		return nil
	}}
	x0, _ := matrix.NewVectorFrom([]float64{1, 1})

	res, err := root.Newton(f, x0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Status)
	fmt.Printf("x=%.6f y=%.6f\n", res.X.RawData()[0], res.X.RawData()[1])
	// Output:
	// converged
	// x=1.618034 y=1.618034
}

// ExampleBisection brackets √2 and shows the error for a bad bracket.
func ExampleBisection() {
	f := func(x float64) (float64, error) { return x*x - 2, nil }

	res, _ := root.Bisection(f, 0, 2)
	fmt.Printf("%.8f\n", res.Scalar())

	_, err := root.Bisection(f, 2, 3)
	fmt.Println(errors.Is(err, root.ErrNoBracket))
	// Output:
	// 1.41421356
	// true
}

// ExampleNewton1D caps the iterations on a function without a real root.
func ExampleNewton1D() {
	f := func(x float64) (float64, error) { return x*x + 1, nil }

	res, err := root.Newton1D(f, 0.5, solver.WithMaxIterations(10))
	fmt.Println(res.Status, res.Iterations, errors.Is(err, solver.ErrMaxIterExceeded))
	// Output:
	// max-iter-exceeded 10 true
}
