package diff_test

import (
	"fmt"

	"github.com/katalvlaran/nlsolve/diff"
	"github.com/katalvlaran/nlsolve/matrix"
)

// ExampleJacobian estimates the Jacobian of f(x, y) = (x·y, x + y) at (2, 3).
// Rows are outputs, columns are inputs.
func ExampleJacobian() {
	f := diff.VectorFunc{In: 2, Out: 2, Fn: func(dst, x []float64) error {
		dst[0] = x[0] * x[1]
		dst[1] = x[0] + x[1]
		return nil
	}}
	x, _ := matrix.NewVectorFrom([]float64{2, 3})
	j, err := diff.Jacobian(f, x)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i := 0; i < j.Rows(); i++ {
		row, _ := j.Row(i)
		fmt.Printf("%.6f\n", row)
	}
	// Output:
	// [3.000000 2.000000]
	// [1.000000 1.000000]
}
