// Package matrix_test provides benchmarks for the core kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/nlsolve/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{32, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV *matrix.Vector
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randDense(b, n, n, 1337)
			y := randDense(b, n, n, 4242).ToLayout(matrix.ColMajor)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkGram(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randDense(b, 2*n, n, 7)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Gram(x)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkTMatVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randDense(b, n, n, 99)
			v, _ := matrix.NewVector(n, matrix.WithFill(1))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.TMatVec(x, v)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}
