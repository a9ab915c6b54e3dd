package poly

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cwbudde/algo-polymul/internal/testutil"
)

// BenchmarkBackends times every available backend on square operands.
func BenchmarkBackends(b *testing.B) {
	sizes := []int{10, 100, 1000, 4000}

	for _, e := range Entries() {
		backend, err := Lookup(e.Name)
		if errors.Is(err, ErrBackendUnavailable) {
			continue
		}
		if err != nil {
			b.Fatal(err)
		}

		for _, size := range sizes {
			p1 := testutil.RandomCoefficients(42, size)
			p2 := testutil.RandomCoefficients(43, size)
			dst := make([]float64, 2*size-1)

			b.Run(fmt.Sprintf("%s/n=%d", e.Name, size), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = MultiplyToWith(backend, dst, p1, p2)
				}
			})
		}
	}
}

// BenchmarkParallelWorkers shows how the parallel backend scales.
func BenchmarkParallelWorkers(b *testing.B) {
	p1 := testutil.RandomCoefficients(1, 4096)
	p2 := testutil.RandomCoefficients(2, 4096)
	dst := make([]float64, len(p1)+len(p2)-1)

	for _, workers := range []int{1, 2, 4, 8} {
		backend := NewParallel(WithWorkers(workers))

		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = MultiplyToWith(backend, dst, p1, p2)
			}
		})
	}
}

// BenchmarkAsymmetric compares backends on a long operand times a short one.
func BenchmarkAsymmetric(b *testing.B) {
	shapes := []struct{ n, m int }{{16384, 8}, {16384, 64}, {8, 16384}}

	for _, name := range []string{"naive", "vector", "parallel"} {
		backend, err := Lookup(name)
		if err != nil {
			b.Fatal(err)
		}

		for _, shape := range shapes {
			p1 := testutil.RandomCoefficients(3, shape.n)
			p2 := testutil.RandomCoefficients(4, shape.m)

			b.Run(fmt.Sprintf("%s/n=%d_m=%d", name, shape.n, shape.m), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_, _ = MultiplyWith(backend, p1, p2)
				}
			})
		}
	}
}
