//go:build cgo

package poly

import (
	"testing"

	"github.com/cwbudde/algo-polymul/internal/testutil"
)

// BenchmarkNewWasm times assembling, compiling and instantiating the kernel.
func BenchmarkNewWasm(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w, err := NewWasm()
		if err != nil {
			b.Fatal(err)
		}
		w.Close()
	}
}

// BenchmarkWasmCompileAndCall includes compilation in every product, for
// comparison with the precompiled numbers in BenchmarkBackends.
func BenchmarkWasmCompileAndCall(b *testing.B) {
	p1 := testutil.RandomCoefficients(42, 1000)
	p2 := testutil.RandomCoefficients(43, 1000)
	dst := make([]float64, len(p1)+len(p2)-1)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w, err := NewWasm()
		if err != nil {
			b.Fatal(err)
		}
		if err := MultiplyToWith(w, dst, p1, p2); err != nil {
			b.Fatal(err)
		}
		w.Close()
	}
}
