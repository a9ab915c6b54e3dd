package poly

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

func init() {
	Register(Entry{
		Name:      "vector",
		SIMDLevel: vectorLevel,
		Priority:  20,
		New:       func() (Backend, error) { return NewVector(), nil },
	})
}

// Vector multiplies row by row: for every coefficient p1[i] the second
// operand is scaled into a scratch row and accumulated into dst[i:i+m] with
// SIMD block kernels.
type Vector struct {
	scratch sync.Pool
}

// NewVector returns a Vector backend.
func NewVector() *Vector {
	return &Vector{}
}

// Name implements Backend.
func (v *Vector) Name() string { return "vector" }

// Convolve implements Backend.
func (v *Vector) Convolve(dst, p1, p2 []float64) error {
	m := len(p2)

	// Scalar loop beats the per-row kernel call overhead for tiny rows.
	const simdThreshold = 4
	if m < simdThreshold {
		return Naive{}.Convolve(dst, p1, p2)
	}

	temp := v.row(m)
	defer v.scratch.Put(temp)

	for i, c := range p1 {
		vecmath.ScaleBlock(*temp, p2, c)
		vecmath.AddBlockInPlace(dst[i:i+m], *temp)
	}
	return nil
}

// row returns a pooled scratch row of length m.
func (v *Vector) row(m int) *[]float64 {
	if p, ok := v.scratch.Get().(*[]float64); ok && cap(*p) >= m {
		*p = (*p)[:m]
		return p
	}
	buf := make([]float64, m)
	return &buf
}
