package poly

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Register(Entry{
		Name:      "naive",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		New:       func() (Backend, error) { return Naive{}, nil },
	})
	Register(Entry{
		Name:      "ranged",
		SIMDLevel: cpu.SIMDNone,
		Priority:  -1,
		New:       func() (Backend, error) { return Ranged{}, nil },
	})
}

// Naive multiplies with two index-based loops. It is the baseline every
// other backend is measured against.
type Naive struct{}

// Name implements Backend.
func (Naive) Name() string { return "naive" }

// Convolve implements Backend.
func (Naive) Convolve(dst, p1, p2 []float64) error {
	n := len(p1)
	m := len(p2)

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			dst[i+j] += p1[i] * p2[j]
		}
	}
	return nil
}

// Ranged multiplies by ranging over both operands, pairing each coefficient
// with its exponent.
type Ranged struct{}

// Name implements Backend.
func (Ranged) Name() string { return "ranged" }

// Convolve implements Backend.
func (Ranged) Convolve(dst, p1, p2 []float64) error {
	for i1, c1 := range p1 {
		row := dst[i1 : i1+len(p2)]
		for i2, c2 := range p2 {
			row[i2] += c1 * c2
		}
	}
	return nil
}
