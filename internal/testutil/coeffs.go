// Package testutil provides deterministic operands and tolerance assertions
// for polynomial multiplication tests.
package testutil

import "math/rand"

// RandomCoefficients returns n coefficients drawn uniformly from [0, 1)
// by a generator seeded with seed.
func RandomCoefficients(seed int64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Float64()
	}
	return out
}

// SignedCoefficients returns n coefficients drawn uniformly from
// [-amplitude, amplitude) by a generator seeded with seed.
func SignedCoefficients(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Monomial returns the coefficients of coeff * x^degree.
func Monomial(coeff float64, degree int) []float64 {
	out := make([]float64, degree+1)
	out[degree] = coeff
	return out
}

// Constant returns a length-n slice with every element set to value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Scaled returns a copy of p with every coefficient multiplied by c.
func Scaled(p []float64, c float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = v * c
	}
	return out
}
