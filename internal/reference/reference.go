// Package reference provides a trusted polynomial product and closeness
// checks used to verify the multiplication backends.
//
// Convolve computes the product in the frequency domain, so it shares no
// code path with the time-domain backends it is used to check.
package reference

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by reference functions.
var (
	ErrEmptyInput     = errors.New("reference: empty input")
	ErrLengthMismatch = errors.New("reference: length mismatch")
)

// Convolve returns the linear convolution of a and b, of length
// len(a)+len(b)-1, computed with a zero-padded power-of-two FFT.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	resultLen := len(a) + len(b) - 1
	fftSize := nextPowerOf2(resultLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("reference: failed to create FFT plan: %w", err)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	for i, v := range a {
		aFreq[i] = complex(v, 0)
	}
	for i, v := range b {
		bFreq[i] = complex(v, 0)
	}

	if err := plan.Forward(aFreq, aFreq); err != nil {
		return nil, fmt.Errorf("reference: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bFreq); err != nil {
		return nil, fmt.Errorf("reference: forward FFT failed: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	if err := plan.Inverse(aFreq, aFreq); err != nil {
		return nil, fmt.Errorf("reference: inverse FFT failed: %w", err)
	}

	result := make([]float64, resultLen)
	for i := range result {
		result[i] = real(aFreq[i])
	}
	return result, nil
}

// AllClose reports whether got and want have equal length and every pair
// satisfies |got[i]-want[i]| <= atol + rtol*|want[i]|. NaNs compare equal
// only to NaNs at the same index; infinities must match exactly.
func AllClose(got, want []float64, rtol, atol float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !isClose(got[i], want[i], rtol, atol) {
			return false
		}
	}
	return true
}

func isClose(g, w, rtol, atol float64) bool {
	switch {
	case math.IsNaN(g) || math.IsNaN(w):
		return math.IsNaN(g) && math.IsNaN(w)
	case math.IsInf(g, 0) || math.IsInf(w, 0):
		return g == w
	}
	return math.Abs(g-w) <= atol+rtol*math.Abs(w)
}

// MaxAbsDiff returns the maximum absolute difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// MaxRelDiff returns the maximum of |a[i]-b[i]| / max(|b|), where max(|b|)
// is the largest magnitude in b. It is 0 when b is all zeros and a equals b.
func MaxRelDiff(a, b []float64) (float64, error) {
	absDiff, err := MaxAbsDiff(a, b)
	if err != nil {
		return 0, err
	}

	scale := 0.0
	for _, v := range b {
		scale = math.Max(scale, math.Abs(v))
	}
	if scale == 0 {
		if absDiff == 0 {
			return 0, nil
		}
		return math.Inf(1), nil
	}
	return absDiff / scale, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
