package poly

import (
	"errors"
	"fmt"
)

// Errors returned by multiplication functions and backends.
var (
	ErrInvalidInput       = errors.New("poly: invalid input")
	ErrLengthMismatch     = errors.New("poly: buffer length mismatch")
	ErrUnknownBackend     = errors.New("poly: unknown backend")
	ErrBackendUnavailable = errors.New("poly: backend unavailable")
	ErrTooLarge           = errors.New("poly: operands too large for backend")
)

// Backend is one execution strategy for polynomial multiplication.
//
// Convolve is only called with validated operands: p1 and p2 are non-empty
// and dst has length len(p1)+len(p2)-1 and is zeroed. Implementations must
// not modify p1 or p2 and must add p1[i]*p2[j] into dst[i+j] exactly once
// for every index pair.
type Backend interface {
	Name() string
	Convolve(dst, p1, p2 []float64) error
}

// Multiply returns the product of p1 and p2 computed by the default backend.
// The result has length len(p1) + len(p2) - 1.
func Multiply(p1, p2 []float64) ([]float64, error) {
	return MultiplyWith(Default(), p1, p2)
}

// MultiplyWith returns the product of p1 and p2 computed by b.
func MultiplyWith(b Backend, p1, p2 []float64) ([]float64, error) {
	if err := validate(b, p1, p2); err != nil {
		return nil, err
	}

	result := make([]float64, ProductLen(p1, p2))
	if err := b.Convolve(result, p1, p2); err != nil {
		return nil, fmt.Errorf("poly: %s backend: %w", b.Name(), err)
	}
	return result, nil
}

// MultiplyTo writes the product of p1 and p2 to dst using the default backend.
// dst must have length len(p1) + len(p2) - 1.
func MultiplyTo(dst, p1, p2 []float64) error {
	return MultiplyToWith(Default(), dst, p1, p2)
}

// MultiplyToWith writes the product of p1 and p2 to dst using b.
// dst is left untouched when validation fails.
func MultiplyToWith(b Backend, dst, p1, p2 []float64) error {
	if err := validate(b, p1, p2); err != nil {
		return err
	}
	if want := ProductLen(p1, p2); len(dst) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(dst))
	}

	clear(dst)
	if err := b.Convolve(dst, p1, p2); err != nil {
		return fmt.Errorf("poly: %s backend: %w", b.Name(), err)
	}
	return nil
}

// ProductLen returns the coefficient count of the product of p1 and p2,
// or 0 if either operand is empty.
func ProductLen(p1, p2 []float64) int {
	if len(p1) == 0 || len(p2) == 0 {
		return 0
	}
	return len(p1) + len(p2) - 1
}

// Degree returns the formal degree len(p)-1 of p, or -1 for an empty slice.
// Trailing zero coefficients are counted.
func Degree(p []float64) int {
	return len(p) - 1
}

func validate(b Backend, p1, p2 []float64) error {
	if b == nil {
		return fmt.Errorf("%w: nil backend", ErrInvalidInput)
	}
	if len(p1) == 0 {
		return fmt.Errorf("%w: first operand is empty", ErrInvalidInput)
	}
	if len(p2) == 0 {
		return fmt.Errorf("%w: second operand is empty", ErrInvalidInput)
	}
	return nil
}
