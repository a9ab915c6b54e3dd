//go:build cgo

package poly

/*
#cgo CFLAGS: -O3

#include <stddef.h>

static void polymul_naive(const double *a, size_t n, const double *b, size_t m, double *out) {
	for (size_t i = 0; i < n; i++) {
		const double ai = a[i];
		double *row = out + i;
		for (size_t j = 0; j < m; j++) {
			row[j] += ai * b[j];
		}
	}
}
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	Register(Entry{
		Name:      "native",
		SIMDLevel: cpu.SIMDNone,
		Priority:  -5,
		New:       NewNative,
	})
}

// Native runs the double loop in a C kernel compiled by cgo.
type Native struct{}

// NewNative returns the cgo-backed backend.
func NewNative() (Backend, error) {
	return Native{}, nil
}

// Name implements Backend.
func (Native) Name() string { return "native" }

// Convolve implements Backend.
func (Native) Convolve(dst, p1, p2 []float64) error {
	var pinner runtime.Pinner
	pinner.Pin(&p1[0])
	pinner.Pin(&p2[0])
	pinner.Pin(&dst[0])
	defer pinner.Unpin()

	C.polymul_naive(
		(*C.double)(unsafe.Pointer(&p1[0])), C.size_t(len(p1)),
		(*C.double)(unsafe.Pointer(&p2[0])), C.size_t(len(p2)),
		(*C.double)(unsafe.Pointer(&dst[0])),
	)
	return nil
}
