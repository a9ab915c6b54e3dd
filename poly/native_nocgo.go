//go:build !cgo

package poly

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Register(Entry{
		Name:      "native",
		SIMDLevel: cpu.SIMDNone,
		Priority:  -5,
		New:       NewNative,
	})
}

// NewNative reports ErrBackendUnavailable: the native kernel needs cgo.
func NewNative() (Backend, error) {
	return nil, ErrBackendUnavailable
}
