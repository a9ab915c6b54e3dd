//go:build !cgo

package poly

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Register(Entry{
		Name:      "wasm",
		SIMDLevel: cpu.SIMDNone,
		Priority:  -10,
		New:       func() (Backend, error) { return nil, ErrBackendUnavailable },
	})
}
