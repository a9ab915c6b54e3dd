//go:build (!amd64 && !arm64) || purego

package poly

import "github.com/cwbudde/algo-vecmath/cpu"

// vectorLevel lets the vector backend run on the pure Go kernels.
const vectorLevel = cpu.SIMDNone
