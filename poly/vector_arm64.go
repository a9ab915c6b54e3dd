//go:build arm64 && !purego

package poly

import "github.com/cwbudde/algo-vecmath/cpu"

// vectorLevel is the SIMD level the vector backend requires on arm64.
const vectorLevel = cpu.SIMDNEON
