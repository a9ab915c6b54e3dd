//go:build amd64 && !purego

package poly

import "github.com/cwbudde/algo-vecmath/cpu"

// vectorLevel is the SIMD level the vector backend requires on amd64.
const vectorLevel = cpu.SIMDSSE2
