// Package poly multiplies dense polynomials with real coefficients.
//
// A polynomial is a []float64 holding its coefficients lowest degree first:
// p[0] is the constant term and p[i] the coefficient of x^i. The product of
// operands of length n and m has length n+m-1 and equals their linear
// convolution.
//
// # Usage
//
// For one-shot multiplication, use the package functions:
//
//	product, err := poly.Multiply(p1, p2)           // default backend
//	product, err := poly.MultiplyWith(b, p1, p2)    // explicit backend
//	err := poly.MultiplyTo(dst, p1, p2)             // caller-owned buffer
//
// # Backends
//
// Every backend computes the same O(n*m) double loop and differs only in how
// it is executed:
//   - naive: index-based loops
//   - ranged: range-over-slice loops
//   - vector: row-wise scale-and-accumulate with algo-vecmath kernels
//   - parallel: output indices partitioned across goroutines
//   - native: C kernel through cgo (cgo builds only)
//   - wasm: WebAssembly kernel JIT-compiled by wasmtime (cgo builds only)
//
// Backends are selected by name through [Lookup] or automatically through
// [Default], which prefers the highest-priority backend the CPU supports.
//
// Results of different backends agree to within floating-point tolerance;
// bit-level equality is not guaranteed because the summation order differs.
package poly
