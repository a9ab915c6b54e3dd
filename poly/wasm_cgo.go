//go:build cgo

package poly

import (
	_ "embed"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/bytecodealliance/wasmtime-go/v39"
	"github.com/cwbudde/algo-vecmath/cpu"
)

//go:embed kernel.wat
var kernelWAT string

const (
	wasmPageSize = 64 * 1024
	wasmMaxPages = 65536
)

func init() {
	Register(Entry{
		Name:      "wasm",
		SIMDLevel: cpu.SIMDNone,
		Priority:  -10,
		New: func() (Backend, error) {
			w, err := NewWasm()
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	})
}

// Wasm runs the double loop as a WebAssembly function JIT-compiled by
// wasmtime. The module is compiled once in NewWasm; each call copies the
// operands into linear memory, runs the kernel and copies the product back.
type Wasm struct {
	engine *wasmtime.Engine
	store  *wasmtime.Store
	memory *wasmtime.Memory
	fn     *wasmtime.Func

	// wasmtime stores are not safe for concurrent use
	mu     sync.Mutex
	closed bool
}

// NewWasm compiles and instantiates the WebAssembly kernel.
func NewWasm() (*Wasm, error) {
	bin, err := wasmtime.Wat2Wasm(kernelWAT)
	if err != nil {
		return nil, fmt.Errorf("poly: failed to assemble wasm kernel: %w", err)
	}

	engine := wasmtime.NewEngine()
	store := wasmtime.NewStore(engine)

	module, err := wasmtime.NewModule(engine, bin)
	if err != nil {
		return nil, fmt.Errorf("poly: failed to compile wasm kernel: %w", err)
	}

	instance, err := wasmtime.NewInstance(store, module, nil)
	if err != nil {
		return nil, fmt.Errorf("poly: failed to instantiate wasm kernel: %w", err)
	}

	memExtern := instance.GetExport(store, "memory")
	if memExtern == nil || memExtern.Memory() == nil {
		return nil, fmt.Errorf("poly: wasm kernel does not export 'memory'")
	}

	fn := instance.GetFunc(store, "polymul")
	if fn == nil {
		return nil, fmt.Errorf("poly: wasm kernel does not export 'polymul'")
	}

	return &Wasm{
		engine: engine,
		store:  store,
		memory: memExtern.Memory(),
		fn:     fn,
	}, nil
}

// Name implements Backend.
func (w *Wasm) Name() string { return "wasm" }

// Close releases the wasmtime store and engine. Later calls to Convolve
// return ErrBackendUnavailable. Close may be called more than once.
func (w *Wasm) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	w.store.Close()
	w.engine.Close()
}

// Convolve implements Backend.
func (w *Wasm) Convolve(dst, p1, p2 []float64) error {
	n := uint64(len(p1))
	m := uint64(len(p2))

	l, err := wasmLayoutFor(n, m)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("%w: wasm backend closed", ErrBackendUnavailable)
	}

	if cur := w.memory.Size(w.store); l.pages > cur {
		if _, err := w.memory.Grow(w.store, l.pages-cur); err != nil {
			return fmt.Errorf("poly: failed to grow wasm memory: %w", err)
		}
	}

	w.copyToWasm(p1, l.offA)
	w.copyToWasm(p2, l.offB)

	_, err = w.fn.Call(w.store,
		int32(uint32(l.offA)), int32(n),
		int32(uint32(l.offB)), int32(m),
		int32(uint32(l.offOut)))
	if err != nil {
		return fmt.Errorf("poly: wasm kernel trapped: %w", err)
	}

	w.copyFromWasm(dst, l.offOut)
	return nil
}

// wasmLayout places the operands and the product back to back in linear
// memory, starting at offset 0.
type wasmLayout struct {
	offA, offB, offOut uint64
	end                uint64
	pages              uint64
}

// wasmLayoutFor computes the memory layout for operands of length n and m.
// It returns ErrTooLarge when the layout does not fit in 32-bit linear memory.
func wasmLayoutFor(n, m uint64) (wasmLayout, error) {
	var l wasmLayout
	l.offB = l.offA + 8*n
	l.offOut = l.offB + 8*m
	l.end = l.offOut + 8*(n+m-1)
	l.pages = (l.end + wasmPageSize - 1) / wasmPageSize
	if l.pages > wasmMaxPages {
		return wasmLayout{}, fmt.Errorf("%w: need %d bytes of linear memory", ErrTooLarge, l.end)
	}
	return l, nil
}

// copyToWasm copies data into linear memory at offset.
func (w *Wasm) copyToWasm(data []float64, offset uint64) {
	mem := w.memory.UnsafeData(w.store)
	src := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*8)
	copy(mem[offset:offset+uint64(len(src))], src)
	runtime.KeepAlive(w.store)
}

// copyFromWasm fills dst from linear memory at offset.
func (w *Wasm) copyFromWasm(dst []float64, offset uint64) {
	mem := w.memory.UnsafeData(w.store)
	dstBytes := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*8)
	copy(dstBytes, mem[offset:offset+uint64(len(dstBytes))])
	runtime.KeepAlive(w.store)
}
