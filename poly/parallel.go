package poly

import (
	"runtime"

	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
)

func init() {
	Register(Entry{
		Name:      "parallel",
		SIMDLevel: vectorLevel,
		Priority:  10,
		New:       func() (Backend, error) { return NewParallel(), nil },
	})
}

// ParallelConfig configures the parallel backend.
type ParallelConfig struct {
	// Workers is the maximum number of goroutines per call.
	Workers int
	// MinChunk is the minimum number of output coefficients per goroutine.
	MinChunk int
}

// ParallelOption mutates a ParallelConfig.
type ParallelOption func(*ParallelConfig)

// DefaultParallelConfig returns one worker per available CPU and chunks of
// at least 256 outputs.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		Workers:  runtime.GOMAXPROCS(0),
		MinChunk: 256,
	}
}

// WithWorkers caps the number of goroutines used per call.
func WithWorkers(n int) ParallelOption {
	return func(cfg *ParallelConfig) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithMinChunk sets the minimum number of output coefficients per goroutine.
func WithMinChunk(k int) ParallelOption {
	return func(cfg *ParallelConfig) {
		if k > 0 {
			cfg.MinChunk = k
		}
	}
}

// ApplyParallelOptions applies zero or more options to the default config.
func ApplyParallelOptions(opts ...ParallelOption) ParallelConfig {
	cfg := DefaultParallelConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Parallel partitions the product by output index. Each goroutine owns a
// contiguous range of output coefficients and computes every one of them as
// a dot product of p1 with the reversed p2, so no output cell has more than
// one writer.
type Parallel struct {
	cfg ParallelConfig
}

// NewParallel returns a Parallel backend configured by opts.
func NewParallel(opts ...ParallelOption) *Parallel {
	return &Parallel{cfg: ApplyParallelOptions(opts...)}
}

// Name implements Backend.
func (p *Parallel) Name() string { return "parallel" }

// Config returns the backend configuration.
func (p *Parallel) Config() ParallelConfig { return p.cfg }

// Convolve implements Backend.
func (p *Parallel) Convolve(dst, p1, p2 []float64) error {
	m := len(p2)
	rev := make([]float64, m)
	for j, c := range p2 {
		rev[m-1-j] = c
	}

	total := len(dst)
	workers := p.workersFor(total)
	if workers <= 1 {
		convolveOutputs(dst, p1, rev, 0, total)
		return nil
	}

	chunk := (total + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < total; start += chunk {
		end := min(start+chunk, total)
		g.Go(func() error {
			convolveOutputs(dst, p1, rev, start, end)
			return nil
		})
	}
	return g.Wait()
}

func (p *Parallel) workersFor(total int) int {
	workers := p.cfg.Workers
	if maxByChunk := total / max(p.cfg.MinChunk, 1); maxByChunk < workers {
		workers = maxByChunk
	}
	return workers
}

// convolveOutputs accumulates dst[k] for k in [start, end), where
// dst[k] = sum p1[i]*p2[k-i] and rev is p2 reversed.
func convolveOutputs(dst, p1, rev []float64, start, end int) {
	n := len(p1)
	m := len(rev)

	for k := start; k < end; k++ {
		lo := max(0, k-m+1)
		hi := min(n-1, k)
		dst[k] += vecmath.DotProduct(p1[lo:hi+1], rev[m-1-k+lo:m-k+hi])
	}
}
