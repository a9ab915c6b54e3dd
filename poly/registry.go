package poly

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Entry is one registered backend.
type Entry struct {
	// Name identifies the backend for Lookup (e.g. "naive", "vector").
	Name string

	// SIMDLevel is the instruction set the backend needs to be selected by
	// Default. Lookup by name ignores it.
	SIMDLevel cpu.SIMDLevel

	// Priority orders candidates for Default; higher wins.
	Priority int

	// New constructs the backend. It is called at most once per entry.
	New func() (Backend, error)
}

type registered struct {
	Entry

	once    sync.Once
	backend Backend
	err     error
}

func (r *registered) instance() (Backend, error) {
	r.once.Do(func() {
		r.backend, r.err = r.New()
	})
	return r.backend, r.err
}

// Registry stores the available backends.
type Registry struct {
	mu      sync.RWMutex
	entries []*registered
	sorted  bool
}

// Global is the registry used by the package-level functions. Built-in
// backends register themselves with it from init functions.
var Global = &Registry{}

// Register adds entry to the global registry.
func Register(entry Entry) {
	Global.Register(entry)
}

// Lookup returns the backend registered under name in the global registry.
func Lookup(name string) (Backend, error) {
	return Global.Lookup(name)
}

// Entries lists the global registry by descending priority.
func Entries() []Entry {
	return Global.Entries()
}

// Default returns the preferred backend of the global registry for this CPU.
func Default() Backend {
	return Global.Select(cpu.DetectFeatures())
}

// Register adds an entry. A later entry with the same name replaces the
// earlier one.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.Name == entry.Name {
			r.entries[i] = &registered{Entry: entry}
			r.sorted = false
			return
		}
	}
	r.entries = append(r.entries, &registered{Entry: entry})
	r.sorted = false
}

// Lookup returns the backend registered under name, constructing it on
// first use.
func (r *Registry) Lookup(name string) (Backend, error) {
	r.mu.RLock()
	var found *registered
	for _, e := range r.entries {
		if e.Name == name {
			found = e
			break
		}
	}
	r.mu.RUnlock()

	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	b, err := found.instance()
	if err != nil {
		return nil, fmt.Errorf("poly: backend %q: %w", name, err)
	}
	return b, nil
}

// Select returns the highest-priority backend supported by features whose
// constructor succeeds, or nil if there is none.
func (r *Registry) Select(features cpu.Features) Backend {
	for _, e := range r.sortedEntries() {
		if !cpu.Supports(features, e.SIMDLevel) {
			continue
		}
		if b, err := e.instance(); err == nil {
			return b
		}
	}
	return nil
}

// Entries returns a copy of the registered entries by descending priority.
func (r *Registry) Entries() []Entry {
	sorted := r.sortedEntries()
	entries := make([]Entry, len(sorted))
	for i, e := range sorted {
		entries[i] = e.Entry
	}
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}

func (r *Registry) sortedEntries() []*registered {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}

	entries := make([]*registered, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// sortByPriority sorts entries by priority in descending order, keeping
// registration order among equal priorities.
// Must be called with r.mu held.
func (r *Registry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}
