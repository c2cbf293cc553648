// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// AutoName asks Probe to choose an engine from the host capabilities.
const AutoName = "auto"

// Factory builds an engine for the given probe options.
type Factory func(opts ProbeOptions) (NumericBackend, error)

// ProbeOptions configures engine selection.
//
// Fields:
//   - Name: registry name; "" or "auto" selects from the host.
//   - Workers: concurrency for engines that use it (0 = GOMAXPROCS).
//   - CPUs: logical CPUs visible to the probe (0 = runtime.NumCPU()).
type ProbeOptions struct {
	Name    string
	Workers int
	CPUs    int
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		SerialName: func(ProbeOptions) (NumericBackend, error) {
			return NewSerial(), nil
		},
		ParallelName: func(o ProbeOptions) (NumericBackend, error) {
			return NewParallel(o.Workers), nil
		},
	}
)

// Register adds an engine factory under name.
//
// Errors:
//   - ErrDuplicateBackend when name is taken (including the built-ins).
func Register(name string, f Factory) error {
	if name == "" || name == AutoName || f == nil {
		return fmt.Errorf("backend: invalid registration %q", name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBackend, name)
	}
	registry[name] = f

	return nil
}

// Lookup builds the engine registered under opts.Name.
func Lookup(opts ProbeOptions) (NumericBackend, error) {
	registryMu.RLock()
	f, ok := registry[opts.Name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, opts.Name, Names())
	}
	be, err := f(opts)
	if err != nil {
		return nil, wrap(opts.Name, "probe", err)
	}

	return be, nil
}

// Names lists registered engines in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Probe selects the engine for a run. It is called once at startup.
//
// An explicit Name wins. Otherwise the parallel engine is chosen when more
// than one CPU is available and a single worker was not requested, and the
// serial engine in every other case.
func Probe(opts ProbeOptions) (NumericBackend, error) {
	if opts.Name != "" && opts.Name != AutoName {
		return Lookup(opts)
	}
	cpus := opts.CPUs
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	opts.Name = SerialName
	if cpus > 1 && opts.Workers != 1 {
		opts.Name = ParallelName
	}

	return Lookup(opts)
}
