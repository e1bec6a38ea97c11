// Package subject defines the shape of a subject under test: a pure,
// scalar-integer function the engine drives through concolic execution.
// Subjects are registered by name into a process-wide registry
// (internal/subjects populates it via init), so a single CLI binary can
// address many subjects without a plugin loader.
package subject

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gitrdm/concolite/pkg/concolic"
)

// ArgSpec declares one symbolic input: its name (as referenced by the
// subject's Func) and the concrete seed value the first, unguided
// execution should use.
type ArgSpec struct {
	Name string
	Seed int64
}

// Func is a subject under test. It receives one *concolic.Value per
// declared argument, keyed by name, and returns the result of the
// computation: an *concolic.Value, or any other Go value the subject
// chooses to return directly (for example a plain string outcome label).
// It must be a pure function of its arguments: no I/O, no package-level
// mutable state, no goroutines.
type Func func(args map[string]*concolic.Value) interface{}

// Subject bundles a registered subject's metadata with its executable
// body.
type Subject struct {
	Name string
	Args []ArgSpec
	Fn   Func
}

var (
	mu       sync.RWMutex
	registry = map[string]Subject{}
)

// Register adds s to the process-wide registry. It panics on a duplicate
// name, since that can only indicate a programming error in
// internal/subjects' init functions.
func Register(s Subject) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("subject: duplicate registration for %q", s.Name))
	}
	registry[s.Name] = s
}

// Lookup returns the subject registered under name, or false if none
// matches.
func Lookup(name string) (Subject, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// List returns every registered subject name in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
