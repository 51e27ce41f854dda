// Package registry holds the declared tests in declaration order.
package registry

import (
	"fmt"
	"sync"

	"tdd/internal/access"
	"tdd/internal/domain"
	"tdd/internal/scenario"
)

// Descriptor declares one test. Register keeps its own copy, so changing a
// descriptor after registering it has no effect on the registry. The copies
// handed out by Tests, Lookup and MustRegister are shared and read-only.
type Descriptor struct {
	Name      string
	Category  domain.Category
	Axes      []scenario.Axis
	Selectors []access.Selector
	Body      func(*T)

	// Declaration site, used in listings
	File string
	Line int

	scenarios []scenario.Scenario
}

// Scenarios returns the instances computed at registration.
func (d *Descriptor) Scenarios() []scenario.Scenario { return d.scenarios }

// Instances returns the number of scenario instances.
func (d *Descriptor) Instances() int { return len(d.scenarios) }

// Registry is an ordered, append-only list of tests. It is safe for
// concurrent registration; Seal ends the registration window.
type Registry struct {
	mu     sync.RWMutex
	tests  []*Descriptor
	byName map[string]*Descriptor
	sealed bool
}

// Default is the process-wide registry populated from package init functions.
var Default = New()

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register validates d, expands its axes and appends a copy of it.
func (r *Registry) Register(d *Descriptor) error {
	_, err := r.register(d)
	return err
}

func (r *Registry) register(d *Descriptor) (*Descriptor, error) {
	if d == nil {
		return nil, domain.NewUsageError("register", "nil descriptor")
	}
	if d.Name == "" {
		return nil, domain.NewUsageError("register", "test name is empty")
	}
	if d.Body == nil {
		return nil, domain.NewUsageError("register", "test %s has no body", d.Name)
	}

	stored := *d
	stored.Axes = append([]scenario.Axis(nil), d.Axes...)
	stored.Selectors = append([]access.Selector(nil), d.Selectors...)

	var axes []scenario.Axis
	for _, a := range stored.Axes {
		axes = append(axes, scenario.Unwrap(a)...)
	}
	scenarios, err := scenario.Expand(axes)
	if err != nil {
		return nil, fmt.Errorf("test %s: %w", d.Name, err)
	}
	if err := access.Validate(stored.Selectors); err != nil {
		return nil, fmt.Errorf("test %s: %w", d.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return nil, domain.NewUsageError("register", "test %s registered after the run started", d.Name)
	}
	if _, ok := r.byName[d.Name]; ok {
		return nil, domain.NewUsageError("register", "test %s is already defined", d.Name)
	}
	stored.scenarios = scenarios
	r.tests = append(r.tests, &stored)
	r.byName[stored.Name] = &stored
	return &stored, nil
}

// MustRegister is like Register but panics on error, and returns the
// registered copy. It is meant for package init functions, where a broken
// declaration must stop the binary.
func (r *Registry) MustRegister(d *Descriptor) *Descriptor {
	stored, err := r.register(d)
	if err != nil {
		panic(err)
	}
	return stored
}

// Seal closes registration. It is safe to call more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether registration is closed.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Tests returns the registered tests in registration order.
func (r *Registry) Tests() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, len(r.tests))
	copy(out, r.tests)
	return out
}

// Lookup returns the test called name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tests)
}
