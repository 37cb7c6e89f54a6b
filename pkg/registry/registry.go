// Package registry provides test registration and lookup. A
// Registry maps unit names to compiled units and remembers
// which units failed their last run, enabling selective
// re-runs. Independent registries act as namespaces so that
// unrelated suites never collide by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.testbed/pkg/check"
	"digital.vasic.testbed/pkg/logging"
	"digital.vasic.testbed/pkg/unit"
)

// Registry holds the units of one namespace. The maps are
// guarded for safe registration from multiple goroutines, but
// running units concurrently is unsupported: execution is a
// single-context, sequential model.
type Registry struct {
	mu     sync.RWMutex
	name   string
	units  map[string]*unit.Unit
	failed map[string]bool

	logger  logging.Logger
	checker *check.Checker
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for redefinition warnings.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithChecker binds a checker whose strategy set is used to
// validate assertion tags at definition time. Without one,
// unknown tags are still caught at run time.
func WithChecker(c *check.Checker) Option {
	return func(r *Registry) {
		r.checker = c
	}
}

// New creates an empty Registry for the given namespace name.
func New(name string, opts ...Option) *Registry {
	r := &Registry{
		name:   name,
		units:  make(map[string]*unit.Unit),
		failed: make(map[string]bool),
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry's namespace name.
func (r *Registry) Name() string {
	return r.name
}

// Define registers a unit, replacing any unit already defined
// under the same name. Replacement is deliberate REPL-style
// ergonomics: it logs a warning but never fails. Assertion
// tags are validated against the bound checker, if any, so a
// misspelled tag is rejected at definition time rather than
// surfacing mid-run.
func (r *Registry) Define(u *unit.Unit) error {
	if u == nil || u.Name == "" {
		return fmt.Errorf("unit must have a name")
	}

	if err := r.validateTags(u); err != nil {
		return err
	}

	r.mu.Lock()
	_, redefined := r.units[u.Name]
	r.units[u.Name] = u
	delete(r.failed, u.Name)
	r.mu.Unlock()

	if redefined {
		r.logger.Warn("redefining test",
			logging.StringField("name", u.Name),
			logging.StringField("namespace", r.name),
		)
	}
	return nil
}

// validateTags checks every assertion tag against the bound
// checker's strategies.
func (r *Registry) validateTags(u *unit.Unit) error {
	if r.checker == nil {
		return nil
	}
	for _, a := range u.Assertions {
		if !r.checker.Has(a.Tag) {
			return fmt.Errorf(
				"test %s: %w: %s",
				u.Name, check.ErrUnknownTag, a.Tag,
			)
		}
	}
	return nil
}

// Undefine removes a unit and its failed-state memory. It
// returns whether anything was removed.
func (r *Registry) Undefine(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.units[name]
	delete(r.units, name)
	delete(r.failed, name)
	return existed
}

// Get retrieves a unit by name. An unknown name is a
// definition-level error.
func (r *Registry) Get(name string) (*unit.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.units[name]
	if !exists {
		return nil, fmt.Errorf(
			"no test defined for name: %s", name,
		)
	}
	return u, nil
}

// List returns all registered units sorted by name, which
// fixes the enumeration order of suite runs.
func (r *Registry) List() []*unit.Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*unit.Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns all registered unit names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.units))
	for name := range r.units {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Failed reports whether the named unit failed its last run. A
// unit that never ran reports false.
func (r *Registry) Failed(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failed[name]
}

// SetFailed records the outcome of the unit's latest run.
func (r *Registry) SetFailed(name string, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.units[name]; !exists {
		return
	}
	if failed {
		r.failed[name] = true
	} else {
		delete(r.failed, name)
	}
}

// Count returns the number of registered units.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units)
}

// Clear removes all units and failed-state memory.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.units = make(map[string]*unit.Unit)
	r.failed = make(map[string]bool)
}
