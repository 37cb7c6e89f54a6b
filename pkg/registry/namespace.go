package registry

import (
	"sync"

	"digital.vasic.testbed/pkg/check"
	"digital.vasic.testbed/pkg/unit"
)

// DefaultNamespace is the namespace used when none is named.
const DefaultNamespace = "default"

var (
	nsMu       sync.Mutex
	namespaces = make(map[string]*Registry)
)

// Namespace returns the process-wide registry for the given
// namespace name, creating it on first use. Distinct
// namespaces are fully independent: defining a test in one
// never affects another.
func Namespace(name string) *Registry {
	nsMu.Lock()
	defer nsMu.Unlock()

	if r, exists := namespaces[name]; exists {
		return r
	}
	r := New(name)
	namespaces[name] = r
	return r
}

// Default is the package-level default registry instance.
var Default = Namespace(DefaultNamespace)

// DefineTest registers a unit in the default namespace. A nil
// locals function means the unit has no local bindings.
func DefineTest(
	name string,
	locals func(),
	assertions ...check.Assertion,
) error {
	u := unit.New(name, assertions...)
	u.Locals = locals
	return Default.Define(u)
}

// UndefineTest removes a unit from the default namespace and
// returns whether anything was removed.
func UndefineTest(name string) bool {
	return Default.Undefine(name)
}
