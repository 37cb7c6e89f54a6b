// Package runner executes registered test units: one by name,
// or a whole namespace with optional restriction to units that
// failed their previous run. Units run strictly sequentially in
// sorted name order; there is no parallel execution contract.
package runner

import (
	"digital.vasic.testbed/pkg/logging"
	"digital.vasic.testbed/pkg/monitor"
	"digital.vasic.testbed/pkg/registry"
	"digital.vasic.testbed/pkg/unit"
)

// Runner executes units from one registry. Ordinary test
// failures are never errors: they come back inside results and
// aggregate maps. Only definition-level problems (an unknown
// test name, an unknown assertion tag) surface as errors.
type Runner struct {
	registry  *registry.Registry
	runtime   *unit.Runtime
	logger    logging.Logger
	collector *monitor.EventCollector
}

// NewRunner creates a Runner with the supplied options. The
// defaults are the default-namespace registry, the built-in
// strategies, output on the process stdout sink, and verbose
// diagnostics enabled.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		registry: registry.Default,
		runtime:  unit.NewRuntime(),
		logger:   logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunTest looks up and runs a single unit. An unknown name is
// a definition-level error, distinct from the unit failing.
func (r *Runner) RunTest(name string) (*unit.Result, error) {
	u, err := r.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return r.runUnit(u)
}

// RunAll runs every unit in the registry in sorted name order.
// When onlyFailed is set, units that did not fail their last
// run are skipped and their recorded state is preserved. It
// returns ok=true iff both aggregate maps are empty; the error
// is non-nil only for definition-level faults.
func (r *Runner) RunAll(onlyFailed bool) (
	bool,
	map[string][]unit.Failure,
	map[string][]unit.Fault,
	error,
) {
	failures := make(map[string][]unit.Failure)
	faults := make(map[string][]unit.Fault)

	for _, u := range r.registry.List() {
		if onlyFailed && !r.registry.Failed(u.Name) {
			continue
		}

		result, err := r.runUnit(u)
		if err != nil {
			return false, failures, faults, err
		}

		if len(result.Failures) > 0 {
			failures[u.Name] = result.Failures
		}
		if len(result.Faults) > 0 {
			faults[u.Name] = result.Faults
		}
	}

	ok := len(failures) == 0 && len(faults) == 0
	return ok, failures, faults, nil
}

// runUnit executes one unit, records its failed state in the
// registry, and emits monitor events.
func (r *Runner) runUnit(u *unit.Unit) (*unit.Result, error) {
	r.emit(monitor.Event{
		Type: monitor.EventStarted,
		Unit: u.Name,
	})

	result, err := u.Run(r.runtime)
	if err != nil {
		r.logger.Error("test run aborted",
			logging.StringField("test", u.Name),
			logging.ErrorField(err),
		)
		return nil, err
	}

	r.registry.SetFailed(u.Name, !result.Passed)

	event := monitor.Event{
		Type:     monitor.EventPassed,
		Unit:     u.Name,
		Failures: len(result.Failures),
		Faults:   len(result.Faults),
	}
	if !result.Passed {
		event.Type = monitor.EventFailed
	}
	r.emit(event)

	r.logger.Debug("test finished",
		logging.StringField("test", u.Name),
		logging.BoolField("passed", result.Passed),
		logging.IntField("failures", len(result.Failures)),
		logging.IntField("faults", len(result.Faults)),
	)

	return result, nil
}

func (r *Runner) emit(event monitor.Event) {
	if r.collector == nil {
		return
	}
	event.Namespace = r.registry.Name()
	r.collector.Record(event)
}

// RunTest runs a single unit from the default namespace.
func RunTest(name string, opts ...Option) (
	*unit.Result, error,
) {
	return NewRunner(opts...).RunTest(name)
}

// RunTests runs every unit in the named namespace, optionally
// restricted to units that failed their previous run.
func RunTests(
	namespace string,
	onlyFailed bool,
	opts ...Option,
) (
	bool,
	map[string][]unit.Failure,
	map[string][]unit.Fault,
	error,
) {
	opts = append(
		[]Option{WithRegistry(registry.Namespace(namespace))},
		opts...,
	)
	return NewRunner(opts...).RunAll(onlyFailed)
}
