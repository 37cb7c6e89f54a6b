package runner

import (
	"io"

	"digital.vasic.testbed/pkg/check"
	"digital.vasic.testbed/pkg/format"
	"digital.vasic.testbed/pkg/logging"
	"digital.vasic.testbed/pkg/monitor"
	"digital.vasic.testbed/pkg/registry"
)

// Option configures a Runner.
type Option func(*Runner)

// WithRegistry sets the registry (namespace) the runner
// executes from.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithChecker sets the assertion checker used for dispatch.
func WithChecker(c *check.Checker) Option {
	return func(r *Runner) {
		r.runtime.Checker = c
	}
}

// WithFormatter sets the diagnostic value formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(r *Runner) {
		r.runtime.Formatter = f
	}
}

// WithOutput sets the destination for progress lines and
// verbose diagnostics.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.runtime.Output = w
	}
}

// WithVerbose controls whether failure and fault diagnostics
// are printed immediately. The returned results are unaffected.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.runtime.Verbose = verbose
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithCollector attaches a monitor collector receiving a
// started and a passed/failed event per unit run.
func WithCollector(c *monitor.EventCollector) Option {
	return func(r *Runner) {
		r.collector = c
	}
}
