// Package unit defines the test case: a named, ordered list of
// assertions with optional local bindings. Running a unit
// evaluates every assertion in declaration order; each
// assertion is fault-isolated so one broken producer never
// prevents the rest of the body from executing and reporting.
package unit

import (
	"errors"
	"fmt"
	"io"

	"digital.vasic.testbed/pkg/capture"
	"digital.vasic.testbed/pkg/check"
	"digital.vasic.testbed/pkg/format"
)

// Unit is a compiled test case. Units are built once at
// definition time and may be run any number of times.
type Unit struct {
	// Name uniquely identifies the unit within a registry.
	Name string

	// Locals re-establishes any local state the assertion
	// producers close over. It runs at the start of every Run,
	// which keeps repeated runs independent.
	Locals func()

	// Assertions run in declaration order.
	Assertions []check.Assertion
}

// New creates a unit with no local bindings.
func New(name string, assertions ...check.Assertion) *Unit {
	return &Unit{Name: name, Assertions: assertions}
}

// WithLocals attaches a local-binding function and returns the
// unit for chaining.
func (u *Unit) WithLocals(locals func()) *Unit {
	u.Locals = locals
	return u
}

// Runtime bundles the collaborators a unit needs to execute.
type Runtime struct {
	// Checker dispatches assertions to their strategies.
	Checker *check.Checker

	// Formatter renders diagnostic values.
	Formatter *format.Formatter

	// Output receives the per-unit progress line and, in
	// verbose mode, failure and fault diagnostics.
	Output io.Writer

	// Verbose controls whether diagnostics are written before
	// the summary line. It never changes the returned result.
	Verbose bool
}

// NewRuntime creates a Runtime with the default checker,
// formatter, the process stdout sink, and verbose enabled.
func NewRuntime() *Runtime {
	out, _ := capture.Default().Get(capture.Stdout)
	return &Runtime{
		Checker:   check.NewChecker(),
		Formatter: format.Default,
		Output:    out,
		Verbose:   true,
	}
}

// Run executes every assertion and aggregates the outcomes. A
// panic or unexpected error inside one assertion is recorded as
// a fault for that assertion only; the remaining assertions
// still run. Only definition-level errors (an unknown tag)
// abort the run and surface as the returned error.
func (u *Unit) Run(rt *Runtime) (*Result, error) {
	if u.Locals != nil {
		if err := runLocals(u.Locals); err != nil {
			return nil, fmt.Errorf(
				"test %s: local bindings: %w", u.Name, err,
			)
		}
	}

	result := &Result{Name: u.Name}

	for i, a := range u.Assertions {
		outcome, err := u.evalAssertion(rt, i, a)
		if err != nil {
			return nil, err
		}
		result.Outcomes = append(result.Outcomes, outcome)

		switch outcome.Status {
		case StatusFail:
			result.Failures = append(result.Failures, Failure{
				Expr:     outcome.Expr,
				Expected: a.Expected,
				Actual:   outcome.Payload,
			})
		case StatusFault:
			result.Faults = append(result.Faults, Fault{
				Expr: outcome.Expr,
				Err:  outcome.Err,
			})
		}
	}

	result.Passed = len(result.Failures) == 0 &&
		len(result.Faults) == 0

	u.report(rt, result)
	return result, nil
}

// evalAssertion checks one assertion inside its own error
// boundary. Panics and strategy faults become a Fault outcome;
// an unknown tag propagates as a definition error.
func (u *Unit) evalAssertion(
	rt *Runtime,
	index int,
	a check.Assertion,
) (outcome Outcome, defErr error) {
	outcome = Outcome{
		Index:    index,
		Expr:     exprOf(index, a),
		Expected: a.Expected,
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = StatusFault
			outcome.Err = fmt.Errorf(
				"panic during assertion: %v", r,
			)
		}
	}()

	ok, payload, err := rt.Checker.Check(a)
	switch {
	case errors.Is(err, check.ErrUnknownTag):
		return outcome, fmt.Errorf("test %s: %w", u.Name, err)
	case err != nil:
		outcome.Status = StatusFault
		outcome.Err = err
	case ok:
		outcome.Status = StatusPass
	default:
		outcome.Status = StatusFail
		outcome.Payload = payload
	}

	return outcome, nil
}

// runLocals executes the local-binding function, converting a
// panic into an error.
func runLocals(locals func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	locals()
	return nil
}

// report writes verbose diagnostics (when enabled) followed by
// the one-line OK/FAILED summary.
func (u *Unit) report(rt *Runtime, result *Result) {
	if rt.Output == nil {
		return
	}

	fm := rt.Formatter
	if fm == nil {
		fm = format.Default
	}

	if rt.Verbose {
		for _, f := range result.Failures {
			fmt.Fprintf(
				rt.Output,
				"  %s: expected %s, got %s\n",
				f.Expr,
				fm.Format(f.Expected),
				fm.Format(f.Actual),
			)
		}
		for _, f := range result.Faults {
			fmt.Fprintf(
				rt.Output,
				"  %s: unexpected error: %v\n",
				f.Expr, f.Err,
			)
		}
	}

	status := "OK"
	if !result.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(rt.Output, "%s ... %s\n", u.Name, status)
}

// exprOf returns the assertion's diagnostic label, falling back
// to its tag and position when no expression was attached.
func exprOf(index int, a check.Assertion) string {
	if a.Expr != "" {
		return a.Expr
	}
	return fmt.Sprintf("%s[%d]", a.Tag, index)
}
