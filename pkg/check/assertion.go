// Package check provides an extensible assertion checker. Each
// assertion carries a tag selecting a comparison strategy, a
// deferred producer yielding the values under test, and the
// expected values. Strategies are dispatched through an open
// registry so new comparison kinds can be added without
// touching the built-in ones.
package check

// Producer is the deferred computation an assertion evaluates.
// It yields zero or more result values. A non-nil error means
// the computation signalled instead of returning; for most
// strategies that is an evaluation fault, for the signals
// strategy it is the very thing under test.
type Producer func() ([]any, error)

// Comparator is a pairwise equality predicate used by the
// equal strategy.
type Comparator func(actual, expected any) bool

// Assertion describes a single checkable expectation. It is
// built at test-definition time and never mutated afterwards.
type Assertion struct {
	// Tag selects the comparison strategy.
	Tag string

	// Comparator is strategy-specific: a Comparator func for
	// the equal strategy, the expected error type name for the
	// signals strategy, ignored by the prints strategy.
	Comparator any

	// Produce yields the values under test.
	Produce Producer

	// Expected holds the expected values.
	Expected []any

	// Expr is an optional source-level description of the
	// produced expression, used in diagnostics.
	Expr string
}

// Named returns a copy of the assertion with the given
// diagnostic expression attached.
func (a Assertion) Named(expr string) Assertion {
	a.Expr = expr
	return a
}

// Values returns a Producer that yields the given values. It
// is a convenience for assertions over already-computed data.
func Values(vs ...any) Producer {
	return func() ([]any, error) {
		return vs, nil
	}
}

// Equal builds an equal-strategy assertion: produce the values
// and compare them pairwise against expected using cmp. A nil
// cmp falls back to deep equality.
func Equal(
	cmp Comparator,
	produce Producer,
	expected ...any,
) Assertion {
	return Assertion{
		Tag:        TagEqual,
		Comparator: cmp,
		Produce:    produce,
		Expected:   expected,
	}
}

// Signals builds a signals-strategy assertion: produce is
// expected to return an error whose type name matches
// condition (case-insensitive).
func Signals(condition string, produce Producer) Assertion {
	return Assertion{
		Tag:        TagSignals,
		Comparator: condition,
		Produce:    produce,
	}
}

// Prints builds a prints-strategy assertion: produce runs with
// the checker's capture sink redirected into a buffer, and the
// captured text must equal expected.
func Prints(expected string, produce Producer) Assertion {
	return Assertion{
		Tag:      TagPrints,
		Produce:  produce,
		Expected: []any{expected},
	}
}
