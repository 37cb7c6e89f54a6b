package check

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// checkEqual runs the producer and compares its results to the
// expected values pairwise. Comparison truncates to the shorter
// of the two lists, mirroring multiple-value semantics where
// surplus results are left unchecked. On failure the payload is
// the full list of actual results.
func checkEqual(a Assertion) (bool, any, error) {
	cmp, err := comparatorOf(a.Comparator)
	if err != nil {
		return false, nil, err
	}

	results, err := a.Produce()
	if err != nil {
		return false, nil, fmt.Errorf(
			"producer signalled: %w", err,
		)
	}

	n := len(results)
	if len(a.Expected) < n {
		n = len(a.Expected)
	}

	for i := 0; i < n; i++ {
		if !cmp(results[i], a.Expected[i]) {
			return false, results, nil
		}
	}

	return true, nil, nil
}

// comparatorOf coerces the assertion's comparator slot into a
// Comparator. A nil slot falls back to deep equality.
func comparatorOf(v any) (Comparator, error) {
	switch cmp := v.(type) {
	case nil:
		return func(a, b any) bool {
			return reflect.DeepEqual(a, b)
		}, nil
	case Comparator:
		return cmp, nil
	case func(a, b any) bool:
		return cmp, nil
	}
	return nil, fmt.Errorf(
		"equal comparator must be func(actual, expected any) bool",
	)
}

// checkSignals expects the producer to signal an error whose
// type name matches the comparator, case-insensitively. No
// error is a plain failure with a nil payload; an error of the
// wrong type fails with the error itself as payload. That
// payload is the subject of the check, not an evaluation fault.
func checkSignals(a Assertion) (bool, any, error) {
	want, ok := a.Comparator.(string)
	if !ok || want == "" {
		return false, nil, fmt.Errorf(
			"signals comparator must be a condition type name",
		)
	}

	_, err := a.Produce()
	if err == nil {
		return false, nil, nil
	}

	if matchesCondition(err, want) {
		return true, nil, nil
	}
	return false, err, nil
}

// matchesCondition reports whether any error in the chain has
// the wanted type name. The comparison is keyword-style: a
// leading colon on want is ignored and case is insignificant.
func matchesCondition(err error, want string) bool {
	want = strings.TrimPrefix(want, ":")
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.EqualFold(conditionName(e), want) {
			return true
		}
	}
	return false
}

// conditionName returns the bare type name of an error value,
// with any pointer indirection stripped.
func conditionName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// checkPrints runs the producer while the checker's capture
// sink is redirected into a fresh buffer, then compares the
// captured text against the first expected value. The sink is
// restored on every exit path; a producer error surfaces as a
// fault only after restoration.
func (c *Checker) checkPrints(a Assertion) (bool, any, error) {
	if len(a.Expected) == 0 {
		return false, nil, fmt.Errorf(
			"prints assertion requires the expected text",
		)
	}
	want, ok := a.Expected[0].(string)
	if !ok {
		return false, nil, fmt.Errorf(
			"prints expected value must be a string",
		)
	}

	captured, err := c.sinks.Capture(
		c.captureSink,
		func() error {
			_, perr := a.Produce()
			return perr
		},
	)
	if err != nil {
		return false, nil, fmt.Errorf(
			"producer signalled: %w", err,
		)
	}

	if captured == want {
		return true, nil, nil
	}
	return false, captured, nil
}
