package unit

import "encoding/json"

// Status constants for per-assertion outcomes.
const (
	StatusPass  = "pass"
	StatusFail  = "fail"
	StatusFault = "fault"
)

// Outcome captures the result of evaluating a single assertion
// during one run. Outcomes are ephemeral: they are rebuilt on
// every run and never accumulate.
type Outcome struct {
	// Index is the assertion's position in the unit body.
	Index int `json:"index"`

	// Expr is the assertion's diagnostic label.
	Expr string `json:"expr"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// Expected holds the expected values, when applicable.
	Expected []any `json:"expected,omitempty"`

	// Payload describes the actual outcome on failure: the
	// actual results for equal, the raised error for signals,
	// the captured text for prints.
	Payload any `json:"payload,omitempty"`

	// Err is the fault error, set only when Status is
	// StatusFault.
	Err error `json:"-"`
}

// Failure is the structured diagnostic for one failed
// assertion.
type Failure struct {
	// Expr is the assertion's diagnostic label.
	Expr string `json:"expr"`

	// Expected holds the values the assertion expected.
	Expected []any `json:"expected"`

	// Actual is the observed payload.
	Actual any `json:"actual"`
}

// Fault records an unexpected error raised while evaluating an
// assertion. It is kept apart from ordinary failures so callers
// can tell "wrong answer" from "crashed".
type Fault struct {
	// Expr is the assertion's diagnostic label.
	Expr string

	// Err is the recovered error.
	Err error
}

// MarshalJSON renders the fault with its error message, since
// error values do not marshal on their own.
func (f Fault) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Expr  string `json:"expr"`
		Error string `json:"error"`
	}{Expr: f.Expr, Error: msg})
}

// Result aggregates the outcomes of one unit run. It is
// returned to the caller and not persisted; registries keep
// only a last-failed flag per unit.
type Result struct {
	// Name is the unit's name.
	Name string `json:"name"`

	// Passed is true iff there were no failures and no faults.
	Passed bool `json:"passed"`

	// Outcomes holds one entry per assertion, in declaration
	// order.
	Outcomes []Outcome `json:"outcomes"`

	// Failures holds the failed-assertion diagnostics.
	Failures []Failure `json:"failures,omitempty"`

	// Faults holds the unexpected-error diagnostics.
	Faults []Fault `json:"faults,omitempty"`
}
