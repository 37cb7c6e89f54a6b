package report

import (
	"encoding/json"
	"io"

	"digital.vasic.testbed/pkg/unit"
)

// JSONReporter renders results as JSON. When pretty is true,
// output is indented for readability.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// GenerateReport renders a single unit result as JSON.
func (r *JSONReporter) GenerateReport(
	result *unit.Result,
) ([]byte, error) {
	return r.marshal(result)
}

// GenerateRunSummary builds a run summary from the results and
// renders it as JSON.
func (r *JSONReporter) GenerateRunSummary(
	results []*unit.Result,
) ([]byte, error) {
	return r.marshal(BuildRunSummary(results))
}

// GenerateSummaryReport renders an already-built summary as
// JSON. It exists so callers can render a summary they have
// amended or archived.
func (r *JSONReporter) GenerateSummaryReport(
	summary *RunSummary,
) ([]byte, error) {
	return r.marshal(summary)
}

// WriteReport writes a single-result JSON report to the given
// writer.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	result *unit.Result,
) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
