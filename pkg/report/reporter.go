package report

import (
	"io"

	"digital.vasic.testbed/pkg/unit"
)

// Reporter defines the interface for rendering results.
type Reporter interface {
	// GenerateReport renders a single unit result.
	GenerateReport(result *unit.Result) ([]byte, error)

	// GenerateRunSummary builds and renders an aggregate
	// summary of a suite run.
	GenerateRunSummary(
		results []*unit.Result,
	) ([]byte, error)

	// WriteReport writes a single-result report to the given
	// writer.
	WriteReport(w io.Writer, result *unit.Result) error
}
