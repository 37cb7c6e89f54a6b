// Package report provides report generation for test run
// results: an aggregate run summary plus JSON and plain-text
// renderings of it.
package report

import (
	"time"

	"github.com/google/uuid"

	"digital.vasic.testbed/pkg/unit"
)

// RunSummary aggregates the results of one suite run.
type RunSummary struct {
	ID                string        `json:"id"`
	GeneratedAt       time.Time     `json:"generated_at"`
	Units             []UnitSummary `json:"units"`
	TotalUnits        int           `json:"total_units"`
	PassedUnits       int           `json:"passed_units"`
	FailedUnits       int           `json:"failed_units"`
	TotalAssertions   int           `json:"total_assertions"`
	PassedAssertions  int           `json:"passed_assertions"`
	FailedAssertions  int           `json:"failed_assertions"`
	FaultedAssertions int           `json:"faulted_assertions"`
	PassRate          float64       `json:"pass_rate"`
}

// UnitSummary condenses one unit's result.
type UnitSummary struct {
	Name       string `json:"name"`
	Passed     bool   `json:"passed"`
	Assertions int    `json:"assertions"`
	Failures   int    `json:"failures"`
	Faults     int    `json:"faults"`
}

// BuildRunSummary creates a run summary from unit results. The
// summary gets a fresh unique run ID.
func BuildRunSummary(results []*unit.Result) *RunSummary {
	summary := &RunSummary{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Units:       make([]UnitSummary, 0, len(results)),
	}

	for _, r := range results {
		us := UnitSummary{
			Name:       r.Name,
			Passed:     r.Passed,
			Assertions: len(r.Outcomes),
			Failures:   len(r.Failures),
			Faults:     len(r.Faults),
		}
		summary.Units = append(summary.Units, us)

		summary.TotalUnits++
		if r.Passed {
			summary.PassedUnits++
		} else {
			summary.FailedUnits++
		}

		summary.TotalAssertions += us.Assertions
		summary.FailedAssertions += us.Failures
		summary.FaultedAssertions += us.Faults
		summary.PassedAssertions +=
			us.Assertions - us.Failures - us.Faults
	}

	if summary.TotalUnits > 0 {
		summary.PassRate =
			float64(summary.PassedUnits) /
				float64(summary.TotalUnits)
	}

	return summary
}
