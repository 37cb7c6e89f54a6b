package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.testbed/pkg/unit"
)

func sampleResults() []*unit.Result {
	return []*unit.Result{
		{
			Name:   "arith",
			Passed: true,
			Outcomes: []unit.Outcome{
				{Index: 0, Status: unit.StatusPass},
				{Index: 1, Status: unit.StatusPass},
			},
		},
		{
			Name:   "io",
			Passed: false,
			Outcomes: []unit.Outcome{
				{Index: 0, Status: unit.StatusPass},
				{Index: 1, Status: unit.StatusFail},
				{Index: 2, Status: unit.StatusFault},
			},
			Failures: []unit.Failure{
				{Expr: "equal[1]", Actual: []any{2}},
			},
			Faults: []unit.Fault{
				{Expr: "equal[2]", Err: errors.New("boom")},
			},
		},
	}
}

func TestBuildRunSummary_Counts(t *testing.T) {
	s := BuildRunSummary(sampleResults())

	assert.Equal(t, 2, s.TotalUnits)
	assert.Equal(t, 1, s.PassedUnits)
	assert.Equal(t, 1, s.FailedUnits)
	assert.Equal(t, 5, s.TotalAssertions)
	assert.Equal(t, 3, s.PassedAssertions)
	assert.Equal(t, 1, s.FailedAssertions)
	assert.Equal(t, 1, s.FaultedAssertions)
	assert.InDelta(t, 0.5, s.PassRate, 1e-9)
}

func TestBuildRunSummary_UniqueID(t *testing.T) {
	a := BuildRunSummary(nil)
	b := BuildRunSummary(nil)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBuildRunSummary_Empty(t *testing.T) {
	s := BuildRunSummary(nil)

	assert.Equal(t, 0, s.TotalUnits)
	assert.Zero(t, s.PassRate)
}

func TestJSONReporter_GenerateReport(t *testing.T) {
	r := NewJSONReporter(false)

	data, err := r.GenerateReport(sampleResults()[1])
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "io", decoded["name"])
	assert.Equal(t, false, decoded["passed"])

	faults, ok := decoded["faults"].([]any)
	require.True(t, ok)
	fault := faults[0].(map[string]any)
	assert.Equal(t, "boom", fault["error"],
		"fault errors must marshal as messages")
}

func TestJSONReporter_GenerateRunSummary(t *testing.T) {
	r := NewJSONReporter(false)

	data, err := r.GenerateRunSummary(sampleResults())
	require.NoError(t, err)

	var s RunSummary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 2, s.TotalUnits)
}

func TestJSONReporter_WriteReport(t *testing.T) {
	r := NewJSONReporter(false)
	var buf bytes.Buffer

	require.NoError(
		t, r.WriteReport(&buf, sampleResults()[0]),
	)
	assert.Contains(t, buf.String(), `"arith"`)
}

// fixedSummary returns a summary with deterministic fields for
// golden comparison.
func fixedSummary() *RunSummary {
	return &RunSummary{
		ID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		GeneratedAt: time.Date(
			2026, 1, 2, 15, 4, 5, 0, time.UTC,
		),
		Units: []UnitSummary{
			{Name: "arith", Passed: true, Assertions: 2},
			{
				Name:       "io",
				Passed:     false,
				Assertions: 3,
				Failures:   1,
				Faults:     1,
			},
		},
		TotalUnits:        2,
		PassedUnits:       1,
		FailedUnits:       1,
		TotalAssertions:   5,
		PassedAssertions:  3,
		FailedAssertions:  1,
		FaultedAssertions: 1,
		PassRate:          0.5,
	}
}

func TestJSONReporter_SummaryGolden(t *testing.T) {
	r := NewJSONReporter(true)

	data, err := r.GenerateSummaryReport(fixedSummary())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "run_summary", data)
}

func TestWriteTextSummary(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteTextSummary(&buf, fixedSummary()))

	out := buf.String()
	assert.Contains(t, out,
		"Run f47ac10b-58cc-4372-a567-0e02b2c3d479")
	assert.Contains(t, out, "arith")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "(1 failed, 1 faulted)")
	assert.Contains(t, out, "1/2 tests passed (50%)")
}
