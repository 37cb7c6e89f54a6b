package report

import (
	"fmt"
	"io"
)

// WriteTextSummary renders a run summary as plain text for
// terminal consumption.
func WriteTextSummary(w io.Writer, s *RunSummary) error {
	if _, err := fmt.Fprintf(
		w, "Run %s\n", s.ID,
	); err != nil {
		return err
	}

	for _, u := range s.Units {
		status := "OK"
		if !u.Passed {
			status = "FAILED"
		}
		_, err := fmt.Fprintf(
			w, "  %-30s %-6s %d assertions",
			u.Name, status, u.Assertions,
		)
		if err != nil {
			return err
		}
		if u.Failures > 0 || u.Faults > 0 {
			_, err = fmt.Fprintf(
				w, " (%d failed, %d faulted)",
				u.Failures, u.Faults,
			)
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(
		w,
		"%d/%d tests passed (%.0f%%), "+
			"%d assertions: %d passed, %d failed, %d faulted\n",
		s.PassedUnits, s.TotalUnits, s.PassRate*100,
		s.TotalAssertions, s.PassedAssertions,
		s.FailedAssertions, s.FaultedAssertions,
	)
	return err
}
