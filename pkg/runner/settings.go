package runner

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// StdoutDestination routes runner output to standard output.
const StdoutDestination = "stdout"

// Settings holds the two process-wide configuration knobs:
// where progress output goes and whether diagnostics are
// printed immediately.
type Settings struct {
	// Output is the output destination: "stdout" or a file
	// path.
	Output string `yaml:"output"`

	// Verbose controls immediate diagnostic printing.
	Verbose bool `yaml:"verbose"`
}

// DefaultSettings returns the documented defaults: standard
// output, verbose on.
func DefaultSettings() *Settings {
	return &Settings{
		Output:  StdoutDestination,
		Verbose: true,
	}
}

// LoadSettings reads a YAML settings file. Missing keys keep
// their defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read settings file %s: %w", path, err,
		)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf(
			"failed to parse settings from %s: %w", path, err,
		)
	}
	return s, nil
}

// nopWriteCloser wraps a writer whose lifetime the caller does
// not own, such as os.Stdout.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// OpenOutput opens the configured output destination. The
// caller closes the returned writer; closing a stdout
// destination is a no-op.
func (s *Settings) OpenOutput() (io.WriteCloser, error) {
	if s.Output == "" || s.Output == StdoutDestination {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.OpenFile(
		s.Output,
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to open output %s: %w", s.Output, err,
		)
	}
	return f, nil
}

// Options translates the settings into runner options.
func (s *Settings) Options(out io.Writer) []Option {
	return []Option{
		WithOutput(out),
		WithVerbose(s.Verbose),
	}
}
