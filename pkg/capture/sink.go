// Package capture provides named, swappable output sinks. A
// Sink is a stable io.Writer whose backing destination can be
// replaced for the duration of a scoped capture and is restored
// unconditionally on every exit path, including panics.
package capture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Stdout is the name of the default standard-output sink.
const Stdout = "stdout"

// ErrUnknownSink is returned when a capture names a sink that
// has not been defined.
var ErrUnknownSink = fmt.Errorf("unknown output sink")

// Sink is an io.Writer with a replaceable destination. Code
// holds the Sink itself; captures swap only the destination,
// so writes issued mid-capture land in the capture buffer.
type Sink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSink creates a Sink writing to the given destination.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write forwards to the current destination.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	w := s.w
	s.mu.Unlock()
	return w.Write(p)
}

// Set replaces the destination and returns the previous one.
func (s *Sink) Set(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.w
	s.w = w
	return prev
}

// SinkSet is a registry of named sinks. It is safe for
// concurrent use.
type SinkSet struct {
	mu    sync.RWMutex
	sinks map[string]*Sink
}

// NewSinkSet creates an empty SinkSet.
func NewSinkSet() *SinkSet {
	return &SinkSet{sinks: make(map[string]*Sink)}
}

// defaultSet holds the process-wide sinks, seeded with a
// "stdout" sink backed by os.Stdout.
var defaultSet = func() *SinkSet {
	s := NewSinkSet()
	s.Define(Stdout, os.Stdout)
	return s
}()

// Default returns the process-wide SinkSet.
func Default() *SinkSet {
	return defaultSet
}

// Define registers a sink under the given name, replacing any
// existing sink with that name, and returns it.
func (ss *SinkSet) Define(name string, w io.Writer) *Sink {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s := NewSink(w)
	ss.sinks[name] = s
	return s
}

// Get returns the named sink.
func (ss *SinkSet) Get(name string) (*Sink, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.sinks[name]
	return s, ok
}

// Capture runs fn while the named sink is redirected into a
// fresh in-memory buffer and returns everything written to the
// sink during the call. The previous destination is restored
// on every exit path: normal return, error return, and panic.
func (ss *SinkSet) Capture(
	name string,
	fn func() error,
) (string, error) {
	sink, ok := ss.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSink, name)
	}

	buf := &bytes.Buffer{}
	prev := sink.Set(buf)
	defer sink.Set(prev)

	err := fn()
	return buf.String(), err
}
