package check

import (
	"errors"
	"fmt"
	"sync"

	"digital.vasic.testbed/pkg/capture"
)

// Built-in strategy tags.
const (
	TagEqual   = "equal"
	TagSignals = "signals"
	TagPrints  = "prints"
)

// ErrUnknownTag is returned when an assertion names a tag with
// no registered strategy. It is a definition-level error, not
// an assertion failure.
var ErrUnknownTag = errors.New("unknown assertion tag")

// Strategy evaluates one assertion. It returns whether the
// assertion passed, an optional payload describing the actual
// outcome on failure, and a non-nil error only when evaluation
// itself faulted.
type Strategy func(a Assertion) (ok bool, payload any, err error)

// Checker dispatches assertions to comparison strategies by
// tag. It is safe for concurrent use.
type Checker struct {
	mu          sync.RWMutex
	strategies  map[string]Strategy
	sinks       *capture.SinkSet
	captureSink string
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithSinks sets the sink set used by the prints strategy.
func WithSinks(ss *capture.SinkSet) CheckerOption {
	return func(c *Checker) {
		c.sinks = ss
	}
}

// WithCaptureSink sets the name of the sink the prints
// strategy redirects. Defaults to capture.Stdout.
func WithCaptureSink(name string) CheckerOption {
	return func(c *Checker) {
		c.captureSink = name
	}
}

// NewChecker creates a Checker with the three built-in
// strategies (equal, signals, prints) pre-registered.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		strategies:  make(map[string]Strategy),
		sinks:       capture.Default(),
		captureSink: capture.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.strategies[TagEqual] = checkEqual
	c.strategies[TagSignals] = checkSignals
	c.strategies[TagPrints] = c.checkPrints
	return c
}

// Register adds a custom strategy for the given tag. Returns
// an error if the tag is already registered.
func (c *Checker) Register(tag string, s Strategy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.strategies[tag]; exists {
		return fmt.Errorf(
			"assertion tag already registered: %s", tag,
		)
	}

	c.strategies[tag] = s
	return nil
}

// Has returns true if the given tag has a registered strategy.
func (c *Checker) Has(tag string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.strategies[tag]
	return exists
}

// Check evaluates a single assertion. An unregistered tag
// yields an error wrapping ErrUnknownTag; a fault inside the
// strategy yields the fault error. Payload carries the actual
// outcome when the assertion fails.
func (c *Checker) Check(a Assertion) (bool, any, error) {
	c.mu.RLock()
	strategy, exists := c.strategies[a.Tag]
	c.mu.RUnlock()

	if !exists {
		return false, nil, fmt.Errorf(
			"%w: %s", ErrUnknownTag, a.Tag,
		)
	}
	if a.Produce == nil {
		return false, nil, fmt.Errorf(
			"assertion has no producer",
		)
	}

	return strategy(a)
}
