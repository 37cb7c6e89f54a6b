// Package format renders arbitrary values to short diagnostic
// strings for assertion failure messages. Output is bounded so
// that large containers do not flood the report, and rendering
// never panics regardless of input.
package format

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxElems is the number of container elements rendered
// before the output is truncated.
const DefaultMaxElems = 3

// Pair is a two-element cell rendered in dotted notation,
// "(car . cdr)", rather than element-wise like a sequence.
type Pair struct {
	Car any
	Cdr any
}

// Renderer converts a value it recognises into a diagnostic
// string. It returns false when the value is not of a shape it
// handles, in which case the next renderer is consulted.
type Renderer func(v any) (string, bool)

// Formatter renders values for diagnostics. Custom renderers
// can be registered to support new value shapes without
// touching the built-in cases. It is safe for concurrent use.
type Formatter struct {
	mu        sync.RWMutex
	maxElems  int
	renderers []Renderer
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithMaxElems sets how many container elements are rendered
// before truncation. Values below one are ignored.
func WithMaxElems(n int) Option {
	return func(f *Formatter) {
		if n >= 1 {
			f.maxElems = n
		}
	}
}

// NewFormatter creates a Formatter with the supplied options.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{maxElems: DefaultMaxElems}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Default is the package-level formatter instance.
var Default = NewFormatter()

// Format renders a value using the Default formatter.
func Format(v any) string {
	return Default.Format(v)
}

// Register adds a custom renderer. Renderers registered later
// take precedence over earlier ones and over the built-in
// cases.
func (f *Formatter) Register(r Renderer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renderers = append([]Renderer{r}, f.renderers...)
}

// Format renders a value to a short diagnostic string. It
// never panics; a value whose rendering panics (including
// inside a custom renderer) is reported as "#<unprintable>".
func (f *Formatter) Format(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = "#<unprintable>"
		}
	}()
	return f.render(v)
}

func (f *Formatter) render(v any) string {
	f.mu.RLock()
	renderers := f.renderers
	maxElems := f.maxElems
	f.mu.RUnlock()

	for _, r := range renderers {
		if s, ok := r(v); ok {
			return s
		}
	}

	if v == nil {
		return "NIL"
	}

	if p, ok := v.(Pair); ok {
		return fmt.Sprintf(
			"(%s . %s)",
			f.render(p.Car), f.render(p.Cdr),
		)
	}

	switch s := v.(type) {
	case string:
		return strconv.Quote(s)
	case error:
		return fmt.Sprintf("#<error %q>", s.Error())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return f.renderSequence(rv, maxElems)
	case reflect.Map:
		return f.renderMap(rv, maxElems)
	}

	return fmt.Sprintf("%v", v)
}

// renderSequence renders a slice or array element-wise, each
// element recursively formatted, up to maxElems entries.
func (f *Formatter) renderSequence(
	rv reflect.Value,
	maxElems int,
) string {
	if rv.Len() == 0 {
		return "NIL"
	}

	var parts []string
	for i := 0; i < rv.Len() && i < maxElems; i++ {
		parts = append(
			parts, f.render(rv.Index(i).Interface()),
		)
	}
	if rv.Len() > maxElems {
		parts = append(parts, "...")
	}

	return "(" + strings.Join(parts, " ") + ")"
}

// renderMap renders an associative container as a bounded
// key:value listing in sorted key order for determinism.
func (f *Formatter) renderMap(
	rv reflect.Value,
	maxElems int,
) string {
	if rv.Len() == 0 {
		return "{}"
	}

	type entry struct {
		key   string
		value string
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{
			key:   f.render(iter.Key().Interface()),
			value: f.render(iter.Value().Interface()),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	var parts []string
	for i, e := range entries {
		if i == maxElems {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, e.key+":"+e.value)
	}

	return "{" + strings.Join(parts, " ") + "}"
}
