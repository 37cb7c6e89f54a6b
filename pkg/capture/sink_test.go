package capture

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_Write_ForwardsToDestination(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)

	fmt.Fprint(s, "hello")

	assert.Equal(t, "hello", buf.String())
}

func TestSink_Set_ReturnsPrevious(t *testing.T) {
	var first, second bytes.Buffer
	s := NewSink(&first)

	prev := s.Set(&second)
	fmt.Fprint(s, "rerouted")

	assert.Same(t, &first, prev)
	assert.Empty(t, first.String())
	assert.Equal(t, "rerouted", second.String())
}

func TestSinkSet_Get_Unknown(t *testing.T) {
	ss := NewSinkSet()

	_, ok := ss.Get("nope")
	assert.False(t, ok)
}

func TestSinkSet_Capture_ReturnsWrittenText(t *testing.T) {
	var out bytes.Buffer
	ss := NewSinkSet()
	sink := ss.Define("out", &out)

	got, err := ss.Capture("out", func() error {
		fmt.Fprint(sink, "captured")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "captured", got)
	assert.Empty(t, out.String(),
		"capture must not leak into the real destination")
}

func TestSinkSet_Capture_RestoresAfterReturn(t *testing.T) {
	var out bytes.Buffer
	ss := NewSinkSet()
	sink := ss.Define("out", &out)

	_, err := ss.Capture("out", func() error {
		return nil
	})
	require.NoError(t, err)

	fmt.Fprint(sink, "after")
	assert.Equal(t, "after", out.String())
}

func TestSinkSet_Capture_RestoresAfterError(t *testing.T) {
	var out bytes.Buffer
	ss := NewSinkSet()
	sink := ss.Define("out", &out)

	boom := errors.New("boom")
	got, err := ss.Capture("out", func() error {
		fmt.Fprint(sink, "partial")
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", got)

	fmt.Fprint(sink, "after")
	assert.Equal(t, "after", out.String())
}

func TestSinkSet_Capture_RestoresAfterPanic(t *testing.T) {
	var out bytes.Buffer
	ss := NewSinkSet()
	sink := ss.Define("out", &out)

	func() {
		defer func() {
			r := recover()
			require.Equal(t, "mid-capture", r)
		}()
		_, _ = ss.Capture("out", func() error {
			fmt.Fprint(sink, "lost")
			panic("mid-capture")
		})
	}()

	fmt.Fprint(sink, "after")
	assert.Equal(t, "after", out.String())
}

func TestSinkSet_Capture_UnknownSink(t *testing.T) {
	ss := NewSinkSet()

	_, err := ss.Capture("ghost", func() error {
		return nil
	})

	assert.ErrorIs(t, err, ErrUnknownSink)
}

func TestSinkSet_Capture_Nested(t *testing.T) {
	var out bytes.Buffer
	ss := NewSinkSet()
	sink := ss.Define("out", &out)

	outer, err := ss.Capture("out", func() error {
		fmt.Fprint(sink, "a")
		inner, innerErr := ss.Capture("out", func() error {
			fmt.Fprint(sink, "b")
			return nil
		})
		require.NoError(t, innerErr)
		assert.Equal(t, "b", inner)
		fmt.Fprint(sink, "c")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ac", outer)
	assert.Empty(t, out.String())
}

func TestDefault_HasStdoutSink(t *testing.T) {
	_, ok := Default().Get(Stdout)
	assert.True(t, ok)
}

func TestSinkSet_Define_ReplacesExisting(t *testing.T) {
	var first, second bytes.Buffer
	ss := NewSinkSet()
	ss.Define("out", &first)
	replacement := ss.Define("out", &second)

	got, ok := ss.Get("out")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}
