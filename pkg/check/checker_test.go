package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecker_RegistersBuiltins(t *testing.T) {
	c := NewChecker()

	for _, tag := range []string{
		TagEqual, TagSignals, TagPrints,
	} {
		assert.True(t, c.Has(tag),
			"missing built-in strategy: %s", tag)
	}
}

func TestChecker_Register_Success(t *testing.T) {
	c := NewChecker()

	err := c.Register("custom", func(
		_ Assertion,
	) (bool, any, error) {
		return true, nil, nil
	})

	require.NoError(t, err)
	assert.True(t, c.Has("custom"))
}

func TestChecker_Register_Duplicate(t *testing.T) {
	c := NewChecker()

	err := c.Register(TagEqual, func(
		_ Assertion,
	) (bool, any, error) {
		return true, nil, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestChecker_Check_UnknownTag(t *testing.T) {
	c := NewChecker()

	_, _, err := c.Check(Assertion{
		Tag:     "nonexistent",
		Produce: Values(1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTag)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestChecker_Check_MissingProducer(t *testing.T) {
	c := NewChecker()

	_, _, err := c.Check(Assertion{Tag: TagEqual})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no producer")
}

func TestChecker_Check_CustomStrategy(t *testing.T) {
	c := NewChecker()
	require.NoError(t, c.Register("always-odd", func(
		a Assertion,
	) (bool, any, error) {
		results, err := a.Produce()
		if err != nil {
			return false, nil, err
		}
		for _, r := range results {
			n, ok := r.(int)
			if !ok || n%2 == 0 {
				return false, results, nil
			}
		}
		return true, nil, nil
	}))

	ok, _, err := c.Check(Assertion{
		Tag:     "always-odd",
		Produce: Values(1, 3, 5),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, payload, err := c.Check(Assertion{
		Tag:     "always-odd",
		Produce: Values(1, 2),
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []any{1, 2}, payload)
}

func TestAssertion_Named(t *testing.T) {
	a := Equal(nil, Values(1), 1).Named("(one)")

	assert.Equal(t, "(one)", a.Expr)
}
