package foundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOption(t *testing.T) {
	t.Run("Some", func(t *testing.T) {
		o := Some("/docs")
		require.True(t, o.IsSome())
		assert.False(t, o.IsNone())
		v, ok := o.Get()
		assert.True(t, ok)
		assert.Equal(t, "/docs", v)
		assert.Equal(t, "/docs", o.Unwrap())
		assert.Equal(t, "Some(/docs)", o.String())
	})

	t.Run("None", func(t *testing.T) {
		o := None[string]()
		assert.True(t, o.IsNone())
		assert.Equal(t, "fallback", o.UnwrapOr("fallback"))
		assert.Equal(t, "None", o.String())
		assert.Panics(t, func() { o.Unwrap() })
	})

	t.Run("Or and Map", func(t *testing.T) {
		assert.Equal(t, "b", None[string]().Or(Some("b")).Unwrap())
		assert.Equal(t, "a", Some("a").Or(Some("b")).Unwrap())
		assert.Equal(t, 3, MapOption(Some("abc"), func(s string) int { return len(s) }).Unwrap())
		assert.True(t, MapOption(None[string](), func(s string) int { return len(s) }).IsNone())
	})
}

func TestNormalizer(t *testing.T) {
	type service string
	n := NewNormalizer(map[string]service{"GitHub": "github", "gitlab": "gitlab"})

	got, err := n.Normalize("  GITHUB ")
	require.NoError(t, err)
	assert.Equal(t, service("github"), got)

	_, err = n.Normalize("sourcehut")
	assert.EqualError(t, err, "invalid value: sourcehut")
}
