package query

import (
	"testing"

	"github.com/indigo-web/miniexpress/kv"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("pairs", func(t *testing.T) {
		params := kv.NewCaseSensitive()
		Parse("id=30&name=john", params)
		require.Equal(t, "30", params.Value("id"))
		require.Equal(t, "john", params.Value("name"))
	})

	t.Run("last wins", func(t *testing.T) {
		params := kv.NewCaseSensitive()
		Parse("id=1&id=2&id=3", params)
		require.Equal(t, 1, params.Len())
		require.Equal(t, "3", params.Value("id"))
	})

	t.Run("case-sensitive keys", func(t *testing.T) {
		params := kv.NewCaseSensitive()
		Parse("a=1&A=2", params)
		require.Equal(t, 2, params.Len())
		require.Equal(t, "1", params.Value("a"))
		require.Equal(t, "2", params.Value("A"))
		require.Equal(t, map[string]string{"a": "1", "A": "2"}, params.Map())
	})

	t.Run("no decoding", func(t *testing.T) {
		params := kv.NewCaseSensitive()
		Parse("hel%20lo=wor+ld", params)
		require.Equal(t, "wor+ld", params.Value("hel%20lo"))
	})

	t.Run("corner cases", func(t *testing.T) {
		params := kv.NewCaseSensitive()
		Parse("&flag&&a==b&", params)
		require.True(t, params.Has("flag"))
		require.Empty(t, params.Value("flag"))
		require.Equal(t, "=b", params.Value("a"))
		require.Equal(t, 2, params.Len())
	})
}
