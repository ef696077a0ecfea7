package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	t.Run("case-insensitive lookup", func(t *testing.T) {
		s := New().Add("Content-Type", "text/html")
		value, found := s.Get("content-type")
		require.True(t, found)
		require.Equal(t, "text/html", value)
		require.True(t, s.Has("CONTENT-TYPE"))
		require.Empty(t, s.Value("content-length"))
		require.Equal(t, "0", s.ValueOr("content-length", "0"))
	})

	t.Run("set overrides", func(t *testing.T) {
		s := New().Add("hello", "a").Add("Hello", "b").Add("foo", "bar")
		s.Set("HELLO", "c")
		require.Equal(t, 2, s.Len())
		require.Equal(t, []string{"c"}, s.Values("hello"))
		require.Equal(t, "bar", s.Value("foo"))
	})

	t.Run("set adds missing", func(t *testing.T) {
		s := New().Set("a", "1").Set("b", "2").Set("a", "3")
		require.Equal(t, []Pair{{"a", "3"}, {"b", "2"}}, s.Expose())
	})

	t.Run("values and keys", func(t *testing.T) {
		s := New().Add("Set-Cookie", "a=1").Add("set-cookie", "b=2").Add("Date", "now")
		require.Equal(t, []string{"a=1", "b=2"}, s.Values("SET-COOKIE"))
		require.Equal(t, []string{"Set-Cookie", "Date"}, s.Keys())
		require.Nil(t, s.Values("missing"))
	})

	t.Run("delete", func(t *testing.T) {
		s := New().Add("a", "1").Add("b", "2").Add("A", "3")
		s.Delete("a")
		require.Equal(t, []Pair{{"b", "2"}}, s.Expose())
	})

	t.Run("clear and clone", func(t *testing.T) {
		s := New().Add("a", "1")
		c := s.Clone()
		s.Clear()
		require.True(t, s.Empty())
		require.Equal(t, "1", c.Value("a"))
	})

	t.Run("case-sensitive", func(t *testing.T) {
		s := NewCaseSensitive().Set("a", "1").Set("A", "2")
		require.Equal(t, []Pair{{"a", "1"}, {"A", "2"}}, s.Expose())
		require.Equal(t, "1", s.Value("a"))
		require.False(t, s.Has("B"))
		require.Equal(t, []string{"a", "A"}, s.Keys())

		c := s.Clone().Delete("A")
		require.Equal(t, []Pair{{"a", "1"}}, c.Expose())
		require.Equal(t, 2, s.Len())
	})

	t.Run("map", func(t *testing.T) {
		s := New().Add("a", "1").Add("b", "2").Add("a", "3")
		require.Equal(t, map[string]string{"a": "3", "b": "2"}, s.Map())
	})
}
