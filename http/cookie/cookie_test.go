package cookie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		jar := NewJar()
		require.NoError(t, Parse(jar, "a=b"))
		require.Equal(t, "b", jar.Value("a"))
		require.NoError(t, Parse(jar.Clear(), "a=b;"))
		require.Equal(t, "b", jar.Value("a"))
		require.NoError(t, Parse(jar.Clear(), "a=b; "))
		require.Equal(t, "b", jar.Value("a"))
	})

	t.Run("multiple pairs", func(t *testing.T) {
		jar := NewJar()
		require.NoError(t, Parse(jar, "hello=world; men=in black"))
		require.Equal(t, "world", jar.Value("hello"))
		require.Equal(t, "in black", jar.Value("men"))
	})

	t.Run("case-sensitive names", func(t *testing.T) {
		jar := NewJar()
		require.NoError(t, Parse(jar, "sid=1; SID=2"))
		require.Equal(t, "1", jar.Value("sid"))
		require.Equal(t, "2", jar.Value("SID"))
	})

	t.Run("malformed", func(t *testing.T) {
		jar := NewJar()
		require.ErrorIs(t, Parse(jar, "=b"), ErrBadCookie)
		require.ErrorIs(t, Parse(jar.Clear(), "a=b; garbage"), ErrBadCookie)
		require.Equal(t, "b", jar.Value("a"))
	})
}

func TestRender(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("plain", func(t *testing.T) {
		require.Equal(t, "a=b", Render(New("a", "b"), now))
	})

	t.Run("all attributes", func(t *testing.T) {
		c := Build("session", "xyz").
			Path("/").
			Domain("example.com").
			SameSite(SameSiteLax).
			Secure(true).
			HttpOnly(true).
			Cookie()

		require.Equal(
			t,
			"session=xyz; Path=/; Domain=example.com; SameSite=Lax; Secure; HttpOnly",
			Render(c, now),
		)
	})

	t.Run("max age becomes expires", func(t *testing.T) {
		c := Build("a", "b").MaxAge(time.Hour).Cookie()
		require.Equal(t, "a=b; Expires=Fri, 01 Mar 2024 13:00:00 GMT", Render(c, now))
	})
}

func TestValue(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		for _, tc := range []struct {
			Value any
			Want  string
		}{
			{"hello", "hello"},
			{42, "42"},
			{1.5, "1.5"},
			{true, "true"},
		} {
			value, err := Value(tc.Value)
			require.NoError(t, err)
			require.Equal(t, tc.Want, value)
		}
	})

	t.Run("structured", func(t *testing.T) {
		value, err := Value(map[string]int{"visits": 3})
		require.NoError(t, err)
		require.Equal(t, `j:{"visits":3}`, value)
	})
}
