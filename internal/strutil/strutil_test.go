package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCutHeader(t *testing.T) {
	for _, tc := range []struct {
		Header, Value, Params string
	}{
		{"application/json", "application/json", ""},
		{"application/json;charset=utf8", "application/json", "charset=utf8"},
		{"application/json ;  charset=utf8", "application/json", "charset=utf8"},
		{"", "", ""},
	} {
		value, params := CutHeader(tc.Header)
		require.Equal(t, tc.Value, value)
		require.Equal(t, tc.Params, params)
	}
}

func TestStripWS(t *testing.T) {
	require.Equal(t, "hello", StripWS(" \thello\t "))
	require.Empty(t, StripWS("   "))
}
