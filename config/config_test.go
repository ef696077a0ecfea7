package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 2*time.Second, cfg.NET.ReadTimeout)
	require.Equal(t, "index.html", cfg.Static.DefaultFile)
	require.NotNil(t, cfg.Headers.Default)
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, e, err := FromEnv()
		require.NoError(t, err)
		require.Equal(t, uint16(3005), e.Port)
		require.Equal(t, "info", e.LogLevel)
		require.Equal(t, Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv(EnvPrefix+"PORT", "8080")
		t.Setenv(EnvPrefix+"READ_TIMEOUT", "5s")
		t.Setenv(EnvPrefix+"MAX_HEADERS", "5")
		t.Setenv(EnvPrefix+"STATIC_DEFAULT_FILE", "default.htm")
		t.Setenv(EnvPrefix+"STATIC_MAX_FILE_SIZE", "1024")

		cfg, e, err := FromEnv()
		require.NoError(t, err)
		require.Equal(t, uint16(8080), e.Port)
		require.Equal(t, 5*time.Second, cfg.NET.ReadTimeout)
		require.Equal(t, 5, cfg.Headers.Number.Maximal)
		require.Equal(t, "default.htm", cfg.Static.DefaultFile)
		require.EqualValues(t, 1024, cfg.Static.MaxFileSize)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Setenv(EnvPrefix+"PORT", "not a port")
		_, _, err := FromEnv()
		require.Error(t, err)
	})
}
