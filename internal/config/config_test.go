package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.Transfer.Flags)
	assert.False(t, cfg.Transfer.Bridge)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadMatchesDefault(t *testing.T) {
	for _, key := range []string{"SPLICE_FLAGS", "SPLICE_BRIDGE", "LOG_LEVEL", "LOG_DEV"} {
		// Setenv registers the restore; the variable itself must be unset
		// because envconfig treats an empty value as present.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("SPLICE_FLAGS", "move,more")
	t.Setenv("SPLICE_BRIDGE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "move,more", cfg.Transfer.Flags)
	assert.True(t, cfg.Transfer.Bridge)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("SPLICE_BRIDGE", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	// LoadOrDefault swallows the error.
	assert.Equal(t, Default(), LoadOrDefault())
}
