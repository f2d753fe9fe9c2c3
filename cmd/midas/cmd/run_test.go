package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("info"))

	// Unrecognized or empty values fall back to info.
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel(""))
}

func TestResolveConfigCarriesEnvLogLevel(t *testing.T) {
	t.Setenv("MIDAS_LOG_LEVEL", "debug")

	_, env, err := resolveConfig(runCmd)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel(env.LogLevel))
}
