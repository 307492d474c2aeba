package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerLevels(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerCreatesLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	SetupLogger(1)

	_, err := os.Stat(filepath.Join(stateHome, "moddeck", "moddeck.log"))
	assert.NoError(t, err)
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("linker")
	require.NotNil(t, logger)
	// must be usable without further setup
	logger.Debug().Msg("component logger works")
}
