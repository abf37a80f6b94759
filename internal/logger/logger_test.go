package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)

	log.Debug().Str("key", "value").Msg("debug message")
	log.Info().Int("n", 3).Msg("info message")
	log.Warn().Bool("flag", true).Msg("warn message")
	log.Error().Err(errors.New("boom")).Msg("error message")

	out := buf.String()
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "boom")
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("error", &buf)

	log.Debug().Msg("hidden")
	log.Warn().Msg("also hidden")
	assert.Empty(t, buf.String())

	log.Error().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLoggerBadLevelDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New("chatty", &buf)

	log.Info().Msg("filtered")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestEntryDur(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)

	log.Debug().Dur("elapsed", 1500*time.Microsecond).Msg("timed")
	assert.Contains(t, buf.String(), "elapsed=1.5")
}

func TestForCompletionUnsetDiscards(t *testing.T) {
	t.Setenv(LogFileEnv, "")

	log := ForCompletion("debug")
	// Must not reach any terminal stream; just exercising the path.
	log.Debug().Msg("nowhere")
}

func TestForCompletionWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completion.log")
	t.Setenv(LogFileEnv, path)

	log := ForCompletion("debug")
	log.Debug().Str("prefix", "us").Msg("resolved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "resolved")
	assert.Contains(t, string(data), "prefix=us")
}
