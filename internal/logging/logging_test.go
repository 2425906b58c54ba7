package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "snake")

	logger.Info("hidden")
	logger.Warn("shown", "score", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden", "info line written at warn level")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "score=3")
	assert.Contains(t, out, "snake", "prefix missing")
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "loud", "").Info("kept")
	assert.Contains(t, buf.String(), "kept", "unknown level should default to info")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "snake.log")
	logger, closer, err := OpenFile(path, "debug", "snake")
	require.NoError(t, err)

	logger.Debug("tick", "n", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick")
}

func TestOpenFileEmptyPath(t *testing.T) {
	logger, closer, err := OpenFile("", "info", "")
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.NotNil(t, logger)
}
