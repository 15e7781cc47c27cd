package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_DualSinks(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	logFile := &bytes.Buffer{}
	logger := newLogger("info", "text", console, logFile)

	logger.Info("Building Phantom", "setup", "disc")

	require.Contains(t, console.String(), "Building Phantom")
	require.Contains(t, logFile.String(), "Building Phantom")

	// The console entry is untimestamped; the file entry carries one.
	assert.NotContains(t, console.String(), "time=")
	assert.Contains(t, logFile.String(), "time=")
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	logFile := &bytes.Buffer{}
	logger := newLogger("warn", "text", console, logFile)

	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
	assert.NotContains(t, logFile.String(), "quiet")
}

func TestNewLogger_JSONConsole(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	logger := newLogger("info", "json", console, &bytes.Buffer{})

	logger.Info("Getting Phantom")

	assert.Contains(t, console.String(), `"msg":"Getting Phantom"`)
}
