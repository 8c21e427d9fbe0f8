package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RenamesErrorKey(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter(buf, slog.LevelInfo, false)

	logger.Debug("hidden")
	logger.Info("saved", "error", "disk full")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "err=\"disk full\"")
}

func TestNewWithWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWithWriter(buf, slog.LevelDebug, true).Debug("x", "error", "boom")
	assert.Contains(t, buf.String(), `"err":"boom"`)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
