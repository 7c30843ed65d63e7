package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"govlock/config"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

// TestTeeToFile checks entries reach both the console and the rotating file, filtered by level.
func TestTeeToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "govlock.log")
	var console bytes.Buffer
	logger, err := newWithConsole(config.Log{Level: "info", File: file, MaxSizeMB: 1}, zapcore.AddSync(&console))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("block moved", zap.Uint64("height", 7))
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "block moved")
	assert.NotContains(t, console.String(), "hidden")

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"block moved"`)
	assert.Contains(t, string(raw), `"height":7`)
}

func TestNewRejectsLevel(t *testing.T) {
	_, err := New(config.Log{Level: "chatty"})
	assert.Error(t, err)
}
