package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"", false, true, true},
		{"debug", true, true, true},
		{"INFO", false, true, true},
		{"warn", false, false, true},
		{"error", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Options{Level: tt.level, Output: &buf})

			logger.Debug("debug-msg")
			logger.Info("info-msg")
			logger.Warn("warn-msg")

			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug-msg")))
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("info-msg")))
			assert.Equal(t, tt.warnSeen, bytes.Contains(buf.Bytes(), []byte("warn-msg")))
		})
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "loud", Output: &buf})

	assert.Contains(t, buf.String(), "could not parse logger level")
	logger.Info("still-works")
	assert.Contains(t, buf.String(), "still-works")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Format: "json", Output: &buf}).Info("hello", "component", "test")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["component"])
}

func TestNew_InvalidFormatFallsBack(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Format: "xml", Output: &buf})
	assert.Contains(t, buf.String(), "could not parse logger format")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.log")
	New(Options{File: path}).Info("to-file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to-file")
}

func TestNew_UnopenableFileFallsBack(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "dir", "phonebook.log")
	New(Options{File: path, Output: &buf})
	assert.Contains(t, buf.String(), "could not open logger file")
}

func TestNew_DevNullDiscards(t *testing.T) {
	logger := New(Options{File: os.DevNull})
	assert.False(t, logger.Enabled(t.Context(), 12))
}

func TestOpen_CloseReleasesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.log")
	logger, closeLog := Open(Options{File: path, Format: "json"})
	logger.Info("to-file")

	require.NoError(t, closeLog())
	assert.ErrorIs(t, closeLog(), os.ErrClosed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to-file")
}

func TestOpen_CloseWithoutFileIsNoop(t *testing.T) {
	for _, opts := range []Options{
		{Output: &bytes.Buffer{}},
		{File: os.DevNull},
		{File: filepath.Join(t.TempDir(), "missing", "phonebook.log"), Output: &bytes.Buffer{}},
	} {
		_, closeLog := Open(opts)
		require.NotNil(t, closeLog)
		assert.NoError(t, closeLog())
	}
}

func TestOpen_InvalidFormatKeepsOneFileOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phonebook.log")
	logger, closeLog := Open(Options{File: path, Format: "xml"})
	logger.Info("after-fallback")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "could not parse logger format")
	assert.Contains(t, string(data), "after-fallback")
}
