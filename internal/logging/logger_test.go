// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/config"
)

func TestNew_StandardOutputs(t *testing.T) {
	for _, out := range []string{"stdout", "stderr", "discard", ""} {
		logger, err := New(config.LoggingConfig{Level: "info", Format: "json", Output: out}, "1.0.0")
		require.NoError(t, err, "output %q", out)
		require.NotNil(t, logger)
		assert.NoError(t, logger.Close())
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textanim.log")
	logger, err := New(config.LoggingConfig{Level: "debug", Format: "text", Output: path}, "1.0.0")
	require.NoError(t, err)

	logger.Debug("transition complete", "index", 2)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transition complete")
	assert.Contains(t, string(data), "service=textanim")
}

func TestNew_FileOutputBadPath(t *testing.T) {
	_, err := New(config.LoggingConfig{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")}, "1.0.0")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.input); got != tc.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestLogger_JSONDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.LoggingConfig{Level: "info", Format: "json"}, "9.9.9")
	logger.With("component", "markup").Info("parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "textanim", entry["service"])
	assert.Equal(t, "9.9.9", entry["version"])
	assert.Equal(t, "markup", entry["component"])
	assert.Equal(t, "parsed", entry["msg"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.LoggingConfig{Level: "warn", Format: "text"}, "1")
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}

func TestDiscardAndClose(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.NoError(t, l.Close())

	var nilLogger *Logger
	assert.NoError(t, nilLogger.Close())
}
