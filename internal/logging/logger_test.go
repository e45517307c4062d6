package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drshika/warm-ai-agent/internal/config"
)

func newTestLogger(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()

	logger, err := NewLogger(config.LoggingConfig{
		Level:  level,
		Format: format,
		Output: "stderr",
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	logger.output = buf

	return logger, buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(t, "warn", "text")

	logger.Debug("not shown")
	logger.Info("not shown either")
	logger.Warn("shown")
	logger.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "WARN shown")
	assert.Contains(t, out, "ERROR also shown")
}

func TestLogger_JSONFormat(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")

	logger.WithField("turn_id", "abc-123").Info("turn started")

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "turn started", entry.Message)
	assert.Equal(t, "abc-123", entry.Fields["turn_id"])
}

func TestLogger_WithError(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "text")

	logger.ErrorWithErr("execution failed", errors.New("syntax error near SELECT"))

	assert.Contains(t, buf.String(), `error="syntax error near SELECT"`)
}

func TestLogger_WithFieldsDoesNotMutateParent(t *testing.T) {
	logger, _ := newTestLogger(t, "info", "text")

	child := logger.WithFields(map[string]interface{}{"question": "how many stations"})

	assert.Empty(t, logger.fields)
	assert.Len(t, child.fields, 1)
}

func TestNewLogger_InvalidOutput(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "syslog"})
	assert.Error(t, err)
}
