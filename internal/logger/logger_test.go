package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_NotNil verifies that NewLogger returns a non-nil *Logger.
func TestNewLogger_NotNil(t *testing.T) {
	require.NotNil(t, NewLogger("test", "debug"))
}

// TestNew_RoleField verifies that every log entry contains the "role" field.
func TestNew_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test-role", "info")

	l.Info().Msg("hello")

	assert.Equal(t, "test-role", decodeEntry(t, &buf)["role"])
}

// TestNew_ContainsTimestamp verifies that log entries contain a timestamp field.
func TestNew_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ts-role", "info")

	l.Info().Msg("ts check")

	_, hasTime := decodeEntry(t, &buf)["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNew_CallerFieldName verifies that the caller field is named "func".
func TestNew_CallerFieldName(t *testing.T) {
	New(&bytes.Buffer{}, "caller-role", "info")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// TestNew_LevelFiltering verifies that entries below the level are dropped.
func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "lvl", "warn")

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	assert.NotEmpty(t, buf.String())
}

// TestNew_InvalidLevelFallsBackToInfo verifies the fallback level.
func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New(&bytes.Buffer{}, "lvl", "loud")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l = New(&bytes.Buffer{}, "lvl", "")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestWithStr_AddsField verifies that WithStr adds a field to the child only.
func TestWithStr_AddsField(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "r", "info")

	parent.WithStr("invocation_id", "abc").Info().Msg("child")
	assert.Equal(t, "abc", decodeEntry(t, &buf)["invocation_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	_, ok := decodeEntry(t, &buf)["invocation_id"]
	assert.False(t, ok)
}

// TestFromContext_NotNil verifies that FromContext never returns nil.
func TestFromContext_NotNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

// TestWithContext_RoundTrip verifies that FromContext returns the logger
// attached with WithContext.
func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ctx-role", "info").WithStr("ctx-key", "ctx-value")
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ctx-value", entry["ctx-key"])
	assert.Equal(t, "ctx-role", entry["role"])
}
