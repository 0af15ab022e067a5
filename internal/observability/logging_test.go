package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	ctx := WithStage(WithRunID(context.Background(), "run-1"), "movies")
	logger.InfoContext(ctx, "stage started")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "run-1", record["run_id"])
	assert.Equal(t, "movies", record["stage"])
	assert.Equal(t, "stage started", record["msg"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "text")

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestExtractRunID(t *testing.T) {
	assert.Equal(t, "", ExtractRunID(context.Background()))

	id := NewRunID()
	assert.Len(t, id, 36)
	assert.Equal(t, id, ExtractRunID(WithRunID(context.Background(), id)))
}

func TestNewLogger_AddsTraceID(t *testing.T) {
	useRecorder(t)
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	span, ctx := NewSpan(context.Background(), "seed.forum")
	defer span.End()
	logger.InfoContext(ctx, "inside span")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Len(t, record["trace_id"], 32)
}
