package trace

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func sampleEvent(op Op, remaining int) Event {
	return Event{
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.UTC),
		RunID:     "4b0c6f0e-9a51-4a55-b6d7-0a8f3f6f2c11",
		Op:        op,
		Source:    SourceTick,
		Phase:     model.PhaseRunning,
		Category:  model.CategoryFocus,
		Remaining: remaining,
		Total:     1500,
	}
}

func TestFileTracerAppendsReadableEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.trace")

	tracer, err := NewFileTracer(path)
	require.NoError(t, err)
	tracer.Trace(sampleEvent(OpStart, 1500))
	tracer.Trace(sampleEvent(OpPause, 1200))
	require.NoError(t, tracer.Close())

	// Reopening appends rather than truncating.
	tracer, err = NewFileTracer(path)
	require.NoError(t, err)
	tracer.Trace(sampleEvent(OpStop, 0))
	require.NoError(t, tracer.Close())

	reader, err := OpenFile(path)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, OpStart, events[0].Op)
	assert.Equal(t, 1200, events[1].Remaining)
	assert.Equal(t, OpStop, events[2].Op)
	assert.True(t, events[0].Timestamp.Equal(sampleEvent(OpStart, 0).Timestamp))
	assert.Equal(t, model.CategoryFocus, events[1].Category)
}

func TestFileTracerIgnoresTraceAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.trace")
	tracer, err := NewFileTracer(path)
	require.NoError(t, err)

	require.NoError(t, tracer.Close())
	require.NoError(t, tracer.Close())
	tracer.Trace(sampleEvent(OpStart, 1500))

	reader, err := OpenFile(path)
	require.NoError(t, err)
	defer reader.Close()
	events, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestFileTracerCloseFlushesQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.trace")
	tracer, err := NewFileTracer(path)
	require.NoError(t, err)

	for remaining := 200; remaining > 0; remaining-- {
		tracer.Trace(sampleEvent(OpStart, remaining))
	}
	require.NoError(t, tracer.Close())
	require.Zero(t, tracer.Dropped())

	reader, err := OpenFile(path)
	require.NoError(t, err)
	defer reader.Close()
	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 200)
	assert.Equal(t, 200, events[0].Remaining)
	assert.Equal(t, 1, events[199].Remaining)
}

func TestReaderRejectsGarbage(t *testing.T) {
	reader := NewReader(bytes.NewReader([]byte{0xff, 0x00, 0x13}))
	_, err := reader.Next()
	assert.Error(t, err)
}

func TestEncodeDecodeEvent(t *testing.T) {
	data, err := EncodeEvent(sampleEvent(OpWakeAbsorbed, 0))
	require.NoError(t, err)

	event, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, OpWakeAbsorbed, event.Op)
	assert.Equal(t, "WAKE_ABSORBED", event.Op.String())
}

func TestSlogTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogTracer(logger).Trace(sampleEvent(OpComplete, 0))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "COMPLETE", entry["op"])
	assert.Equal(t, "TICK", entry["source"])
	assert.Equal(t, "running", entry["phase"])
	assert.Equal(t, "focus", entry["category"])
	assert.Equal(t, float64(1500), entry["total"])
	assert.NotEmpty(t, entry["run_id"])
}

type recordingTracer struct {
	events []Event
}

func (tracer *recordingTracer) Trace(event Event) {
	tracer.events = append(tracer.events, event)
}

func TestMultiTracerSkipsNil(t *testing.T) {
	first := &recordingTracer{}
	second := &recordingTracer{}

	multi := NewMultiTracer(first, nil, second)
	multi.Trace(sampleEvent(OpReset, 1500))

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
	NoopTracer{}.Trace(sampleEvent(OpReset, 1500))
}
