package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/trace"
)

func TestDumpFiltersByRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.trace")
	tracer, err := trace.NewFileTracer(path)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tracer.Trace(trace.Event{Timestamp: at, RunID: "run-a", Op: trace.OpStart, Phase: model.PhaseRunning, Category: model.CategoryFocus, Remaining: 1500, Total: 1500})
	tracer.Trace(trace.Event{Timestamp: at, RunID: "run-b", Op: trace.OpStart, Phase: model.PhaseRunning, Category: model.CategoryShortBreak, Remaining: 300, Total: 300})
	tracer.Trace(trace.Event{Timestamp: at, RunID: "run-a", Op: trace.OpComplete, Source: trace.SourceWake, Phase: model.PhaseCompleted, Category: model.CategoryFocus, Total: 1500})
	require.NoError(t, tracer.Close())

	var out bytes.Buffer
	require.NoError(t, dump(&out, path, "run-a"))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "START")
	assert.Contains(t, string(lines[1]), "25:00/25:00")
	assert.Contains(t, string(lines[2]), "COMPLETE")
	assert.Contains(t, string(lines[2]), "WAKE")
	assert.NotContains(t, out.String(), "run-b")
}

func TestDumpMissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, dump(&out, filepath.Join(t.TempDir(), "missing.trace"), ""))
}
