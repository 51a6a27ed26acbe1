package tracing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"existing":"data"}`+"\n"), 0o600))

	exporter, err := NewFileExporter(path)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name:      SpanSubmit,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(50 * time.Millisecond),
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], SpanSubmit)
}

func TestFileExporter_EmptyBatch(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	defer func() { _ = exporter.Shutdown(context.Background()) }()

	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
}

func TestFileExporter_ExportAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
}

func TestRecordOf(t *testing.T) {
	traceID := trace.TraceID{1}
	parent := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{2}})
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	stub := tracetest.SpanStub{
		Name: SpanDelete,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  trace.SpanID{3},
		}),
		Parent:     parent,
		SpanKind:   trace.SpanKindInternal,
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Attributes: []attribute.KeyValue{attribute.Bool(AttrConfirmed, true)},
		Events: []sdktrace.Event{{
			Name:       EventRemoved,
			Time:       start,
			Attributes: []attribute.KeyValue{attribute.Int(AttrRows, 0)},
		}},
		Status: sdktrace.Status{Code: codes.Ok},
	}

	rec := recordOf(stub.Snapshot())

	require.Equal(t, SpanDelete, rec.Name)
	require.Equal(t, "INTERNAL", rec.Kind)
	require.Equal(t, "OK", rec.Status)
	require.Equal(t, parent.SpanID().String(), rec.ParentSpanID)
	require.InDelta(t, 1.5, rec.DurationMs, 0.001)
	require.Equal(t, true, rec.Attributes[AttrConfirmed])
	require.Len(t, rec.Events, 1)
	require.Equal(t, EventRemoved, rec.Events[0].Name)

	_, err := json.Marshal(rec)
	require.NoError(t, err)
}

func TestKindName(t *testing.T) {
	require.Equal(t, "SERVER", kindName(trace.SpanKindServer))
	require.Equal(t, "CLIENT", kindName(trace.SpanKindClient))
	require.Equal(t, "PRODUCER", kindName(trace.SpanKindProducer))
	require.Equal(t, "CONSUMER", kindName(trace.SpanKindConsumer))
	require.Equal(t, "UNSPECIFIED", kindName(trace.SpanKindUnspecified))
}
