package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enrol/internal/config"
)

func TestNoop(t *testing.T) {
	p := Noop()

	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))

	_, span := StartSubmit(context.Background(), p.Tracer(), "a@edu.com")
	require.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{Enabled: false, Exporter: "bogus"})

	require.NoError(t, err)
	require.False(t, p.Enabled())
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "jaeger"})
	require.ErrorContains(t, err, "unsupported exporter type")
}

func TestNewProvider_FileExporter_MissingPath(t *testing.T) {
	_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "file"})
	require.ErrorContains(t, err, "file_path required")
}

func TestNewProvider_NoExporter(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	require.True(t, p.Enabled())

	_, span := StartDelete(context.Background(), p.Tracer(), 1, "a@edu.com")
	require.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")

	p, err := NewProvider(config.TracingConfig{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    path,
		SampleRate:  1.0,
		ServiceName: "enrol-test",
	})
	require.NoError(t, err)

	ctx, span := StartSubmit(context.Background(), p.Tracer(), "a@edu.com")
	_, child := StartDelete(ctx, p.Tracer(), 2, "b@edu.com")
	RecordError(child, os.ErrNotExist)
	child.End()
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))

	records := readRecords(t, path)
	require.Len(t, records, 2)

	byName := map[string]SpanRecord{}
	for _, r := range records {
		byName[r.Name] = r
	}

	submit := byName[SpanSubmit]
	del := byName[SpanDelete]
	require.Equal(t, "a@edu.com", submit.Attributes[AttrEmail])
	require.Equal(t, submit.TraceID, del.TraceID)
	require.Equal(t, submit.SpanID, del.ParentSpanID)
	require.Equal(t, "ERROR", del.Status)
	require.EqualValues(t, 2, del.Attributes[AttrRow])
}

func TestRecordError_Nil(t *testing.T) {
	_, span := StartSubmit(context.Background(), Noop().Tracer(), "")
	require.NotPanics(t, func() { RecordError(span, nil) })
	span.End()
}

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var out []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		out = append(out, r)
	}
	require.NoError(t, scanner.Err())
	return out
}
