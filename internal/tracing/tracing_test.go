package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/zjrosen/skillforge/internal/config"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_FileExporterWritesSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	path := filepath.Join(t.TempDir(), "nested", "traces.jsonl")
	shutdown, err := Setup(context.Background(), config.TracingConfig{
		Enabled:  true,
		Exporter: config.ExporterFile,
		FilePath: path,
	}, "test")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "unit-span")
	span.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "unit-span")
	require.Contains(t, string(data), ServiceName)
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TracingConfig{Enabled: true, Exporter: "zipkin"}, "test")
	require.Error(t, err)
	require.Contains(t, err.Error(), "zipkin")
}
