// Package tracing installs the global OpenTelemetry tracer provider.
//
// When tracing is disabled the global provider is left as the otel no-op
// default, so instrumented code never has to check.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zjrosen/skillforge/internal/config"
	"github.com/zjrosen/skillforge/internal/log"
)

// ServiceName identifies this client in exported spans.
const ServiceName = "skillforge"

// Shutdown flushes pending spans and releases exporter resources.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup configures tracing from cfg and returns the function that must be
// called before exit. It returns a no-op Shutdown when tracing is disabled.
func Setup(ctx context.Context, cfg config.TracingConfig, version string) (Shutdown, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	var (
		exporter sdktrace.SpanExporter
		closer   io.Closer
		err      error
	)
	switch cfg.Exporter {
	case config.ExporterFile:
		exporter, closer, err = newFileExporter(cfg.FilePath)
	case config.ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		err = fmt.Errorf("unknown tracing exporter %q", cfg.Exporter)
	}
	if err != nil {
		return noopShutdown, fmt.Errorf("creating trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", version),
		)),
	)
	otel.SetTracerProvider(provider)
	log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter)

	return func(ctx context.Context) error {
		err := provider.Shutdown(ctx)
		if closer != nil {
			if cerr := closer.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}

// newFileExporter writes spans as JSON lines to path.
func newFileExporter(path string) (sdktrace.SpanExporter, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from user config
	if err != nil {
		return nil, nil, fmt.Errorf("opening trace file: %w", err)
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return exporter, f, nil
}
