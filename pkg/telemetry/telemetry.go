// Package telemetry configures the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/vogiaan1904/ticketbottle-counter/config"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup exports spans over OTLP/gRPC when an endpoint is configured. Without
// one the global provider stays a no-op and Setup returns a no-op shutdown.
func Setup(ctx context.Context, cfg config.TelemetryConfig, l logger.Logger) ShutdownFunc {
	if cfg.OTLPEndpoint == "" {
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		l.Warnf(ctx, "telemetry.Setup: otlp exporter: %v", err)
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		l.Warnf(ctx, "telemetry.Setup: resource: %v", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	l.Info(ctx, "Tracing enabled", "endpoint", cfg.OTLPEndpoint, "service", cfg.ServiceName)
	return provider.Shutdown
}
