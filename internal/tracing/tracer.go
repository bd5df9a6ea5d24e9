// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mpassid/authdata-service/internal/logging"
)

type Config struct {
	Enabled      bool
	GRPCEndpoint string
	HTTPEndpoint string

	logger logging.LoggerInterface
}

func NewConfig(enabled bool, grpcEndpoint, httpEndpoint string, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.Enabled = enabled
	c.GRPCEndpoint = grpcEndpoint
	c.HTTPEndpoint = httpEndpoint
	c.logger = logger

	return c
}

type Tracer struct {
	tracer trace.Tracer

	logger logging.LoggerInterface
}

func NewTracer(cfg *Config) *Tracer {
	t := new(Tracer)
	t.logger = cfg.logger

	if !cfg.Enabled {
		t.tracer = noop.NewTracerProvider().Tracer("authdata-service")
		return t
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		cfg.logger.Errorf("failed to create otlp exporter, tracing disabled: %v", err)
		t.tracer = noop.NewTracerProvider().Tracer("authdata-service")
		return t
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)
	otel.SetTracerProvider(tp)

	t.tracer = tp.Tracer("authdata-service")

	return t
}

func newExporter(cfg *Config) (*otlptrace.Exporter, error) {
	ctx := context.Background()

	if cfg.GRPCEndpoint != "" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpoint(cfg.GRPCEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	}

	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(cfg.HTTPEndpoint),
		otlptracehttp.WithInsecure(),
	)
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, opts...)
}
