package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// OTLPOptions configures the OTLP gRPC exporter.
type OTLPOptions struct {
	Insecure bool
	Timeout  time.Duration
}

// Options configures a Tracer.
type Options struct {
	Enabled     bool
	ServiceName string

	// Sampler is one of SamplerAlways, SamplerNever, SamplerRatio.
	Sampler     string
	SampleRatio float64

	// Exporter is "otlp", "jaeger", or "zipkin". Only "otlp" is wired.
	Exporter string
	Endpoint string
	OTLP     OTLPOptions
}

// Tracer wraps the OpenTelemetry tracer and provides simplified span creation
// with automatic attribute handling and context propagation.
type Tracer struct {
	opts     Options
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	sampler  sdktrace.Sampler
	enabled  bool
}

// New creates a new Tracer with the given configuration.
// It initializes the OpenTelemetry SDK, sets up the configured exporter,
// and returns a ready-to-use tracer.
//
// If tracing is disabled in the config, a noop tracer is returned that
// adds minimal overhead (<1Âµs per operation).
//
// The tracer must be shut down when no longer needed:
//
//	defer tracer.Shutdown(context.Background())
func New(opts Options) (*Tracer, error) {
	t := &Tracer{
		opts:    opts,
		enabled: opts.Enabled,
	}

	// If tracing is disabled, return noop tracer
	if !opts.Enabled {
		t.tracer = trace.NewNoopTracerProvider().Tracer("promptuna")
		return t, nil
	}

	// Create sampler
	sampler, err := createSampler(opts.Sampler, opts.SampleRatio)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	t.sampler = sampler

	// Create exporter
	exporter, err := createExporter(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	// Create resource
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion("0.1.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Create trace provider
	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	// Set global trace provider
	otel.SetTracerProvider(t.provider)

	// Set global propagator for W3C Trace Context
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// Create tracer
	t.tracer = t.provider.Tracer("promptuna")

	return t, nil
}

// Start creates a new span with the given name and options.
// The span is automatically linked to the parent span from the context.
//
// The returned span must be ended when the operation completes:
//
//	ctx, span := tracer.Start(ctx, "operation")
//	defer span.End()
//
// If tracing is disabled, a noop span is returned with minimal overhead.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Shutdown flushes any pending spans and shuts down the tracer.
// It should be called before application exit, typically with defer:
//
//	defer tracer.Shutdown(context.Background())
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.enabled || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Enabled returns whether tracing is enabled.
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// createExporter creates a trace exporter based on the configuration.
func createExporter(opts Options) (sdktrace.SpanExporter, error) {
	switch opts.Exporter {
	case "otlp":
		return createOTLPExporter(opts)
	case "jaeger":
		return createJaegerExporter(opts)
	case "zipkin":
		return createZipkinExporter(opts)
	default:
		return nil, fmt.Errorf("unsupported exporter: %s", opts.Exporter)
	}
}

// createOTLPExporter creates an OTLP gRPC exporter.
func createOTLPExporter(opts Options) (sdktrace.SpanExporter, error) {
	grpcOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(opts.Endpoint),
	}

	if opts.OTLP.Insecure {
		grpcOpts = append(grpcOpts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}
	if opts.OTLP.Timeout > 0 {
		grpcOpts = append(grpcOpts, otlptracegrpc.WithTimeout(opts.OTLP.Timeout))
	}
	grpcOpts = append(grpcOpts, otlptracegrpc.WithDialOption(grpc.WithBlock()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := otlptracegrpc.NewClient(grpcOpts...)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return exporter, nil
}

// createJaegerExporter creates a Jaeger exporter.
func createJaegerExporter(opts Options) (sdktrace.SpanExporter, error) {
	return nil, errors.New("jaeger exporter not implemented - use the otlp exporter with a Jaeger collector")
}

// createZipkinExporter creates a Zipkin exporter.
func createZipkinExporter(opts Options) (sdktrace.SpanExporter, error) {
	return nil, errors.New("zipkin exporter not implemented - use the otlp exporter with a Zipkin collector")
}

// SpanFromContext returns the current span from the context.
// If no span exists, a noop span is returned.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// ContextWithSpan returns a new context with the given span.
func ContextWithSpan(ctx context.Context, span trace.Span) context.Context {
	return trace.ContextWithSpan(ctx, span)
}

// SpanContext returns the span context from the given context.
// Returns an invalid span context if no span exists.
func SpanContext(ctx context.Context) trace.SpanContext {
	return trace.SpanFromContext(ctx).SpanContext()
}

// TraceID returns the trace ID from the context as a string.
// Returns empty string if no trace context exists.
func TraceID(ctx context.Context) string {
	sc := SpanContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// SpanID returns the span ID from the context as a string.
// Returns empty string if no span context exists.
func SpanID(ctx context.Context) string {
	sc := SpanContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

// IsSampled returns whether the current trace is sampled.
func IsSampled(ctx context.Context) bool {
	return SpanContext(ctx).IsSampled()
}

// SetError marks the span as failed and records the error.
func SetError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	)
	span.RecordError(err)
}

// SetStatus sets the span status based on an error.
// If err is nil, status is set to OK, otherwise to Error.
func SetStatus(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
