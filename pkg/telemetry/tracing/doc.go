// Package tracing provides OpenTelemetry distributed tracing helpers: a
// Tracer with configurable sampling and OTLP export, span attribute
// setters, and W3C trace-context propagation. The orchestrator opens no
// spans; the span hierarchy below is an example layout for a caller
// that wraps a ChatCompletion call.
//
// # Trace Context Propagation
//
// The package implements W3C Trace Context (https://www.w3.org/TR/trace-context/)
// for propagating trace context across HTTP boundaries:
//
//	traceparent: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//	tracestate: congo=t61rcWkgMzE
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: Sample all traces (development/debugging)
//   - never: Sample no traces (tracing disabled)
//   - ratio: Sample a percentage of traces (production)
//
// # Usage
//
//	tracer, err := tracing.New(tracing.Options{
//	    Enabled:     true,
//	    Sampler:     "ratio",
//	    SampleRatio: 0.1,
//	    Exporter:    "otlp",
//	    Endpoint:    "localhost:4317",
//	    ServiceName: "promptuna",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "promptuna.chat_completion")
//	defer span.End()
//
//	span.SetAttributes(
//	    attribute.String("provider", "openai"),
//	    attribute.String("model", "gpt-4"),
//	    attribute.Int("tokens", 1500),
//	)
//
// # Span Hierarchy
//
//	promptuna.chat_completion (1.2s)
//	├── promptuna.route (0.1ms)
//	├── promptuna.render (0.3ms)
//	└── promptuna.fallback.attempt[0] (1.1s)
//
// # HTTP Integration
//
// Extract trace context from incoming HTTP requests:
//
//	ctx := tracing.Extract(r.Context(), r.Header)
//	ctx, span := tracer.Start(ctx, "handle_request")
//	defer span.End()
//
// Inject trace context into outgoing HTTP requests:
//
//	req, _ := http.NewRequestWithContext(ctx, "POST", url, body)
//	tracing.Inject(ctx, req.Header)
//
// # Trace Exporters
//
// Only the OTLP exporter is wired; Jaeger and Zipkin return errors
// directing callers to front those collectors with an OTLP gateway.
//
//	tracing.Options{
//	    Exporter: "otlp",
//	    Endpoint: "localhost:4317",
//	    OTLP:     tracing.OTLPOptions{Insecure: true, Timeout: 10 * time.Second},
//	}
package tracing
