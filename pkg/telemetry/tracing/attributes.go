package tracing

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span Attribute Helpers
//
// Custom attribute keys use the "promptuna.*" namespace:
//   - promptuna.provider: LLM provider name
//   - promptuna.model: Model name
//   - promptuna.prompt_id / promptuna.variant_id: routed prompt/variant
//   - promptuna.tokens.*: Token counts

const (
	// Provider attributes
	AttrProvider = "promptuna.provider"
	AttrModel    = "promptuna.model"

	// Request attributes
	AttrRequestID = "promptuna.request_id"
	AttrUser      = "promptuna.user"

	// Routing attributes
	AttrPromptID      = "promptuna.prompt_id"
	AttrVariantID     = "promptuna.variant_id"
	AttrRoutingReason = "promptuna.routing_reason"

	// Token attributes
	AttrTokensPrompt     = "promptuna.tokens.prompt"
	AttrTokensCompletion = "promptuna.tokens.completion"
	AttrTokensTotal      = "promptuna.tokens.total"

	// Cost attributes
	AttrCost         = "promptuna.cost.total"
	AttrCostCurrency = "promptuna.cost.currency"
	AttrCostPerToken = "promptuna.cost.per_token"

	// Fallback attributes
	AttrFallbackPosition = "promptuna.fallback.position"
	AttrFallbackOutcome  = "promptuna.fallback.outcome"

	// Error attributes
	AttrErrorType    = "promptuna.error.type"
	AttrErrorMessage = "error.message"

	// Performance attributes
	AttrDuration = "promptuna.duration_ms"
)

// SetProviderAttributes sets provider-related attributes on a span.
func SetProviderAttributes(span trace.Span, provider, model string) {
	span.SetAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
	)
}

// SetRequestAttributes sets request-related attributes on a span.
func SetRequestAttributes(span trace.Span, requestID, user string) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrRequestID, requestID),
	}
	if user != "" {
		attrs = append(attrs, attribute.String(AttrUser, user))
	}
	span.SetAttributes(attrs...)
}

// SetRoutingAttributes sets routing-decision attributes on a span.
func SetRoutingAttributes(span trace.Span, promptID, variantID, reason string) {
	span.SetAttributes(
		attribute.String(AttrPromptID, promptID),
		attribute.String(AttrVariantID, variantID),
		attribute.String(AttrRoutingReason, reason),
	)
}

// SetTokenAttributes sets token count attributes on a span.
func SetTokenAttributes(span trace.Span, promptTokens, completionTokens int) {
	span.SetAttributes(
		attribute.Int(AttrTokensPrompt, promptTokens),
		attribute.Int(AttrTokensCompletion, completionTokens),
		attribute.Int(AttrTokensTotal, promptTokens+completionTokens),
	)
}

// SetCostAttributes sets cost-related attributes on a span.
func SetCostAttributes(span trace.Span, cost float64, currency string) {
	span.SetAttributes(
		attribute.Float64(AttrCost, cost),
		attribute.String(AttrCostCurrency, currency),
	)
}

// SetCostWithTokens sets cost and token attributes on a span, deriving
// a cost-per-token attribute when tokens are known.
func SetCostWithTokens(span trace.Span, promptTokens, completionTokens int, cost float64) {
	SetTokenAttributes(span, promptTokens, completionTokens)
	SetCostAttributes(span, cost, "USD")

	totalTokens := promptTokens + completionTokens
	if totalTokens > 0 {
		costPerToken := cost / float64(totalTokens)
		span.SetAttributes(attribute.Float64(AttrCostPerToken, costPerToken))
	}
}

// SetFallbackAttributes sets fallback-attempt attributes on a span.
func SetFallbackAttributes(span trace.Span, position int, outcome string) {
	span.SetAttributes(
		attribute.Int(AttrFallbackPosition, position),
		attribute.String(AttrFallbackOutcome, outcome),
	)
}

// SetErrorAttributes sets error-related attributes on a span, records
// the error, and sets the span status to Error.
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}

	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetDurationAttribute sets the duration attribute on a span, in milliseconds.
func SetDurationAttribute(span trace.Span, durationMs int64) {
	span.SetAttributes(attribute.Int64(AttrDuration, durationMs))
}

// AddEvent adds a named event to the span with optional attributes.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordException records an exception event on the span.
func RecordException(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// AttributeBuilder provides a fluent interface for building span attributes.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 10),
	}
}

// WithProvider adds provider and model attributes.
func (ab *AttributeBuilder) WithProvider(provider, model string) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
	)
	return ab
}

// WithRequest adds request-related attributes.
func (ab *AttributeBuilder) WithRequest(requestID, user string) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.String(AttrRequestID, requestID))
	if user != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrUser, user))
	}
	return ab
}

// WithRouting adds routing-decision attributes.
func (ab *AttributeBuilder) WithRouting(promptID, variantID, reason string) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.String(AttrPromptID, promptID),
		attribute.String(AttrVariantID, variantID),
		attribute.String(AttrRoutingReason, reason),
	)
	return ab
}

// WithTokens adds token count attributes.
func (ab *AttributeBuilder) WithTokens(promptTokens, completionTokens int) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Int(AttrTokensPrompt, promptTokens),
		attribute.Int(AttrTokensCompletion, completionTokens),
		attribute.Int(AttrTokensTotal, promptTokens+completionTokens),
	)
	return ab
}

// WithCost adds cost attributes.
func (ab *AttributeBuilder) WithCost(cost float64) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Float64(AttrCost, cost),
		attribute.String(AttrCostCurrency, "USD"),
	)
	return ab
}

// WithFallback adds fallback-attempt attributes.
func (ab *AttributeBuilder) WithFallback(position int, outcome string) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Int(AttrFallbackPosition, position),
		attribute.String(AttrFallbackOutcome, outcome),
	)
	return ab
}

// WithCustom adds a custom attribute, inferring its attribute.KeyValue
// constructor from value's dynamic type.
func (ab *AttributeBuilder) WithCustom(key string, value interface{}) *AttributeBuilder {
	switch v := value.(type) {
	case string:
		ab.attrs = append(ab.attrs, attribute.String(key, v))
	case int:
		ab.attrs = append(ab.attrs, attribute.Int(key, v))
	case int64:
		ab.attrs = append(ab.attrs, attribute.Int64(key, v))
	case float64:
		ab.attrs = append(ab.attrs, attribute.Float64(key, v))
	case bool:
		ab.attrs = append(ab.attrs, attribute.Bool(key, v))
	default:
		ab.attrs = append(ab.attrs, attribute.String(key, fmt.Sprintf("%v", v)))
	}
	return ab
}

// Build returns the built attributes as a trace.SpanStartOption.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Apply applies the attributes to a span.
func (ab *AttributeBuilder) Apply(span trace.Span) {
	span.SetAttributes(ab.attrs...)
}

// Attributes returns the raw attribute slice.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
