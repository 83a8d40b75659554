package observability

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rkotzy/promptuna/pkg/errs"
	"github.com/rkotzy/promptuna/pkg/providers"
)

// Builder accumulates one Event across a ChatCompletion call. It is not
// safe for concurrent use — a call has exactly one goroutine driving it
// sequentially, per spec §5's ordering guarantees.
type Builder struct {
	start time.Time
	event Event

	once sync.Once
	sink Sink
}

// New starts a Builder for one ChatCompletion call. routingReason and
// variantId start at their spec-mandated placeholders ("unknown") and
// are overwritten once routing actually resolves a variant.
func New(promptID, userID, environment, sdkVersion string, sink Sink) *Builder {
	now := time.Now().UTC()
	return &Builder{
		start: now,
		sink:  sink,
		event: Event{
			RequestID:     uuid.NewString(),
			UserID:        userID,
			Timestamp:     now,
			SDKVersion:    sdkVersion,
			Environment:   environment,
			PromptID:      promptID,
			VariantID:     "unknown",
			RoutingReason: "unknown",
		},
	}
}

// SetVariantID records the variant a routing decision resolved to.
func (b *Builder) SetVariantID(id string) {
	b.event.VariantID = id
}

// SetRouting records why a variant was chosen and, optionally, which
// tags drove the decision.
func (b *Builder) SetRouting(reason string, tags []string) {
	b.event.RoutingReason = reason
	b.event.RoutingTags = tags
}

// SetExperimentContext attaches weighted-selection bookkeeping for
// callers attributing outcomes to experiment arms.
func (b *Builder) SetExperimentContext(ctx ExperimentContext) {
	b.event.ExperimentContext = &ctx
}

// MarkTemplate records the monotonic duration from construction to the
// point rendering finished.
func (b *Builder) MarkTemplate() {
	d := b.elapsedMillis()
	b.event.Timings.Template = &d
}

// MarkProvider records the monotonic duration from construction to the
// point the provider call (successful or not) finished.
func (b *Builder) MarkProvider() {
	d := b.elapsedMillis()
	b.event.Timings.Provider = &d
}

// SetProvider records the provider type and model that ultimately
// served (or attempted to serve) the request.
func (b *Builder) SetProvider(providerType, model string) {
	b.event.Provider = providerType
	b.event.Model = model
}

// SetProviderRequestID records the upstream provider's own request
// identifier, when one is returned.
func (b *Builder) SetProviderRequestID(id string) {
	b.event.ProviderRequestID = id
}

// SetTokenUsage records the provider's reported token consumption.
func (b *Builder) SetTokenUsage(usage providers.Usage) {
	b.event.TokenUsage = &usage
}

// AddFallbackAttempt appends one non-terminal failure the fallback
// executor recovered from.
func (b *Builder) AddFallbackAttempt(attempt FallbackAttempt) {
	b.event.Fallbacks = append(b.event.Fallbacks, attempt)
	b.event.FallbackUsed = true
	b.event.Timings.Retries++
}

func (b *Builder) elapsedMillis() float64 {
	return float64(time.Since(b.start)) / float64(time.Millisecond)
}

// BuildSuccess finalizes the event as a success and emits it exactly
// once.
func (b *Builder) BuildSuccess() {
	b.finalize(func() {
		b.event.Success = true
		b.event.Error = nil
	})
}

// BuildError finalizes the event as a failure, deriving the
// Observability error fields from err, and emits it exactly once.
func (b *Builder) BuildError(err error) {
	b.finalize(func() {
		b.event.Success = false
		info := errorInfo(err)
		b.event.Error = &info
	})
}

// finalize computes the total timing, runs the caller-supplied mutation
// exactly once, and dispatches to the sink. A second call (defensive —
// the orchestrator only ever calls one of BuildSuccess/BuildError once)
// is a no-op rather than a double emission.
func (b *Builder) finalize(mutate func()) {
	b.once.Do(func() {
		b.event.Timings.Total = b.elapsedMillis()
		mutate()
		emit(b.sink, b.event)
	})
}

// emit dispatches to sink, isolating the caller from a panicking or
// otherwise misbehaving sink. Emission is fire-and-forget: the primary
// return value of the call that produced event has already been
// decided by the time this runs.
func emit(sink Sink, event Event) {
	if sink == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	sink(event)
}

// errorInfo derives the Observability error shape from err. It unwraps
// an *errs.ExecutionError for type/message/code, and an
// *providers.ProviderError anywhere in the chain for retryable/
// httpStatus. Provider, when the caller recorded one in the execution
// error's details bag, is read from there.
func errorInfo(err error) ErrorInfo {
	info := ErrorInfo{Type: errs.ErrorKindExecution, Message: err.Error()}

	var execErr *errs.ExecutionError
	if errors.As(err, &execErr) {
		info.Type = execErr.Kind
		info.Message = execErr.Message
		info.Code = execErr.Code
		if provider, ok := execErr.Details["provider"].(string); ok {
			info.Provider = provider
		}
	}

	var provErr *providers.ProviderError
	if errors.As(err, &provErr) {
		info.Retryable = provErr.Retryable
		info.HTTPStatus = provErr.HTTPStatus
	}

	return info
}
