package observability

import (
	"time"

	"github.com/rkotzy/promptuna/pkg/providers"
)

// Timings holds the stage durations of one ChatCompletion call, in
// milliseconds. Template and Provider are nil until the corresponding
// stage actually runs (a routing failure, for example, never reaches
// the provider stage).
type Timings struct {
	Total    float64  `json:"total"`
	Template *float64 `json:"template,omitempty"`
	Provider *float64 `json:"provider,omitempty"`
	Retries  int      `json:"retries,omitempty"`
}

// ExperimentContext records how a variant was selected, for callers
// running weighted experiments who want to attribute outcomes to arms.
type ExperimentContext struct {
	Tags              []string `json:"tags,omitempty"`
	WeightedSelection bool     `json:"weightedSelection"`
	SelectedWeight    *int     `json:"selectedWeight,omitempty"`
}

// FallbackAttempt records one non-terminal failure the fallback
// executor recovered from before either succeeding or exhausting its
// target list.
type FallbackAttempt struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Reason   string `json:"reason"`
}

// ErrorInfo is the structured shape of a failed call's outcome, per
// spec §6's Observability event error field.
type ErrorInfo struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	Retryable  bool   `json:"retryable"`
	Provider   string `json:"provider,omitempty"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
	Stack      string `json:"stack,omitempty"`
}

// Event is the single record emitted once per ChatCompletion call.
type Event struct {
	RequestID   string    `json:"requestId"`
	UserID      string    `json:"userId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	SDKVersion  string    `json:"sdkVersion"`
	Environment string    `json:"environment,omitempty"`

	PromptID     string   `json:"promptId"`
	VariantID    string   `json:"variantId"`
	RoutingReason string  `json:"routingReason"`
	RoutingTags  []string `json:"routingTags,omitempty"`

	Timings Timings `json:"timings"`

	TokenUsage *providers.Usage `json:"tokenUsage,omitempty"`

	Provider          string `json:"provider,omitempty"`
	Model             string `json:"model,omitempty"`
	ProviderRequestID string `json:"providerRequestId,omitempty"`

	FallbackUsed bool              `json:"fallbackUsed"`
	Fallbacks    []FallbackAttempt `json:"fallbacks,omitempty"`

	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error,omitempty"`

	ExperimentContext *ExperimentContext     `json:"experimentContext,omitempty"`
	Custom            map[string]interface{} `json:"custom,omitempty"`
}

// Sink receives the finished Event. Emission is fire-and-forget: a sink
// that panics or is slow must never affect the ChatCompletion call it
// describes.
type Sink func(Event)
