package orchestrator

import (
	"context"
	"fmt"

	"github.com/rkotzy/promptuna/pkg/config"
	"github.com/rkotzy/promptuna/pkg/errs"
	"github.com/rkotzy/promptuna/pkg/fallback"
	"github.com/rkotzy/promptuna/pkg/parammap"
	"github.com/rkotzy/promptuna/pkg/providers"
	"github.com/rkotzy/promptuna/pkg/router"
	"github.com/rkotzy/promptuna/pkg/telemetry/observability"
)

// ChatCompletionParams is one request against a prompt.
type ChatCompletionParams struct {
	PromptID       string
	Variables      map[string]interface{}
	MessageHistory []providers.Message
	UserID         string
	Tags           []string

	// UnixTime overrides the clock the router uses for phased-rollout
	// eligibility; nil means "now".
	UnixTime *int64
}

// ChatCompletion runs the full pipeline of spec §4.8: route, render,
// build the fallback target chain, prepend history, resolve the
// response schema, execute the chain, and emit exactly one telemetry
// event describing the outcome.
func (e *Engine) ChatCompletion(ctx context.Context, params ChatCompletionParams) (*providers.Response, error) {
	builder := observability.New(params.PromptID, params.UserID, e.runtime.Environment, Version, e.runtime.OnObservability)

	resp, err := e.runChatCompletion(ctx, params, builder)
	if err != nil {
		builder.BuildError(err)
		return nil, err
	}

	builder.BuildSuccess()
	return resp, nil
}

func (e *Engine) runChatCompletion(ctx context.Context, params ChatCompletionParams, builder *observability.Builder) (*providers.Response, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}

	prompt, ok := cfg.Prompts[params.PromptID]
	if !ok {
		return nil, errs.NewExecutionError("unknown-prompt", fmt.Sprintf("prompt %q does not exist", params.PromptID), map[string]interface{}{
			"promptId": params.PromptID,
		})
	}

	now := currentUnixTime(params.UnixTime)
	sel, err := router.Select(prompt, params.PromptID, params.UserID, params.Tags, now)
	if err != nil {
		return nil, err
	}
	builder.SetVariantID(sel.VariantID)
	builder.SetRouting(sel.Reason, params.Tags)

	rendered, err := renderMessages(sel.Variant.Messages, params.Variables)
	if err != nil {
		return nil, err
	}
	builder.MarkTemplate()

	messages := make([]providers.Message, 0, len(params.MessageHistory)+len(rendered))
	messages = append(messages, params.MessageHistory...)
	messages = append(messages, rendered...)

	targets, err := e.buildTargets(cfg, sel.Variant)
	if err != nil {
		return nil, err
	}

	responseFormat, err := resolveResponseFormat(cfg, sel.Variant.ResponseFormat)
	if err != nil {
		return nil, err
	}

	attemptFn := e.buildAttemptFn(cfg, messages, params.UserID, responseFormat, sel.Variant.Parameters)

	var winner fallback.Target
	onAttempt := func(result fallback.AttemptResult) {
		if result.Err == nil {
			winner = result.Target
			e.recordAttemptOutcome(result.Target.ProviderType, true)
			return
		}
		e.recordAttemptOutcome(result.Target.ProviderType, false)
		builder.AddFallbackAttempt(observability.FallbackAttempt{
			Provider: result.Target.ProviderType,
			Model:    result.Target.Model,
			Reason:   attemptFailureReason(result.Err),
		})
	}

	resp, err := fallback.Execute(ctx, targets, attemptFn, e.resolveProvider, onAttempt)
	builder.MarkProvider()
	if err != nil {
		// A missing API key is already a fatal execution-error from
		// getProvider; fallback.Execute never attempted retries for it,
		// and it is surfaced as-is. Any other error — a
		// *providers.ProviderError (the last retryable failure once the
		// target list is exhausted, or a non-retryable one), or the
		// factory's configuration error for an unregistered adapter — is
		// wrapped into an execution-error.
		if execErr, ok := err.(*errs.ExecutionError); ok {
			return nil, execErr
		}
		return nil, wrapFallbackFailure(err, params.PromptID, sel.VariantID)
	}

	builder.SetProvider(winner.ProviderType, winner.Model)
	builder.SetProviderRequestID(resp.ID)
	if resp.Usage != nil {
		builder.SetTokenUsage(*resp.Usage)
	}

	return resp, nil
}

// buildTargets maps §4.8(e): the primary target followed by the
// variant's declared fallback list, each resolved to a concrete
// provider type via the config's provider alias table.
func (e *Engine) buildTargets(cfg *config.Config, variant config.Variant) ([]fallback.Target, error) {
	targets := make([]fallback.Target, 0, 1+len(variant.Fallback))

	primary, err := resolveTarget(cfg, variant.Provider, variant.Model)
	if err != nil {
		return nil, err
	}
	targets = append(targets, primary)

	for _, fb := range variant.Fallback {
		t, err := resolveTarget(cfg, fb.Provider, fb.Model)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func resolveTarget(cfg *config.Config, providerAlias, model string) (fallback.Target, error) {
	providerCfg, ok := cfg.Providers[providerAlias]
	if !ok {
		return fallback.Target{}, errs.NewExecutionError("unknown-provider", fmt.Sprintf("provider alias %q does not exist", providerAlias), map[string]interface{}{
			"provider": providerAlias,
		})
	}
	return fallback.Target{ProviderID: providerAlias, ProviderType: providerCfg.Type, Model: model}, nil
}

// resolveResponseFormat implements §4.8(g): a json_schema variant pulls
// its fragment from the config's responseSchemas table; raw_text
// carries no schema.
func resolveResponseFormat(cfg *config.Config, rf config.ResponseFormat) (providers.ResponseFormat, error) {
	if rf.Type != config.ResponseFormatJSONSchema {
		return providers.ResponseFormat{Type: config.ResponseFormatRawText}, nil
	}
	schema, ok := cfg.ResponseSchemas[rf.SchemaRef]
	if !ok {
		return providers.ResponseFormat{}, errs.NewExecutionError("unknown-schema", fmt.Sprintf("response schema %q does not exist", rf.SchemaRef), map[string]interface{}{
			"schemaRef": rf.SchemaRef,
		})
	}
	return providers.ResponseFormat{Type: config.ResponseFormatJSONSchema, Schema: schema}, nil
}

// buildAttemptFn closes over the request-invariant pieces (messages,
// user id, response format, canonical parameters) and maps them onto
// each target's provider-native option bag in turn.
func (e *Engine) buildAttemptFn(cfg *config.Config, messages []providers.Message, userID string, responseFormat providers.ResponseFormat, canonicalParams map[string]interface{}) fallback.AttemptFn {
	return func(ctx context.Context, provider providers.Provider, target fallback.Target) (*providers.Response, error) {
		opts := providers.Options{
			Model:          target.Model,
			Messages:       messages,
			UserID:         userID,
			ResponseFormat: responseFormat,
			Params:         parammap.Map(target.ProviderType, canonicalParams),
			APIKey:         e.apiKeyFor(target.ProviderType),
			BaseURL:        baseURLFor(cfg, target.ProviderID),
		}
		return provider.ChatCompletion(ctx, opts)
	}
}

// baseURLFor reads an optional "baseURL" override from a provider
// alias's extras bag. Absent or non-string values leave the adapter's
// own default in place.
func baseURLFor(cfg *config.Config, providerAlias string) string {
	providerCfg, ok := cfg.Providers[providerAlias]
	if !ok {
		return ""
	}
	baseURL, _ := providerCfg.Extras["baseURL"].(string)
	return baseURL
}

func attemptFailureReason(err error) string {
	if providerErr, ok := err.(*providers.ProviderError); ok {
		return string(providerErr.Reason)
	}
	return err.Error()
}

// wrapFallbackFailure converts the fallback executor's terminal error
// into an execution-error. For a *providers.ProviderError the details
// carry its kind, reason, message, code and retryability; they do not
// name the provider whose attempt failed.
func wrapFallbackFailure(cause error, promptID, variantID string) error {
	details := map[string]interface{}{"promptId": promptID, "variantId": variantID}

	if providerErr, ok := cause.(*providers.ProviderError); ok {
		details["kind"] = "provider-error"
		details["reason"] = string(providerErr.Reason)
		details["message"] = providerErr.Message
		details["code"] = providerErr.Code
		details["retryable"] = providerErr.Retryable
		return errs.WrapExecutionError(cause, "fallback-exhausted", "all fallback targets failed: "+providerErr.Message, details)
	}
	return errs.WrapExecutionError(cause, "chat-completion-failed", cause.Error(), details)
}

func currentUnixTime(override *int64) int64 {
	if override != nil {
		return *override
	}
	return nowUnix()
}
