package costs

import "github.com/rkotzy/promptuna/pkg/providers"

// CostEstimate is a USD cost figure attached to an Observability
// event, computed either from a pre-call Estimate or from a
// provider's actual Usage.
type CostEstimate struct {
	PromptCost     float64
	CompletionCost float64
	TotalCost      float64
	Model          string
	Provider       string
	Currency       string

	// Actual is false when derived from a pre-call Estimate rather
	// than the provider's reported Usage.
	Actual bool
}

// CalculateFromEstimate prices a pre-call token projection.
func CalculateFromEstimate(est *Estimate, providerType string) *CostEstimate {
	pricing := lookupPricing(providerType, est.Model)
	return &CostEstimate{
		PromptCost:     tokenCost(est.PromptTokens, pricing.PromptPer1K),
		CompletionCost: tokenCost(est.EstimatedCompletionTokens, pricing.CompletionPer1K),
		TotalCost: tokenCost(est.PromptTokens, pricing.PromptPer1K) +
			tokenCost(est.EstimatedCompletionTokens, pricing.CompletionPer1K),
		Model:    est.Model,
		Provider: providerType,
		Currency: "USD",
		Actual:   false,
	}
}

// CalculateFromUsage prices a provider's actual reported usage.
func CalculateFromUsage(usage *providers.Usage, model, providerType string) *CostEstimate {
	pricing := lookupPricing(providerType, model)
	promptCost := tokenCost(usage.PromptTokens, pricing.PromptPer1K)
	completionCost := tokenCost(usage.CompletionTokens, pricing.CompletionPer1K)
	return &CostEstimate{
		PromptCost:     promptCost,
		CompletionCost: completionCost,
		TotalCost:      promptCost + completionCost,
		Model:          model,
		Provider:       providerType,
		Currency:       "USD",
		Actual:         true,
	}
}

func tokenCost(tokens int, costPer1K float64) float64 {
	if tokens <= 0 {
		return 0
	}
	return (float64(tokens) / 1000.0) * costPer1K
}
