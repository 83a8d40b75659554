package costs

import "strings"

// modelPricing is the per-1K-token cost, in USD, for one model.
type modelPricing struct {
	PromptPer1K     float64
	CompletionPer1K float64
}

// pricingTable is a static snapshot of list pricing, keyed by
// provider type then by model prefix (matched with strings.HasPrefix,
// longest configured prefix first) and read through lookupPricing. It
// is not hot-reloaded.
var pricingTable = map[string]map[string]modelPricing{
	"openai": {
		"gpt-4o-mini": {PromptPer1K: 0.00015, CompletionPer1K: 0.0006},
		"gpt-4o":      {PromptPer1K: 0.0025, CompletionPer1K: 0.01},
		"gpt-4":       {PromptPer1K: 0.03, CompletionPer1K: 0.06},
		"gpt-3.5":     {PromptPer1K: 0.0005, CompletionPer1K: 0.0015},
		"o1-mini":     {PromptPer1K: 0.0011, CompletionPer1K: 0.0044},
		"o1":          {PromptPer1K: 0.015, CompletionPer1K: 0.06},
		"default":     {PromptPer1K: 0.0025, CompletionPer1K: 0.01},
	},
	"anthropic": {
		"claude-3-5-haiku":  {PromptPer1K: 0.0008, CompletionPer1K: 0.004},
		"claude-3-5-sonnet": {PromptPer1K: 0.003, CompletionPer1K: 0.015},
		"claude-3-opus":     {PromptPer1K: 0.015, CompletionPer1K: 0.075},
		"claude-3-haiku":    {PromptPer1K: 0.00025, CompletionPer1K: 0.00125},
		"default":           {PromptPer1K: 0.003, CompletionPer1K: 0.015},
	},
	"google": {
		"gemini-1.5-flash": {PromptPer1K: 0.000075, CompletionPer1K: 0.0003},
		"gemini-1.5-pro":   {PromptPer1K: 0.00125, CompletionPer1K: 0.005},
		"gemini-2.0-flash": {PromptPer1K: 0.0001, CompletionPer1K: 0.0004},
		"default":          {PromptPer1K: 0.00125, CompletionPer1K: 0.005},
	},
	"default": {
		"default": {PromptPer1K: 0.001, CompletionPer1K: 0.002},
	},
}

// lookupPricing resolves pricing for model/providerType: exact prefix
// match first (longest prefix wins among matches), falling back to
// the provider's "default" entry, then the global default.
func lookupPricing(providerType, model string) modelPricing {
	byProvider, ok := pricingTable[providerType]
	if !ok {
		return pricingTable["default"]["default"]
	}

	best := ""
	var bestPricing modelPricing
	found := false
	for prefix, pricing := range byProvider {
		if prefix == "default" {
			continue
		}
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
			bestPricing = pricing
			found = true
		}
	}
	if found {
		return bestPricing
	}

	if def, ok := byProvider["default"]; ok {
		return def
	}
	return pricingTable["default"]["default"]
}
