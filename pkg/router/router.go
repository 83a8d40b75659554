package router

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sort"

	"github.com/rkotzy/promptuna/pkg/config"
	"github.com/rkotzy/promptuna/pkg/errs"
)

const (
	ReasonTagMatch         = "tag-match"
	ReasonPhasedRollout    = "phased-rollout"
	ReasonWeightDistribution = "weight-distribution"
	ReasonDefault          = "default"
)

// Selection is the result of Select: the chosen variant, why it was
// chosen, and (when a weighted pick was involved) the weight it carried.
type Selection struct {
	VariantID string
	Variant   config.Variant
	Reason    string
	Weight    *int
}

// Select implements the four-layer routing policy of spec §4.4, in
// strict order: tag match, phased rollout, default rules, hard default.
func Select(prompt config.Prompt, promptID, userID string, tags []string, now int64) (Selection, error) {
	if sel, ok := selectTagMatch(prompt, promptID, userID, tags); ok {
		return sel, nil
	}
	if sel, ok := selectPhasedRollout(prompt, promptID, userID, now); ok {
		return sel, nil
	}
	if sel, ok := selectDefaultRules(prompt, promptID, userID); ok {
		return sel, nil
	}
	return selectHardDefault(prompt, promptID)
}

func selectTagMatch(prompt config.Prompt, promptID, userID string, tags []string) (Selection, bool) {
	wantTags := make(map[string]bool, len(tags))
	for _, t := range tags {
		wantTags[t] = true
	}

	var order []string
	weights := map[string]int{}
	for _, rule := range prompt.Routing.Rules {
		if len(rule.Tags) == 0 || !tagsIntersect(rule.Tags, wantTags) {
			continue
		}
		w := 100
		if rule.Weight != nil {
			w = *rule.Weight
		}
		order = append(order, rule.Target)
		weights[rule.Target] += w
	}
	if len(order) == 0 {
		return Selection{}, false
	}

	target, weight := weightedPick(order, weights, userID, promptID, "tag")
	return Selection{VariantID: target, Variant: prompt.Variants[target], Reason: ReasonTagMatch, Weight: &weight}, true
}

func selectPhasedRollout(prompt config.Prompt, promptID, userID string, now int64) (Selection, bool) {
	var chosen *config.PhasedRule
	for i := range prompt.Routing.Phased {
		p := &prompt.Routing.Phased[i]
		end := p.End
		if end == 0 {
			end = 1<<63 - 1
		}
		if now < p.Start || now > end {
			continue
		}
		// Ties (equal Start) keep the earlier-seen entry, which is
		// insertion order since Phased is a slice in document order.
		if chosen == nil || p.Start > chosen.Start {
			chosen = p
		}
	}
	if chosen == nil {
		return Selection{}, false
	}

	order := make([]string, 0, len(chosen.Weights))
	for variantID := range chosen.Weights {
		order = append(order, variantID)
	}
	// phased.weights has no natural insertion order once decoded into a
	// Go map; sort for deterministic weightedPick fallback behavior.
	sort.Strings(order)

	target, weight := weightedPick(order, chosen.Weights, userID, promptID, "phase")
	return Selection{VariantID: target, Variant: prompt.Variants[target], Reason: ReasonPhasedRollout, Weight: &weight}, true
}

func selectDefaultRules(prompt config.Prompt, promptID, userID string) (Selection, bool) {
	var order []string
	weights := map[string]int{}
	for _, rule := range prompt.Routing.Rules {
		if len(rule.Tags) > 0 {
			continue
		}
		w := 100
		if rule.Weight != nil {
			w = *rule.Weight
		}
		order = append(order, rule.Target)
		weights[rule.Target] += w
	}
	if len(order) == 0 {
		return Selection{}, false
	}

	target, weight := weightedPick(order, weights, userID, promptID, "weight")
	return Selection{VariantID: target, Variant: prompt.Variants[target], Reason: ReasonWeightDistribution, Weight: &weight}, true
}

func selectHardDefault(prompt config.Prompt, promptID string) (Selection, error) {
	for variantID, variant := range prompt.Variants {
		if variant.Default {
			return Selection{VariantID: variantID, Variant: variant, Reason: ReasonDefault}, nil
		}
	}
	return Selection{}, errs.NewExecutionError("no-default-variant", fmt.Sprintf("prompt %q has no default variant", promptID), map[string]interface{}{
		"promptId": promptID,
	})
}

// Resolve looks up a variant explicitly requested by id, bypassing the
// four-layer policy. A variant absent from the prompt is a fatal
// execution-error, per spec §4.4.
func Resolve(prompt config.Prompt, promptID, variantID string) (Selection, error) {
	variant, ok := prompt.Variants[variantID]
	if !ok {
		return Selection{}, errs.NewExecutionError("unknown-variant", fmt.Sprintf("variant %q does not exist on prompt %q", variantID, promptID), map[string]interface{}{
			"promptId": promptID, "variantId": variantID,
		})
	}
	return Selection{VariantID: variantID, Variant: variant, Reason: ReasonDefault}, nil
}

func tagsIntersect(ruleTags []string, want map[string]bool) bool {
	for _, t := range ruleTags {
		if want[t] {
			return true
		}
	}
	return false
}

// weightedPick implements spec §4.4's deterministic weighted pick: a
// SHA-256-derived draw when userID is present, a uniform random draw
// otherwise. order fixes iteration order (insertion order at the layer's
// call site); weights need not sum to any particular value.
func weightedPick(order []string, weights map[string]int, userID, promptID, salt string) (string, int) {
	total := 0
	for _, k := range order {
		total += weights[k]
	}
	if total == 0 {
		return order[0], weights[order[0]]
	}

	r := drawUnit(userID, promptID, salt)
	target := r * float64(total)
	for _, k := range order {
		w := float64(weights[k])
		if target < w {
			return k, weights[k]
		}
		target -= w
	}
	return order[len(order)-1], weights[order[len(order)-1]]
}

// drawUnit returns a value in [0,1). With a userID present, it is
// derived from the first 32 bits of SHA-256("{userId}:{promptId}:{salt}")
// interpreted as big-endian unsigned, divided by 2^32 — deterministic
// and stable for the same user/prompt/salt triple. Without a userID, it
// is a uniform pseudo-random draw.
func drawUnit(userID, promptID, salt string) float64 {
	if userID == "" {
		return rand.Float64()
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", userID, promptID, salt)))
	first32 := binary.BigEndian.Uint32(sum[:4])
	return float64(first32) / 4294967296.0
}
