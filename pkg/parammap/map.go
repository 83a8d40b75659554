package parammap

// Map applies the capability table to canonical, producing the
// provider-native option bag for providerType. Unknown canonical keys —
// those with no row in the table — are dropped silently. For each
// accepted key: scale is applied first (if the rule has one), then the
// result is clamped to [min,max] (if the rule has bounds and the value
// is numeric), then the clamped value is written under the rule's
// provider-native name.
func Map(providerType string, canonical map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(canonical))
	for key, value := range canonical {
		perProvider, known := table[key]
		if !known {
			continue
		}
		r, known := perProvider[providerType]
		if !known || r.drop {
			continue
		}
		out[r.rename] = applyRule(r, value)
	}
	return out
}

func applyRule(r rule, value interface{}) interface{} {
	if r.scale == 0 && !r.hasMin && !r.hasMax {
		// A pure rename writes the value through unchanged.
		return value
	}
	n, ok := asFloat(value)
	if !ok {
		// Non-numeric values (stop sequences, logit_bias maps) pass
		// through unscaled and unclamped.
		return value
	}
	if r.scale != 0 {
		n *= r.scale
	}
	if r.hasMin && n < r.min {
		n = r.min
	}
	if r.hasMax && n > r.max {
		n = r.max
	}
	return n
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
