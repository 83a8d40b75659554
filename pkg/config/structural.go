package config

import (
	"fmt"
	"regexp"
)

var identifierRe = regexp.MustCompile(IdentifierPattern)

// validateStructural checks field presence, types, enumerations, and
// identifier patterns against the raw parsed document. It never looks at
// cross-references — that is semantic.go's job. Unknown top-level
// properties are rejected except inside provider "extras" entries and
// JSON-Schema fragments, per spec §6.
func validateStructural(raw map[string]interface{}) []FieldError {
	var errs []FieldError

	errs = append(errs, checkUnknownKeys(raw, "$", map[string]bool{
		"version": true, "providers": true, "responseSchemas": true, "prompts": true,
	})...)

	errs = append(errs, structVersion(raw)...)
	errs = append(errs, structProviders(raw)...)
	errs = append(errs, structResponseSchemas(raw)...)
	errs = append(errs, structPrompts(raw)...)

	return errs
}

func checkUnknownKeys(m map[string]interface{}, path string, allowed map[string]bool) []FieldError {
	var errs []FieldError
	for k := range m {
		if !allowed[k] {
			errs = append(errs, newFieldError(fmt.Sprintf("%s.%s", path, k), "unknown field", Details{Path: path, Offenders: []string{k}}))
		}
	}
	return errs
}

func structVersion(raw map[string]interface{}) []FieldError {
	v, ok := raw["version"]
	if !ok {
		return []FieldError{newFieldError("$.version", "required field missing", Details{Path: "$.version"})}
	}
	if _, ok := v.(string); !ok {
		return []FieldError{newFieldError("$.version", "must be a string", Details{Path: "$.version"})}
	}
	return nil
}

func structProviders(raw map[string]interface{}) []FieldError {
	var errs []FieldError
	providersRaw, ok := raw["providers"]
	if !ok {
		return []FieldError{newFieldError("$.providers", "required field missing", Details{Path: "$.providers"})}
	}
	providers, ok := providersRaw.(map[string]interface{})
	if !ok {
		return []FieldError{newFieldError("$.providers", "must be an object", Details{Path: "$.providers"})}
	}

	validTypes := map[string]bool{ProviderTypeOpenAI: true, ProviderTypeAnthropic: true, ProviderTypeGoogle: true}

	for alias, entryRaw := range providers {
		path := fmt.Sprintf("$.providers.%s", alias)
		if !identifierRe.MatchString(alias) {
			errs = append(errs, newFieldError(path, "identifier does not match "+IdentifierPattern, Details{Path: path, Offenders: []string{alias}}))
		}
		entry, ok := entryRaw.(map[string]interface{})
		if !ok {
			errs = append(errs, newFieldError(path, "must be an object", Details{Path: path}))
			continue
		}
		typeVal, ok := entry["type"].(string)
		if !ok {
			errs = append(errs, newFieldError(path+".type", "required field missing or not a string", Details{Path: path + ".type"}))
			continue
		}
		if !validTypes[typeVal] {
			errs = append(errs, newFieldError(path+".type", fmt.Sprintf("invalid provider type %q", typeVal), Details{
				Path: path + ".type", Suggestion: "must be one of openai, anthropic, google",
			}))
		}
		// "extras" is exempt from unknown-field rejection; every other
		// key inside a provider entry is not.
		for k := range entry {
			if k != "type" && k != "extras" {
				errs = append(errs, newFieldError(path+"."+k, "unknown field", Details{Path: path, Offenders: []string{k}}))
			}
		}
	}
	return errs
}

func structResponseSchemas(raw map[string]interface{}) []FieldError {
	var errs []FieldError
	schemasRaw, ok := raw["responseSchemas"]
	if !ok {
		return nil
	}
	schemas, ok := schemasRaw.(map[string]interface{})
	if !ok {
		return []FieldError{newFieldError("$.responseSchemas", "must be an object", Details{Path: "$.responseSchemas"})}
	}
	for id, fragRaw := range schemas {
		path := fmt.Sprintf("$.responseSchemas.%s", id)
		if !identifierRe.MatchString(id) {
			errs = append(errs, newFieldError(path, "identifier does not match "+IdentifierPattern, Details{Path: path, Offenders: []string{id}}))
		}
		if _, ok := fragRaw.(map[string]interface{}); !ok {
			errs = append(errs, newFieldError(path, "must be a JSON-Schema object", Details{Path: path}))
		}
		// JSON-Schema fragments are exempt from unknown-field rejection.
	}
	return errs
}

func structPrompts(raw map[string]interface{}) []FieldError {
	var errs []FieldError
	promptsRaw, ok := raw["prompts"]
	if !ok {
		return []FieldError{newFieldError("$.prompts", "required field missing", Details{Path: "$.prompts"})}
	}
	prompts, ok := promptsRaw.(map[string]interface{})
	if !ok {
		return []FieldError{newFieldError("$.prompts", "must be an object", Details{Path: "$.prompts"})}
	}

	for promptID, promptRaw := range prompts {
		base := fmt.Sprintf("$.prompts.%s", promptID)
		if !identifierRe.MatchString(promptID) {
			errs = append(errs, newFieldError(base, "identifier does not match "+IdentifierPattern, Details{Path: base, Offenders: []string{promptID}}))
		}
		prompt, ok := promptRaw.(map[string]interface{})
		if !ok {
			errs = append(errs, newFieldError(base, "must be an object", Details{Path: base}))
			continue
		}
		errs = append(errs, checkUnknownKeys(prompt, base, map[string]bool{
			"description": true, "variants": true, "routing": true, "chains": true,
		})...)
		errs = append(errs, structVariants(base, prompt)...)
		errs = append(errs, structRouting(base, prompt)...)
	}
	return errs
}

func structVariants(base string, prompt map[string]interface{}) []FieldError {
	var errs []FieldError
	variantsRaw, ok := prompt["variants"]
	if !ok {
		return []FieldError{newFieldError(base+".variants", "required field missing", Details{Path: base + ".variants"})}
	}
	variants, ok := variantsRaw.(map[string]interface{})
	if !ok || len(variants) == 0 {
		return []FieldError{newFieldError(base+".variants", "must be a non-empty object", Details{Path: base + ".variants"})}
	}

	for variantID, variantRaw := range variants {
		vbase := fmt.Sprintf("%s.variants.%s", base, variantID)
		if !identifierRe.MatchString(variantID) {
			errs = append(errs, newFieldError(vbase, "identifier does not match "+IdentifierPattern, Details{Path: vbase, Offenders: []string{variantID}}))
		}
		variant, ok := variantRaw.(map[string]interface{})
		if !ok {
			errs = append(errs, newFieldError(vbase, "must be an object", Details{Path: vbase}))
			continue
		}
		errs = append(errs, checkUnknownKeys(variant, vbase, map[string]bool{
			"provider": true, "model": true, "default": true, "parameters": true,
			"messages": true, "responseFormat": true, "fallback": true,
		})...)

		if _, ok := variant["provider"].(string); !ok {
			errs = append(errs, newFieldError(vbase+".provider", "required field missing or not a string", Details{Path: vbase + ".provider"}))
		}
		if _, ok := variant["model"].(string); !ok {
			errs = append(errs, newFieldError(vbase+".model", "required field missing or not a string", Details{Path: vbase + ".model"}))
		}
		if dv, present := variant["default"]; present {
			if _, ok := dv.(bool); !ok {
				errs = append(errs, newFieldError(vbase+".default", "must be a boolean", Details{Path: vbase + ".default"}))
			}
		}

		errs = append(errs, structMessages(vbase, variant)...)
		errs = append(errs, structResponseFormat(vbase, variant)...)
		errs = append(errs, structFallback(vbase, variant)...)
		errs = append(errs, structParameters(vbase, variant)...)
	}
	return errs
}

// structParameters validates the canonical parameter bag against the
// numeric bounds from spec §6, before pkg/parammap ever rescales them to a
// provider's native range.
func structParameters(vbase string, variant map[string]interface{}) []FieldError {
	paramsRaw, present := variant["parameters"]
	if !present {
		return nil
	}
	params, ok := paramsRaw.(map[string]interface{})
	if !ok {
		return []FieldError{newFieldError(vbase+".parameters", "must be an object", Details{Path: vbase + ".parameters"})}
	}

	var errs []FieldError
	ppath := vbase + ".parameters"

	if v, present := params["max_tokens"]; present {
		n, ok := v.(float64)
		if !ok || n < 1 {
			errs = append(errs, newFieldError(ppath+".max_tokens", "must be a number >= 1", Details{Path: ppath + ".max_tokens"}))
		}
	}
	errs = append(errs, structParamRange(ppath+".temperature", params["temperature"], 0, 1)...)
	errs = append(errs, structParamRange(ppath+".top_p", params["top_p"], 0, 1)...)
	errs = append(errs, structParamRange(ppath+".frequency_penalty", params["frequency_penalty"], -2, 2)...)
	errs = append(errs, structParamRange(ppath+".presence_penalty", params["presence_penalty"], -2, 2)...)

	if v, present := params["stop"]; present {
		stop, ok := v.([]interface{})
		if !ok {
			errs = append(errs, newFieldError(ppath+".stop", "must be an array of strings", Details{Path: ppath + ".stop"}))
		} else {
			if len(stop) > 4 {
				errs = append(errs, newFieldError(ppath+".stop", "at most 4 stop sequences are allowed", Details{Path: ppath + ".stop"}))
			}
			for _, s := range stop {
				if _, ok := s.(string); !ok {
					errs = append(errs, newFieldError(ppath+".stop", "must be an array of strings", Details{Path: ppath + ".stop"}))
					break
				}
			}
		}
	}
	return errs
}

func structParamRange(path string, v interface{}, min, max float64) []FieldError {
	if v == nil {
		return nil
	}
	n, ok := v.(float64)
	if !ok {
		return []FieldError{newFieldError(path, "must be a number", Details{Path: path})}
	}
	if n < min || n > max {
		return []FieldError{newFieldError(path, fmt.Sprintf("must be in range [%g,%g]", min, max), Details{Path: path})}
	}
	return nil
}

func structMessages(vbase string, variant map[string]interface{}) []FieldError {
	var errs []FieldError
	msgsRaw, ok := variant["messages"]
	if !ok {
		return []FieldError{newFieldError(vbase+".messages", "required field missing", Details{Path: vbase + ".messages"})}
	}
	msgs, ok := msgsRaw.([]interface{})
	if !ok || len(msgs) == 0 {
		return []FieldError{newFieldError(vbase+".messages", "must be a non-empty array", Details{Path: vbase + ".messages"})}
	}
	validRoles := map[string]bool{"system": true, "user": true, "assistant": true}
	for i, mRaw := range msgs {
		mpath := fmt.Sprintf("%s.messages[%d]", vbase, i)
		m, ok := mRaw.(map[string]interface{})
		if !ok {
			errs = append(errs, newFieldError(mpath, "must be an object", Details{Path: mpath}))
			continue
		}
		role, ok := m["role"].(string)
		if !ok {
			errs = append(errs, newFieldError(mpath+".role", "required field missing or not a string", Details{Path: mpath + ".role"}))
		} else if !validRoles[role] {
			errs = append(errs, newFieldError(mpath+".role", fmt.Sprintf("invalid role %q", role), Details{
				Path: mpath + ".role", Suggestion: "must be one of system, user, assistant",
			}))
		}
		content, ok := m["content"].(map[string]interface{})
		if !ok {
			errs = append(errs, newFieldError(mpath+".content", "required field missing or not an object", Details{Path: mpath + ".content"}))
			continue
		}
		if _, ok := content["template"].(string); !ok {
			errs = append(errs, newFieldError(mpath+".content.template", "required field missing or not a string", Details{Path: mpath + ".content.template"}))
		}
	}
	return errs
}

func structResponseFormat(vbase string, variant map[string]interface{}) []FieldError {
	var errs []FieldError
	rfRaw, ok := variant["responseFormat"]
	if !ok {
		return []FieldError{newFieldError(vbase+".responseFormat", "required field missing", Details{Path: vbase + ".responseFormat"})}
	}
	rf, ok := rfRaw.(map[string]interface{})
	if !ok {
		return []FieldError{newFieldError(vbase+".responseFormat", "must be an object", Details{Path: vbase + ".responseFormat"})}
	}
	typeVal, ok := rf["type"].(string)
	if !ok {
		return []FieldError{newFieldError(vbase+".responseFormat.type", "required field missing or not a string", Details{Path: vbase + ".responseFormat.type"})}
	}
	switch typeVal {
	case ResponseFormatRawText:
	case ResponseFormatJSONSchema:
		if _, ok := rf["schemaRef"].(string); !ok {
			errs = append(errs, newFieldError(vbase+".responseFormat.schemaRef", "required when type is json_schema", Details{Path: vbase + ".responseFormat.schemaRef"}))
		}
	default:
		errs = append(errs, newFieldError(vbase+".responseFormat.type", fmt.Sprintf("invalid type %q", typeVal), Details{
			Path: vbase + ".responseFormat.type", Suggestion: "must be one of raw_text, json_schema",
		}))
	}
	return errs
}

func structFallback(vbase string, variant map[string]interface{}) []FieldError {
	var errs []FieldError
	fbRaw, ok := variant["fallback"]
	if !ok {
		return nil
	}
	fb, ok := fbRaw.([]interface{})
	if !ok {
		return []FieldError{newFieldError(vbase+".fallback", "must be an array", Details{Path: vbase + ".fallback"})}
	}
	for i, entryRaw := range fb {
		path := fmt.Sprintf("%s.fallback[%d]", vbase, i)
		entry, ok := entryRaw.(map[string]interface{})
		if !ok {
			errs = append(errs, newFieldError(path, "must be an object", Details{Path: path}))
			continue
		}
		if _, ok := entry["provider"].(string); !ok {
			errs = append(errs, newFieldError(path+".provider", "required field missing or not a string", Details{Path: path + ".provider"}))
		}
		if _, ok := entry["model"].(string); !ok {
			errs = append(errs, newFieldError(path+".model", "required field missing or not a string", Details{Path: path + ".model"}))
		}
	}
	return errs
}

func structRouting(base string, prompt map[string]interface{}) []FieldError {
	var errs []FieldError
	routingRaw, ok := prompt["routing"]
	if !ok {
		return []FieldError{newFieldError(base+".routing", "required field missing", Details{Path: base + ".routing"})}
	}
	routing, ok := routingRaw.(map[string]interface{})
	if !ok {
		return []FieldError{newFieldError(base+".routing", "must be an object", Details{Path: base + ".routing"})}
	}
	errs = append(errs, checkUnknownKeys(routing, base+".routing", map[string]bool{"rules": true, "phased": true})...)

	rulesRaw, ok := routing["rules"]
	if !ok {
		errs = append(errs, newFieldError(base+".routing.rules", "required field missing", Details{Path: base + ".routing.rules"}))
	} else {
		rules, ok := rulesRaw.([]interface{})
		if !ok || len(rules) == 0 {
			errs = append(errs, newFieldError(base+".routing.rules", "must be a non-empty array", Details{Path: base + ".routing.rules"}))
		} else {
			for i, rRaw := range rules {
				rpath := fmt.Sprintf("%s.routing.rules[%d]", base, i)
				r, ok := rRaw.(map[string]interface{})
				if !ok {
					errs = append(errs, newFieldError(rpath, "must be an object", Details{Path: rpath}))
					continue
				}
				errs = append(errs, checkUnknownKeys(r, rpath, map[string]bool{"target": true, "weight": true, "tags": true})...)
				if _, ok := r["target"].(string); !ok {
					errs = append(errs, newFieldError(rpath+".target", "required field missing or not a string", Details{Path: rpath + ".target"}))
				}
				errs = append(errs, structWeight(rpath+".weight", r["weight"])...)
				errs = append(errs, structTags(rpath+".tags", r["tags"])...)
			}
		}
	}

	if phasedRaw, ok := routing["phased"]; ok {
		phased, ok := phasedRaw.([]interface{})
		if !ok {
			errs = append(errs, newFieldError(base+".routing.phased", "must be an array", Details{Path: base + ".routing.phased"}))
		} else {
			for i, pRaw := range phased {
				ppath := fmt.Sprintf("%s.routing.phased[%d]", base, i)
				p, ok := pRaw.(map[string]interface{})
				if !ok {
					errs = append(errs, newFieldError(ppath, "must be an object", Details{Path: ppath}))
					continue
				}
				errs = append(errs, checkUnknownKeys(p, ppath, map[string]bool{"start": true, "end": true, "weights": true})...)
				if _, ok := p["start"].(float64); !ok {
					errs = append(errs, newFieldError(ppath+".start", "required field missing or not a number", Details{Path: ppath + ".start"}))
				}
				weightsRaw, ok := p["weights"].(map[string]interface{})
				if !ok || len(weightsRaw) == 0 {
					errs = append(errs, newFieldError(ppath+".weights", "must be a non-empty object", Details{Path: ppath + ".weights"}))
					continue
				}
				for variantID, wRaw := range weightsRaw {
					errs = append(errs, structWeight(fmt.Sprintf("%s.weights.%s", ppath, variantID), wRaw)...)
				}
			}
		}
	}
	return errs
}

func structWeight(path string, v interface{}) []FieldError {
	if v == nil {
		return nil
	}
	n, ok := v.(float64)
	if !ok {
		return []FieldError{newFieldError(path, "must be a number", Details{Path: path})}
	}
	if n < 0 || n > 100 {
		return []FieldError{newFieldError(path, "must be in range [0,100]", Details{Path: path})}
	}
	return nil
}

func structTags(path string, v interface{}) []FieldError {
	if v == nil {
		return nil
	}
	tags, ok := v.([]interface{})
	if !ok {
		return []FieldError{newFieldError(path, "must be an array of strings", Details{Path: path})}
	}
	var errs []FieldError
	for _, t := range tags {
		if _, ok := t.(string); !ok {
			errs = append(errs, newFieldError(path, "must be an array of strings", Details{Path: path}))
			break
		}
	}
	return errs
}
