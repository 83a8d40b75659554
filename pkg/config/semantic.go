package config

import (
	"fmt"
	"sort"
)

// semanticCheck is one class of the fixed validation sequence. Each check
// receives the fully decoded Config and returns the FieldErrors it finds;
// validateSemantic stops at the first check that returns any.
type semanticCheck func(*Config) []FieldError

// validateSemantic runs the seven semantic checks in the fixed order
// required by spec §4.1: version, default-variant, response-schema
// references, routing references and non-degeneracy, fallback references,
// required provider parameters, template syntax. It returns as soon as a
// check produces at least one error — later checks may assume everything
// before them held.
func validateSemantic(cfg *Config) []FieldError {
	checks := []semanticCheck{
		checkVersion,
		checkDefaultVariant,
		checkResponseSchemaRefs,
		checkRoutingRefs,
		checkFallbackRefs,
		checkRequiredProviderParams,
		checkTemplateSyntax,
	}
	for _, check := range checks {
		if errs := check(cfg); len(errs) > 0 {
			return errs
		}
	}
	return nil
}

func checkVersion(cfg *Config) []FieldError {
	major := cfg.Version
	for i, c := range cfg.Version {
		if c == '.' {
			major = cfg.Version[:i]
			break
		}
	}
	if major != SupportedMajorVersion {
		return []FieldError{newFieldError("$.version", fmt.Sprintf("unsupported major version %q", cfg.Version), Details{
			Path: "$.version", Suggestion: "only major version " + SupportedMajorVersion + " is supported",
		})}
	}
	return nil
}

func checkDefaultVariant(cfg *Config) []FieldError {
	var errs []FieldError
	for promptID, prompt := range cfg.Prompts {
		defaults := 0
		var names []string
		for variantID, variant := range prompt.Variants {
			names = append(names, variantID)
			if variant.Default {
				defaults++
			}
		}
		path := fmt.Sprintf("$.prompts.%s", promptID)
		if defaults == 0 {
			sort.Strings(names)
			errs = append(errs, newFieldError(path+".variants", "no variant is marked default", Details{
				Path: path + ".variants", Offenders: names,
			}))
		} else if defaults > 1 {
			sort.Strings(names)
			errs = append(errs, newFieldError(path+".variants", "more than one variant is marked default", Details{
				Path: path + ".variants", Offenders: names,
			}))
		}
	}
	return errs
}

func checkResponseSchemaRefs(cfg *Config) []FieldError {
	var errs []FieldError
	for promptID, prompt := range cfg.Prompts {
		for variantID, variant := range prompt.Variants {
			if variant.ResponseFormat.Type != ResponseFormatJSONSchema {
				continue
			}
			path := fmt.Sprintf("$.prompts.%s.variants.%s.responseFormat.schemaRef", promptID, variantID)
			ref := variant.ResponseFormat.SchemaRef
			if ref == "" {
				errs = append(errs, newFieldError(path, "schemaRef is required for json_schema responses", Details{Path: path}))
				continue
			}
			if _, ok := cfg.ResponseSchemas[ref]; !ok {
				errs = append(errs, newFieldError(path, fmt.Sprintf("unknown response schema %q", ref), Details{
					Path: path, Offenders: []string{ref}, Suggestion: suggestIdentifier(ref, schemaIDs(cfg)),
				}))
			}
		}
	}
	return errs
}

// checkRoutingRefs validates that every rule/phased-weight target and
// every chain step's variant names a variant that actually exists on the
// prompt (reference integrity), and that the rule set is not degenerate —
// in every rules list, and in every phased entry's weights, at least one
// weight must be > 0 (an absent rule weight defaults to 100 before this
// check ever runs, via applyDefaults).
func checkRoutingRefs(cfg *Config) []FieldError {
	var errs []FieldError
	for promptID, prompt := range cfg.Prompts {
		path := fmt.Sprintf("$.prompts.%s.routing", promptID)

		for i, step := range prompt.Chains {
			if _, ok := prompt.Variants[step.Variant]; !ok {
				cpath := fmt.Sprintf("$.prompts.%s.chains[%d].variant", promptID, i)
				errs = append(errs, newFieldError(cpath, fmt.Sprintf("unknown variant %q", step.Variant), Details{
					Path: cpath, Offenders: []string{step.Variant}, Suggestion: suggestIdentifier(step.Variant, variantIDs(prompt)),
				}))
			}
		}

		ruleWeightSum := 0
		for i, rule := range prompt.Routing.Rules {
			rpath := fmt.Sprintf("%s.rules[%d]", path, i)
			if _, ok := prompt.Variants[rule.Target]; !ok {
				errs = append(errs, newFieldError(rpath+".target", fmt.Sprintf("unknown variant %q", rule.Target), Details{
					Path: rpath + ".target", Offenders: []string{rule.Target}, Suggestion: suggestIdentifier(rule.Target, variantIDs(prompt)),
				}))
			}
			if rule.Weight != nil {
				ruleWeightSum += *rule.Weight
			} else {
				ruleWeightSum += defaultRuleWeight
			}
		}
		if ruleWeightSum == 0 {
			errs = append(errs, newFieldError(path+".rules", "at least one rule must have weight > 0", Details{Path: path + ".rules"}))
		}

		for i, phase := range prompt.Routing.Phased {
			ppath := fmt.Sprintf("%s.phased[%d]", path, i)
			if phase.End != 0 && phase.End < phase.Start {
				errs = append(errs, newFieldError(ppath+".end", "end precedes start", Details{Path: ppath + ".end"}))
			}
			phaseWeightSum := 0
			for variantID, weight := range phase.Weights {
				if _, ok := prompt.Variants[variantID]; !ok {
					errs = append(errs, newFieldError(fmt.Sprintf("%s.weights.%s", ppath, variantID), fmt.Sprintf("unknown variant %q", variantID), Details{
						Path: ppath + ".weights", Offenders: []string{variantID}, Suggestion: suggestIdentifier(variantID, variantIDs(prompt)),
					}))
				}
				phaseWeightSum += weight
			}
			if phaseWeightSum == 0 {
				errs = append(errs, newFieldError(ppath+".weights", "at least one weight must be > 0", Details{Path: ppath + ".weights"}))
			}
		}
	}
	return errs
}

func checkFallbackRefs(cfg *Config) []FieldError {
	var errs []FieldError
	for promptID, prompt := range cfg.Prompts {
		for variantID, variant := range prompt.Variants {
			for i, target := range variant.Fallback {
				path := fmt.Sprintf("$.prompts.%s.variants.%s.fallback[%d]", promptID, variantID, i)
				if _, ok := cfg.Providers[target.Provider]; !ok {
					errs = append(errs, newFieldError(path+".provider", fmt.Sprintf("unknown provider %q", target.Provider), Details{
						Path: path + ".provider", Offenders: []string{target.Provider}, Suggestion: suggestIdentifier(target.Provider, providerIDs(cfg)),
					}))
				}
			}
			if _, ok := cfg.Providers[variant.Provider]; !ok {
				path := fmt.Sprintf("$.prompts.%s.variants.%s.provider", promptID, variantID)
				errs = append(errs, newFieldError(path, fmt.Sprintf("unknown provider %q", variant.Provider), Details{
					Path: path, Offenders: []string{variant.Provider}, Suggestion: suggestIdentifier(variant.Provider, providerIDs(cfg)),
				}))
			}
		}
	}
	return errs
}

// requiredProviderParams lists canonical parameters that must be present
// on every variant bound to a given provider type, because the provider
// rejects their absence outright (Anthropic requires max_tokens).
var requiredProviderParams = map[string][]string{
	ProviderTypeAnthropic: {"max_tokens"},
}

func checkRequiredProviderParams(cfg *Config) []FieldError {
	var errs []FieldError
	for promptID, prompt := range cfg.Prompts {
		for variantID, variant := range prompt.Variants {
			provider, ok := cfg.Providers[variant.Provider]
			if !ok {
				continue // already reported by checkFallbackRefs
			}
			required, ok := requiredProviderParams[provider.Type]
			if !ok {
				continue
			}
			for _, key := range required {
				if _, present := variant.Parameters[key]; !present {
					path := fmt.Sprintf("$.prompts.%s.variants.%s.parameters.%s", promptID, variantID, key)
					errs = append(errs, newFieldError(path, fmt.Sprintf("required for provider type %q", provider.Type), Details{Path: path}))
				}
			}
		}
	}
	return errs
}

// checkTemplateSyntax parses every message template in strict filter mode
// (unknown filters are a hard error here, though they remain non-fatal at
// render time once validation has passed). Parse errors are folded into
// *FieldError so they surface through the same ConfigurationError as every
// other semantic violation.
func checkTemplateSyntax(cfg *Config) []FieldError {
	var errs []FieldError
	for promptID, prompt := range cfg.Prompts {
		for variantID, variant := range prompt.Variants {
			for i, msg := range variant.Messages {
				path := fmt.Sprintf("$.prompts.%s.variants.%s.messages[%d].content.template", promptID, variantID, i)
				if err := templateSyntaxCheck(msg.Content.Template); err != nil {
					errs = append(errs, newFieldError(path, err.Error(), Details{Path: path}))
				}
			}
		}
	}
	return errs
}

func schemaIDs(cfg *Config) []string {
	ids := make([]string, 0, len(cfg.ResponseSchemas))
	for id := range cfg.ResponseSchemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func variantIDs(prompt Prompt) []string {
	ids := make([]string, 0, len(prompt.Variants))
	for id := range prompt.Variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func providerIDs(cfg *Config) []string {
	ids := make([]string, 0, len(cfg.Providers))
	for id := range cfg.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
