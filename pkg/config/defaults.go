package config

// defaultRuleWeight is applied to any RoutingRule whose Weight was absent
// from the source document — spec §4.4 treats an absent weight as full
// weight. Phased-rollout weights have no such default: they are a
// required map, so every entry is already explicit.
const defaultRuleWeight = 100

// applyDefaults fills in values the structural pass deliberately leaves
// unset, before semantic validation and the router ever see the config.
// It runs after structural validation (so shapes are already known-good)
// and before semantic validation (so semantic checks never have to
// special-case "nil means omitted").
func applyDefaults(cfg *Config) {
	for promptID, prompt := range cfg.Prompts {
		for i, rule := range prompt.Routing.Rules {
			if rule.Weight == nil {
				w := defaultRuleWeight
				prompt.Routing.Rules[i].Weight = &w
			}
		}
		cfg.Prompts[promptID] = prompt
	}
}
