package config

// Config is the root configuration entity. It is parsed once, validated,
// and then treated as immutable for the lifetime of the owning engine.
type Config struct {
	// Version is a semantic version string; only major version 1 is
	// currently accepted.
	Version string `json:"version"`

	// Providers maps a provider alias to its backing type and extras.
	// Insertion order is not significant.
	Providers map[string]ProviderConfig `json:"providers"`

	// ResponseSchemas maps a schema identifier to a JSON-Schema fragment.
	ResponseSchemas map[string]map[string]interface{} `json:"responseSchemas"`

	// Prompts maps a prompt identifier to its definition.
	Prompts map[string]Prompt `json:"prompts"`
}

// ProviderConfig is a provider alias's backing declaration.
type ProviderConfig struct {
	// Type identifies the concrete adapter: openai, anthropic, or google.
	Type string `json:"type"`

	// Extras carries provider-specific configuration (base URL overrides,
	// organization IDs, etc.) that the core does not interpret.
	Extras map[string]interface{} `json:"extras,omitempty"`
}

// Prompt groups a family of variants under shared routing rules.
type Prompt struct {
	// Description is free text, shown in CLI summaries only.
	Description string `json:"description,omitempty"`

	// Variants maps a variant identifier to its definition. Exactly one
	// variant must carry Default = true.
	Variants map[string]Variant `json:"variants"`

	// Routing controls which variant a request resolves to.
	Routing Routing `json:"routing"`

	// Chains is accepted and reference-checked for variant-id integrity,
	// but never executed by this core. See DESIGN.md, "chains".
	Chains []ChainStep `json:"chains,omitempty"`
}

// ChainStep is one step of an unexecuted prompt chain.
type ChainStep struct {
	Variant string                 `json:"variant"`
	Extras  map[string]interface{} `json:"extras,omitempty"`
}

// Variant is a concrete (provider, model, parameters, messages) binding.
type Variant struct {
	// Provider is a key into Config.Providers.
	Provider string `json:"provider"`

	// Model is the provider-native model name.
	Model string `json:"model"`

	// Default marks the hard-default variant for its prompt. Exactly one
	// variant per prompt must set this to true.
	Default bool `json:"default,omitempty"`

	// Parameters are canonical model parameters (see parammap.Canonical*).
	Parameters map[string]interface{} `json:"parameters,omitempty"`

	// Messages is an ordered, non-empty list of message templates.
	Messages []MessageTemplate `json:"messages"`

	// ResponseFormat selects raw text or schema-constrained output.
	ResponseFormat ResponseFormat `json:"responseFormat"`

	// Fallback is an ordered list of additional (provider, model) targets
	// tried, in order, after this variant's own provider fails with a
	// retryable error.
	Fallback []FallbackTarget `json:"fallback,omitempty"`
}

// MessageTemplate is one message in a variant's prompt, before rendering.
type MessageTemplate struct {
	Role    string         `json:"role"`
	Content ContentField   `json:"content"`
}

// ContentField wraps the template string for a message.
type ContentField struct {
	Template string `json:"template"`
}

// ResponseFormat selects the shape of the model's reply.
type ResponseFormat struct {
	// Type is "raw_text" or "json_schema".
	Type string `json:"type"`

	// SchemaRef is a key into Config.ResponseSchemas; required and
	// non-empty when Type is "json_schema".
	SchemaRef string `json:"schemaRef,omitempty"`
}

// FallbackTarget names a (provider, model) pair tried after the primary.
type FallbackTarget struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Routing holds the rule sets consulted by the Router, in priority order.
type Routing struct {
	// Rules is a non-empty, ordered list of weighted routing rules.
	Rules []RoutingRule `json:"rules"`

	// Phased is an optional list of time-bounded weight overrides.
	Phased []PhasedRule `json:"phased,omitempty"`
}

// RoutingRule is one entry of a prompt's default/tag-match rule list.
type RoutingRule struct {
	// Target is the variant identifier this rule selects.
	Target string `json:"target"`

	// Weight defaults to 100 when omitted (nil); range [0,100]. A pointer
	// distinguishes an explicit 0 from an absent field.
	Weight *int `json:"weight,omitempty"`

	// Tags, when non-empty, makes this rule eligible only for requests
	// whose tags intersect this list (tag-match layer). Empty/absent
	// makes it eligible for the default-rules layer instead.
	Tags []string `json:"tags,omitempty"`
}

// PhasedRule is a time-bounded weight override.
type PhasedRule struct {
	// Start is an epoch-seconds timestamp; the rule is eligible once
	// now >= Start.
	Start int64 `json:"start"`

	// End is an epoch-seconds timestamp; an absent/zero End means
	// unbounded (+Inf). The rule is eligible while now <= End.
	End int64 `json:"end,omitempty"`

	// Weights maps variant identifier to weight, range [0,100].
	Weights map[string]int `json:"weights"`
}

const (
	ResponseFormatRawText    = "raw_text"
	ResponseFormatJSONSchema = "json_schema"
)

const (
	ProviderTypeOpenAI    = "openai"
	ProviderTypeAnthropic = "anthropic"
	ProviderTypeGoogle    = "google"
)

// SupportedMajorVersion is the only major version this core accepts.
const SupportedMajorVersion = "1"

// IdentifierPattern documents the allowed character class for every
// identifier field (provider alias, variant id, schema id, prompt id).
// Enforced by the structural validator in structural.go.
const IdentifierPattern = `^[A-Za-z0-9_-]+$`
