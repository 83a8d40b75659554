package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads path, parses it as JSON, and runs the two-stage validator.
// It is the file-based entry point described in spec §6; Validate is the
// in-memory entry point for callers that already have a parsed document
// (e.g. tests, or hosts that fetch configuration from somewhere other
// than the filesystem).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Kind: ErrorKindConfiguration, Cause: fmt.Errorf("reading %s: %w", path, err)}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Kind: ErrorKindConfiguration, Cause: fmt.Errorf("parsing %s: %w", path, err)}
	}

	return validateRaw(raw, data)
}

// Validate accepts an already-parsed document (typically a
// map[string]interface{} produced by encoding/json) and runs the same
// two-stage validation Load does. The document is re-encoded and decoded
// as JSON first, so numbers of any Go numeric type are checked the same
// way as numbers read from a file.
func Validate(raw map[string]interface{}) (*Config, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &ConfigurationError{Kind: ErrorKindConfiguration, Cause: fmt.Errorf("re-encoding document: %w", err)}
	}
	var normalized map[string]interface{}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return nil, &ConfigurationError{Kind: ErrorKindConfiguration, Cause: fmt.Errorf("re-decoding document: %w", err)}
	}
	return validateRaw(normalized, data)
}

func validateRaw(raw map[string]interface{}, data []byte) (*Config, error) {
	if errs := validateStructural(raw); len(errs) > 0 {
		return nil, wrapErrors(errs)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigurationError{Kind: ErrorKindConfiguration, Cause: fmt.Errorf("decoding document: %w", err)}
	}
	applyDefaults(&cfg)

	if errs := validateSemantic(&cfg); len(errs) > 0 {
		return nil, wrapErrors(errs)
	}

	return &cfg, nil
}
