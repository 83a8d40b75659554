package config

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a ConfigurationError. It mirrors the four
// structured error kinds of the engine (configuration-error is one of
// them); the config package only ever produces this one kind, but still
// exposes the same Kind/Details shape the rest of the engine uses so
// callers can pattern-match uniformly.
type ErrorKind string

const ErrorKindConfiguration ErrorKind = "configuration-error"

// Details is the structured context bag attached to a ConfigurationError:
// the JSON path of the offending field, the identifiers involved, and any
// suggestion produced by a collaborator (e.g. the template adapter).
type Details struct {
	Path       string   `json:"path,omitempty"`
	Offenders  []string `json:"offenders,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// FieldError is a single structural or semantic violation.
type FieldError struct {
	Field   string
	Message string
	Details Details
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigurationError wraps one or more FieldErrors discovered while
// loading or validating a configuration. It is the configuration-error
// kind described in spec §7.
type ConfigurationError struct {
	Kind   ErrorKind
	Errors []FieldError
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if len(e.Errors) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("configuration error: %v", e.Cause)
		}
		return "configuration error"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration error: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration error: %d violations:\n", len(e.Errors))
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", fe.Error())
	}
	return sb.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// newFieldError is a small constructor used throughout structural.go and
// semantic.go to keep call sites short.
func newFieldError(field, message string, details Details) FieldError {
	return FieldError{Field: field, Message: message, Details: details}
}

// wrapErrors turns a non-empty []FieldError into a *ConfigurationError, or
// returns nil when the slice is empty. Every validation pass funnels its
// accumulated errors through this helper.
func wrapErrors(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ConfigurationError{Kind: ErrorKindConfiguration, Errors: errs}
}
