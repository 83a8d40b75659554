// Package errs holds the execution-error kind shared across the engine's
// pipeline — configuration-error, template-error and provider-error live
// in pkg/config, pkg/template and pkg/providers, next to the code that
// produces them, but execution-error crosses package boundaries (the
// router and the orchestrator both raise or rewrap it), so it lives here
// instead of being owned by a single producer.
package errs

import "fmt"

const ErrorKindExecution = "execution-error"

// ExecutionError is raised for request-shape problems that are not
// configuration mistakes and not provider failures: an unknown variant
// requested explicitly, or a terminal error from deeper in the pipeline
// rewrapped with execution context. Details carries whatever identifiers
// are relevant (the requested variant id, the prompt id, etc).
type ExecutionError struct {
	Kind    string
	Message string
	Code    string
	Details map[string]interface{}
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewExecutionError builds an *ExecutionError with the execution-error
// kind already set.
func NewExecutionError(code, message string, details map[string]interface{}) *ExecutionError {
	return &ExecutionError{Kind: ErrorKindExecution, Code: code, Message: message, Details: details}
}

// WrapExecutionError rewraps a terminal error from deeper in the
// pipeline (a *ProviderError, a *template.Error) into an execution-error
// with cause as its Unwrap target. Details is stored as given; the
// caller decides which of the cause's fields it carries.
func WrapExecutionError(cause error, code, message string, details map[string]interface{}) *ExecutionError {
	return &ExecutionError{Kind: ErrorKindExecution, Code: code, Message: message, Details: details, Cause: cause}
}
