// Package google adapts the normalized providers.Options/Response shape
// onto a Gemini-style generateContent wire format: system messages fold
// into a system-instruction field, and the remaining messages serialize
// into a single prompt with "User: "/"Assistant: " prefixes joined by
// double newline. Structured output is implemented with responseSchema
// plus an application/json MIME type.
package google
