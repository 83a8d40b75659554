// Package openai adapts the normalized providers.Options/Response shape
// onto OpenAI's chat completions wire format: messages pass through as
// role/content pairs, and a json_schema response format attaches a
// native structured-output directive carrying the resolved schema.
package openai
