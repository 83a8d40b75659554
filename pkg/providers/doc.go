// Package providers defines the normalized request/response shapes and
// error classification shared by every provider adapter (openai,
// anthropic, google), plus a base single-attempt HTTP transport they
// embed. Retries live one layer up, in pkg/fallback — an adapter here
// makes exactly one network attempt per ChatCompletion call.
package providers
