// Package fallback runs the ordered attempt loop over a chat
// completion's {primary, fallback1, fallback2, ...} target list. It
// owns all retry policy for the request: a provider adapter makes
// exactly one network attempt, and this package decides whether a
// failure is worth trying the next target. There is no delay, backoff,
// or cap beyond the target list's own length.
package fallback
