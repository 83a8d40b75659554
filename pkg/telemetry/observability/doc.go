// Package observability accumulates the single Observability record
// emitted once per ChatCompletion call. A Builder is created at the
// start of the call, mutated as the orchestrator moves through routing,
// rendering, and provider execution, and finalized exactly once via
// BuildSuccess or BuildError, which hand the finished Event to an
// optional sink callback. Sink failures never affect the call's return
// value — emission is fire-and-forget.
package observability
