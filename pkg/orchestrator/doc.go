// Package orchestrator wires the config loader, router, template
// renderer, parameter mapper, fallback executor, and telemetry builder
// into the two operations a caller actually invokes: GetTemplate and
// ChatCompletion. An Engine owns two monotonic, set-once caches for its
// lifetime — the parsed Config and one provider instance per provider
// type — and shares them with no other Engine instance. The template
// package's memoized parse cache is package-level and shared by every
// Engine in the process.
package orchestrator
