// Package telemetry groups the engine's observability surface:
// structured logging (logging), Prometheus metrics (metrics),
// OpenTelemetry tracing (tracing), token/cost estimation (costs), and
// the Observability event Builder (observability) that ties a single
// ChatCompletion call's routing, rendering, and provider stages
// together into one emitted record.
//
// None of these subpackages import each other. The orchestrator uses
// only the observability Builder; logging, metrics, tracing and costs
// are not imported by any other package of this module.
package telemetry
