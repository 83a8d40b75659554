// Package costs estimates token counts ahead of a provider call and
// turns token counts — estimated or actual — into a USD cost figure
// using a static per-model pricing table. No other package of this
// module calls it, so the result does not appear on the Observability
// event; nothing here blocks or retries a request.
package costs
