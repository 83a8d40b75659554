// Package template implements the narrow Liquid-like interpreter the
// engine renders prompt messages with: variable/dotted-path substitution,
// `if`/`else`/`endif`, `for`/`endfor`, and exactly seven filters (join,
// numbered, default, capitalize, upcase, downcase, size).
//
// Variables are non-strict: a missing path renders as the empty string.
// Filters are strict only during config validation (ParseStrict) — an
// unknown filter name is a parse error there, but is silently ignored at
// render time (Render never fails on account of an unknown filter that
// slipped past validation, e.g. from a config that was validated against
// a different adapter version). Parsed templates are memoized by source
// string for the lifetime of the package-level cache.
package template
