// Package config defines the Promptuna configuration model and the
// two-stage loader/validator that turns a configuration file into an
// immutable Config value.
//
// Loading happens in five steps: read the file, parse it as JSON, run
// structural validation, decode into Config and apply defaults, then run
// semantic validation. Structural validation checks field presence, types,
// enumerations, and identifier patterns. Semantic validation runs as a
// fixed, ordered sequence of checks (version, default-variant,
// response-schema references, routing references, fallback references,
// required provider parameters, template syntax) and stops at the first
// class that produces at least one error.
package config
