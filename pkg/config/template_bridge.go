package config

import "github.com/rkotzy/promptuna/pkg/template"

// templateSyntaxCheck parses src in strict filter mode — unknown filters
// are rejected here even though they are tolerated at render time — and
// discards the parsed tree. Only a syntax/unknown-filter error is
// reported back to the semantic validator.
func templateSyntaxCheck(src string) error {
	_, err := template.ParseStrict(src)
	return err
}
