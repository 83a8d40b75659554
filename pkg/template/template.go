package template

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var locationInMessage = regexp.MustCompile(`(?:at|starting at) (\d+):(\d+)`)

// cache memoizes parsed templates by source string, as spec §4.2
// requires ("parsed templates are memoized by source string for the
// lifetime of the adapter"). There is one process-lifetime cache per
// strictness mode, since a strict parse and a non-strict parse of the
// same source can disagree on validity.
type cache struct {
	mu   sync.RWMutex
	data map[string]*parsed
}

func newCache() *cache {
	return &cache{data: make(map[string]*parsed)}
}

func (c *cache) get(src string) (*parsed, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.data[src]
	return p, ok
}

func (c *cache) put(src string, p *parsed) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// A racing second parse is harmless per spec §4.8's scheduling model;
	// either result may win, so last-write is fine here.
	c.data[src] = p
}

var (
	nonStrictCache = newCache()
	strictCache    = newCache()
)

func parseWith(src string, strict bool) (*parsed, error) {
	c := nonStrictCache
	if strict {
		c = strictCache
	}
	if p, ok := c.get(src); ok {
		return p, nil
	}

	lex := newLexer(src)
	toks, err := lex.tokens()
	if err != nil {
		return nil, newTemplateError(src, err)
	}
	p := newParser(toks, strict)
	nodes, _, err := p.parseProgram()
	if err != nil {
		return nil, newTemplateError(src, err)
	}

	result := &parsed{nodes: nodes}
	c.put(src, result)
	return result, nil
}

func newTemplateError(src string, cause error) *Error {
	msg := cause.Error()
	line, col := 1, 1
	if m := locationInMessage.FindStringSubmatch(msg); m != nil {
		if l, err := strconv.Atoi(m[1]); err == nil {
			line = l
		}
		if c, err := strconv.Atoi(m[2]); err == nil {
			col = c
		}
	}
	return &Error{
		Kind:       ErrorKindTemplate,
		Message:    msg,
		Source:     truncate(src, 200),
		Line:       line,
		Column:     col,
		Suggestion: suggestionFor(msg),
		Cause:      cause,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// Parse parses src in non-strict filter mode: unknown filter names are
// accepted and become no-ops at render time.
func Parse(src string) error {
	_, err := parseWith(src, false)
	return err
}

// ParseStrict parses src in strict filter mode: an unknown filter name is
// a parse error. Used by the config validator's template-syntax check.
func ParseStrict(src string) (interface{}, error) {
	p, err := parseWith(src, true)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Render parses src (non-strict, memoized) and renders it against vars.
// A missing variable resolves to the empty string; an unknown filter is
// a no-op. The only error path is a syntax failure in src itself.
func Render(src string, vars map[string]interface{}) (string, error) {
	p, err := parseWith(src, false)
	if err != nil {
		return "", err
	}
	if vars == nil {
		vars = map[string]interface{}{}
	}
	var sb strings.Builder
	renderNodes(&sb, p.nodes, vars)
	return sb.String(), nil
}
