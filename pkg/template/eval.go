package template

import (
	"fmt"
	"strings"
)

// lookup resolves a dotted path against a variables map. A missing key at
// any point in the path resolves to nil — non-strict variables, per spec
// §4.2 ("missing variables resolve to empty string"); the empty-string
// coercion itself happens at the point of use (renderVar), not here,
// since intermediate consumers (if/for) need to distinguish nil/empty
// from other falsy values.
func lookup(vars map[string]interface{}, path []string) interface{} {
	var cur interface{} = vars
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

func isTruthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

func toSequence(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case nil:
		return nil, false
	default:
		return nil, false
	}
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case int:
		return fmt.Sprintf("%d", t)
	case []interface{}:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// applyFilter runs one filter against a value, non-strictly: an unknown
// filter name is a no-op that passes the value through unchanged, per
// spec §4.2 ("unknown filters are accepted at render time").
func applyFilter(value interface{}, call filterCall) interface{} {
	switch call.name {
	case "join":
		sep := ", "
		if len(call.args) > 0 && call.args[0].isString {
			sep = call.args[0].str
		}
		seq, ok := toSequence(value)
		if !ok {
			return value
		}
		parts := make([]string, len(seq))
		for i, e := range seq {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, sep)

	case "numbered":
		prefix := "  "
		if len(call.args) > 0 && call.args[0].isString {
			prefix = call.args[0].str
		}
		seq, ok := toSequence(value)
		if !ok {
			return value
		}
		out := make([]interface{}, len(seq))
		for i, e := range seq {
			out[i] = fmt.Sprintf("%s%d. %s", prefix, i+1, stringify(e))
		}
		return out

	case "default":
		if isEmptyForDefault(value) && len(call.args) > 0 {
			if call.args[0].isString {
				return call.args[0].str
			}
			return call.args[0].num
		}
		return value

	case "capitalize":
		s, ok := value.(string)
		if !ok || s == "" {
			return value
		}
		r := []rune(s)
		r[0] = toUpperRune(r[0])
		return string(r)

	case "upcase":
		s, ok := value.(string)
		if !ok {
			return value
		}
		return strings.ToUpper(s)

	case "downcase":
		s, ok := value.(string)
		if !ok {
			return value
		}
		return strings.ToLower(s)

	case "size":
		switch t := value.(type) {
		case nil:
			return float64(0)
		case string:
			return float64(len([]rune(t)))
		case []interface{}:
			return float64(len(t))
		case map[string]interface{}:
			return float64(len(t))
		default:
			return float64(0)
		}

	default:
		return value
	}
}

// isEmptyForDefault implements spec §4.2's default() semantics exactly:
// null, missing, or empty string trigger the fallback; 0 and false do
// not.
func isEmptyForDefault(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	default:
		return false
	}
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
