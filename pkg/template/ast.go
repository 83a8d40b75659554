package template

// node is one piece of a parsed template: literal text, a variable
// interpolation, a conditional, or a loop.
type node interface{}

type textNode struct {
	text string
}

// varNode is a `{{ path | filter: arg, ... | filter2 }}` interpolation.
type varNode struct {
	path    []string
	filters []filterCall
}

type filterCall struct {
	name string
	args []literal
}

// literal is a filter argument: either a string or a number, known at
// parse time (filter arguments are never variable references).
type literal struct {
	isString bool
	str      string
	num      float64
}

// ifNode is `{% if [not] path %} ... {% else %} ... {% endif %}`.
type ifNode struct {
	negate bool
	path   []string
	then   []node
	els    []node
}

// forNode is `{% for item in path %} ... {% endfor %}`.
type forNode struct {
	varName string
	path    []string
	body    []node
}

// parsed is the cached, render-ready form of one template source string.
type parsed struct {
	nodes []node
}
