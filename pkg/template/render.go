package template

import "strings"

// renderNodes writes the rendered form of nodes into sb using vars for
// variable/condition/loop resolution.
func renderNodes(sb *strings.Builder, nodes []node, vars map[string]interface{}) {
	for _, n := range nodes {
		switch t := n.(type) {
		case textNode:
			sb.WriteString(t.text)
		case varNode:
			sb.WriteString(renderVar(t, vars))
		case ifNode:
			cond := isTruthy(lookup(vars, t.path))
			if t.negate {
				cond = !cond
			}
			if cond {
				renderNodes(sb, t.then, vars)
			} else {
				renderNodes(sb, t.els, vars)
			}
		case forNode:
			seq, _ := toSequence(lookup(vars, t.path))
			for _, item := range seq {
				loopVars := make(map[string]interface{}, len(vars)+1)
				for k, v := range vars {
					loopVars[k] = v
				}
				loopVars[t.varName] = item
				renderNodes(sb, t.body, loopVars)
			}
		}
	}
}

func renderVar(v varNode, vars map[string]interface{}) string {
	value := lookup(vars, v.path)
	for _, f := range v.filters {
		value = applyFilter(value, f)
	}
	if value == nil {
		return ""
	}
	return stringify(value)
}
