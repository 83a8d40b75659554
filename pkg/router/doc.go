// Package router selects which variant of a prompt answers a given
// request. Four policy layers are evaluated in strict order — tag-match,
// phased-rollout, default-rules, hard-default — and the first layer that
// produces a candidate set wins. Weighted picks within a layer are
// deterministic: salted SHA-256 bucketing when a userId is present,
// a uniform draw otherwise.
package router
