package config

// suggestIdentifier returns the closest candidate to want by edit
// distance, for use in a Details.Suggestion field, or "" when candidates
// is empty or nothing is close enough to be useful. Grounded on the
// teacher's mpl/errors suggestion-hint idiom (Levenshtein distance over
// identifier candidates).
func suggestIdentifier(want string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	best := candidates[0]
	bestDist := levenshtein(want, best)
	for _, c := range candidates[1:] {
		if d := levenshtein(want, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	// Don't suggest something wildly different from what was typed.
	maxLen := len(want)
	if len(best) > maxLen {
		maxLen = len(best)
	}
	if maxLen == 0 || bestDist > (maxLen+1)/2 {
		return ""
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}
