package score

import "strings"

// caseNameNoise are tokens that carry no identity when comparing case
// names across sources.
var caseNameNoise = map[string]bool{
	"v": true, "v.": true, "vs": true, "vs.": true,
	"in": true, "re": true, "ex": true, "parte": true,
	"the": true, "of": true, "et": true, "al": true, "al.": true,
	"state": false, // "State" is identity in state-party cases, keep it
}

// Similarity compares two case names on a 0-1 scale. It blends token-set
// overlap (robust to reordering and abbreviation) with a normalized edit
// distance over the joined tokens (catches small spelling drift).
func Similarity(a, b string) float64 {
	ta := nameTokens(a)
	tb := nameTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	jac := jaccard(ta, tb)
	lev := 1 - normalizedLevenshtein(strings.Join(ta, " "), strings.Join(tb, " "))

	return 0.6*jac + 0.4*lev
}

func nameTokens(s string) []string {
	s = strings.ToLower(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if caseNameNoise[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func jaccard(a, b []string) float64 {
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func normalizedLevenshtein(a, b string) float64 {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 1
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return float64(prev[lb]) / float64(maxLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
