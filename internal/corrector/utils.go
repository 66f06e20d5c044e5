package corrector

import (
	"strings"
	"unicode"
)

// unitDL is the unweighted Damerau-Levenshtein distance (optimal string
// alignment) between a and b in runes.
func unitDL(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				x = min(x, prev2[j-2]+1)
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}

// deletes returns s and every string obtained from it by removing up to
// maxDist runes.
func deletes(s string, maxDist int) []string {
	seen := map[string]bool{s: true}
	out := []string{s}
	frontier := []string{s}
	for d := 0; d < maxDist; d++ {
		var next []string
		for _, w := range frontier {
			rw := []rune(w)
			if len(rw) == 0 {
				continue
			}
			for i := range rw {
				del := string(rw[:i]) + string(rw[i+1:])
				if !seen[del] {
					seen[del] = true
					out = append(out, del)
					next = append(next, del)
				}
			}
		}
		frontier = next
	}
	return out
}

func prefix(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func isTitle(s string) bool {
	r := []rune(s)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return false
	}
	rest := string(r[1:])
	return strings.ToLower(rest) == rest
}

func isUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}

func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

// RestoreCase applies the case pattern of original (Title or UPPER) to
// suggestion.
func RestoreCase(original, suggestion string) string {
	switch {
	case len([]rune(original)) > 1 && isUpper(original):
		return strings.ToUpper(suggestion)
	case isTitle(original):
		return title(suggestion)
	}
	return suggestion
}
