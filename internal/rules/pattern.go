package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"grammarcheck/internal/token"
)

// PatternToken is one element of a pattern. All set conditions must hold
// for a token to match; Negate inverts the combined result. A token that
// matches any of the Exceptions does not match the element.
//
// Lemma and Tag conditions are satisfied by any single reading carrying
// both; the unknown-word sentinel satisfies neither.
type PatternToken struct {
	Surface       string
	SurfaceRegexp *regexp.Regexp
	CaseSensitive bool
	Lemma         string
	Tag           *regexp.Regexp
	// Unknown requires the token to carry only the unknown-word sentinel.
	Unknown    bool
	Negate     bool
	Exceptions []PatternToken
}

func (p PatternToken) matches(t token.AnalyzedToken) bool {
	ok := p.matchesSelf(t)
	if p.Negate {
		ok = !ok
	}
	if !ok {
		return false
	}
	for _, ex := range p.Exceptions {
		if ex.matches(t) {
			return false
		}
	}
	return true
}

func (p PatternToken) matchesSelf(t token.AnalyzedToken) bool {
	text := t.Text()
	if p.Surface != "" {
		if p.CaseSensitive && text != p.Surface {
			return false
		}
		if !p.CaseSensitive && !strings.EqualFold(text, p.Surface) {
			return false
		}
	}
	if p.SurfaceRegexp != nil && !p.SurfaceRegexp.MatchString(text) {
		return false
	}
	if p.Unknown && !t.IsUnknown() {
		return false
	}
	if p.Lemma == "" && p.Tag == nil {
		return true
	}
	for _, r := range t.Readings {
		if r.IsUnknown() {
			continue
		}
		if p.Lemma != "" && r.Lemma != p.Lemma {
			continue
		}
		if p.Tag != nil && !p.Tag.MatchString(r.Tag) {
			continue
		}
		return true
	}
	return false
}

// PatternRule matches a sequence of PatternTokens against the
// non-whitespace tokens of a sentence. Suggestions are templates in which
// \1..\9 stand for the text of the matched elements. Matches never overlap;
// scanning resumes after the last matched token. The rule is stateless.
type PatternRule struct {
	id          string
	description string
	message     string
	pattern     []PatternToken
	suggestions []string
}

// NewPatternRule validates the templates against the pattern length.
func NewPatternRule(id, description, message string, pattern []PatternToken, suggestions ...string) (*PatternRule, error) {
	if id == "" {
		return nil, fmt.Errorf("pattern rule: empty id")
	}
	if len(pattern) == 0 {
		return nil, fmt.Errorf("pattern rule %s: empty pattern", id)
	}
	for _, s := range suggestions {
		for _, ref := range backRef.FindAllStringSubmatch(s, -1) {
			n, _ := strconv.Atoi(ref[1])
			if n < 1 || n > len(pattern) {
				return nil, fmt.Errorf("pattern rule %s: suggestion %q references element %d of %d", id, s, n, len(pattern))
			}
		}
	}
	return &PatternRule{
		id:          id,
		description: description,
		message:     message,
		pattern:     append([]PatternToken(nil), pattern...),
		suggestions: append([]string(nil), suggestions...),
	}, nil
}

var backRef = regexp.MustCompile(`\\(\d)`)

func (r *PatternRule) ID() string { return r.id }

func (r *PatternRule) Description() string { return r.description }

func (r *PatternRule) Match(s *token.Sentence) ([]Match, error) {
	idx := s.NonWhitespace()
	var matches []Match
	for i := 0; i+len(r.pattern) <= len(idx); {
		if !r.matchAt(s, idx[i:i+len(r.pattern)]) {
			i++
			continue
		}
		span := idx[i : i+len(r.pattern)]
		first, last := s.Token(span[0]), s.Token(span[len(span)-1])
		m, err := NewMatch(r.id, first.Start, last.End(), r.message, r.suggest(s, span)...)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
		i += len(r.pattern)
	}
	return matches, nil
}

func (r *PatternRule) matchAt(s *token.Sentence, span []int) bool {
	for k, p := range r.pattern {
		if !p.matches(s.Token(span[k])) {
			return false
		}
	}
	return true
}

func (r *PatternRule) suggest(s *token.Sentence, span []int) []string {
	out := make([]string, 0, len(r.suggestions))
	for _, tmpl := range r.suggestions {
		out = append(out, backRef.ReplaceAllStringFunc(tmpl, func(ref string) string {
			n, _ := strconv.Atoi(ref[1:])
			return s.Token(span[n-1]).Text()
		}))
	}
	return out
}

func (r *PatternRule) Reset() {}
