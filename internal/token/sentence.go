package token

import "strings"

// Sentence is a read-only sequence of analyzed tokens, whitespace included.
type Sentence struct {
	tokens []AnalyzedToken
}

// NewSentence validates that the tokens are contiguous and wraps them.
// The token slice is copied; callers may reuse it.
func NewSentence(tokens []AnalyzedToken) (*Sentence, error) {
	if err := CheckContiguous(tokens); err != nil {
		return nil, err
	}
	ts := make([]AnalyzedToken, len(tokens))
	copy(ts, tokens)
	return &Sentence{tokens: ts}, nil
}

// CheckContiguous verifies that every token starts where the previous one
// ended and that the duplicated start offsets agree.
func CheckContiguous(tokens []AnalyzedToken) error {
	for i, t := range tokens {
		if t.Start != t.Token.Start {
			return &OffsetError{Index: i, Expected: t.Token.Start, Got: t.Start}
		}
		if i == 0 {
			if t.Start < 0 {
				return &OffsetError{Index: 0, Expected: 0, Got: t.Start}
			}
			continue
		}
		if want := tokens[i-1].End(); t.Start != want {
			return &OffsetError{Index: i, Expected: want, Got: t.Start}
		}
	}
	return nil
}

// Len returns the number of tokens.
func (s *Sentence) Len() int { return len(s.tokens) }

// Token returns the i-th token. The returned value shares its readings
// slice with the sentence and must not be modified.
func (s *Sentence) Token(i int) AnalyzedToken { return s.tokens[i] }

// Tokens returns a copy of the token slice.
func (s *Sentence) Tokens() []AnalyzedToken {
	out := make([]AnalyzedToken, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Start is the offset of the first token, or 0 for an empty sentence.
func (s *Sentence) Start() int {
	if len(s.tokens) == 0 {
		return 0
	}
	return s.tokens[0].Start
}

// End is the exclusive end offset of the last token.
func (s *Sentence) End() int {
	if len(s.tokens) == 0 {
		return 0
	}
	return s.tokens[len(s.tokens)-1].End()
}

// Text reconstructs the sentence text.
func (s *Sentence) Text() string {
	var b strings.Builder
	for _, t := range s.tokens {
		b.WriteString(t.Text())
	}
	return b.String()
}

// NonWhitespace returns the indices of tokens that are neither whitespace
// nor field markers.
func (s *Sentence) NonWhitespace() []int {
	idx := make([]int, 0, len(s.tokens))
	for i, t := range s.tokens {
		if t.IsWhitespace() || t.IsNonBreakingWhitespace() || t.IsFieldMarker() {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}
