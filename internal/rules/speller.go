package rules

import (
	"grammarcheck/internal/corrector"
	"grammarcheck/internal/i18n"
	"grammarcheck/internal/token"
)

const SpellerID = "SPELLER_RULE"

// Speller is the part of corrector.Suggester the rule depends on.
type Speller interface {
	IsKnown(word string) bool
	SuggestTerms(word string) []string
	// MinWordLength is the shortest word, in runes, worth checking.
	MinWordLength() int
}

// SpellerRule flags word tokens the tagger could not analyze and the
// suggester's vocabulary does not contain. Tokens shorter than the
// speller's MinWordLength or that do not look like words are ignored.
// The rule is stateless.
type SpellerRule struct {
	messages Messages
	speller  Speller
	minLen   int
}

func NewSpellerRule(messages Messages, speller Speller) *SpellerRule {
	return &SpellerRule{messages: messages, speller: speller, minLen: speller.MinWordLength()}
}

func (r *SpellerRule) ID() string { return SpellerID }

func (r *SpellerRule) Description() string {
	return r.messages.Format(i18n.DescSpelling)
}

func (r *SpellerRule) Match(s *token.Sentence) ([]Match, error) {
	var matches []Match
	for _, i := range s.NonWhitespace() {
		tok := s.Token(i)
		if !r.misspelled(tok) {
			continue
		}
		m, err := NewMatch(r.ID(), tok.Start, tok.End(),
			r.messages.Format(i18n.SpellingMistake, tok.Text()),
			r.speller.SuggestTerms(tok.Text())...)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (r *SpellerRule) misspelled(tok token.AnalyzedToken) bool {
	text := tok.Text()
	if !tok.IsUnknown() || !corrector.IsWord(text) {
		return false
	}
	return tok.Token.Len() >= r.minLen && !r.speller.IsKnown(text)
}

func (r *SpellerRule) Reset() {}
