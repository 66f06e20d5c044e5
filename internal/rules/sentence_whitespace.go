package rules

import (
	"grammarcheck/internal/i18n"
	"grammarcheck/internal/token"
)

const SentenceWhitespaceID = "SENTENCE_WHITESPACE"

// sentenceEndState is what SentenceWhitespaceRule remembers about the
// previous sentence of the document.
type sentenceEndState struct {
	endsWithPunctuation bool
}

// SentenceWhitespaceRule flags a sentence that starts right after the
// terminal punctuation of the previous one, as in "a text.And more".
// It carries state across sentences and must be Reset between documents.
type SentenceWhitespaceRule struct {
	messages Messages
	state    sentenceEndState
}

func NewSentenceWhitespaceRule(messages Messages) *SentenceWhitespaceRule {
	return &SentenceWhitespaceRule{messages: messages}
}

func (r *SentenceWhitespaceRule) ID() string { return SentenceWhitespaceID }

func (r *SentenceWhitespaceRule) Description() string {
	return r.messages.Format(i18n.DescSentenceWhitespace)
}

func (r *SentenceWhitespaceRule) Match(s *token.Sentence) ([]Match, error) {
	if s.Len() == 0 {
		return nil, nil
	}
	var matches []Match
	first := s.Token(0)
	if r.state.endsWithPunctuation && !isBlank(first) {
		m, err := NewMatch(r.ID(), first.Start, first.End(),
			r.messages.Format(i18n.AddSpaceBetweenSentence), " "+first.Text())
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	r.state.endsWithPunctuation = isTerminal(s.Token(s.Len() - 1).Text())
	return matches, nil
}

// Reset forgets the previous sentence.
func (r *SentenceWhitespaceRule) Reset() { r.state = sentenceEndState{} }

func isBlank(t token.AnalyzedToken) bool {
	return t.IsWhitespace() || t.IsNonBreakingWhitespace() || t.IsFieldMarker()
}

func isTerminal(s string) bool {
	switch s {
	case ".", "!", "?", "…":
		return true
	}
	return false
}
