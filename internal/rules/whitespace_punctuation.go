package rules

import (
	"grammarcheck/internal/i18n"
	"grammarcheck/internal/token"
)

const WhitespacePunctuationID = "WHITESPACE_PUNCTUATION"

// WhitespaceBeforePunctuationRule flags whitespace in front of ':', ';'
// and a '%' that follows a number:
//
//	word : -> word:
//	word ; -> word;
//	5 %    -> 5%
//
// A colon followed by whitespace and a number (" : 0") is left alone.
// The rule keeps no state between sentences.
type WhitespaceBeforePunctuationRule struct {
	messages Messages
}

func NewWhitespaceBeforePunctuationRule(messages Messages) *WhitespaceBeforePunctuationRule {
	return &WhitespaceBeforePunctuationRule{messages: messages}
}

func (r *WhitespaceBeforePunctuationRule) ID() string { return WhitespacePunctuationID }

func (r *WhitespaceBeforePunctuationRule) Description() string {
	return r.messages.Format(i18n.DescWhitespacePunct)
}

func (r *WhitespaceBeforePunctuationRule) Match(s *token.Sentence) ([]Match, error) {
	var matches []Match
	prevWhite := false
	prevLen := 0
	for i := 0; i < s.Len(); i++ {
		tok := s.Token(i)
		text := tok.Text()
		isWhite := tok.IsWhitespace() || tok.IsNonBreakingWhitespace() || tok.IsFieldMarker()

		var key, suggestion string
		if prevWhite {
			switch {
			case text == ":":
				if !(i+2 < s.Len() && s.Token(i+1).IsWhitespace() && token.StartsWithDigit(s.Token(i+2).Text())) {
					key, suggestion = i18n.NoSpaceBeforeColon, ":"
				}
			case text == ";":
				key, suggestion = i18n.NoSpaceBeforeSemicolon, ";"
			case text == "%" && i > 1 && token.StartsWithDigit(s.Token(i-2).Text()):
				key, suggestion = i18n.NoSpaceBeforePercentage, "%"
			}
		}
		if key != "" {
			from := s.Token(i - 1).Start
			m, err := NewMatch(r.ID(), from, from+1+prevLen, r.messages.Format(key), suggestion)
			if err != nil {
				return nil, err
			}
			matches = append(matches, m)
		}
		// a field marker counts as whitespace for itself but not for the next token
		prevWhite = isWhite && !tok.IsFieldMarker()
		prevLen = tok.Token.Len()
	}
	return matches, nil
}

func (r *WhitespaceBeforePunctuationRule) Reset() {}
