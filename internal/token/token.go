// Package token holds the immutable token model shared by the tagger,
// the rule engine and the orchestrator.
//
// All offsets are character offsets (Unicode code points) into the
// original document text.
package token

import (
	"unicode"
	"unicode/utf8"
)

const (
	nbsp        = '\u00A0'
	narrowNbsp  = '\u202F'
	figureSpace = '\u2007'
	fieldMarker = "\u200B"
)

// Token is one unit of tokenized text.
type Token struct {
	Text        string
	Start       int
	Whitespace  bool
	NonBreaking bool
	FieldMarker bool
}

// New builds a token at start and classifies its facets from the text.
func New(text string, start int) Token {
	return Token{
		Text:        text,
		Start:       start,
		Whitespace:  IsWhitespace(text),
		NonBreaking: IsNonBreakingWhitespace(text),
		FieldMarker: IsFieldMarker(text),
	}
}

// FromStrings builds contiguous tokens starting at offset 0.
func FromStrings(words []string) []Token {
	out := make([]Token, len(words))
	pos := 0
	for i, w := range words {
		out[i] = New(w, pos)
		pos += Len(w)
	}
	return out
}

// Len returns the length of s in characters.
func Len(s string) int { return utf8.RuneCountInString(s) }

// End returns the exclusive end offset of the token.
func (t Token) End() int { return t.Start + Len(t.Text) }

// Len returns the token length in characters.
func (t Token) Len() int { return Len(t.Text) }

// IsWhitespace reports whether s is a non-empty run of breaking whitespace.
// Non-breaking variants are excluded; see IsNonBreakingWhitespace.
func IsWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) || isNonBreaking(r) {
			return false
		}
	}
	return true
}

// IsNonBreakingWhitespace reports whether s consists only of
// non-breaking space variants.
func IsNonBreakingWhitespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNonBreaking(r) {
			return false
		}
	}
	return true
}

// IsFieldMarker reports whether s is the non-printing field placeholder.
func IsFieldMarker(s string) bool { return s == fieldMarker }

func isNonBreaking(r rune) bool {
	return r == nbsp || r == narrowNbsp || r == figureSpace
}

// StartsWithDigit reports whether the first character of s is a decimal digit.
func StartsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsDigit(r)
}
