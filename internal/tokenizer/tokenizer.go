// Package tokenizer splits plain text into sentences of tokens with
// document-absolute character offsets.
package tokenizer

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"grammarcheck/internal/token"
)

// Words with inner hyphens or apostrophes, digit runs, single whitespace
// runes and any other single rune. Every rune of the input is covered.
var tokenRe = regexp.MustCompile(`[\pL\pM]+(?:['’-][\pL\pM]+)*|\p{Nd}+|[\s\p{Z}]|(?s:.)`)

// Tokenizer is stateless and safe for concurrent use.
type Tokenizer struct{}

func New() *Tokenizer { return &Tokenizer{} }

// Tokenize returns the contiguous tokens of text starting at offset 0.
func (Tokenizer) Tokenize(text string) []token.Token {
	locs := tokenRe.FindAllStringIndex(text, -1)
	out := make([]token.Token, 0, len(locs))
	pos, last := 0, 0
	for _, loc := range locs {
		// skipped bytes still count towards offsets
		if loc[0] != last {
			pos += utf8.RuneCountInString(text[last:loc[0]])
		}
		tok := token.New(text[loc[0]:loc[1]], pos)
		out = append(out, tok)
		pos = tok.End()
		last = loc[1]
	}
	return out
}

// Sentences groups the tokens of text into sentences. A sentence ends
// after a run of terminal punctuation that is followed by whitespace, in
// which case the whitespace stays with the sentence, or directly by a
// word starting with an uppercase letter. The second case does not apply
// after a single letter, so "U.S.A." stays whole.
func (t Tokenizer) Sentences(text string) [][]token.Token {
	toks := t.Tokenize(text)
	var out [][]token.Token
	start := 0
	for i := 0; i < len(toks); {
		if !isTerminal(toks[i].Text) {
			i++
			continue
		}
		run := i
		for i < len(toks) && isTerminal(toks[i].Text) {
			i++
		}
		switch {
		case i < len(toks) && isSpace(toks[i]):
			for i < len(toks) && isSpace(toks[i]) {
				i++
			}
		case i < len(toks) && startsUpper(toks[i].Text) && !isInitial(toks, run-1):
		default:
			continue
		}
		out = append(out, toks[start:i])
		start = i
	}
	if start < len(toks) {
		out = append(out, toks[start:])
	}
	return out
}

func isTerminal(s string) bool {
	switch s {
	case ".", "!", "?", "…":
		return true
	}
	return false
}

func isSpace(t token.Token) bool { return t.Whitespace || t.NonBreaking }

// isInitial reports whether toks[i] is a lone letter, as in the parts of
// an abbreviation.
func isInitial(toks []token.Token, i int) bool {
	if i < 0 || toks[i].Len() != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(toks[i].Text)
	return unicode.IsLetter(r)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
