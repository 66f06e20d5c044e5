// Package tagger assigns candidate morphological readings to tokens by
// probing a dictionary with case and suffix fallbacks.
//
// For each token the tagger tries, in order, the exact form, the lowercase
// form (merged with the exact result when the token is not lowercase), the
// uppercase-first form (lowercase tokens only), and finally strips a clitic
// suffix and starts over. Tokens nothing matches get the unknown-word
// sentinel reading.
package tagger

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grammarcheck/internal/dictionary"
	"grammarcheck/internal/token"
)

// Tagger is safe for concurrent use if its dictionary is.
type Tagger struct {
	dict   dictionary.Lookup
	locale language.Tag
	suffix *regexp.Regexp
}

type Option func(*Tagger)

// WithLocale sets the locale used for case folding.
func WithLocale(tag language.Tag) Option {
	return func(t *Tagger) { t.locale = tag }
}

// WithSuffixPattern enables suffix-stripping retries. The first capture
// group of re must hold the form without the suffix.
func WithSuffixPattern(re *regexp.Regexp) Option {
	return func(t *Tagger) { t.suffix = re }
}

// WithLanguage applies the locale and suffix pattern of a preset.
func WithLanguage(l Language) Option {
	return func(t *Tagger) {
		t.locale = l.Locale
		t.suffix = l.Suffix
	}
}

func New(dict dictionary.Lookup, opts ...Option) *Tagger {
	t := &Tagger{dict: dict, locale: language.Und}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Locale returns the case folding locale.
func (t *Tagger) Locale() language.Tag { return t.locale }

// casers are stateful and must not be shared between goroutines, so every
// Tag call gets its own pair.
type casers struct {
	lower cases.Caser
	upper cases.Caser
}

func (t *Tagger) casers() *casers {
	return &casers{lower: cases.Lower(t.locale), upper: cases.Upper(t.locale)}
}

// TagWords tags raw token strings whose concatenation is the sentence text.
// Offsets start at 0.
func (t *Tagger) TagWords(words []string) ([]token.AnalyzedToken, error) {
	return t.Tag(token.FromStrings(words))
}

// Tag returns one analyzed token per input token. Offsets are derived from
// the first token's start and the lengths of the tokens before it; a token
// declaring a different start fails with token.ErrMalformedInput. A
// dictionary failure aborts the call.
func (t *Tagger) Tag(tokens []token.Token) ([]token.AnalyzedToken, error) {
	out := make([]token.AnalyzedToken, 0, len(tokens))
	if len(tokens) == 0 {
		return out, nil
	}
	c := t.casers()
	pos := tokens[0].Start
	if pos < 0 {
		return nil, &token.OffsetError{Index: 0, Expected: 0, Got: pos}
	}
	for i, tok := range tokens {
		if tok.Start != pos {
			return nil, &token.OffsetError{Index: i, Expected: pos, Got: tok.Start}
		}
		readings, err := t.analyze(tok.Text, c)
		if err != nil {
			return nil, fmt.Errorf("tag token %d %q: %w", i, tok.Text, err)
		}
		out = append(out, token.NewAnalyzed(tok, readings))
		pos += tok.Len()
	}
	return out, nil
}

func (t *Tagger) analyze(word string, c *casers) ([]token.Reading, error) {
	probe := word
	// every successful strip shortens the probe, so the rune count bounds the loop
	for budget := utf8.RuneCountInString(word); budget >= 0; budget-- {
		readings, err := t.probe(word, probe, c)
		if err != nil {
			return nil, err
		}
		if len(readings) > 0 {
			return readings, nil
		}
		next, ok := t.strip(probe)
		if !ok {
			break
		}
		probe = next
	}
	return []token.Reading{token.UnknownReading(word)}, nil
}

func (t *Tagger) probe(surface, probe string, c *casers) ([]token.Reading, error) {
	exact, err := t.lookup(probe)
	if err != nil {
		return nil, err
	}
	out := appendReadings(nil, surface, exact)

	lower := c.lower.String(probe)
	isLower := probe == lower
	if !isLower {
		lowered, err := t.lookup(lower)
		if err != nil {
			return nil, err
		}
		out = appendReadings(out, surface, lowered)
	}

	if len(out) == 0 && isLower {
		upper, err := t.lookup(c.upperFirst(probe))
		if err != nil {
			return nil, err
		}
		out = appendReadings(out, surface, upper)
	}
	return out, nil
}

func (t *Tagger) lookup(form string) ([]dictionary.Entry, error) {
	es, err := t.dict.Lookup(form)
	if err != nil {
		return nil, &dictionary.ResourceError{Form: form, Err: err}
	}
	return es, nil
}

// strip removes one clitic suffix. It reports false when there is no
// pattern, no match, or the result would not be a shorter non-empty form.
func (t *Tagger) strip(probe string) (string, bool) {
	if t.suffix == nil {
		return "", false
	}
	m := t.suffix.FindStringSubmatch(probe)
	if len(m) < 2 || m[1] == "" || len(m[1]) >= len(probe) {
		return "", false
	}
	return m[1], true
}

func (c *casers) upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return c.upper.String(s[:size]) + s[size:]
}

// appendReadings attaches entries to the surface form, skipping readings
// already present.
func appendReadings(out []token.Reading, surface string, entries []dictionary.Entry) []token.Reading {
next:
	for _, e := range entries {
		r := token.Reading{Surface: surface, Lemma: e.Lemma, Tag: e.Tag}
		if r.IsUnknown() {
			continue
		}
		for _, have := range out {
			if have == r {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}
