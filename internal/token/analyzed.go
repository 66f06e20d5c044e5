package token

// Reading is one candidate (lemma, tag) interpretation of a token.
// The zero Lemma and Tag mark the unknown-word sentinel.
type Reading struct {
	Surface string
	Lemma   string
	Tag     string
}

// UnknownReading returns the sentinel reading for an unrecognized surface form.
func UnknownReading(surface string) Reading {
	return Reading{Surface: surface}
}

// IsUnknown reports whether r is the unknown-word sentinel.
func (r Reading) IsUnknown() bool { return r.Lemma == "" && r.Tag == "" }

// AnalyzedToken is a token with its candidate readings.
type AnalyzedToken struct {
	Token    Token
	Readings []Reading
	Start    int
}

// NewAnalyzed attaches readings to t. The readings slice is copied.
func NewAnalyzed(t Token, readings []Reading) AnalyzedToken {
	rs := make([]Reading, len(readings))
	copy(rs, readings)
	return AnalyzedToken{Token: t, Readings: rs, Start: t.Start}
}

func (a AnalyzedToken) Text() string { return a.Token.Text }

func (a AnalyzedToken) End() int { return a.Start + a.Token.Len() }

func (a AnalyzedToken) IsWhitespace() bool { return a.Token.Whitespace }

func (a AnalyzedToken) IsNonBreakingWhitespace() bool { return a.Token.NonBreaking }

func (a AnalyzedToken) IsFieldMarker() bool { return a.Token.FieldMarker }

// IsUnknown reports whether the dictionary had no entry for the token.
func (a AnalyzedToken) IsUnknown() bool {
	return len(a.Readings) == 1 && a.Readings[0].IsUnknown()
}

// HasLemma reports whether any reading has the given lemma.
func (a AnalyzedToken) HasLemma(lemma string) bool {
	for _, r := range a.Readings {
		if !r.IsUnknown() && r.Lemma == lemma {
			return true
		}
	}
	return false
}

// HasTag reports whether any reading has exactly the given tag.
func (a AnalyzedToken) HasTag(tag string) bool {
	for _, r := range a.Readings {
		if !r.IsUnknown() && r.Tag == tag {
			return true
		}
	}
	return false
}
