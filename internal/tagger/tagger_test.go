package tagger

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammarcheck/internal/dictionary"
	"grammarcheck/internal/token"
)

func testDict() *dictionary.Map {
	return dictionary.NewBuilder().
		Add("cat", dictionary.Entry{Lemma: "cat", Tag: "NN"}).
		Add("bill", dictionary.Entry{Lemma: "bill", Tag: "NN"}).
		Add("Bill", dictionary.Entry{Lemma: "Bill", Tag: "NNP"}).
		Add("Paris", dictionary.Entry{Lemma: "Paris", Tag: "NNP"}).
		Add("levr", dictionary.Entry{Lemma: "levr", Tag: "N m s"}).
		Add("ırmak", dictionary.Entry{Lemma: "ırmak", Tag: "NOUN"}).
		Add("İstanbul", dictionary.Entry{Lemma: "İstanbul", Tag: "PROPN"}).
		Add(":", dictionary.Entry{Lemma: ":", Tag: "PUNCT"}).
		Build()
}

func tagOne(t *testing.T, tg *Tagger, word string) token.AnalyzedToken {
	t.Helper()
	out, err := tg.TagWords([]string{word})
	require.NoError(t, err)
	require.Len(t, out, 1)
	return out[0]
}

func readingPairs(a token.AnalyzedToken) []string {
	out := make([]string, 0, len(a.Readings))
	for _, r := range a.Readings {
		out = append(out, r.Lemma+"/"+r.Tag)
	}
	return out
}

func TestTag_Strategies(t *testing.T) {
	t.Parallel()

	tg := New(testDict(), WithLanguage(English))

	tests := []struct {
		name string
		word string
		want []string
	}{
		{name: "exact form", word: "cat", want: []string{"cat/NN"}},
		{name: "lowercase form", word: "Cat", want: []string{"cat/NN"}},
		{name: "all caps lowercase form", word: "CAT", want: []string{"cat/NN"}},
		{name: "exact and lowercase merged", word: "Bill", want: []string{"Bill/NNP", "bill/NN"}},
		{name: "uppercase first fallback", word: "paris", want: []string{"Paris/NNP"}},
		{name: "no uppercase fallback for non-lowercase", word: "PARIS", want: []string{"/"}},
		{name: "punctuation", word: ":", want: []string{":/PUNCT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tagOne(t, tg, tt.word)
			assert.Equal(t, tt.want, readingPairs(got))
			for _, r := range got.Readings {
				assert.Equal(t, tt.word, r.Surface)
			}
		})
	}
}

func TestTag_UnknownSentinel(t *testing.T) {
	t.Parallel()

	got := tagOne(t, New(testDict()), "zzxq")

	require.Len(t, got.Readings, 1)
	assert.True(t, got.Readings[0].IsUnknown())
	assert.Equal(t, "", got.Readings[0].Lemma)
	assert.Equal(t, "", got.Readings[0].Tag)
	assert.True(t, got.IsUnknown())
}

func TestTag_SentinelNeverMixedWithRealReadings(t *testing.T) {
	t.Parallel()

	tg := New(testDict(), WithLanguage(Breton))
	out, err := tg.TagWords([]string{"Bill", " ", "cat", " ", "levr-mañ", " ", "zzxq"})
	require.NoError(t, err)

	for _, a := range out {
		if a.IsUnknown() {
			continue
		}
		for _, r := range a.Readings {
			assert.False(t, r.IsUnknown(), "token %q", a.Text())
		}
	}
}

func TestTag_BretonSuffixRetry(t *testing.T) {
	t.Parallel()

	tg := New(testDict(), WithLanguage(Breton))

	tests := []struct {
		name    string
		word    string
		unknown bool
	}{
		{name: "single suffix", word: "levr-mañ"},
		{name: "other suffix", word: "levr-hont"},
		{name: "nested suffixes", word: "levr-se-mañ"},
		{name: "capitalized with suffix", word: "Levr-MAÑ"},
		{name: "stem too short", word: "l-mañ", unknown: true},
		{name: "unknown stem", word: "zzxq-se", unknown: true},
		{name: "not a clitic", word: "levr-ar", unknown: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tagOne(t, tg, tt.word)
			assert.Equal(t, tt.unknown, got.IsUnknown())
			for _, r := range got.Readings {
				assert.Equal(t, tt.word, r.Surface, "readings keep the unstripped surface")
			}
			if !tt.unknown {
				assert.Equal(t, []string{"levr/N m s"}, readingPairs(got))
			}
		})
	}
}

func TestTag_NoSuffixStrategyWithoutPattern(t *testing.T) {
	t.Parallel()

	got := tagOne(t, New(testDict(), WithLanguage(Galician)), "levr-mañ")
	assert.True(t, got.IsUnknown())
}

func TestTag_SuffixRetryTerminates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		word    string
	}{
		{name: "empty stem", pattern: `^()-x$`, word: "-x"},
		{name: "non-shortening", pattern: `^(.+)$`, word: "abc"},
		{name: "long chain", pattern: `^(.+)-x$`, word: "a" + strings.Repeat("-x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tg := New(testDict(), WithSuffixPattern(regexp.MustCompile(tt.pattern)))
			got := tagOne(t, tg, tt.word)
			assert.True(t, got.IsUnknown())
			assert.Equal(t, tt.word, got.Readings[0].Surface)
		})
	}
}

func TestTag_SuffixRetryCountsLookups(t *testing.T) {
	t.Parallel()

	var probes []string
	dict := dictionary.LookupFunc(func(form string) ([]dictionary.Entry, error) {
		probes = append(probes, form)
		return nil, nil
	})
	tg := New(dict, WithSuffixPattern(regexp.MustCompile(`^(.+)-x$`)))

	_, err := tg.TagWords([]string{"ab-x-x"})
	require.NoError(t, err)

	// each of ab-x-x, ab-x, ab is probed exactly and uppercase-first
	assert.Equal(t, []string{"ab-x-x", "Ab-x-x", "ab-x", "Ab-x", "ab", "Ab"}, probes)
}

func TestTag_LocaleCaseFolding(t *testing.T) {
	t.Parallel()

	turkish := New(testDict(), WithLanguage(Turkish))
	english := New(testDict(), WithLanguage(English))

	assert.False(t, tagOne(t, turkish, "IRMAK").IsUnknown(), "Turkish lowercases I to dotless ı")
	assert.True(t, tagOne(t, english, "IRMAK").IsUnknown())

	assert.False(t, tagOne(t, turkish, "istanbul").IsUnknown(), "Turkish uppercases i to dotted İ")
	assert.True(t, tagOne(t, english, "istanbul").IsUnknown())
}

func TestTag_OffsetsAreCumulative(t *testing.T) {
	t.Parallel()

	words := []string{"Levr", "-", "mañ", " ", ":", " ", "dañs", "…"}
	out, err := New(testDict()).TagWords(words)
	require.NoError(t, err)
	require.Len(t, out, len(words))

	pos := 0
	var text strings.Builder
	for i, a := range out {
		assert.Equal(t, pos, a.Start, "token %d", i)
		assert.Equal(t, a.Token.Start, a.Start)
		pos = a.End()
		text.WriteString(a.Text())
	}
	assert.Equal(t, strings.Join(words, ""), text.String())

	_, err = token.NewSentence(out)
	assert.NoError(t, err)
}

func TestTag_DocumentOffsets(t *testing.T) {
	t.Parallel()

	toks := []token.Token{token.New("cat", 10), token.New(" ", 13), token.New("Bill", 14)}
	out, err := New(testDict()).Tag(toks)
	require.NoError(t, err)
	assert.Equal(t, 14, out[2].Start)
}

func TestTag_MalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []token.Token
	}{
		{name: "gap", tokens: []token.Token{token.New("cat", 0), token.New("cat", 4)}},
		{name: "overlap", tokens: []token.Token{token.New("cat", 0), token.New("cat", 2)}},
		{name: "negative", tokens: []token.Token{token.New("cat", -2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := New(testDict()).Tag(tt.tokens)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, token.ErrMalformedInput))
		})
	}
}

func TestTag_ResourceFailureIsFatal(t *testing.T) {
	t.Parallel()

	ioErr := errors.New("read dictionary: input/output error")
	dict := dictionary.LookupFunc(func(form string) ([]dictionary.Entry, error) {
		if form == "boom" {
			return nil, ioErr
		}
		return nil, nil
	})

	out, err := New(dict).TagWords([]string{"fine", " ", "boom"})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, dictionary.ErrResourceFailure))
	assert.True(t, errors.Is(err, ioErr))
}

func TestTag_Empty(t *testing.T) {
	t.Parallel()

	out, err := New(testDict()).Tag(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTag_PathologicalCasingDoesNotCrash(t *testing.T) {
	t.Parallel()

	dict := dictionary.NewBuilder().
		Add("Abc", dictionary.Entry{Lemma: "abc", Tag: "X"}).
		Add("abc", dictionary.Entry{Lemma: "abc", Tag: "X"}).
		Build()

	got := tagOne(t, New(dict), "ABC")
	assert.NotEmpty(t, got.Readings)
	assert.False(t, got.IsUnknown())
}

func TestTagger_ConcurrentUse(t *testing.T) {
	t.Parallel()

	tg := New(testDict(), WithLanguage(Breton))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				out, err := tg.TagWords([]string{"Levr-mañ", " ", "Bill"})
				if err != nil || len(out) != 3 || out[0].IsUnknown() {
					t.Errorf("unexpected result: %v %v", out, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestForLanguage(t *testing.T) {
	t.Parallel()

	l, err := ForLanguage("BR")
	require.NoError(t, err)
	assert.NotNil(t, l.Suffix)

	l, err = ForLanguage("de")
	require.NoError(t, err)
	assert.Nil(t, l.Suffix)
	assert.Equal(t, "de", l.Locale.String())

	_, err = ForLanguage("not a language!")
	assert.Error(t, err)
}
