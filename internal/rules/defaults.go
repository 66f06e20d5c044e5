package rules

import (
	"regexp"

	"grammarcheck/internal/i18n"
)

const (
	ArticleAnID = "EN_A_VS_AN"
	ModalOfID   = "EN_MODAL_OF"
)

var (
	vowelStart = regexp.MustCompile(`(?i)^[aeiou]\pL`)
	// vowel letters read as a consonant sound: "a unit", "a euro", "a one-off"
	consonantSound = regexp.MustCompile(`(?i)^(eu|ew|one|onc|uni|usa|use|usu|uti|ura|uro)`)
	modalVerb      = regexp.MustCompile(`(?i)^(could|would|should|must|might|may)$`)
)

// English returns the built-in English pattern rules.
func English(messages Messages) []Rule {
	article, err := NewPatternRule(ArticleAnID,
		messages.Format(i18n.DescArticle),
		messages.Format(i18n.UseAnBeforeVowel),
		[]PatternToken{
			{Surface: "a"},
			{SurfaceRegexp: vowelStart, Exceptions: []PatternToken{{SurfaceRegexp: consonantSound}}},
		},
		`\1n \2`)
	if err != nil {
		panic(err)
	}
	modal, err := NewPatternRule(ModalOfID,
		messages.Format(i18n.DescModalOf),
		messages.Format(i18n.ModalOfInsteadOfHave),
		[]PatternToken{
			{SurfaceRegexp: modalVerb},
			{Surface: "of", CaseSensitive: true},
		},
		`\1 have`)
	if err != nil {
		panic(err)
	}
	return []Rule{article, modal}
}

// patternSets maps a language code to its pattern rules.
var patternSets = map[string]func(Messages) []Rule{
	"en": English,
}

// Defaults builds a fresh rule set for the language code: whitespace
// rules, the language's pattern rules if it has any and, when speller is
// not nil, the spelling rule.
func Defaults(lang string, messages Messages, speller Speller) []Rule {
	set := []Rule{
		NewWhitespaceBeforePunctuationRule(messages),
		NewSentenceWhitespaceRule(messages),
	}
	if patterns, ok := patternSets[lang]; ok {
		set = append(set, patterns(messages)...)
	}
	if speller != nil {
		set = append(set, NewSpellerRule(messages, speller))
	}
	return set
}
