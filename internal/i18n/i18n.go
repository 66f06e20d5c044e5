// Package i18n formats rule messages by key from a message catalog.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys used by the built-in rules.
const (
	NoSpaceBeforeColon      = "no_space_before_colon"
	NoSpaceBeforeSemicolon  = "no_space_before_semicolon"
	NoSpaceBeforePercentage = "no_space_before_percentage"
	DescWhitespacePunct     = "desc_whitespace_before_punctuation"
	AddSpaceBetweenSentence = "add_space_between_sentences"
	DescSentenceWhitespace  = "desc_sentence_whitespace"
	SpellingMistake         = "spelling_mistake"
	DescSpelling            = "desc_spelling"
	UseAnBeforeVowel        = "use_an_before_vowel"
	DescArticle             = "desc_article"
	ModalOfInsteadOfHave    = "modal_of_instead_of_have"
	DescModalOf             = "desc_modal_of"
)

// supported lists catalog locales; the first is the fallback.
var supported = []language.Tag{language.English, language.French}

var translations = map[language.Tag]map[string]string{
	language.English: {
		NoSpaceBeforeColon:      "Don't put a space before the colon",
		NoSpaceBeforeSemicolon:  "Don't put a space before the semicolon",
		NoSpaceBeforePercentage: "Don't put a space before the percent sign",
		DescWhitespacePunct:     "Whitespace before punctuation mark",
		AddSpaceBetweenSentence: "Add a space between sentences",
		DescSentenceWhitespace:  "Missing space between sentences",
		SpellingMistake:         "Possible spelling mistake found: %s",
		DescSpelling:            "Possible spelling mistake",
		UseAnBeforeVowel:        "Use \"an\" instead of \"a\" before a vowel sound",
		DescArticle:             "Wrong indefinite article",
		ModalOfInsteadOfHave:    "Did you mean \"have\"?",
		DescModalOf:             "\"of\" used instead of \"have\" after a modal verb",
	},
	language.French: {
		NoSpaceBeforeColon:      "Pas d'espace avant les deux-points",
		NoSpaceBeforeSemicolon:  "Pas d'espace avant le point-virgule",
		NoSpaceBeforePercentage: "Pas d'espace avant le signe de pourcentage",
		DescWhitespacePunct:     "Espace avant un signe de ponctuation",
		AddSpaceBetweenSentence: "Ajoutez une espace entre les phrases",
		DescSentenceWhitespace:  "Espace manquante entre les phrases",
		SpellingMistake:         "Faute de frappe possible : %s",
		DescSpelling:            "Faute de frappe possible",
		UseAnBeforeVowel:        "Utilisez « an » au lieu de « a » devant une voyelle",
		DescArticle:             "Article indéfini incorrect",
		ModalOfInsteadOfHave:    "Vouliez-vous dire « have » ?",
		DescModalOf:             "« of » employé au lieu de « have » après un modal",
	},
}

// Bundle formats messages for one locale. It is safe for concurrent use.
type Bundle struct {
	tag     language.Tag
	catalog catalog.Catalog
}

// New builds a bundle for the catalog of locale's base language, or for
// English when there is none. Related languages are not substituted:
// Breton gets English, not French.
func New(locale language.Tag) (*Bundle, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: set %s/%s: %w", tag, key, err)
			}
		}
	}
	_, idx, _ := language.NewMatcher(supported).Match(locale)
	tag := supported[idx]
	want, _ := locale.Base()
	if got, _ := tag.Base(); got != want {
		tag = language.English
	}
	return &Bundle{tag: tag, catalog: b}, nil
}

// MustNew is New for package-level defaults and tests.
func MustNew(locale language.Tag) *Bundle {
	b, err := New(locale)
	if err != nil {
		panic(err)
	}
	return b
}

// Locale returns the matched catalog locale.
func (b *Bundle) Locale() language.Tag { return b.tag }

// Format renders the message stored under key. Unknown keys are rendered
// as the key itself.
func (b *Bundle) Format(key string, args ...any) string {
	p := message.NewPrinter(b.tag, message.Catalog(b.catalog))
	return p.Sprintf(key, args...)
}
