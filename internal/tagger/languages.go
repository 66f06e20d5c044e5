package tagger

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Language bundles the per-language tagging settings.
type Language struct {
	Code   string
	Locale language.Tag
	Suffix *regexp.Regexp
}

var (
	English  = Language{Code: "en", Locale: language.English}
	Galician = Language{Code: "gl", Locale: language.Make("gl")}
	Turkish  = Language{Code: "tr", Locale: language.Turkish}

	// Breton demonstratives attach as -mañ, -se, -hont ("al levr-mañ").
	Breton = Language{
		Code:   "br",
		Locale: language.Make("br"),
		Suffix: regexp.MustCompile(`(?i)^(..+)-(mañ|se|hont)$`),
	}
)

var languages = map[string]Language{
	English.Code:  English,
	Galician.Code: Galician,
	Turkish.Code:  Turkish,
	Breton.Code:   Breton,
}

// ForLanguage resolves a preset by code. Unknown codes fall back to a
// preset without suffix handling when the code parses as a BCP 47 tag.
func ForLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if l, ok := languages[code]; ok {
		return l, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, fmt.Errorf("tagger: unknown language %q: %w", code, err)
	}
	return Language{Code: code, Locale: tag}, nil
}
