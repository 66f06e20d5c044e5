// Package rules defines the rule contract and the built-in rules.
//
// A rule scans one sentence at a time and reports positioned matches with
// suggested replacements. Rules are driven by an orchestrator which calls
// Match for every sentence of a document, in order, and Reset at document
// boundaries. A rule keeping cross-sentence memory owns that memory and
// clears it only in Reset; such a rule is not safe for concurrent use.
package rules

import (
	"errors"
	"fmt"

	"grammarcheck/internal/token"
)

// ErrInvalidMatch marks matches whose span is empty, reversed or negative.
var ErrInvalidMatch = errors.New("invalid match span")

// Rule is the contract every rule implements.
type Rule interface {
	ID() string
	Description() string
	// Match must not modify the sentence. Matches are ordered by From.
	Match(s *token.Sentence) ([]Match, error)
	Reset()
}

// Messages formats human-readable text by message key.
type Messages interface {
	Format(key string, args ...any) string
}

// Match is one reported defect. From and To are character offsets into the
// document, To exclusive.
type Match struct {
	RuleID      string   `json:"rule_id"`
	From        int      `json:"from"`
	To          int      `json:"to"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// NewMatch validates the span and copies suggestions.
func NewMatch(ruleID string, from, to int, message string, suggestions ...string) (Match, error) {
	if from < 0 || from >= to {
		return Match{}, fmt.Errorf("%w: rule %s [%d,%d)", ErrInvalidMatch, ruleID, from, to)
	}
	var sugg []string
	if len(suggestions) > 0 {
		sugg = append(sugg, suggestions...)
	}
	return Match{RuleID: ruleID, From: from, To: to, Message: message, Suggestions: sugg}, nil
}

// Validate checks the span against a document of textLen characters.
func (m Match) Validate(textLen int) error {
	if m.From < 0 || m.From >= m.To || m.To > textLen {
		return fmt.Errorf("%w: rule %s [%d,%d) in text of %d", ErrInvalidMatch, m.RuleID, m.From, m.To, textLen)
	}
	return nil
}

// Len returns the span length.
func (m Match) Len() int { return m.To - m.From }
