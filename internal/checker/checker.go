// Package checker drives tagging and rule matching over whole documents.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"grammarcheck/internal/rules"
	"grammarcheck/internal/token"
)

// ErrRulePanic wraps the value recovered from a panicking rule.
var ErrRulePanic = errors.New("rule panicked")

// Tokenizer splits a document into sentences of tokens with
// document-absolute offsets.
type Tokenizer interface {
	Sentences(text string) [][]token.Token
}

// Tagger attaches readings to the tokens of one sentence.
type Tagger interface {
	Tag(tokens []token.Token) ([]token.AnalyzedToken, error)
}

// RuleFactory returns a fresh rule set. It is called once per document so
// that rules with cross-sentence state are never shared.
type RuleFactory func() []rules.Rule

// RuleFailure records a rule that failed on one sentence. The rule's
// matches for that sentence are dropped.
type RuleFailure struct {
	RuleID   string `json:"rule_id"`
	Sentence int    `json:"sentence"`
	Error    string `json:"error"`
	Err      error  `json:"-"`
}

// Report is the outcome of checking one document.
type Report struct {
	Matches  []rules.Match `json:"matches"`
	Failures []RuleFailure `json:"failures,omitempty"`
}

// RuleInfo describes one rule of the set.
type RuleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type Checker struct {
	tokenizer Tokenizer
	tagger    Tagger
	factory   RuleFactory
	logger    *slog.Logger
	workers   int
}

type Option func(*Checker)

func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// WithWorkers bounds the number of documents CheckAll checks at once.
func WithWorkers(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.workers = n
		}
	}
}

func New(tokenizer Tokenizer, tagger Tagger, factory RuleFactory, opts ...Option) *Checker {
	c := &Checker{
		tokenizer: tokenizer,
		tagger:    tagger,
		factory:   factory,
		logger:    slog.Default(),
		workers:   4,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "checker")
	return c
}

// Rules lists the rules a document is checked with.
func (c *Checker) Rules() []RuleInfo {
	set := c.factory()
	out := make([]RuleInfo, len(set))
	for i, r := range set {
		out[i] = RuleInfo{ID: r.ID(), Description: r.Description()}
	}
	return out
}

// Check runs every rule over every sentence of text. Matches are sorted by
// (From, To, rule order). A dictionary failure or malformed tokenizer
// output aborts the document; a failing rule does not.
func (c *Checker) Check(ctx context.Context, text string) (*Report, error) {
	return c.check(ctx, text, c.factory())
}

// CheckAll checks docs in parallel, each with its own rule set. Reports
// are returned in input order. The first error cancels the rest.
func (c *Checker) CheckAll(ctx context.Context, docs []string) ([]*Report, error) {
	reports := make([]*Report, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, doc := range docs {
		g.Go(func() error {
			r, err := c.check(ctx, doc, c.factory())
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

type found struct {
	match rules.Match
	rule  int
}

func (c *Checker) check(ctx context.Context, text string, set []rules.Rule) (*Report, error) {
	for _, r := range set {
		r.Reset()
	}
	textLen := token.Len(text)
	report := &Report{}
	var all []found

	for si, toks := range c.tokenizer.Sentences(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		analyzed, err := c.tagger.Tag(toks)
		if err != nil {
			c.logger.Error("tagging failed", "sentence", si, "error", err)
			return nil, fmt.Errorf("sentence %d: %w", si, err)
		}
		s, err := token.NewSentence(analyzed)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", si, err)
		}
		for ri, r := range set {
			ms, err := runRule(r, s, textLen)
			if err != nil {
				c.logger.Warn("rule failed", "rule", r.ID(), "sentence", si, "error", err)
				report.Failures = append(report.Failures, RuleFailure{
					RuleID: r.ID(), Sentence: si, Error: err.Error(), Err: err,
				})
				continue
			}
			for _, m := range ms {
				all = append(all, found{match: m, rule: ri})
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.match.From != b.match.From {
			return a.match.From < b.match.From
		}
		if a.match.To != b.match.To {
			return a.match.To < b.match.To
		}
		return a.rule < b.rule
	})
	report.Matches = make([]rules.Match, len(all))
	for i, f := range all {
		report.Matches[i] = f.match
	}
	return report, nil
}

func runRule(r rules.Rule, s *token.Sentence, textLen int) (ms []rules.Match, err error) {
	defer func() {
		if p := recover(); p != nil {
			ms, err = nil, fmt.Errorf("%w: %v", ErrRulePanic, p)
		}
	}()
	ms, err = r.Match(s)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		if err := m.Validate(textLen); err != nil {
			return nil, err
		}
	}
	return ms, nil
}
