package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"grammarcheck/internal/checker"
	"grammarcheck/internal/dictionary"
	"grammarcheck/internal/rules"
	"grammarcheck/internal/tagger"
	"grammarcheck/internal/tokenizer"
)

// ErrNoCustomStore is returned by custom word operations when no store is
// configured.
var ErrNoCustomStore = errors.New("custom dictionary is not configured")

// CustomStore persists user-added dictionary entries.
type CustomStore interface {
	Add(ctx context.Context, form string, e dictionary.Entry) error
	Remove(ctx context.Context, form string) (int, error)
	Load(ctx context.Context) (*dictionary.Map, error)
}

// Params are the collaborators of a Service.
type Params struct {
	Dictionary dictionary.Lookup
	// CacheSize bounds the lookup cache; 0 disables it.
	CacheSize int
	Language  tagger.Language
	Messages  rules.Messages
	Speller   rules.Speller // nil disables the spelling rule
	Store     CustomStore   // nil disables custom words
	Workers   int
	Logger    *slog.Logger
}

// Service owns the current checker. Custom word changes build a new
// checker over a fresh snapshot of the custom dictionary and swap it in;
// checks in flight keep the one they started with.
type Service struct {
	params  Params
	logger  *slog.Logger
	current atomic.Pointer[checker.Checker]
	mu      sync.Mutex // serializes rebuilds
}

func NewService(ctx context.Context, p Params) (*Service, error) {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	s := &Service{params: p, logger: p.Logger.With("component", "service")}
	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Rebuild reloads the custom dictionary and replaces the checker.
func (s *Service) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lookup := s.params.Dictionary
	customWords := 0
	if s.params.Store != nil {
		custom, err := s.params.Store.Load(ctx)
		if err != nil {
			return fmt.Errorf("load custom dictionary: %w", err)
		}
		customWords = custom.Len()
		lookup = dictionary.Overlay{s.params.Dictionary, custom}
	}
	if s.params.CacheSize > 0 {
		cached, err := dictionary.NewCached(lookup, s.params.CacheSize)
		if err != nil {
			return err
		}
		lookup = cached
	}

	p := s.params
	factory := func() []rules.Rule {
		return rules.Defaults(p.Language.Code, p.Messages, p.Speller)
	}
	c := checker.New(
		tokenizer.New(),
		tagger.New(lookup, tagger.WithLanguage(p.Language)),
		factory,
		checker.WithLogger(p.Logger),
		checker.WithWorkers(p.Workers),
	)
	s.current.Store(c)
	s.logger.Info("checker ready", "language", p.Language.Code, "custom_words", customWords)
	return nil
}

// Checker returns the checker currently in use.
func (s *Service) Checker() *checker.Checker { return s.current.Load() }

func (s *Service) Check(ctx context.Context, text string) (*checker.Report, error) {
	return s.current.Load().Check(ctx, text)
}

func (s *Service) CheckAll(ctx context.Context, docs []string) ([]*checker.Report, error) {
	return s.current.Load().CheckAll(ctx, docs)
}

func (s *Service) Rules() []checker.RuleInfo { return s.current.Load().Rules() }

// AddCustomWord stores an entry and rebuilds the checker.
func (s *Service) AddCustomWord(ctx context.Context, form string, e dictionary.Entry) error {
	if s.params.Store == nil {
		return ErrNoCustomStore
	}
	if err := s.params.Store.Add(ctx, form, e); err != nil {
		return err
	}
	return s.Rebuild(ctx)
}

// RemoveCustomWord deletes every entry of form and rebuilds the checker
// when something was removed.
func (s *Service) RemoveCustomWord(ctx context.Context, form string) (int, error) {
	if s.params.Store == nil {
		return 0, ErrNoCustomStore
	}
	n, err := s.params.Store.Remove(ctx, form)
	if err != nil || n == 0 {
		return n, err
	}
	return n, s.Rebuild(ctx)
}
