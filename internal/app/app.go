// Package app wires configuration, dictionaries, the speller and the
// custom word store into a Service, and exposes it over HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"grammarcheck/internal/config"
	"grammarcheck/internal/corrector"
	"grammarcheck/internal/customdict"
	"grammarcheck/internal/dictionary"
	"grammarcheck/internal/i18n"
	"grammarcheck/internal/rules"
	"grammarcheck/internal/tagger"
	"grammarcheck/pkg/options"
)

type closers []func() error

func (c closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		errs = append(errs, c[i]())
	}
	return errors.Join(errs...)
}

// Open builds a Service from cfg. The returned closer releases the
// dictionary mapping and the Redis client; it is valid even on error.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, io.Closer, error) {
	var cl closers

	lang, err := tagger.ForLanguage(cfg.Tagger.Language)
	if err != nil {
		return nil, cl, err
	}
	messages, err := i18n.New(lang.Locale)
	if err != nil {
		return nil, cl, err
	}

	dict, err := dictionary.OpenMmap(cfg.Dictionary.Path)
	if err != nil {
		return nil, cl, fmt.Errorf("open dictionary: %w", err)
	}
	cl = append(cl, dict.Close)
	logger.Info("dictionary loaded", "path", cfg.Dictionary.Path, "lines", dict.Len())

	var speller rules.Speller
	if !cfg.Speller.Disabled {
		sp, err := newSuggester(cfg.Speller, dict, lang.Locale)
		if err != nil {
			return nil, cl, err
		}
		speller = sp
		logger.Info("speller ready", "layout", sp.Options().Layout)
	}

	var store CustomStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cl = append(cl, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, cl, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		store = customdict.New(client, customdict.WithKey(cfg.Redis.Key))
	}

	svc, err := NewService(ctx, Params{
		Dictionary: dict,
		CacheSize:  cfg.Dictionary.CacheSize,
		Language:   lang,
		Messages:   messages,
		Speller:    speller,
		Store:      store,
		Workers:    cfg.Checker.Workers,
		Logger:     logger,
	})
	if err != nil {
		return nil, cl, err
	}
	return svc, cl, nil
}

// newSuggester loads the frequency list, or falls back to the dictionary
// forms when none is configured.
func newSuggester(cfg config.SpellerConfig, forms dictionary.Forms, locale language.Tag) (*corrector.Suggester, error) {
	var (
		vocab *corrector.Vocabulary
		err   error
	)
	if cfg.VocabularyPath != "" {
		f, openErr := os.Open(cfg.VocabularyPath)
		if openErr != nil {
			return nil, fmt.Errorf("open vocabulary: %w", openErr)
		}
		defer f.Close()
		vocab, err = corrector.LoadVocabulary(f)
	} else {
		vocab, err = corrector.VocabularyFromForms(forms)
	}
	if err != nil {
		return nil, err
	}
	opts := cfg.Options()
	if cfg.Layout == "" {
		base, _ := locale.Base()
		opts = append(opts, options.WithLayout(base.String()))
	}
	return corrector.NewSuggester(vocab, cfg.Weights, opts...), nil
}
