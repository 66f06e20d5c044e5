// Package customdict stores user-added dictionary entries in a Redis set.
//
// Each member is one "form\tlemma\ttag" line, the same format the file
// dictionaries use.
package customdict

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"grammarcheck/internal/dictionary"
)

// DefaultTag is attached to words added without a tag.
const DefaultTag = "CUSTOM"

const defaultKey = "custom_dict"

// ErrInvalidWord is returned for empty forms or fields containing tabs or
// line breaks.
var ErrInvalidWord = errors.New("invalid custom word")

// CustomDict wraps a Redis client to store custom dictionary entries.
type CustomDict struct {
	client redis.Cmdable
	key    string
}

type Option func(*CustomDict)

// WithKey overrides the Redis key of the set.
func WithKey(key string) Option {
	return func(cd *CustomDict) { cd.key = key }
}

// New creates a new CustomDict with the provided Redis client.
func New(client redis.Cmdable, opts ...Option) *CustomDict {
	cd := &CustomDict{client: client, key: defaultKey}
	for _, opt := range opts {
		opt(cd)
	}
	return cd
}

// Add inserts an entry for form. An empty lemma defaults to the form and an
// empty tag to DefaultTag.
func (cd *CustomDict) Add(ctx context.Context, form string, e dictionary.Entry) error {
	member, err := encode(form, e)
	if err != nil {
		return err
	}
	if err := cd.client.SAdd(ctx, cd.key, member).Err(); err != nil {
		return fmt.Errorf("customdict: add %q: %w", form, err)
	}
	return nil
}

// Remove deletes every entry of form. It reports how many were removed.
func (cd *CustomDict) Remove(ctx context.Context, form string) (int, error) {
	if form == "" || validField(form) != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWord, form)
	}
	members, err := cd.client.SMembers(ctx, cd.key).Result()
	if err != nil {
		return 0, fmt.Errorf("customdict: remove %q: %w", form, err)
	}
	var doomed []any
	for _, m := range members {
		if strings.HasPrefix(m, form+"\t") {
			doomed = append(doomed, m)
		}
	}
	if len(doomed) == 0 {
		return 0, nil
	}
	n, err := cd.client.SRem(ctx, cd.key, doomed...).Result()
	if err != nil {
		return 0, fmt.Errorf("customdict: remove %q: %w", form, err)
	}
	return int(n), nil
}

// All returns all stored members, one "form\tlemma\ttag" line each.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	members, err := cd.client.SMembers(ctx, cd.key).Result()
	if err != nil {
		return nil, fmt.Errorf("customdict: list: %w", err)
	}
	return members, nil
}

// Load snapshots the set into an in-memory dictionary.
func (cd *CustomDict) Load(ctx context.Context) (*dictionary.Map, error) {
	members, err := cd.All(ctx)
	if err != nil {
		return nil, err
	}
	m, err := dictionary.ReadTabular(strings.NewReader(strings.Join(members, "\n")))
	if err != nil {
		return nil, fmt.Errorf("customdict: load: %w", err)
	}
	return m, nil
}

func encode(form string, e dictionary.Entry) (string, error) {
	if e.Lemma == "" {
		e.Lemma = form
	}
	if e.Tag == "" {
		e.Tag = DefaultTag
	}
	for _, f := range []string{form, e.Lemma, e.Tag} {
		if err := validField(f); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(form) == "" {
		return "", fmt.Errorf("%w: empty form", ErrInvalidWord)
	}
	return form + "\t" + e.Lemma + "\t" + e.Tag, nil
}

func validField(s string) error {
	if strings.ContainsAny(s, "\t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidWord, s)
	}
	return nil
}
