// Package dictionary provides read-only morphological lookups: for a
// probe form, zero or more (lemma, tag) entries.
//
// Every implementation in this package is safe for concurrent lookups once
// constructed. Mutation happens only by building a new value.
package dictionary

import (
	"errors"
	"fmt"
)

// ErrResourceFailure marks lookups that failed because the underlying
// resource is unavailable or corrupt. It is never a "word not found" signal.
var ErrResourceFailure = errors.New("dictionary resource failure")

// Entry is one dictionary analysis of a form.
type Entry struct {
	Lemma string
	Tag   string
}

// Lookup is the dictionary capability consumed by the tagger.
// A form without entries returns (nil, nil).
type Lookup interface {
	Lookup(form string) ([]Entry, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(form string) ([]Entry, error)

func (f LookupFunc) Lookup(form string) ([]Entry, error) { return f(form) }

// ResourceError carries the probe that failed and the cause.
type ResourceError struct {
	Form string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("dictionary lookup %q: %v", e.Form, e.Err)
}

func (e *ResourceError) Unwrap() []error { return []error{ErrResourceFailure, e.Err} }

// Forms is implemented by dictionaries that can enumerate their surface forms.
type Forms interface {
	Forms(fn func(form string) bool) error
}
