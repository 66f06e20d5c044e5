package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Map is an in-memory dictionary.
type Map struct {
	entries map[string][]Entry
}

// NewMap copies entries into a new Map.
func NewMap(entries map[string][]Entry) *Map {
	m := &Map{entries: make(map[string][]Entry, len(entries))}
	for form, es := range entries {
		m.entries[form] = append([]Entry(nil), es...)
	}
	return m
}

// Builder accumulates entries for a Map.
type Builder struct {
	entries map[string][]Entry
}

func NewBuilder() *Builder {
	return &Builder{entries: make(map[string][]Entry)}
}

// Add registers an entry for form, ignoring exact duplicates.
func (b *Builder) Add(form string, e Entry) *Builder {
	for _, have := range b.entries[form] {
		if have == e {
			return b
		}
	}
	b.entries[form] = append(b.entries[form], e)
	return b
}

// Build returns the Map. The builder can keep being used afterwards.
func (b *Builder) Build() *Map { return NewMap(b.entries) }

// Lookup returns a copy of the entries stored for form.
func (m *Map) Lookup(form string) ([]Entry, error) {
	es, ok := m.entries[form]
	if !ok {
		return nil, nil
	}
	return append([]Entry(nil), es...), nil
}

// Len returns the number of distinct forms.
func (m *Map) Len() int { return len(m.entries) }

// Forms calls fn for every form in sorted order until fn returns false.
func (m *Map) Forms(fn func(form string) bool) error {
	forms := make([]string, 0, len(m.entries))
	for f := range m.entries {
		forms = append(forms, f)
	}
	sort.Strings(forms)
	for _, f := range forms {
		if !fn(f) {
			return nil
		}
	}
	return nil
}

// ReadTabular parses "form\tlemma\ttag" lines into a Map. Blank lines and
// lines starting with '#' are skipped.
func ReadTabular(r io.Reader) (*Map, error) {
	b := NewBuilder()
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimRight(s.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		form, e, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		b.Add(form, e)
	}
	if err := s.Err(); err != nil {
		return nil, &ResourceError{Form: "", Err: err}
	}
	return b.Build(), nil
}

func parseLine(line string) (string, Entry, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", Entry{}, &ResourceError{Form: line, Err: errCorruptLine}
	}
	return parts[0], Entry{Lemma: parts[1], Tag: parts[2]}, nil
}
