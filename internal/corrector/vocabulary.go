package corrector

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"grammarcheck/internal/dictionary"
)

// Vocabulary maps lowercase words to corpus frequencies.
type Vocabulary struct {
	freq map[string]float64
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{freq: make(map[string]float64)}
}

// Add records word with count, keeping the larger count on repeats.
func (v *Vocabulary) Add(word string, count float64) {
	lw := strings.ToLower(word)
	if lw == "" {
		return
	}
	if count > v.freq[lw] {
		v.freq[lw] = count
	}
}

func (v *Vocabulary) Frequency(word string) float64 { return v.freq[strings.ToLower(word)] }

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.freq[strings.ToLower(word)]
	return ok
}

func (v *Vocabulary) Len() int { return len(v.freq) }

// LoadVocabulary reads "word count" lines. Lines with fewer than two
// fields or an unparsable count are skipped.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	v := NewVocabulary()
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		count, err := strconv.Atoi(parts[1])
		if err != nil {
			fv, err2 := strconv.ParseFloat(parts[1], 64)
			if err2 != nil {
				continue
			}
			count = int(fv)
		}
		v.Add(parts[0], float64(count))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return v, nil
}

// VocabularyFromForms builds a vocabulary from dictionary surface forms,
// each with frequency 1. Forms containing whitespace or no letters are
// skipped.
func VocabularyFromForms(forms dictionary.Forms) (*Vocabulary, error) {
	v := NewVocabulary()
	err := forms.Forms(func(form string) bool {
		if isWord(form) {
			v.Add(form, 1)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("vocabulary from dictionary: %w", err)
	}
	return v, nil
}
