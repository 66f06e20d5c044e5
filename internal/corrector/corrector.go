// Package corrector ranks spelling suggestions for unknown words.
//
// Candidates come from a symmetric-delete index over the vocabulary and are
// scored by a frequency prior and a keyboard-aware weighted
// Damerau-Levenshtein cost.
package corrector

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"grammarcheck/pkg/options"
)

// Suggester is safe for concurrent use. Its vocabulary must not change
// after construction.
type Suggester struct {
	config    Config
	opts      options.SuggestOptions
	vocab     *Vocabulary
	keyboard  *keyboard
	index     map[string][]string // prefix delete -> terms
	logpCache sync.Map            // map[string]float64
	distCache sync.Map            // map[string]float64, key: a+"\x00"+b
}

func NewSuggester(vocab *Vocabulary, cfg Config, opts ...options.Options) *Suggester {
	o := options.Resolve(opts...)
	s := &Suggester{
		config:   cfg,
		opts:     o,
		vocab:    vocab,
		keyboard: newKeyboard(o.Layout),
		index:    make(map[string][]string),
	}
	for term, count := range vocab.freq {
		if count < float64(o.CountThreshold) {
			continue
		}
		for _, d := range deletes(prefix(term, o.PrefixLength), o.MaxDictionaryEditDistance) {
			s.index[d] = append(s.index[d], term)
		}
	}
	return s
}

// Options returns the resolved lookup options.
func (s *Suggester) Options() options.SuggestOptions { return s.opts }

// MinWordLength reports the shortest word, in runes, the suggester is
// asked about.
func (s *Suggester) MinWordLength() int { return s.opts.MinWordLength }

// IsKnown reports whether word is an indexed vocabulary term.
func (s *Suggester) IsKnown(word string) bool {
	return s.vocab.Contains(word) && s.vocab.Frequency(word) >= float64(s.opts.CountThreshold)
}

// =====================
// Distances
// =====================

// weightedDL is Damerau-Levenshtein with keyboard-aware substitution costs.
func (s *Suggester) weightedDL(a, b string) float64 {
	key := a + "\x00" + b
	if v, ok := s.distCache.Load(key); ok {
		return v.(float64)
	}
	if isOneAdjacentSwap(a, b) {
		cost := s.config.TransposeCost
		s.distCache.Store(key, cost)
		return cost
	}
	insBase, delBase := s.config.NeighborInsDel, s.config.NeighborInsDel
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return float64(lb) * insBase
	}
	if lb == 0 {
		return float64(la) * delBase
	}
	prev2 := make([]float64, lb+1)
	prev := make([]float64, lb+1)
	curr := make([]float64, lb+1)
	for j := 1; j <= lb; j++ {
		prev[j] = float64(j) * insBase
	}
	for i := 1; i <= la; i++ {
		curr[0] = float64(i) * delBase
		for j := 1; j <= lb; j++ {
			var sub float64
			if ra[i-1] != rb[j-1] {
				sub = s.substitutionCost(ra[i-1], rb[j-1])
			}
			best := min(prev[j]+delBase, curr[j-1]+insBase, prev[j-1]+sub)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = math.Min(best, prev2[j-2]+s.config.TransposeCost)
			}
			curr[j] = best
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	res := prev[lb]
	s.distCache.Store(key, res)
	return res
}

func (s *Suggester) logPrior(word string) float64 {
	if v, ok := s.logpCache.Load(word); ok {
		return v.(float64)
	}
	f := s.vocab.Frequency(word)
	if f == 0 {
		f = 1e-12
	}
	lp := math.Log(math.Pow(f, 1.0/s.config.FreqTemperature))
	s.logpCache.Store(word, lp)
	return lp
}

// =====================
// Candidates
// =====================

func (s *Suggester) candidates(word string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range deletes(prefix(word, s.opts.PrefixLength), s.opts.MaxDictionaryEditDistance) {
		for _, term := range s.index[d] {
			if seen[term] || term == word {
				continue
			}
			seen[term] = true
			if unitDL(word, term) <= s.opts.MaxDictionaryEditDistance {
				out = append(out, term)
			}
		}
	}
	return out
}

// Suggest returns up to TopK ranked corrections for word, best first.
// The word itself is never suggested.
func (s *Suggester) Suggest(word string) []Candidate {
	xl := strings.ToLower(word)
	lx := len([]rune(xl))
	var scored []Candidate
	for _, y := range s.candidates(xl) {
		cost := s.weightedDL(xl, y)
		ed := unitDL(xl, y)
		ly := len([]rune(y))

		score := s.config.BetaWeight*s.logPrior(y) - s.config.LambdaPenalty*cost

		// substitution or transposition > insertion > deletion
		if ed == 1 {
			switch {
			case ly == lx:
				score += 0.8
			case ly == lx+1:
				score += 0.5
			case ly+1 == lx && lx > 3:
				score += 0.3
			}
		} else if ed >= 2 {
			score -= 0.6
		}
		// penalize collapsing very short words
		if lx <= 3 && ly < lx {
			score -= 0.6 * float64(lx-ly)
		}
		scored = append(scored, Candidate{Term: y, Cost: cost, Score: score, Edits: ed})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Cost != scored[j].Cost {
			return scored[i].Cost < scored[j].Cost
		}
		return scored[i].Term < scored[j].Term
	})

	// promote a close one-edit candidate over a multi-edit winner
	if len(scored) > 1 && scored[0].Edits > 1 {
		for k := 1; k < len(scored) && k < 3; k++ {
			if scored[k].Edits == 1 && scored[0].Score-scored[k].Score <= 1.0 {
				best := scored[k]
				copy(scored[1:k+1], scored[:k])
				scored[0] = best
				break
			}
		}
	}

	if s.opts.TopK > 0 && len(scored) > s.opts.TopK {
		scored = scored[:s.opts.TopK]
	}
	return scored
}

// SuggestTerms is Suggest reduced to terms, with the case pattern of word
// applied when PreserveCase is set.
func (s *Suggester) SuggestTerms(word string) []string {
	cands := s.Suggest(word)
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		term := c.Term
		if s.opts.PreserveCase {
			term = RestoreCase(word, term)
		}
		out = append(out, term)
	}
	return out
}

func isWord(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return strings.IndexFunc(tok, unicode.IsLetter) >= 0
}

// IsWord reports whether tok looks like a word worth spell checking.
func IsWord(tok string) bool { return isWord(tok) }
