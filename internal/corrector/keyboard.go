package corrector

import (
	"math"
	"unicode"
)

var keyboardLayouts = map[string][]string{
	"ru": {
		"ёйцукенгшщзхъ",
		"фывапролджэ",
		"ячсмитьбю",
	},
	"en": {
		"qwertyuiop",
		"asdfghjkl",
		"zxcvbnm",
	},
	"fr": {
		"azertyuiop",
		"qsdfghjklm",
		"wxcvbn",
	},
}

// Letters that are routinely confused regardless of key distance.
var specialSubstitutions = map[string]map[[2]rune]float64{
	"ru": {{'ё', 'е'}: 0.2, {'е', 'ё'}: 0.2, {'й', 'и'}: 0.3, {'и', 'й'}: 0.3, {'ь', 'ъ'}: 0.4, {'ъ', 'ь'}: 0.4, {'ц', 'й'}: 0.4, {'й', 'ц'}: 0.4},
	"fr": {{'é', 'e'}: 0.2, {'e', 'é'}: 0.2, {'è', 'e'}: 0.2, {'e', 'è'}: 0.2, {'à', 'a'}: 0.2, {'a', 'à'}: 0.2, {'ç', 'c'}: 0.3, {'c', 'ç'}: 0.3},
}

type keyboard struct {
	pos     map[rune][2]int
	special map[[2]rune]float64
}

func newKeyboard(layout string) *keyboard {
	rows, ok := keyboardLayouts[layout]
	if !ok {
		rows = keyboardLayouts["en"]
	}
	kb := &keyboard{pos: make(map[rune][2]int), special: specialSubstitutions[layout]}
	for r, row := range rows {
		for c, ch := range []rune(row) {
			kb.pos[ch] = [2]int{r, c}
		}
	}
	return kb
}

func (kb *keyboard) distance(a, b rune) float64 {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	pa, oka := kb.pos[a]
	pb, okb := kb.pos[b]
	if !oka || !okb {
		return 2.5
	}
	dr := float64(pa[0] - pb[0])
	dc := float64(pa[1] - pb[1])
	return math.Sqrt(dr*dr + dc*dc)
}

func (s *Suggester) substitutionCost(a, b rune) float64 {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	if v, ok := s.keyboard.special[[2]rune{a, b}]; ok {
		return v
	}
	d := s.keyboard.distance(a, b)
	if d <= 1.0 {
		return s.config.KeyboardNearSub
	} else if d <= 1.5 {
		return 0.8
	} else if d <= 2.2 {
		return 1.2
	}
	return 1.8
}

// isOneAdjacentSwap reports whether b is a with exactly one pair of
// neighbouring letters swapped.
func isOneAdjacentSwap(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) != len(rb) || len(ra) < 2 {
		return false
	}
	diff := -1
	for i := 0; i < len(ra); i++ {
		if ra[i] != rb[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(ra) {
		return false
	}
	if ra[diff] == rb[diff+1] && ra[diff+1] == rb[diff] {
		for j := diff + 2; j < len(ra); j++ {
			if ra[j] != rb[j] {
				return false
			}
		}
		return true
	}
	return false
}
