package options

// DefaultOptions are conservative: edits up to 2, prefix 7, every
// vocabulary entry indexed.
var DefaultOptions = SuggestOptions{
	MaxDictionaryEditDistance: 2,
	PrefixLength:              7,
	CountThreshold:            1,
	TopK:                      5,
	MinWordLength:             3,
	PreserveCase:              true,
	Layout:                    "en",
}

type SuggestOptions struct {
	MaxDictionaryEditDistance int
	PrefixLength              int
	CountThreshold            int // minimum frequency for a term to be indexed
	TopK                      int
	MinWordLength             int // shorter words are not spell-checked
	PreserveCase              bool
	Layout                    string // keyboard layout for substitution costs
}

type Options interface {
	Apply(options *SuggestOptions)
}

type FuncConfig struct {
	ops func(options *SuggestOptions)
}

func (w FuncConfig) Apply(conf *SuggestOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SuggestOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts on top of DefaultOptions.
func Resolve(opts ...Options) SuggestOptions {
	o := DefaultOptions
	for _, op := range opts {
		op.Apply(&o)
	}
	return o
}

func WithMaxDictionaryEditDistance(maxDictionaryEditDistance int) Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.MaxDictionaryEditDistance = maxDictionaryEditDistance
	})
}

func WithPrefixLength(prefixLength int) Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.PrefixLength = prefixLength
	})
}

func WithCountThreshold(countThreshold int) Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.CountThreshold = countThreshold
	})
}

func WithTopK(k int) Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.TopK = k
	})
}

func WithMinWordLength(n int) Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.MinWordLength = n
	})
}

func WithoutCasePreservation() Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.PreserveCase = false
	})
}

func WithLayout(layout string) Options {
	return NewFuncOption(func(options *SuggestOptions) {
		options.Layout = layout
	})
}
