// Package options configures the one-to-one candidate index.
package options

// DefaultOptions bounds lookups so that short or pathological keys cannot blow up the result set.
var DefaultOptions = IndexOptions{
	MaxEditDistance: 2,
	MaxCandidates:   25,
	MaxKeySize:      40,
	MaxResultSize:   1000,
	ShortKeyLength:  3,
	UsePhonetic:     true,
	CacheSize:       10000,
}

type IndexOptions struct {
	MaxEditDistance int
	MaxCandidates   int
	// MaxKeySize: longer keys get no candidates at all.
	MaxKeySize int
	// MaxResultSize stops the automaton walk once this many words were collected.
	MaxResultSize int
	// ShortKeyLength: keys of at most this many runes are searched at distance 1 only.
	ShortKeyLength int
	UsePhonetic    bool
	CacheSize      int
}

type Options interface {
	Apply(options *IndexOptions)
}

type FuncConfig struct {
	ops func(options *IndexOptions)
}

func (w FuncConfig) Apply(conf *IndexOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *IndexOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts over DefaultOptions.
func Build(opts ...Options) IndexOptions {
	o := DefaultOptions
	for _, opt := range opts {
		opt.Apply(&o)
	}
	return o
}

func WithMaxEditDistance(maxEditDistance int) Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.MaxEditDistance = maxEditDistance
	})
}

func WithMaxCandidates(n int) Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.MaxCandidates = n
	})
}

func WithMaxKeySize(n int) Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.MaxKeySize = n
	})
}

func WithMaxResultSize(n int) Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.MaxResultSize = n
	})
}

func WithShortKeyLength(n int) Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.ShortKeyLength = n
	})
}

func WithCacheSize(n int) Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.CacheSize = n
	})
}

// WithoutPhonetic disables the Double Metaphone side of the index.
func WithoutPhonetic() Options {
	return NewFuncOption(func(options *IndexOptions) {
		options.UsePhonetic = false
	})
}
