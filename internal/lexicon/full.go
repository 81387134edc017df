package lexicon

import (
	"github.com/tchap/go-patricia/v2/patricia"
)

// Full is a trie-backed lexicon. Besides membership it can enumerate stored words that are
// prefixes of a string, which the split generator uses to avoid probing every cut point.
type Full struct {
	norm Normalizer
	trie *patricia.Trie
	n    int
}

// NewFull builds a Full lexicon from words.
func NewFull(caseSensitive bool, words ...string) *Full {
	f := &Full{norm: Normalizer{CaseSensitive: caseSensitive}, trie: patricia.NewTrie()}
	for _, w := range words {
		f.add(w)
	}
	return f
}

func (f *Full) add(word string) {
	w := f.norm.Normalize(word)
	if w == "" {
		return
	}
	if f.trie.Insert(patricia.Prefix(w), true) {
		f.n++
	}
}

func (f *Full) Contains(word string) bool {
	return f.trie.Match(patricia.Prefix(f.norm.Normalize(word)))
}

func (f *Full) IsValid(word string) bool { return isValid(f.Contains, word) }

func (f *Full) Len() int { return f.n }

// VisitPrefixes calls fn for each stored word that is a prefix of word, shortest first.
// Prefixes are reported in normalized form.
func (f *Full) VisitPrefixes(word string, fn func(prefix string) error) error {
	return f.trie.VisitPrefixes(patricia.Prefix(f.norm.Normalize(word)), func(p patricia.Prefix, _ patricia.Item) error {
		return fn(string(p))
	})
}

// Words returns the stored words in trie order.
func (f *Full) Words() []string {
	out := make([]string, 0, f.n)
	_ = f.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		out = append(out, string(p))
		return nil
	})
	return out
}
