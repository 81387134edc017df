// Package lexicon stores word sets and answers membership questions about them.
//
// Two variants implement Lexicon: Basic, a hash set, and Full, a patricia trie that also
// visits the dictionary words that prefix a given string. Callers that can use the prefix
// walk check for the PrefixVisitor capability instead of depending on a concrete type.
package lexicon

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Lexicon is a read-only word set.
type Lexicon interface {
	// Contains reports exact membership of the normalized word.
	Contains(word string) bool
	// IsValid is the permissive check: possessives, A/B alternatives and
	// parenthetical plurals of contained words are valid too.
	IsValid(word string) bool
	Len() int
}

// PrefixVisitor is implemented by lexicons that can walk the words prefixing a string.
type PrefixVisitor interface {
	VisitPrefixes(word string, fn func(prefix string) error) error
}

// Normalizer applies the case rule of a lexicon to a word.
type Normalizer struct {
	CaseSensitive bool
}

// Normalize returns the NFC form of word, lowercased unless the lexicon is case sensitive.
func (n Normalizer) Normalize(word string) string {
	w := norm.NFC.String(strings.TrimSpace(word))
	if !n.CaseSensitive {
		w = strings.ToLower(w)
	}
	return w
}

var pluralSuffixes = []struct{ paren, base string }{
	{"(s)", ""},
	{"(es)", ""},
	{"(ies)", "y"},
}

// isValid implements the permissive match on top of contains, cheapest check first.
func isValid(contains func(string) bool, word string) bool {
	if word == "" {
		return false
	}
	if contains(word) {
		return true
	}
	if base, ok := possessiveBase(word); ok && contains(base) {
		return true
	}
	if strings.Contains(word, "/") {
		parts := strings.Split(word, "/")
		if len(parts) > 1 {
			for _, p := range parts {
				if !isValid(contains, p) {
					return false
				}
			}
			return true
		}
	}
	for _, s := range pluralSuffixes {
		if strings.HasSuffix(word, s.paren) {
			stem := strings.TrimSuffix(word, s.paren)
			if stem != "" && contains(stem+s.base) {
				return true
			}
		}
	}
	return false
}

func possessiveBase(word string) (string, bool) {
	for _, ap := range []string{"'", "’"} {
		if strings.HasSuffix(word, ap+"s") {
			return strings.TrimSuffix(word, ap+"s"), true
		}
		if strings.HasSuffix(word, "s"+ap) {
			return strings.TrimSuffix(word, ap), true
		}
	}
	return "", false
}

// Basic is a hash-set lexicon.
type Basic struct {
	norm  Normalizer
	words map[string]struct{}
}

// NewBasic builds a Basic lexicon from words.
func NewBasic(caseSensitive bool, words ...string) *Basic {
	b := &Basic{norm: Normalizer{CaseSensitive: caseSensitive}, words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		b.add(w)
	}
	return b
}

func (b *Basic) add(word string) {
	if w := b.norm.Normalize(word); w != "" {
		b.words[w] = struct{}{}
	}
}

func (b *Basic) Contains(word string) bool {
	_, ok := b.words[b.norm.Normalize(word)]
	return ok
}

func (b *Basic) IsValid(word string) bool { return isValid(b.Contains, word) }

func (b *Basic) Len() int { return len(b.words) }

// Words returns the stored words in no particular order.
func (b *Basic) Words() []string {
	out := make([]string, 0, len(b.words))
	for w := range b.words {
		out = append(out, w)
	}
	return out
}
