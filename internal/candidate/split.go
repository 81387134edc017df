package candidate

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"

	"spellpipe/internal/lexicon"
)

// SplitOptions bounds split generation.
type SplitOptions struct {
	// ShortWordLength: pieces of at most this many runes also need ShortWordMinWC.
	ShortWordLength int
	// ShortWordMinWC is the corpus count a short piece needs on top of lexicon membership.
	ShortWordMinWC int64
	// MaxCandidates caps the number of returned splits.
	MaxCandidates int
}

// Splitter proposes space insertions that turn one token into known words.
type Splitter struct {
	lex  lexicon.Lexicon
	freq Counter
	opts SplitOptions
}

// NewSplitter creates a Splitter over the split lexicon. When lex implements
// lexicon.PrefixVisitor the head pieces come from a prefix walk instead of probing every cut.
func NewSplitter(lex lexicon.Lexicon, freq Counter, opts SplitOptions) *Splitter {
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = 25
	}
	return &Splitter{lex: lex, freq: freq, opts: opts}
}

func lettersOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return s != ""
}

// ValidPiece reports whether piece may appear in a split: it must be a word of the split
// lexicon, and a short piece must also be frequent enough.
func (s *Splitter) ValidPiece(piece string) bool {
	if !lettersOnly(piece) || !s.lex.IsValid(piece) {
		return false
	}
	if utf8.RuneCountInString(piece) > s.opts.ShortWordLength {
		return true
	}
	var n int64
	if s.freq != nil {
		n = s.freq.Count(piece)
	}
	return n >= s.opts.ShortWordMinWC
}

// Candidates returns the space-joined splits of core into 2..maxPieces valid pieces,
// sorted by piece count and then lexicographically.
func (s *Splitter) Candidates(core string, maxPieces int) []string {
	key := strings.ToLower(core)
	if maxPieces < 2 || utf8.RuneCountInString(key) < 2 {
		return nil
	}
	found := mapset.NewThreadUnsafeSet[string]()
	s.split(key, nil, maxPieces, found)

	out := found.ToSlice()
	sort.Slice(out, func(i, j int) bool {
		pi, pj := strings.Count(out[i], " "), strings.Count(out[j], " ")
		if pi != pj {
			return pi < pj
		}
		return out[i] < out[j]
	})
	return out
}

// split extends acc with a head of rest. depth is len(acc); the recursion stops once
// depth+2 pieces would exceed maxPieces or enough candidates were found.
func (s *Splitter) split(rest string, acc []string, maxPieces int, found mapset.Set[string]) {
	depth := len(acc)
	if depth+2 > maxPieces || found.Cardinality() >= s.opts.MaxCandidates {
		return
	}
	for _, cut := range s.cuts(rest) {
		if found.Cardinality() >= s.opts.MaxCandidates {
			return
		}
		head, tail := rest[:cut], rest[cut:]
		if !s.ValidPiece(head) {
			continue
		}
		next := append(append([]string(nil), acc...), head)
		if s.ValidPiece(tail) {
			found.Add(strings.Join(append(next, tail), " "))
		}
		s.split(tail, next, maxPieces, found)
	}
}

// cuts returns the byte offsets where rest may be cut, in increasing order.
func (s *Splitter) cuts(rest string) []int {
	var out []int
	if pv, ok := s.lex.(lexicon.PrefixVisitor); ok {
		seen := make(map[int]bool)
		_ = pv.VisitPrefixes(rest, func(p string) error {
			if len(p) < len(rest) && strings.HasPrefix(rest, p) {
				seen[len(p)] = true
			}
			return nil
		})
		n := 0
		for i := range rest {
			if i > 0 && n <= s.opts.ShortWordLength {
				seen[i] = true
			}
			n++
		}
		for c := range seen {
			out = append(out, c)
		}
		sort.Ints(out)
		return out
	}
	for i := range rest {
		if i > 0 {
			out = append(out, i)
		}
	}
	return out
}
