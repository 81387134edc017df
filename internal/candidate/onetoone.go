// Package candidate generates correction candidates: one-to-one replacements from an
// edit-distance and phonetic index, recursive splits and windowed merges.
package candidate

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"github.com/blevesearch/vellum"
	"github.com/blevesearch/vellum/levenshtein"
	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hbollon/go-edlib"

	"spellpipe/pkg/options"
)

// Counter exposes corpus counts.
type Counter interface {
	Count(word string) int64
}

// Index answers one-to-one candidate lookups over the suggestion lexicon.
// It is read-only after construction and safe for concurrent use.
type Index struct {
	opts     options.IndexOptions
	fst      *vellum.FST
	builders map[int]*levenshtein.LevenshteinAutomatonBuilder
	phonetic map[string][]string
	freq     Counter
	cache    *lru.Cache[string, []string]
}

// NewIndex builds the FST and phonetic buckets over words. Words are lowercased.
func NewIndex(words []string, freq Counter, opts ...options.Options) (*Index, error) {
	o := options.Build(opts...)
	if o.MaxEditDistance < 1 || o.MaxEditDistance > 2 {
		return nil, fmt.Errorf("max edit distance %d out of range [1,2]", o.MaxEditDistance)
	}

	keys := mapset.NewThreadUnsafeSet[string]()
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			keys.Add(w)
		}
	}
	sorted := keys.ToSlice()
	sort.Strings(sorted)

	var buf bytes.Buffer
	b, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("fst builder: %w", err)
	}
	for _, k := range sorted {
		if err := b.Insert([]byte(k), 0); err != nil {
			return nil, fmt.Errorf("fst insert %q: %w", k, err)
		}
	}
	if err := b.Close(); err != nil {
		return nil, fmt.Errorf("fst close: %w", err)
	}
	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("fst load: %w", err)
	}

	ix := &Index{
		opts:     o,
		fst:      fst,
		builders: make(map[int]*levenshtein.LevenshteinAutomatonBuilder, o.MaxEditDistance),
		phonetic: make(map[string][]string),
		freq:     freq,
	}
	for d := 1; d <= o.MaxEditDistance; d++ {
		lb, err := levenshtein.NewLevenshteinAutomatonBuilder(uint8(d), true)
		if err != nil {
			return nil, fmt.Errorf("levenshtein builder: %w", err)
		}
		ix.builders[d] = lb
	}
	if o.UsePhonetic {
		for _, k := range sorted {
			for _, code := range phoneticCodes(k) {
				ix.phonetic[code] = append(ix.phonetic[code], k)
			}
		}
	}
	if o.CacheSize > 0 {
		if ix.cache, err = lru.New[string, []string](o.CacheSize); err != nil {
			return nil, fmt.Errorf("candidate cache: %w", err)
		}
	}
	return ix, nil
}

// phoneticCodes returns the distinct non-empty Double Metaphone codes of word.
func phoneticCodes(word string) []string {
	p, s := matchr.DoubleMetaphone(word)
	switch {
	case p == "" && s == "":
		return nil
	case s == "" || s == p:
		return []string{p}
	case p == "":
		return []string{s}
	}
	return []string{p, s}
}

// SharePhonetic reports whether a and b have a Double Metaphone code in common.
func SharePhonetic(a, b string) bool {
	ca := phoneticCodes(strings.ToLower(a))
	for _, x := range phoneticCodes(strings.ToLower(b)) {
		for _, y := range ca {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Contains reports whether word is in the index.
func (ix *Index) Contains(word string) bool {
	ok, err := ix.fst.Contains([]byte(strings.ToLower(word)))
	return err == nil && ok
}

// Len is the number of indexed words.
func (ix *Index) Len() int { return ix.fst.Len() }

// Lookup returns the indexed words within maxDist edits of core, plus words sharing a
// phonetic code within maxDist+1 edits. The key itself is excluded. Results are ordered by
// edit distance, corpus count and then lexicographically, and capped at MaxCandidates.
func (ix *Index) Lookup(core string, maxDist int) []string {
	key := strings.ToLower(core)
	n := utf8.RuneCountInString(key)
	if n == 0 || n > ix.opts.MaxKeySize {
		return nil
	}
	dist := maxDist
	if dist > ix.opts.MaxEditDistance {
		dist = ix.opts.MaxEditDistance
	}
	if n <= ix.opts.ShortKeyLength {
		dist = 1
	}
	if dist < 1 {
		return nil
	}

	ck := fmt.Sprintf("%d\x00%s", dist, key)
	if ix.cache != nil {
		if v, ok := ix.cache.Get(ck); ok {
			return v
		}
	}
	out := ix.lookup(key, dist)
	if ix.cache != nil {
		ix.cache.Add(ck, out)
	}
	return out
}

func (ix *Index) lookup(key string, dist int) []string {
	found := mapset.NewThreadUnsafeSet[string]()
	dfa, err := ix.builders[dist].BuildDfa(key, uint8(dist))
	if err == nil {
		it, err := ix.fst.Search(dfa, nil, nil)
		for err == nil && found.Cardinality() < ix.opts.MaxResultSize {
			k, _ := it.Current()
			found.Add(string(k))
			err = it.Next()
		}
		if err != nil && !errors.Is(err, vellum.ErrIteratorDone) {
			found.Clear()
		}
	}
	if ix.opts.UsePhonetic {
		for _, code := range phoneticCodes(key) {
			for _, w := range ix.phonetic[code] {
				if found.Cardinality() >= ix.opts.MaxResultSize {
					break
				}
				if edlib.OSADamerauLevenshteinDistance(key, w) <= dist+1 {
					found.Add(w)
				}
			}
		}
	}
	found.Remove(key)

	type scored struct {
		word  string
		dist  int
		count int64
	}
	list := make([]scored, 0, found.Cardinality())
	for _, w := range found.ToSlice() {
		var c int64
		if ix.freq != nil {
			c = ix.freq.Count(w)
		}
		list = append(list, scored{word: w, dist: edlib.OSADamerauLevenshteinDistance(key, w), count: c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dist != list[j].dist {
			return list[i].dist < list[j].dist
		}
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].word < list[j].word
	})
	if len(list) > ix.opts.MaxCandidates {
		list = list[:ix.opts.MaxCandidates]
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.word
	}
	return out
}
