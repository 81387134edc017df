package ranker

import (
	"math"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hbollon/go-edlib"

	"spellpipe/internal/candidate"
)

// Weights are the orthographic factors.
type Weights struct {
	EdFac       float64
	PhoneticFac float64
	OverlapFac  float64
}

func (w Weights) sum() float64 { return w.EdFac + w.PhoneticFac + w.OverlapFac }

// Orthographic scores spelling and sound proximity between an original and a candidate.
type Orthographic struct {
	w     Weights
	costs KeyboardCosts
	cache *lru.Cache[string, float64]
}

// NewOrthographic creates a scorer. cacheSize <= 0 disables the distance cache.
func NewOrthographic(w Weights, costs KeyboardCosts, cacheSize int) *Orthographic {
	o := &Orthographic{w: w, costs: costs}
	if cacheSize > 0 {
		o.cache, _ = lru.New[string, float64](cacheSize)
	}
	return o
}

func (o *Orthographic) distance(a, b string) float64 {
	key := a + "\u0000" + b
	if o.cache != nil {
		if v, ok := o.cache.Get(key); ok {
			return v
		}
	}
	d := o.costs.WeightedDL(a, b)
	if o.cache != nil {
		o.cache.Add(key, d)
	}
	return d
}

// EditSimilarity is 1 - weightedDL/maxLen, clamped to [0,1].
func (o *Orthographic) EditSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if n == 0 {
		return 1
	}
	return math.Max(0, 1-o.distance(a, b)/float64(n))
}

// Overlap is the Jaccard similarity of the character bigrams of a and b.
func Overlap(a, b string) float64 {
	return float64(edlib.JaccardSimilarity(strings.ToLower(a), strings.ToLower(b), 2))
}

// Score is the weighted sum of edit similarity, phonetic match and overlap.
func (o *Orthographic) Score(original, cand string) float64 {
	var phonetic float64
	if candidate.SharePhonetic(original, cand) {
		phonetic = 1
	}
	return o.w.EdFac*o.EditSimilarity(original, cand) +
		o.w.PhoneticFac*phonetic +
		o.w.OverlapFac*Overlap(original, cand)
}

// Normalized is Score divided by the sum of the factors, in [0,1].
func (o *Orthographic) Normalized(original, cand string) float64 {
	s := o.w.sum()
	if s <= 0 {
		return 0
	}
	return o.Score(original, cand) / s
}
