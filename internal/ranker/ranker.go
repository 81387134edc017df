// Package ranker scores correction candidates and picks the winner.
//
// Three signals are combined: an orthographic score (keyboard-weighted edit similarity,
// Double Metaphone match and bigram overlap), a frequency score from corpus counts and a
// context score, the cosine between the candidate embedding and the averaged embedding
// of the surrounding words. The ranking mode decides how they are combined.
package ranker

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"spellpipe/internal/config"
	"spellpipe/internal/embed"
)

// Mode selects the combination formula.
type Mode string

const (
	ModeOrthographic Mode = "ORTHOGRAPHIC"
	ModeFrequency    Mode = "FREQUENCY"
	ModeContext      Mode = "CONTEXT"
	ModeEnsemble     Mode = "ENSEMBLE"
	ModeCSpell       Mode = "CSPELL"
)

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeOrthographic, ModeFrequency, ModeContext, ModeEnsemble, ModeCSpell:
		return m, nil
	}
	return "", fmt.Errorf("unknown ranking mode %q", s)
}

// FrequencyTable is the count lookup the ranker needs.
type FrequencyTable interface {
	Count(word string) int64
	Score(word string) float64
}

// Scored is a candidate with its signals.
type Scored struct {
	Candidate    string
	Orthographic float64
	Frequency    float64
	Context      float64
	Combined     float64
	Count        int64
}

// Ranker combines the three signals under one mode. It is safe for concurrent use.
type Ranker struct {
	mode  Mode
	ortho *Orthographic
	freq  FrequencyTable
	ctx   *Context
}

// New creates a Ranker. freq and ctx may be nil; their signals are then 0.
func New(mode Mode, ortho *Orthographic, freq FrequencyTable, ctx *Context) *Ranker {
	return &Ranker{mode: mode, ortho: ortho, freq: freq, ctx: ctx}
}

func (r *Ranker) Mode() Mode { return r.mode }

// frequency averages the piece scores of a split candidate; count is the smallest piece count.
func (r *Ranker) frequency(phrase string) (score float64, count int64) {
	if r.freq == nil {
		return 0, 0
	}
	pieces := strings.Fields(strings.ToLower(phrase))
	if len(pieces) == 0 {
		return 0, 0
	}
	count = math.MaxInt64
	for _, p := range pieces {
		score += r.freq.Score(p)
		count = min(count, r.freq.Count(p))
	}
	return score / float64(len(pieces)), count
}

// Score computes the signals of cand as a replacement for original against the context
// vector ctxVec.
func (r *Ranker) Score(original, cand string, ctxVec embed.Vector, st config.StageRank) Scored {
	s := Scored{Candidate: cand}
	s.Orthographic = r.ortho.Normalized(original, cand)
	s.Frequency, s.Count = r.frequency(cand)
	if r.ctx != nil {
		s.Context = r.ctx.Score(cand, ctxVec)
	}
	ctx01 := (s.Context + 1) / 2
	switch r.mode {
	case ModeOrthographic:
		s.Combined = s.Orthographic
	case ModeFrequency:
		s.Combined = s.Frequency
	case ModeContext:
		s.Combined = s.Context
	case ModeEnsemble:
		s.Combined = s.Orthographic + s.Frequency + ctx01
	default:
		s.Combined = st.CFac*ctx01 + (1-st.CFac)*(s.Orthographic+s.Frequency)/2
	}
	return s
}

func passes(s Scored, st config.StageRank) bool {
	return s.Context >= st.MinContext && s.Frequency >= st.MinFrequency && s.Count >= st.MinWC
}

// better orders by combined score, then corpus count, then lexicographically.
func better(a, b Scored) bool {
	if a.Combined != b.Combined {
		return a.Combined > b.Combined
	}
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Candidate < b.Candidate
}

// Rank scores candidates and returns the ones passing the stage gates, best first.
func (r *Ranker) Rank(original string, candidates []string, w Window, st config.StageRank) []Scored {
	ctxVec := r.ctx.Vector(w, st.ContextRadius)
	out := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if s := r.Score(original, c, ctxVec, st); passes(s, st) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

// Item is a candidate together with the text it replaces and the window around that text.
type Item struct {
	Original  string
	Candidate string
	Window    Window
}

// Select returns the best item passing the stage gates and its index. For real-word stages
// the winner must also improve on the context score of its original by the stage's context
// gain. ok is false when the original should be kept.
func (r *Ranker) Select(items []Item, st config.StageRank, realWord bool) (best Scored, idx int, ok bool) {
	idx = -1
	var bestCtx embed.Vector
	for j, it := range items {
		ctxVec := r.ctx.Vector(it.Window, st.ContextRadius)
		s := r.Score(it.Original, it.Candidate, ctxVec, st)
		if !passes(s, st) {
			continue
		}
		if idx < 0 || better(s, best) {
			best, idx, bestCtx = s, j, ctxVec
		}
	}
	if idx < 0 {
		return Scored{}, -1, false
	}
	if realWord && best.Context-r.ctx.Score(items[idx].Original, bestCtx) < st.ContextGain {
		return Scored{}, -1, false
	}
	return best, idx, true
}

// Best is Select over candidates sharing one original and window.
func (r *Ranker) Best(original string, candidates []string, w Window, st config.StageRank, realWord bool) (Scored, bool) {
	items := make([]Item, len(candidates))
	for i, c := range candidates {
		items[i] = Item{Original: original, Candidate: c, Window: w}
	}
	best, _, ok := r.Select(items, st, realWord)
	return best, ok
}
