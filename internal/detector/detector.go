// Package detector decides which tokens the correction stages should look at.
//
// Non-word detectors flag tokens that no lexicon recognises. Real-word detectors flag
// known words only when there is enough evidence to second-guess them: a minimum length,
// an embedding vector and a corpus count above a floor. Anything carrying correction
// history is left alone by the real-word detectors.
package detector

import (
	"strings"
	"unicode/utf8"

	"spellpipe/internal/config"
	"spellpipe/internal/lexicon"
	"spellpipe/internal/textmodel"
)

// Counter exposes corpus counts.
type Counter interface {
	Count(word string) int64
}

// VectorIndex exposes embedding presence.
type VectorIndex interface {
	HasVector(word string) bool
}

// Detector bundles the lookups the five detectors share.
type Detector struct {
	check lexicon.Lexicon
	units lexicon.Lexicon
	freq  Counter
	vec   VectorIndex
	gates config.Detectors
}

// New creates a Detector. units may be nil: bare units are then ordinary words and
// measurements are recognised with DefaultUnits.
func New(check, units lexicon.Lexicon, freq Counter, vec VectorIndex, gates config.Detectors) *Detector {
	return &Detector{check: check, units: units, freq: freq, vec: vec, gates: gates}
}

// Valid reports whether word is a known word form. Hyphenated words are valid when
// every part is.
func (d *Detector) Valid(word string) bool {
	if word == "" {
		return false
	}
	if d.check.IsValid(word) || d.check.IsValid(strings.ToLower(word)) {
		return true
	}
	if strings.Contains(word, "-") {
		parts := strings.Split(word, "-")
		for _, p := range parts {
			if p == "" || !(d.check.IsValid(p) || d.check.IsValid(strings.ToLower(p))) {
				return false
			}
		}
		return true
	}
	return false
}

// NonWord flags a token text whose core is not a known word and is not an exception.
func (d *Detector) NonWord(word string) bool {
	ct := textmodel.NewCoreTerm(word)
	if ct.IsEmpty() || d.IsException(word) || d.IsException(ct.Core) {
		return false
	}
	return !d.Valid(word) && !d.Valid(ct.Core)
}

// NonWordMerge is NonWord restricted to cores longer than one rune that are not all-uppercase.
func (d *Detector) NonWordMerge(word string) bool {
	core := textmodel.NewCoreTerm(word).Core
	if utf8.RuneCountInString(core) < 2 || textmodel.IsUpper(core) {
		return false
	}
	return d.NonWord(word)
}

// ValidMerge reports whether a merged core can replace the merged tokens.
func (d *Detector) ValidMerge(merged string) bool {
	return merged != "" && !d.IsException(merged) && d.Valid(merged)
}

func (d *Detector) realWord(tok textmodel.Token, g config.RealWordGate) bool {
	if tok.HasHistory() || tok.IsSpace() {
		return false
	}
	core := textmodel.NewCoreTerm(tok.Text).Core
	if core == "" || d.IsException(core) || !d.Valid(core) {
		return false
	}
	if utf8.RuneCountInString(core) < g.MinLength {
		return false
	}
	lower := strings.ToLower(core)
	if d.vec == nil || !d.vec.HasVector(lower) {
		return false
	}
	return d.freq != nil && d.freq.Count(lower) >= g.MinWC
}

// RealWord1To1 flags a known word as a candidate for one-to-one replacement.
func (d *Detector) RealWord1To1(tok textmodel.Token) bool {
	return d.realWord(tok, d.gates.RW1To1)
}

// RealWordSplit flags a known word as a candidate for splitting.
func (d *Detector) RealWordSplit(tok textmodel.Token) bool {
	return d.realWord(tok, d.gates.RWSplit)
}

// RealWordMerge flags a known word as a merge target. Single runes and all-caps are excluded.
func (d *Detector) RealWordMerge(tok textmodel.Token) bool {
	core := textmodel.NewCoreTerm(tok.Text).Core
	if utf8.RuneCountInString(core) < 2 || textmodel.IsUpper(core) {
		return false
	}
	return d.realWord(tok, d.gates.RWMerge)
}
