package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spellpipe/internal/config"
	"spellpipe/internal/lexicon"
	"spellpipe/internal/textmodel"
)

type counts map[string]int64

func (c counts) Count(w string) int64 { return c[w] }

type vectors map[string]bool

func (v vectors) HasVector(w string) bool { return v[w] }

func newDetector() *Detector {
	check := lexicon.NewBasic(false, "she", "had", "problems", "during", "her", "think", "thing", "i", "a", "well", "known", "kg")
	units := lexicon.NewBasic(true, "kg", "mg", "km", "%")
	freq := counts{"thing": 500, "think": 900, "she": 50, "well": 100, "i": 1000}
	vec := vectors{"thing": true, "think": true, "she": true, "well": true, "i": true}
	gates := config.Detectors{
		RW1To1:  config.RealWordGate{MinLength: 2, MinWC: 65},
		RWSplit: config.RealWordGate{MinLength: 4, MinWC: 35},
		RWMerge: config.RealWordGate{MinLength: 2, MinWC: 1},
	}
	return New(check, units, freq, vec, gates)
}

func TestExceptions(t *testing.T) {
	t.Parallel()

	d := newDetector()
	for _, w := range []string{"70kg", "http://x.org", "a@b.com", "123.45", "", "   ", "...", "42", "1,000", "12:30", "www.example.com", "5.5mg", "kg", "google.com", "docs.google.com/x", "bbc.co.uk."} {
		assert.True(t, d.IsException(w), w)
		assert.False(t, d.NonWord(w), w)
	}
	for _, w := range []string{"forr", "70kgs", "12years", "hello@", "http", "flashes.And", "google.xyz"} {
		assert.False(t, d.IsException(w), w)
	}
}

func TestExceptionsWithoutLexiconMembership(t *testing.T) {
	t.Parallel()

	d := New(lexicon.NewBasic(false), lexicon.NewBasic(false, "kg"), nil, nil, config.Detectors{})
	for _, w := range []string{"70kg", "http://x.org", "a@b.com", "123.45"} {
		assert.False(t, d.NonWord(w), w)
	}
}

func TestDefaultUnits(t *testing.T) {
	t.Parallel()

	d := New(lexicon.NewBasic(false, "she", "weighs", "km", "in"), nil, nil, nil, config.Detectors{})
	for _, w := range []string{"70kg", "5GB", "3.5km", "12min", "100km/h", "20°C", "6ft."} {
		assert.True(t, d.IsException(w), w)
		assert.False(t, d.NonWord(w), w)
	}
	for _, w := range []string{"kg", "in", "70kgz", "12years"} {
		assert.False(t, d.IsException(w), w)
	}
	assert.True(t, d.NonWord("kgs"))
}

func TestNonWord(t *testing.T) {
	t.Parallel()

	d := newDetector()
	tests := []struct {
		word      string
		nonWord   bool
		mergeable bool
	}{
		{"she", false, false},
		{"She.", false, false},
		{"dur", true, true},
		{"ing,", true, true},
		{"x", true, false},
		{"DUR", true, false},
		{"well-known", false, false},
		{"well-knwn", true, true},
		{"(problems)", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nonWord, d.NonWord(tt.word), tt.word)
		assert.Equal(t, tt.mergeable, d.NonWordMerge(tt.word), tt.word)
	}
	assert.True(t, d.ValidMerge("during"))
	assert.False(t, d.ValidMerge("problemsdur"))
	assert.False(t, d.ValidMerge("70kg"))
}

func TestRealWord(t *testing.T) {
	t.Parallel()

	d := newDetector()
	thing := textmodel.NewToken("thing", 0)
	assert.True(t, d.RealWord1To1(thing))
	assert.True(t, d.RealWordSplit(thing))
	assert.True(t, d.RealWordMerge(thing))

	corrected := thing.WithCorrection(textmodel.StageNW1To1, "thing")
	assert.False(t, d.RealWord1To1(corrected), "tokens with history are never re-examined")

	she := textmodel.NewToken("she", 0)
	assert.False(t, d.RealWord1To1(she), "below the count floor")
	assert.False(t, d.RealWordSplit(she), "too short")

	assert.False(t, d.RealWord1To1(textmodel.NewToken("had", 0)), "no embedding")
	assert.False(t, d.RealWord1To1(textmodel.NewToken("forr", 0)), "not a known word")
	assert.False(t, d.RealWordMerge(textmodel.NewToken("I", 0)), "single rune")
	assert.False(t, d.RealWordMerge(textmodel.NewToken("THINK", 0)), "all caps")
	assert.True(t, d.RealWord1To1(textmodel.NewToken("THINK", 0)))
}
