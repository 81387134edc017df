package ranker

import (
	"strings"

	"spellpipe/internal/embed"
)

// Embeddings is the embedding lookup the context score needs.
type Embeddings interface {
	HasVector(word string) bool
	Vector(word string) embed.Vector
}

// Window is the sequence of lowercased non-space cores and the span under correction.
type Window struct {
	Words      []string
	Start, End int
}

// Context scores candidates against the words around the corrected span.
type Context struct {
	vec         Embeddings
	skipUnknown bool
}

// NewContext creates a context scorer. With skipUnknown, words lacking a vector do not use
// up window slots; otherwise they take a slot and contribute a zero vector.
func NewContext(vec Embeddings, skipUnknown bool) *Context {
	return &Context{vec: vec, skipUnknown: skipUnknown}
}

// Vector averages the vectors of up to radius words on each side of the span.
func (c *Context) Vector(w Window, radius int) embed.Vector {
	if c == nil || c.vec == nil || radius <= 0 {
		return nil
	}
	var vs []embed.Vector
	take := func(i int) bool {
		word := w.Words[i]
		if word == "" || !c.vec.HasVector(word) {
			if c.skipUnknown {
				return false
			}
		}
		vs = append(vs, c.vec.Vector(word))
		return true
	}
	for i, n := w.Start-1, 0; i >= 0 && n < radius; i-- {
		if take(i) {
			n++
		}
	}
	for i, n := w.End+1, 0; i < len(w.Words) && n < radius; i++ {
		if take(i) {
			n++
		}
	}
	return embed.Average(vs)
}

// PhraseVector averages the vectors of the space-separated pieces of phrase that have one.
func (c *Context) PhraseVector(phrase string) embed.Vector {
	if c == nil || c.vec == nil {
		return nil
	}
	var vs []embed.Vector
	for _, p := range strings.Fields(strings.ToLower(phrase)) {
		if c.vec.HasVector(p) {
			vs = append(vs, c.vec.Vector(p))
		}
	}
	return embed.Average(vs)
}

// Score is the cosine between phrase and the context vector ctx.
func (c *Context) Score(phrase string, ctx embed.Vector) float64 {
	return embed.Cosine(c.PhraseVector(phrase), ctx)
}
