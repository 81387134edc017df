// Package embed holds word vectors and the vector arithmetic the context ranker needs.
package embed

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"spellpipe/internal/logger"
	"spellpipe/internal/mapfile"
)

// Vector is a fixed-length embedding.
type Vector []float64

// Table maps lowercase words to vectors of one dimension.
type Table struct {
	dim     int
	vectors map[string]Vector
}

// New builds a table of the given dimension. Vectors of another length are rejected.
func New(dim int, vectors map[string]Vector) (*Table, error) {
	t := &Table{dim: dim, vectors: make(map[string]Vector, len(vectors))}
	for w, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector for %q has %d dimensions, want %d", w, len(v), dim)
		}
		t.vectors[strings.ToLower(w)] = v
	}
	return t, nil
}

func (t *Table) Dim() int {
	if t == nil {
		return 0
	}
	return t.dim
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.vectors)
}

// HasVector reports whether word has an embedding.
func (t *Table) HasVector(word string) bool {
	if t == nil {
		return false
	}
	_, ok := t.vectors[strings.ToLower(word)]
	return ok
}

// Vector returns the embedding of word, or a zero vector when it has none.
func (t *Table) Vector(word string) Vector {
	if t == nil {
		return nil
	}
	if v, ok := t.vectors[strings.ToLower(word)]; ok {
		return v
	}
	return make(Vector, t.dim)
}

// Cosine returns the cosine similarity of a and b; 0 when either has zero length.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Average returns the element-wise mean of vs, or nil when vs is empty.
func Average(vs []Vector) Vector {
	if len(vs) == 0 {
		return nil
	}
	out := make(Vector, len(vs[0]))
	for _, v := range vs {
		for i := range out {
			if i < len(v) {
				out[i] += v[i]
			}
		}
	}
	for i := range out {
		out[i] /= float64(len(vs))
	}
	return out
}

type parser struct {
	t    *Table
	name string
	lg   *log.Logger
}

// parseLine reads "word v1 v2 ... vn". The first line may be a "<count> <dim>" header.
func (p *parser) parseLine(n int, line []byte) {
	fields := strings.Fields(string(bytes.TrimSpace(line)))
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return
	}
	if n == 1 && len(fields) == 2 {
		if _, err := strconv.Atoi(fields[0]); err == nil {
			if d, err := strconv.Atoi(fields[1]); err == nil {
				if p.t.dim == 0 {
					p.t.dim = d
				}
				return
			}
		}
	}
	if p.t.dim == 0 {
		p.t.dim = len(fields) - 1
	}
	if len(fields)-1 != p.t.dim || p.t.dim == 0 {
		p.lg.Warn("skipping embedding line with wrong dimension", "file", p.name, "line", n, "got", len(fields)-1, "want", p.t.dim)
		return
	}
	v := make(Vector, p.t.dim)
	for i, f := range fields[1:] {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			p.lg.Warn("skipping embedding line with bad number", "file", p.name, "line", n)
			return
		}
		v[i] = x
	}
	p.t.vectors[strings.ToLower(fields[0])] = v
}

// Parse reads an embedding text table. The dimension comes from the header when present,
// otherwise from the first vector line.
func Parse(data []byte, name string, lg *log.Logger) *Table {
	p := &parser{t: &Table{vectors: make(map[string]Vector)}, name: name, lg: logger.OrDiscard(lg)}
	mapfile.Lines(data, p.parseLine)
	return p.t
}

// LoadFile memory-maps and parses an embedding file.
func LoadFile(path string, lg *log.Logger) (*Table, error) {
	p := &parser{t: &Table{vectors: make(map[string]Vector)}, name: path, lg: logger.OrDiscard(lg)}
	if err := mapfile.EachLine(path, p.parseLine); err != nil {
		return nil, err
	}
	p.lg.Debug("loaded embeddings", "file", path, "words", len(p.t.vectors), "dim", p.t.dim)
	return p.t, nil
}
