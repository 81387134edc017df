// Package freq holds corpus word counts and turns them into a bounded frequency score.
package freq

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"spellpipe/internal/logger"
	"spellpipe/internal/mapfile"
)

// Table is a read-only word→count map. Lookups are case-insensitive.
type Table struct {
	counts map[string]int64
	max    int64
}

// New builds a table from counts. Keys are lowercased; duplicate keys are summed.
func New(counts map[string]int64) *Table {
	t := &Table{counts: make(map[string]int64, len(counts))}
	for w, c := range counts {
		t.add(w, c)
	}
	return t
}

func (t *Table) add(word string, count int64) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" || count < 0 {
		return
	}
	t.counts[w] += count
	if c := t.counts[w]; c > t.max {
		t.max = c
	}
}

// Count returns the corpus count of word, 0 when unknown.
func (t *Table) Count(word string) int64 {
	if t == nil {
		return 0
	}
	return t.counts[strings.ToLower(word)]
}

// MaxCount is the largest count in the table.
func (t *Table) MaxCount() int64 {
	if t == nil {
		return 0
	}
	return t.max
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.counts)
}

// Score maps the count of word into [0,1] with log(1+count)/log(1+max).
func (t *Table) Score(word string) float64 {
	return t.ScoreCount(t.Count(word))
}

// ScoreCount applies the Score mapping to a raw count.
func (t *Table) ScoreCount(count int64) float64 {
	if t.MaxCount() <= 0 || count <= 0 {
		return 0
	}
	s := math.Log1p(float64(count)) / math.Log1p(float64(t.max))
	return math.Min(s, 1)
}

// Parse reads "word|count" lines. Blank and '#' lines are ignored; malformed lines are
// skipped with a warning.
func Parse(data []byte, name string, lg *log.Logger) *Table {
	lg = logger.OrDiscard(lg)
	t := &Table{counts: make(map[string]int64)}
	mapfile.Lines(data, func(n int, line []byte) {
		t.parseLine(n, line, name, lg)
	})
	return t
}

func (t *Table) parseLine(n int, line []byte, name string, lg *log.Logger) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return
	}
	i := bytes.LastIndexByte(line, '|')
	if i <= 0 {
		lg.Warn("skipping malformed frequency line", "file", name, "line", n)
		return
	}
	count, err := strconv.ParseInt(string(bytes.TrimSpace(line[i+1:])), 10, 64)
	if err != nil || count < 0 {
		lg.Warn("skipping frequency line with bad count", "file", name, "line", n)
		return
	}
	t.add(string(line[:i]), count)
}

// LoadFile memory-maps and parses a frequency file.
func LoadFile(path string, lg *log.Logger) (*Table, error) {
	lg = logger.OrDiscard(lg)
	t := &Table{counts: make(map[string]int64)}
	err := mapfile.EachLine(path, func(n int, line []byte) {
		t.parseLine(n, line, path, lg)
	})
	if err != nil {
		return nil, err
	}
	lg.Debug("loaded frequency table", "file", path, "words", len(t.counts), "max", t.max)
	return t, nil
}
