package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"spellpipe/internal/logger"
)

// Variant selects the Lexicon implementation built by the loader.
type Variant string

const (
	VariantBasic Variant = "basic"
	VariantFull  Variant = "full"
)

// ParseVariant maps a configuration value to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantBasic, VariantFull:
		return v, nil
	}
	return "", fmt.Errorf("unknown lexicon variant %q", s)
}

// LoadOptions describes the layout of lexicon files.
type LoadOptions struct {
	Variant       Variant
	CaseSensitive bool
	// FieldIndex selects the word in pipe-delimited records. Lines without
	// a separator are taken whole.
	FieldIndex int
	Separator  string
}

func (o LoadOptions) sep() string {
	if o.Separator == "" {
		return "|"
	}
	return o.Separator
}

// ReadWords parses a word list. Blank lines and lines starting with '#' are ignored;
// records without the configured field are skipped with a warning.
func ReadWords(r io.Reader, opts LoadOptions, name string, lg *log.Logger) ([]string, error) {
	lg = logger.OrDiscard(lg)
	var words []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, opts.sep()) {
			words = append(words, line)
			continue
		}
		fields := strings.Split(line, opts.sep())
		if opts.FieldIndex < 0 || opts.FieldIndex >= len(fields) || strings.TrimSpace(fields[opts.FieldIndex]) == "" {
			lg.Warn("skipping malformed lexicon line", "file", name, "line", lineNo, "field", opts.FieldIndex)
			continue
		}
		words = append(words, strings.TrimSpace(fields[opts.FieldIndex]))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return words, nil
}

// Build constructs the lexicon variant selected by opts.
func Build(opts LoadOptions, words ...string) Lexicon {
	if opts.Variant == VariantFull {
		return NewFull(opts.CaseSensitive, words...)
	}
	return NewBasic(opts.CaseSensitive, words...)
}

// LoadFiles reads every path and returns one lexicon holding all their words.
// A missing or unreadable file is an error: an engine with a partial lexicon would miscorrect.
func LoadFiles(paths []string, opts LoadOptions, lg *log.Logger) (Lexicon, error) {
	lg = logger.OrDiscard(lg)
	var all []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open lexicon: %w", err)
		}
		words, err := ReadWords(f, opts, p, lg)
		f.Close()
		if err != nil {
			return nil, err
		}
		lg.Debug("loaded lexicon file", "file", p, "words", len(words))
		all = append(all, words...)
	}
	return Build(opts, all...), nil
}
