package corrector

import (
	"fmt"

	"github.com/charmbracelet/log"

	"spellpipe/internal/config"
	"spellpipe/internal/embed"
	"spellpipe/internal/freq"
	"spellpipe/internal/lexicon"
	"spellpipe/internal/logger"
)

// Resources are the read-only tables an engine works on.
type Resources struct {
	// Check decides whether a word is known.
	Check lexicon.Lexicon
	// Suggest feeds the one-to-one candidate index and must list its words.
	Suggest lexicon.Lexicon
	// Split validates split pieces.
	Split lexicon.Lexicon
	// Units lists measurement units. When nil, measurements are matched against
	// detector.DefaultUnits.
	Units   lexicon.Lexicon
	Freq    *freq.Table
	Vectors *embed.Table
}

// LoadResources reads every data file named in cfg. Empty suggestion or split lists fall back
// to the check lexicon; the frequency and embedding files are optional.
func LoadResources(cfg *config.Config, lg *log.Logger) (*Resources, error) {
	lg = logger.OrDiscard(lg)
	f := cfg.Files
	if len(f.CheckDic) == 0 {
		return nil, fmt.Errorf("%w: CS_CHECK_DIC_FILES is empty", config.ErrInvalidValue)
	}
	variant, err := lexicon.ParseVariant(f.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}
	opts := lexicon.LoadOptions{Variant: variant, CaseSensitive: f.CaseSensitive, FieldIndex: f.FieldNo}

	res := &Resources{}
	if res.Check, err = lexicon.LoadFiles(f.CheckDic, opts, lg); err != nil {
		return nil, fmt.Errorf("check lexicon: %w", err)
	}
	res.Suggest, res.Split = res.Check, res.Check
	if len(f.SuggestDic) > 0 {
		if res.Suggest, err = lexicon.LoadFiles(f.SuggestDic, opts, lg); err != nil {
			return nil, fmt.Errorf("suggestion lexicon: %w", err)
		}
	}
	if len(f.SplitDic) > 0 {
		if res.Split, err = lexicon.LoadFiles(f.SplitDic, opts, lg); err != nil {
			return nil, fmt.Errorf("split lexicon: %w", err)
		}
	}
	if len(f.Units) > 0 {
		unitOpts := opts
		unitOpts.Variant = lexicon.VariantBasic
		if res.Units, err = lexicon.LoadFiles(f.Units, unitOpts, lg); err != nil {
			return nil, fmt.Errorf("unit lexicon: %w", err)
		}
	}
	if f.Frequency != "" {
		if res.Freq, err = freq.LoadFile(f.Frequency, lg); err != nil {
			return nil, err
		}
	}
	if f.Embeddings != "" {
		if res.Vectors, err = embed.LoadFile(f.Embeddings, lg); err != nil {
			return nil, err
		}
	}
	lg.Info("resources loaded",
		"check", res.Check.Len(), "suggest", res.Suggest.Len(), "split", res.Split.Len(),
		"frequencies", res.Freq.Len(), "vectors", res.Vectors.Len())
	return res, nil
}

// WithWords returns a copy whose check, suggestion and split lexicons also accept extra.
func (r *Resources) WithWords(extra lexicon.Lexicon) *Resources {
	if extra == nil || extra.Len() == 0 {
		return r
	}
	cp := *r
	cp.Check = lexicon.Union{r.Check, extra}
	cp.Suggest = lexicon.Union{r.Suggest, extra}
	cp.Split = lexicon.Union{r.Split, extra}
	return &cp
}
