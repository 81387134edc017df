// Package corrector runs the correction pipeline: a non-dictionary cleanup followed by the
// merge, split and one-to-one stages selected by the pipeline mode, first for non-words and
// then for real words. Every stage returns a new token sequence; merge and split results are
// reconciled back into tokens before the next stage starts.
package corrector

import (
	"fmt"

	"github.com/charmbracelet/log"

	"spellpipe/internal/candidate"
	"spellpipe/internal/config"
	"spellpipe/internal/detector"
	"spellpipe/internal/lexicon"
	"spellpipe/internal/logger"
	"spellpipe/internal/ranker"
	"spellpipe/internal/textmodel"
	"spellpipe/pkg/options"
)

// SpellCorrector is a configured engine. It holds no per-call state and is safe for
// concurrent use.
type SpellCorrector struct {
	cfg      *config.Config
	mode     Mode
	res      *Resources
	detect   *detector.Detector
	index    *candidate.Index
	splitter *candidate.Splitter
	rank     *ranker.Ranker
	stages   []stageSettings
	log      *log.Logger
	metrics  *Metrics
}

// pass is the state of one call.
type pass struct {
	sc    *SpellCorrector
	log   *log.Logger
	stats Stats
}

// NewSpellCorrector builds an engine over res. Every configuration and resource error is
// returned here; correction itself never fails.
func NewSpellCorrector(cfg *config.Config, res *Resources, lg *log.Logger) (*SpellCorrector, error) {
	lg = logger.OrDiscard(lg)
	if res == nil || res.Check == nil {
		return nil, fmt.Errorf("%w: check lexicon is required", config.ErrInvalidValue)
	}
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}
	rankMode, err := ranker.ParseMode(cfg.Ranking.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidValue, err)
	}
	suggest, split := res.Suggest, res.Split
	if suggest == nil {
		suggest = res.Check
	}
	if split == nil {
		split = res.Check
	}
	wl, ok := suggest.(lexicon.Wordlister)
	if !ok {
		return nil, fmt.Errorf("%w: suggestion lexicon %T cannot list its words", config.ErrInvalidValue, suggest)
	}

	// missing tables stay nil interfaces
	var counts candidate.Counter
	var freqTable ranker.FrequencyTable
	var vectors detector.VectorIndex
	var scorer *ranker.Context
	if res.Freq != nil {
		counts, freqTable = res.Freq, res.Freq
	}
	if res.Vectors != nil {
		vectors = res.Vectors
		scorer = ranker.NewContext(res.Vectors, cfg.Ranking.SkipUnknownWord)
	}

	c := cfg.Candidates
	index, err := candidate.NewIndex(wl.Words(), counts,
		options.WithMaxEditDistance(max(c.NWMaxEditDist, c.RWMaxEditDist)),
		options.WithMaxCandidates(c.MaxCandidates),
		options.WithMaxKeySize(c.MaxKeySize),
		options.WithMaxResultSize(c.MaxResultSize),
		options.WithCacheSize(c.CacheSize),
	)
	if err != nil {
		return nil, fmt.Errorf("candidate index: %w", err)
	}

	sc := &SpellCorrector{
		cfg:    cfg,
		mode:   mode,
		res:    res,
		detect: detector.New(res.Check, res.Units, counts, vectors, cfg.Detectors),
		index:  index,
		splitter: candidate.NewSplitter(split, counts, candidate.SplitOptions{
			ShortWordLength: c.ShortSplitWordLength,
			ShortWordMinWC:  c.ShortSplitWordMinWC,
			MaxCandidates:   c.MaxCandidates,
		}),
		rank: ranker.New(rankMode,
			ranker.NewOrthographic(ranker.Weights{
				EdFac:       cfg.Ranking.EdFac,
				PhoneticFac: cfg.Ranking.PhoneticFac,
				OverlapFac:  cfg.Ranking.OverlapFac,
			}, ranker.DefaultKeyboardCosts, c.CacheSize),
			freqTable, scorer),
		log:     lg,
		metrics: &Metrics{},
	}
	for _, t := range mode.Stages() {
		sc.stages = append(sc.stages, newStageSettings(cfg, t))
	}
	lg.Info("corrector ready", "mode", mode, "rank", rankMode, "stages", len(sc.stages), "index", index.Len())
	return sc, nil
}

func (sc *SpellCorrector) Mode() Mode { return sc.mode }

// Metrics returns the engine-wide counters.
func (sc *SpellCorrector) Metrics() *Metrics { return sc.metrics }

// Correct returns the corrected text.
func (sc *SpellCorrector) Correct(text string) string {
	return sc.CorrectText(text).Corrected
}

// CorrectText corrects text and returns the final tokens with their histories.
func (sc *SpellCorrector) CorrectText(text string) Result {
	tokens, stats := sc.CorrectTokens(textmodel.Tokenize(text))
	return Result{
		Original:  text,
		Corrected: textmodel.Reassemble(tokens),
		Tokens:    tokens,
		Stats:     stats,
	}
}

// CorrectTokens runs the pipeline over tokens. The input slice is not modified.
func (sc *SpellCorrector) CorrectTokens(tokens []textmodel.Token) ([]textmodel.Token, Stats) {
	p := &pass{sc: sc, log: sc.log}
	tokens = p.nonDictionary(tokens)
	for _, st := range sc.stages {
		switch st.kind {
		case config.NWMerge, config.RWMerge:
			tokens = p.merge(tokens, st)
		case config.NWSplit, config.RWSplit:
			tokens = p.split(tokens, st)
		default:
			tokens = p.oneToOne(tokens, st)
		}
	}
	sc.metrics.record(p.stats)
	return tokens, p.stats
}
