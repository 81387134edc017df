// Package config turns the flat key→string configuration into a typed, validated Config.
//
// Every key listed in Defaults is required by Parse. Missing or unparseable values are
// collected and returned together so a misconfigured engine never gets constructed.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingKey   = errors.New("missing configuration key")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// CorrectionType names one of the six ranked correction kinds.
type CorrectionType string

const (
	NW1To1  CorrectionType = "NW_1TO1"
	NWSplit CorrectionType = "NW_SPLIT"
	NWMerge CorrectionType = "NW_MERGE"
	RW1To1  CorrectionType = "RW_1TO1"
	RWSplit CorrectionType = "RW_SPLIT"
	RWMerge CorrectionType = "RW_MERGE"
)

// CorrectionTypes lists every correction type in pipeline order.
var CorrectionTypes = []CorrectionType{NWMerge, NWSplit, NW1To1, RWMerge, RWSplit, RW1To1}

// Files holds the data file locations.
type Files struct {
	CheckDic      []string
	SuggestDic    []string
	SplitDic      []string
	Units         []string
	Frequency     string
	Embeddings    string
	FieldNo       int
	CaseSensitive bool
	Variant       string
}

// Candidates bounds candidate generation.
type Candidates struct {
	MaxCandidates        int
	MaxKeySize           int
	MaxResultSize        int
	NWMaxEditDist        int
	RWMaxEditDist        int
	NWMaxSplitNo         int
	RWMaxSplitNo         int
	NWMaxMergeNo         int
	RWMaxMergeNo         int
	NWMergeWithHyphen    bool
	ShortSplitWordLength int
	ShortSplitWordMinWC  int64
	CacheSize            int
}

// RealWordGate is the qualification floor of one real-word detector.
type RealWordGate struct {
	MinLength int
	MinWC     int64
}

// Detectors holds the real-word detector floors.
type Detectors struct {
	RW1To1 RealWordGate
	RWSplit RealWordGate
	RWMerge RealWordGate
}

// StageRank tunes ranking for one correction type.
type StageRank struct {
	ContextRadius int
	CFac          float64
	MinContext    float64
	MinFrequency  float64
	MinWC         int64
	// ContextGain is how much the winner's context score must exceed the original word's.
	// Only real-word stages use it.
	ContextGain float64
}

// Ranking holds the orthographic weights and the per-type stage settings.
type Ranking struct {
	Mode            string
	EdFac           float64
	PhoneticFac     float64
	OverlapFac      float64
	SkipUnknownWord bool
	Stages          map[CorrectionType]StageRank
}

// Config is the validated engine configuration.
type Config struct {
	Mode       string
	LogLevel   string
	Files      Files
	Candidates Candidates
	Detectors  Detectors
	Ranking    Ranking
}

// Stage returns the ranking settings of t.
func (c *Config) Stage(t CorrectionType) StageRank { return c.Ranking.Stages[t] }

// Defaults returns a complete key→value map. Callers override entries before Parse.
func Defaults() map[string]string {
	m := map[string]string{
		"CS_CHECK_DIC_FILES":    "",
		"CS_SUGGEST_DIC_FILES":  "",
		"CS_SPLIT_DIC_FILES":    "",
		"CS_UNIT_FILE":          "",
		"CS_FREQUENCY_FILE":     "",
		"CS_W2V_FILE":           "",
		"CS_DIC_FIELD_NO":       "0",
		"CS_DIC_CASE_SENSITIVE": "false",
		"CS_DIC_VARIANT":        "full",

		"CS_FUNC_MODE": "NW_ALL",
		"CS_RANK_MODE": "CSPELL",
		"CS_LOG_LEVEL": "info",

		"CS_CAN_MAX_CANDIDATES":          "25",
		"CS_CAN_MAX_KEY_SIZE":            "40",
		"CS_CAN_MAX_RESULT_SIZE":         "1000",
		"CS_CAN_NW_MAX_EDIT_DIST":        "2",
		"CS_CAN_RW_MAX_EDIT_DIST":        "1",
		"CS_CAN_NW_MAX_SPLIT_NO":         "3",
		"CS_CAN_RW_MAX_SPLIT_NO":         "2",
		"CS_CAN_NW_MAX_MERGE_NO":         "2",
		"CS_CAN_RW_MAX_MERGE_NO":         "2",
		"CS_CAN_NW_MERGE_WITH_HYPHEN":    "true",
		"CS_CAN_SHORT_SPLIT_WORD_LENGTH": "2",
		"CS_CAN_SHORT_SPLIT_WORD_MIN_WC": "1000",
		"CS_CAN_CACHE_SIZE":              "10000",

		"CS_DETECT_RW_1TO1_WORD_MIN_LENGTH":  "2",
		"CS_DETECT_RW_1TO1_WORD_MIN_WC":      "65",
		"CS_DETECT_RW_SPLIT_WORD_MIN_LENGTH": "4",
		"CS_DETECT_RW_SPLIT_WORD_MIN_WC":     "35",
		"CS_DETECT_RW_MERGE_WORD_MIN_LENGTH": "2",
		"CS_DETECT_RW_MERGE_WORD_MIN_WC":     "1",

		"CS_ORTHO_SCORE_ED_FAC":       "1.00",
		"CS_ORTHO_SCORE_PHONETIC_FAC": "0.70",
		"CS_ORTHO_SCORE_OVERLAP_FAC":  "0.80",
		"CS_W2V_SKIP_WORD":            "true",
	}
	for _, t := range CorrectionTypes {
		rw := strings.HasPrefix(string(t), "RW")
		m[stageKey(t, "CONTEXT_RADIUS")] = "2"
		if rw {
			m[stageKey(t, "C_FAC")] = "0.80"
			m[stageKey(t, "MIN_CS")] = "0.00"
			m[stageKey(t, "MIN_FS")] = "0.00"
			m[stageKey(t, "MIN_WC")] = "65"
			m[stageKey(t, "CS_GAIN")] = "0.10"
		} else {
			m[stageKey(t, "C_FAC")] = "0.30"
			m[stageKey(t, "MIN_CS")] = "-1.00"
			m[stageKey(t, "MIN_FS")] = "0.00"
			m[stageKey(t, "MIN_WC")] = "0"
			m[stageKey(t, "CS_GAIN")] = "0.00"
		}
	}
	return m
}

func stageKey(t CorrectionType, name string) string {
	return "CS_" + string(t) + "_" + name
}

// reader pulls typed values out of the flat map and remembers every failure.
type reader struct {
	m    map[string]string
	errs []error
}

func (r *reader) raw(key string) (string, bool) {
	v, ok := r.m[key]
	if !ok {
		r.errs = append(r.errs, fmt.Errorf("%w: %s", ErrMissingKey, key))
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (r *reader) str(key string) string {
	v, _ := r.raw(key)
	return v
}

func (r *reader) list(key string) []string {
	v, ok := r.raw(key)
	if !ok || v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *reader) int(key string) int {
	v, ok := r.raw(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v))
	}
	return n
}

func (r *reader) int64(key string) int64 {
	v, ok := r.raw(key)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v))
	}
	return n
}

func (r *reader) float(key string) float64 {
	v, ok := r.raw(key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v))
	}
	return f
}

func (r *reader) bool(key string) bool {
	v, ok := r.raw(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v))
	}
	return b
}

func (r *reader) positive(key string, v int) {
	if v <= 0 {
		r.errs = append(r.errs, fmt.Errorf("%w: %s must be positive", ErrInvalidValue, key))
	}
}

// Parse validates m into a Config.
func Parse(m map[string]string) (*Config, error) {
	r := &reader{m: m}
	c := &Config{
		Mode:     strings.ToUpper(r.str("CS_FUNC_MODE")),
		LogLevel: r.str("CS_LOG_LEVEL"),
		Files: Files{
			CheckDic:      r.list("CS_CHECK_DIC_FILES"),
			SuggestDic:    r.list("CS_SUGGEST_DIC_FILES"),
			SplitDic:      r.list("CS_SPLIT_DIC_FILES"),
			Units:         r.list("CS_UNIT_FILE"),
			Frequency:     r.str("CS_FREQUENCY_FILE"),
			Embeddings:    r.str("CS_W2V_FILE"),
			FieldNo:       r.int("CS_DIC_FIELD_NO"),
			CaseSensitive: r.bool("CS_DIC_CASE_SENSITIVE"),
			Variant:       r.str("CS_DIC_VARIANT"),
		},
		Candidates: Candidates{
			MaxCandidates:        r.int("CS_CAN_MAX_CANDIDATES"),
			MaxKeySize:           r.int("CS_CAN_MAX_KEY_SIZE"),
			MaxResultSize:        r.int("CS_CAN_MAX_RESULT_SIZE"),
			NWMaxEditDist:        r.int("CS_CAN_NW_MAX_EDIT_DIST"),
			RWMaxEditDist:        r.int("CS_CAN_RW_MAX_EDIT_DIST"),
			NWMaxSplitNo:         r.int("CS_CAN_NW_MAX_SPLIT_NO"),
			RWMaxSplitNo:         r.int("CS_CAN_RW_MAX_SPLIT_NO"),
			NWMaxMergeNo:         r.int("CS_CAN_NW_MAX_MERGE_NO"),
			RWMaxMergeNo:         r.int("CS_CAN_RW_MAX_MERGE_NO"),
			NWMergeWithHyphen:    r.bool("CS_CAN_NW_MERGE_WITH_HYPHEN"),
			ShortSplitWordLength: r.int("CS_CAN_SHORT_SPLIT_WORD_LENGTH"),
			ShortSplitWordMinWC:  r.int64("CS_CAN_SHORT_SPLIT_WORD_MIN_WC"),
			CacheSize:            r.int("CS_CAN_CACHE_SIZE"),
		},
		Detectors: Detectors{
			RW1To1:  RealWordGate{MinLength: r.int("CS_DETECT_RW_1TO1_WORD_MIN_LENGTH"), MinWC: r.int64("CS_DETECT_RW_1TO1_WORD_MIN_WC")},
			RWSplit: RealWordGate{MinLength: r.int("CS_DETECT_RW_SPLIT_WORD_MIN_LENGTH"), MinWC: r.int64("CS_DETECT_RW_SPLIT_WORD_MIN_WC")},
			RWMerge: RealWordGate{MinLength: r.int("CS_DETECT_RW_MERGE_WORD_MIN_LENGTH"), MinWC: r.int64("CS_DETECT_RW_MERGE_WORD_MIN_WC")},
		},
		Ranking: Ranking{
			Mode:            strings.ToUpper(r.str("CS_RANK_MODE")),
			EdFac:           r.float("CS_ORTHO_SCORE_ED_FAC"),
			PhoneticFac:     r.float("CS_ORTHO_SCORE_PHONETIC_FAC"),
			OverlapFac:      r.float("CS_ORTHO_SCORE_OVERLAP_FAC"),
			SkipUnknownWord: r.bool("CS_W2V_SKIP_WORD"),
			Stages:          make(map[CorrectionType]StageRank, len(CorrectionTypes)),
		},
	}
	for _, t := range CorrectionTypes {
		c.Ranking.Stages[t] = StageRank{
			ContextRadius: r.int(stageKey(t, "CONTEXT_RADIUS")),
			CFac:          r.float(stageKey(t, "C_FAC")),
			MinContext:    r.float(stageKey(t, "MIN_CS")),
			MinFrequency:  r.float(stageKey(t, "MIN_FS")),
			MinWC:         r.int64(stageKey(t, "MIN_WC")),
			ContextGain:   r.float(stageKey(t, "CS_GAIN")),
		}
		if c.Ranking.Stages[t].ContextRadius < 0 {
			r.errs = append(r.errs, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, stageKey(t, "CONTEXT_RADIUS")))
		}
	}
	r.positive("CS_CAN_MAX_CANDIDATES", c.Candidates.MaxCandidates)
	r.positive("CS_CAN_MAX_KEY_SIZE", c.Candidates.MaxKeySize)
	r.positive("CS_CAN_MAX_RESULT_SIZE", c.Candidates.MaxResultSize)
	r.positive("CS_CAN_NW_MAX_SPLIT_NO", c.Candidates.NWMaxSplitNo)
	r.positive("CS_CAN_RW_MAX_SPLIT_NO", c.Candidates.RWMaxSplitNo)
	r.positive("CS_CAN_NW_MAX_MERGE_NO", c.Candidates.NWMaxMergeNo)
	r.positive("CS_CAN_RW_MAX_MERGE_NO", c.Candidates.RWMaxMergeNo)
	r.positive("CS_CAN_CACHE_SIZE", c.Candidates.CacheSize)
	if d := c.Candidates.NWMaxEditDist; d < 1 || d > 2 {
		r.errs = append(r.errs, fmt.Errorf("%w: CS_CAN_NW_MAX_EDIT_DIST must be 1 or 2", ErrInvalidValue))
	}
	if d := c.Candidates.RWMaxEditDist; d < 1 || d > 2 {
		r.errs = append(r.errs, fmt.Errorf("%w: CS_CAN_RW_MAX_EDIT_DIST must be 1 or 2", ErrInvalidValue))
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge returns a copy of base with overrides applied.
func Merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
