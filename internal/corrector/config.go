package corrector

import (
	"strings"

	"spellpipe/internal/config"
	"spellpipe/internal/textmodel"
)

// stageSettings is the slice of the configuration one correction stage reads.
type stageSettings struct {
	kind     config.CorrectionType
	tag      textmodel.Stage
	realWord bool
	editDist int
	maxSplit int
	maxMerge int
	hyphen   bool
	rank     config.StageRank
}

func newStageSettings(cfg *config.Config, t config.CorrectionType) stageSettings {
	s := stageSettings{
		kind:     t,
		tag:      textmodel.Stage(t),
		realWord: strings.HasPrefix(string(t), "RW"),
		rank:     cfg.Stage(t),
	}
	c := cfg.Candidates
	if s.realWord {
		s.editDist, s.maxSplit, s.maxMerge = c.RWMaxEditDist, c.RWMaxSplitNo, c.RWMaxMergeNo
	} else {
		s.editDist, s.maxSplit, s.maxMerge = c.NWMaxEditDist, c.NWMaxSplitNo, c.NWMaxMergeNo
		s.hyphen = c.NWMergeWithHyphen
	}
	return s
}

// Stats are the per-call counters.
type Stats struct {
	Detected  int `json:"detected" msgpack:"detected"`
	Corrected int `json:"corrected" msgpack:"corrected"`
}

// Result is the outcome of one CorrectText call.
type Result struct {
	Original  string            `json:"original" msgpack:"original"`
	Corrected string            `json:"corrected" msgpack:"corrected"`
	Tokens    []textmodel.Token `json:"tokens" msgpack:"tokens"`
	Stats     Stats             `json:"stats" msgpack:"stats"`
}

// Changes returns the tokens that carry correction history.
func (r Result) Changes() []textmodel.Token {
	var out []textmodel.Token
	for _, t := range r.Tokens {
		if t.HasHistory() {
			out = append(out, t)
		}
	}
	return out
}
