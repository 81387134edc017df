package corrector

import (
	"fmt"
	"strings"

	"spellpipe/internal/config"
)

// Mode selects which correction stages run.
type Mode string

const (
	ModeND          Mode = "ND"
	ModeNW1To1      Mode = "NW_1TO1"
	ModeNWSplit     Mode = "NW_SPLIT"
	ModeNWMerge     Mode = "NW_MERGE"
	ModeNWSplit1To1 Mode = "NW_SPLIT_1TO1"
	ModeNWAll       Mode = "NW_ALL"
	ModeRW1To1      Mode = "RW_1TO1"
	ModeRWSplit     Mode = "RW_SPLIT"
	ModeRWMerge     Mode = "RW_MERGE"
	ModeRWAll       Mode = "RW_ALL"
)

var nonWordAll = []config.CorrectionType{config.NWMerge, config.NWSplit, config.NW1To1}

var modeStages = map[Mode][]config.CorrectionType{
	ModeND:          nil,
	ModeNW1To1:      {config.NW1To1},
	ModeNWSplit:     {config.NWSplit},
	ModeNWMerge:     {config.NWMerge},
	ModeNWSplit1To1: {config.NWSplit, config.NW1To1},
	ModeNWAll:       nonWordAll,
	ModeRW1To1:      append(append([]config.CorrectionType(nil), nonWordAll...), config.RW1To1),
	ModeRWSplit:     append(append([]config.CorrectionType(nil), nonWordAll...), config.RWSplit),
	ModeRWMerge:     append(append([]config.CorrectionType(nil), nonWordAll...), config.RWMerge),
	ModeRWAll:       config.CorrectionTypes,
}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := modeStages[m]; !ok {
		return "", fmt.Errorf("unknown pipeline mode %q", s)
	}
	return m, nil
}

// Stages lists the correction stages of m in execution order. The non-dictionary cleanup is
// not listed; it always runs first.
func (m Mode) Stages() []config.CorrectionType {
	return append([]config.CorrectionType(nil), modeStages[m]...)
}
