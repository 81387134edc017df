package candidate

import (
	"strings"

	"spellpipe/internal/textmodel"
)

// Merge is one merge candidate over the non-space token sequence.
type Merge struct {
	Start, End int
	// Core is the joined core used for validation and ranking.
	Core string
	// Surface is Core with the first token's prefix and the last token's suffix reattached.
	Surface string
	Hyphen  bool
}

// Size is the number of merged tokens.
func (m Merge) Size() int { return m.End - m.Start + 1 }

// MergeOptions controls merge generation.
type MergeOptions struct {
	// Window is the number of neighbours the target may absorb on either side.
	Window int
	Hyphen bool
}

// Merges returns every span of words containing target that joins the target with 1..Window
// neighbours and whose joined core passes valid. Inner boundaries must be bare words: only
// the first token may keep a prefix and only the last a suffix. Results are ordered by span
// size, then start, plain joins before hyphenated ones.
func Merges(words []string, target int, opts MergeOptions, valid func(core string) bool) []Merge {
	if target < 0 || target >= len(words) || opts.Window < 1 {
		return nil
	}
	terms := make([]textmodel.CoreTerm, len(words))
	for i, w := range words {
		terms[i] = textmodel.NewCoreTerm(w)
	}
	var out []Merge
	for size := 2; size <= opts.Window+1; size++ {
		for start := target - size + 1; start <= target; start++ {
			end := start + size - 1
			if start < 0 || end >= len(words) {
				continue
			}
			cores, ok := joinable(terms[start : end+1])
			if !ok {
				continue
			}
			joiners := []string{""}
			if opts.Hyphen {
				joiners = append(joiners, "-")
			}
			for _, j := range joiners {
				core := strings.Join(cores, j)
				if !valid(core) {
					continue
				}
				out = append(out, Merge{
					Start:   start,
					End:     end,
					Core:    core,
					Surface: terms[start].Prefix + core + terms[end].Suffix,
					Hyphen:  j != "",
				})
			}
		}
	}
	return out
}

func joinable(span []textmodel.CoreTerm) ([]string, bool) {
	cores := make([]string, len(span))
	for i, ct := range span {
		if ct.Core == "" || !lettersOnly(ct.Core) {
			return nil, false
		}
		if i > 0 && ct.Prefix != "" {
			return nil, false
		}
		if i < len(span)-1 && ct.Suffix != "" {
			return nil, false
		}
		cores[i] = ct.Core
	}
	return cores, true
}
