package corrector

import (
	"sort"
	"strings"
	"unicode"

	"spellpipe/internal/textmodel"
)

// MergeProposal asks to collapse the non-space tokens Start..End into Merged because the
// token at Target, whose text is TargetWord, was flagged. Indices are over the non-space
// subsequence.
type MergeProposal struct {
	Start, End, Target int
	Merged             string
	// OriginalSpan is the replaced text including the inner whitespace.
	OriginalSpan string
	TargetWord   string
}

// normalizeProposals orders proposals by start, longer spans first, and keeps a proposal only
// when it starts after the end of the last kept one. Contained and partially overlapping
// proposals lose to the earlier one.
func normalizeProposals(ps []MergeProposal) []MergeProposal {
	sorted := append([]MergeProposal(nil), ps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})
	var out []MergeProposal
	last := -1
	for _, p := range sorted {
		if p.Start > last {
			out = append(out, p)
			last = p.End
		}
	}
	return out
}

// applyMerges rebuilds tokens with one merged token per proposal. idx maps non-space indices
// to token positions; ps must be normalized.
func applyMerges(tokens []textmodel.Token, idx []int, ps []MergeProposal, stage textmodel.Stage) []textmodel.Token {
	if len(ps) == 0 {
		return tokens
	}
	out := make([]textmodel.Token, 0, len(tokens))
	next := 0
	for i := 0; i < len(tokens); {
		if next < len(ps) && i == idx[ps[next].Start] {
			end := idx[ps[next].End]
			trigger := textmodel.Trigger{Word: ps[next].TargetWord, Position: tokens[idx[ps[next].Target]].Position}
			out = append(out, textmodel.Merged(stage, ps[next].Merged, tokens[i:end+1], trigger))
			i = end + 1
			next++
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return textmodel.Reindex(out)
}

// expandSplits turns every corrected token whose text holds whitespace into word tokens
// separated by single spaces. The words inherit the history of the corrected token.
// Corrected tokens left empty are dropped.
func expandSplits(tokens []textmodel.Token) []textmodel.Token {
	out := make([]textmodel.Token, 0, len(tokens))
	changed := false
	for _, t := range tokens {
		switch {
		case t.HasHistory() && t.Text == "":
			changed = true
		case t.HasHistory() && !t.IsSpace() && strings.ContainsFunc(t.Text, unicode.IsSpace):
			changed = true
			for j, piece := range strings.Fields(t.Text) {
				if j > 0 {
					out = append(out, textmodel.NewToken(" ", t.Position))
				}
				out = append(out, textmodel.Inherit(t, piece))
			}
		default:
			out = append(out, t)
		}
	}
	if !changed {
		return tokens
	}
	return textmodel.Reindex(out)
}
