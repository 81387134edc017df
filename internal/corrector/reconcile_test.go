package corrector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellpipe/internal/textmodel"
)

func spans(ps []MergeProposal) [][2]int {
	out := make([][2]int, len(ps))
	for i, p := range ps {
		out[i] = [2]int{p.Start, p.End}
	}
	return out
}

func TestNormalizeProposals(t *testing.T) {
	tests := []struct {
		name string
		in   [][2]int
		want [][2]int
	}{
		{"partial overlap keeps earlier", [][2]int{{1, 3}, {0, 2}}, [][2]int{{0, 2}}},
		{"duplicates", [][2]int{{3, 4}, {3, 4}}, [][2]int{{3, 4}}},
		{"contained at same start", [][2]int{{0, 1}, {0, 3}}, [][2]int{{0, 3}}},
		{"contained inside", [][2]int{{0, 4}, {1, 2}}, [][2]int{{0, 4}}},
		{"chain of three", [][2]int{{2, 4}, {0, 1}, {1, 3}}, [][2]int{{0, 1}, {2, 4}}},
		{"wide window", [][2]int{{0, 3}, {2, 5}, {4, 6}, {7, 8}}, [][2]int{{0, 3}, {4, 6}, {7, 8}}},
		{"disjoint", [][2]int{{5, 6}, {0, 1}}, [][2]int{{0, 1}, {5, 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps []MergeProposal
			for _, s := range tt.in {
				ps = append(ps, MergeProposal{Start: s[0], End: s[1]})
			}
			assert.Equal(t, tt.want, spans(normalizeProposals(ps)))
		})
	}
}

func TestApplyMergesOverlap(t *testing.T) {
	tokens := textmodel.Tokenize("aa bb cc dd")
	idx := textmodel.NonSpace(tokens)
	ps := normalizeProposals([]MergeProposal{
		{Start: 0, End: 2, Merged: "aabbcc"},
		{Start: 1, End: 3, Merged: "bbccdd"},
	})

	out := applyMerges(tokens, idx, ps, textmodel.StageNWMerge)
	assert.Equal(t, "aabbcc dd", textmodel.Reassemble(out))
	require.Len(t, out, 3)
	for i, tok := range out {
		assert.Equal(t, i, tok.Position)
	}
	assert.Equal(t, "aa bb cc", out[0].History[0].Before)
}

func TestApplyMergesForwardsHistory(t *testing.T) {
	tokens := textmodel.Tokenize("dur ing")
	tokens[0] = tokens[0].WithCorrection(textmodel.StageNW1To1, "dur")
	idx := textmodel.NonSpace(tokens)

	out := applyMerges(tokens, idx, []MergeProposal{{Start: 0, End: 1, Target: 1, Merged: "during", TargetWord: "ing"}}, textmodel.StageRWMerge)
	require.Len(t, out, 1)
	hist := out[0].History
	require.Len(t, hist, 2)
	assert.True(t, hist[0].Merged)
	assert.Equal(t, "NW_1TO1+MERGED", hist[0].Tag())
	assert.Equal(t, textmodel.StageRWMerge, hist[1].Stage)
	assert.False(t, hist[1].Merged)
	assert.Nil(t, hist[0].Trigger)
	assert.Equal(t, &textmodel.Trigger{Word: "ing", Position: 2}, hist[1].Trigger)
}

func TestApplyMergesNoProposals(t *testing.T) {
	tokens := textmodel.Tokenize("a b")
	assert.Equal(t, tokens, applyMerges(tokens, textmodel.NonSpace(tokens), nil, textmodel.StageNWMerge))
}

func TestExpandSplits(t *testing.T) {
	tokens := textmodel.Tokenize("hotflashes and x")
	tokens[0] = tokens[0].WithCorrection(textmodel.StageNWSplit, "hot flashes")
	tokens[4] = tokens[4].WithCorrection(textmodel.StageNW1To1, "")

	out := expandSplits(tokens)
	assert.Equal(t, "hot flashes and ", textmodel.Reassemble(out))
	require.Len(t, out, 6)
	assert.Equal(t, "hot", out[0].Text)
	assert.Equal(t, textmodel.Space, out[1].Kind)
	assert.Empty(t, out[1].History)
	assert.Equal(t, out[0].History, out[2].History)
	assert.Equal(t, "hotflashes", out[2].History[0].Before)

	plain := textmodel.Tokenize("a  b")
	assert.Equal(t, plain, expandSplits(plain))
}
