package corrector

import (
	"strings"

	"spellpipe/internal/candidate"
	"spellpipe/internal/ranker"
	"spellpipe/internal/textmodel"
)

// view is the non-space projection of a token sequence that detection and ranking work on.
type view struct {
	idx   []int
	texts []string
	cores []string
	// words are the lowercased cores used as context.
	words []string
}

func newView(tokens []textmodel.Token) view {
	idx := textmodel.NonSpace(tokens)
	v := view{
		idx:   idx,
		texts: make([]string, len(idx)),
		cores: make([]string, len(idx)),
		words: make([]string, len(idx)),
	}
	for k, i := range idx {
		v.texts[k] = tokens[i].Text
		v.cores[k] = textmodel.NewCoreTerm(tokens[i].Text).Core
		v.words[k] = strings.ToLower(v.cores[k])
	}
	return v
}

func (v view) window(start, end int) ranker.Window {
	return ranker.Window{Words: v.words, Start: start, End: end}
}

// replace ranks candidates for the token at non-space index k and returns the corrected token.
func (p *pass) replace(tok textmodel.Token, v view, k int, candidates []string, st stageSettings) (textmodel.Token, bool) {
	ct := textmodel.NewCoreTerm(tok.Text)
	best, ok := p.sc.rank.Best(v.words[k], candidates, v.window(k, k), st.rank, st.realWord)
	if !ok {
		p.log.Debug("kept original", "stage", st.tag, "token", tok.Text, "candidates", len(candidates))
		return tok, false
	}
	text := ct.Reattach(textmodel.MatchCase(ct.Core, best.Candidate))
	if text == tok.Text {
		return tok, false
	}
	p.log.Debug("corrected", "stage", st.tag, "token", tok.Text, "result", text,
		"combined", best.Combined, "context", best.Context, "frequency", best.Frequency)
	return tok.WithCorrection(st.tag, text), true
}

// oneToOne replaces flagged tokens with the best candidate from the edit-distance index.
func (p *pass) oneToOne(tokens []textmodel.Token, st stageSettings) []textmodel.Token {
	v := newView(tokens)
	out := make([]textmodel.Token, len(tokens))
	copy(out, tokens)
	for k, i := range v.idx {
		tok := tokens[i]
		flagged := p.sc.detect.NonWord(tok.Text)
		if st.realWord {
			flagged = p.sc.detect.RealWord1To1(tok)
		}
		if !flagged {
			continue
		}
		p.stats.Detected++
		cands := p.sc.index.Lookup(v.cores[k], st.editDist)
		if fixed, ok := p.replace(tok, v, k, cands, st); ok {
			out[i] = fixed
			p.stats.Corrected++
		}
	}
	return out
}

// split replaces flagged tokens with space-separated pieces, then expands them into tokens.
func (p *pass) split(tokens []textmodel.Token, st stageSettings) []textmodel.Token {
	v := newView(tokens)
	out := make([]textmodel.Token, len(tokens))
	copy(out, tokens)
	for k, i := range v.idx {
		tok := tokens[i]
		flagged := !tok.HasHistory() && p.sc.detect.NonWord(tok.Text)
		if st.realWord {
			flagged = p.sc.detect.RealWordSplit(tok)
		}
		if !flagged {
			continue
		}
		p.stats.Detected++
		cands := p.sc.splitter.Candidates(v.cores[k], st.maxSplit)
		if fixed, ok := p.replace(tok, v, k, cands, st); ok {
			out[i] = fixed
			p.stats.Corrected++
		}
	}
	return expandSplits(out)
}

// merge proposes merges around every flagged token and reconciles the proposals.
func (p *pass) merge(tokens []textmodel.Token, st stageSettings) []textmodel.Token {
	v := newView(tokens)
	opts := candidate.MergeOptions{Window: st.maxMerge, Hyphen: st.hyphen}
	var proposals []MergeProposal
	for k, i := range v.idx {
		tok := tokens[i]
		flagged := p.sc.detect.NonWordMerge(tok.Text)
		if st.realWord {
			flagged = p.sc.detect.RealWordMerge(tok)
		}
		if !flagged {
			continue
		}
		p.stats.Detected++

		var merges []candidate.Merge
		for _, m := range candidate.Merges(v.texts, k, opts, p.sc.detect.ValidMerge) {
			if st.realWord && p.spanHasHistory(tokens, v, m) {
				continue
			}
			merges = append(merges, m)
		}
		if len(merges) == 0 {
			continue
		}
		items := make([]ranker.Item, len(merges))
		for j, m := range merges {
			items[j] = ranker.Item{
				Original:  strings.Join(v.words[m.Start:m.End+1], " "),
				Candidate: strings.ToLower(m.Core),
				Window:    v.window(m.Start, m.End),
			}
		}
		best, j, ok := p.sc.rank.Select(items, st.rank, st.realWord)
		if !ok {
			p.log.Debug("kept original", "stage", st.tag, "token", tok.Text, "candidates", len(items))
			continue
		}
		m := merges[j]
		proposals = append(proposals, MergeProposal{
			Start:        m.Start,
			End:          m.End,
			Target:       k,
			Merged:       m.Surface,
			OriginalSpan: textmodel.Reassemble(tokens[v.idx[m.Start] : v.idx[m.End]+1]),
			TargetWord:   tok.Text,
		})
		p.log.Debug("merge proposed", "stage", st.tag, "span", proposals[len(proposals)-1].OriginalSpan,
			"result", m.Surface, "combined", best.Combined)
	}
	kept := normalizeProposals(proposals)
	p.stats.Corrected += len(kept)
	return applyMerges(tokens, v.idx, kept, st.tag)
}

func (p *pass) spanHasHistory(tokens []textmodel.Token, v view, m candidate.Merge) bool {
	for k := m.Start; k <= m.End; k++ {
		if tokens[v.idx[k]].HasHistory() {
			return true
		}
	}
	return false
}
