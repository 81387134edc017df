package corrector

import (
	"regexp"
	"strings"

	"spellpipe/internal/textmodel"
)

var (
	missingSpaceRe = regexp.MustCompile(`^(\p{P}*)(\p{L}{2,})([.?!,;:])(\p{L}{2,})(\p{P}*)$`)
	leadingDigitRe = regexp.MustCompile(`^(\p{P}*\d+)(\p{L}{2,})(\p{P}*)$`)
	endingDigitRe  = regexp.MustCompile(`^(\p{P}*)(\p{L}{2,})(\d+\p{P}*)$`)
)

var ordinalSuffixes = map[string]bool{"st": true, "nd": true, "rd": true, "th": true}

// nonDictionaryFix returns the text with a missing space restored, or "" when text needs
// no cleanup.
func (p *pass) nonDictionaryFix(text string) string {
	d := p.sc.detect
	if d.IsException(text) || d.Valid(text) {
		return ""
	}
	if m := missingSpaceRe.FindStringSubmatch(text); m != nil {
		if !d.Valid(m[2]+m[3]+m[4]) && d.Valid(m[2]) && d.Valid(m[4]) {
			return m[1] + m[2] + m[3] + " " + m[4] + m[5]
		}
		return ""
	}
	if m := leadingDigitRe.FindStringSubmatch(text); m != nil {
		if !ordinalSuffixes[strings.ToLower(m[2])] && d.Valid(m[2]) {
			return m[1] + " " + m[2] + m[3]
		}
		return ""
	}
	if m := endingDigitRe.FindStringSubmatch(text); m != nil && d.Valid(m[2]) {
		return m[1] + m[2] + " " + m[3]
	}
	return ""
}

// nonDictionary splits tokens glued by a missing space: "flashes.And", "12years", "years12".
func (p *pass) nonDictionary(tokens []textmodel.Token) []textmodel.Token {
	out := make([]textmodel.Token, len(tokens))
	copy(out, tokens)
	for i, tok := range tokens {
		if tok.IsSpace() || tok.HasHistory() {
			continue
		}
		fixed := p.nonDictionaryFix(tok.Text)
		if fixed == "" {
			continue
		}
		p.stats.Detected++
		p.stats.Corrected++
		out[i] = tok.WithCorrection(textmodel.StageNDSplit, fixed)
		p.log.Debug("non-dictionary split", "token", tok.Text, "result", fixed)
	}
	return expandSplits(out)
}
