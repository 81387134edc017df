package textmodel

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text into maximal runs of whitespace and non-whitespace.
// Punctuation stays attached to the word it touches; CoreTerm strips it for lookups.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	var out []Token
	start := 0
	inSpace := false
	for i, r := range text {
		sp := unicode.IsSpace(r)
		if i == 0 {
			inSpace = sp
			continue
		}
		if sp != inSpace {
			out = append(out, NewToken(text[start:i], len(out)))
			start = i
			inSpace = sp
		}
	}
	return append(out, NewToken(text[start:], len(out)))
}

// Reassemble concatenates the token texts.
func Reassemble(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Classify returns the kind of a token text.
func Classify(text string) Kind {
	if text == "" {
		return Punct
	}
	var letters, digits, others, inner int
	n := utf8.RuneCountInString(text)
	i := 0
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if i == 0 && strings.TrimSpace(text) == "" {
				return Space
			}
			others++
		case unicode.IsLetter(r) || unicode.Is(unicode.Mn, r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case (r == '\'' || r == '-' || r == '’') && i > 0 && i < n-1:
			inner++
		default:
			others++
		}
		i++
	}
	switch {
	case letters > 0 && digits == 0 && others == 0:
		return Word
	case letters == 0 && digits == 0:
		return Punct
	}
	return Mixed
}

// Reindex returns a copy of tokens with positions renumbered from zero.
func Reindex(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		t.Position = i
		out[i] = t
	}
	return out
}

// NonSpace returns the indices of the non-space tokens, in order.
func NonSpace(tokens []Token) []int {
	idx := make([]int, 0, len(tokens)/2+1)
	for i, t := range tokens {
		if !t.IsSpace() {
			idx = append(idx, i)
		}
	}
	return idx
}
