package textmodel

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsTitle reports an uppercase first rune followed by lowercase runes.
func IsTitle(s string) bool {
	if s == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r) && strings.ToLower(s[size:]) == s[size:]
}

// IsUpper reports a string with letters, all of them uppercase.
func IsUpper(s string) bool { return hasLetter(s) && strings.ToUpper(s) == s }

// Title uppercases the first rune of s.
func Title(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// MatchCase gives candidate the case pattern of original: all-caps stays all-caps,
// a leading capital stays a leading capital, anything else keeps the candidate as is.
func MatchCase(original, candidate string) string {
	if utf8.RuneCountInString(original) > 1 && IsUpper(original) {
		return strings.ToUpper(candidate)
	}
	r, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(r) {
		return Title(candidate)
	}
	return candidate
}
