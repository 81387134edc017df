package textmodel

import (
	"strings"
	"unicode"
)

// CoreTerm is a token text split into the stripped leading affix, the core used for lookups,
// and the stripped trailing affix. Prefix+Core+Suffix is the original text.
type CoreTerm struct {
	Prefix string
	Core   string
	Suffix string
}

func isAffixRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsDigit(r)
}

// NewCoreTerm strips leading and trailing space, punctuation and digits from text.
// A closing parenthesis that balances one inside the core is kept, so "noun(s)." has core "noun(s)".
func NewCoreTerm(text string) CoreTerm {
	core := strings.TrimLeftFunc(text, isAffixRune)
	prefix := text[:len(text)-len(core)]
	trimmed := strings.TrimRightFunc(core, isAffixRune)
	suffix := core[len(trimmed):]
	core = trimmed
	if strings.Count(core, "(") > strings.Count(core, ")") && strings.HasPrefix(suffix, ")") {
		core += ")"
		suffix = suffix[1:]
	}
	return CoreTerm{Prefix: prefix, Core: core, Suffix: suffix}
}

// Reattach puts the stripped affixes back around core.
func (c CoreTerm) Reattach(core string) string {
	return c.Prefix + core + c.Suffix
}

func (c CoreTerm) IsEmpty() bool { return c.Core == "" }

// Bare reports whether nothing was stripped.
func (c CoreTerm) Bare() bool { return c.Prefix == "" && c.Suffix == "" }

func (c CoreTerm) String() string { return c.Prefix + c.Core + c.Suffix }
