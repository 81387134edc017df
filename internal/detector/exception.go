package detector

import (
	"regexp"
	"strings"
	"unicode"

	"spellpipe/internal/lexicon"
)

var (
	urlRe         = regexp.MustCompile(`(?i)^(?:[a-z][a-z0-9+.\-]*://|www\.)\S+$`)
	domainRe      = regexp.MustCompile(`(?i)^(?:[a-z0-9](?:[a-z0-9\-]*[a-z0-9])?\.)+(?:com|org|net|edu|gov|mil|int|io|info|biz|dev|app|ai|uk|de|eu|fr|jp|cn|ru)(?:[/:]\S*)?[.,;:!?)]*$`)
	emailRe       = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}$`)
	measurementRe = regexp.MustCompile(`^[+\-]?(?:\d+(?:[.,]\d+)*|[.,]\d+)(\S+)$`)
)

// DefaultUnits backs measurement detection when no unit file is configured. It only
// applies after a number, so bare words such as "in" or "min" stay ordinary words.
var DefaultUnits lexicon.Lexicon = lexicon.NewBasic(false,
	// mass
	"mg", "g", "kg", "t", "µg", "ug", "lb", "lbs", "oz", "st",
	// length and area
	"nm", "µm", "um", "mm", "cm", "dm", "m", "km", "in", "ft", "yd", "mi",
	"mm2", "cm2", "m2", "km2", "sqft", "ha",
	// volume
	"ml", "cl", "dl", "l", "m3", "cm3", "cc", "gal", "pt", "qt", "floz",
	// time
	"ns", "µs", "us", "ms", "s", "sec", "secs", "min", "mins", "h", "hr", "hrs", "d", "wk", "wks", "yr", "yrs",
	// speed and rate
	"kmh", "km/h", "mph", "kph", "m/s", "rpm", "bpm", "fps",
	// temperature
	"°c", "°f", "c", "f", "k",
	// energy, power and electricity
	"j", "kj", "mj", "cal", "kcal", "w", "kw", "mw", "gw", "kwh", "mwh", "wh",
	"v", "kv", "mv", "a", "ma", "mah", "ah", "ohm", "ω",
	// pressure and frequency
	"pa", "kpa", "mpa", "hpa", "bar", "mbar", "psi", "atm", "hz", "khz", "mhz", "ghz",
	// data
	"b", "kb", "mb", "gb", "tb", "pb", "kib", "mib", "gib", "tib", "kbps", "mbps", "gbps",
	// other
	"db", "mol", "mmol", "px", "pc", "x", "%", "‰",
)

// noLetters is true for digits, punctuation and mixes of the two.
func noLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsException reports words that must never be corrected: empty or whitespace-only strings,
// digits, punctuation and their mixes, urls, bare domain names, email addresses, bare units
// and measurements like "70kg".
func (d *Detector) IsException(word string) bool {
	if strings.TrimSpace(word) == "" {
		return true
	}
	if noLetters(word) {
		return true
	}
	if urlRe.MatchString(word) || domainRe.MatchString(word) || emailRe.MatchString(word) {
		return true
	}
	return (d.units != nil && isUnit(d.units, word)) || d.isMeasurement(word)
}

func isUnit(units lexicon.Lexicon, s string) bool {
	return units.Contains(s) || units.Contains(strings.TrimRight(s, ".,;:!?"))
}

func (d *Detector) isMeasurement(word string) bool {
	m := measurementRe.FindStringSubmatch(word)
	if m == nil {
		return false
	}
	if d.units != nil {
		return isUnit(d.units, m[1])
	}
	return isUnit(DefaultUnits, m[1])
}
