package ranker

import (
	"math"
	"unicode"
)

var keyboardRows = []string{
	"1234567890-=",
	"qwertyuiop[]",
	"asdfghjkl;'",
	"zxcvbnm,./",
}

var keyPos = func() map[rune][2]int {
	m := make(map[rune][2]int)
	for r, row := range keyboardRows {
		for c, ch := range row {
			m[ch] = [2]int{r, c}
		}
	}
	return m
}()

// KeyboardCosts are the edit costs of the weighted distance.
type KeyboardCosts struct {
	Transpose float64
	InsDel    float64
	// NearSub is the substitution cost between adjacent keys.
	NearSub float64
}

// DefaultKeyboardCosts make typing slips cheaper than arbitrary edits.
var DefaultKeyboardCosts = KeyboardCosts{Transpose: 0.6, InsDel: 0.9, NearSub: 0.6}

func keyDistance(a, b rune) float64 {
	pa, oka := keyPos[unicode.ToLower(a)]
	pb, okb := keyPos[unicode.ToLower(b)]
	if !oka || !okb {
		return 2.5
	}
	dr := float64(pa[0] - pb[0])
	dc := float64(pa[1] - pb[1])
	return math.Sqrt(dr*dr + dc*dc)
}

func (k KeyboardCosts) substitution(a, b rune) float64 {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	if a == b {
		return 0
	}
	d := keyDistance(a, b)
	if d <= 1.0 {
		return k.NearSub
	} else if d <= 1.5 {
		return 0.8
	} else if d <= 2.2 {
		return 1.2
	}
	return 1.8
}

// isOneAdjacentSwap reports whether b is a with exactly one pair of neighbouring runes swapped.
func isOneAdjacentSwap(ra, rb []rune) bool {
	if len(ra) != len(rb) || len(ra) < 2 {
		return false
	}
	diff := -1
	for i := 0; i < len(ra); i++ {
		if ra[i] != rb[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(ra) {
		return false
	}
	if ra[diff] == rb[diff+1] && ra[diff+1] == rb[diff] {
		for j := diff + 2; j < len(ra); j++ {
			if ra[j] != rb[j] {
				return false
			}
		}
		return true
	}
	return false
}

// WeightedDL is a Damerau-Levenshtein distance where substitutions cost by key distance
// and insertions, deletions and transpositions use the configured costs.
func (k KeyboardCosts) WeightedDL(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if isOneAdjacentSwap(ra, rb) {
		return k.Transpose
	}
	la, lb := len(ra), len(rb)
	if la == 0 {
		return float64(lb) * k.InsDel
	}
	if lb == 0 {
		return float64(la) * k.InsDel
	}
	prev2 := make([]float64, lb+1)
	prev := make([]float64, lb+1)
	curr := make([]float64, lb+1)
	for j := 1; j <= lb; j++ {
		prev[j] = float64(j) * k.InsDel
	}
	for i := 1; i <= la; i++ {
		curr[0] = float64(i) * k.InsDel
		for j := 1; j <= lb; j++ {
			best := math.Min(
				prev[j]+k.InsDel,
				math.Min(curr[j-1]+k.InsDel, prev[j-1]+k.substitution(ra[i-1], rb[j-1])),
			)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = math.Min(best, prev2[j-2]+k.Transpose)
			}
			curr[j] = best
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}
