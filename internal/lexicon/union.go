package lexicon

// Union is a lexicon view over several lexicons; a word is contained when any member contains it.
type Union []Lexicon

func (u Union) Contains(word string) bool {
	for _, l := range u {
		if l != nil && l.Contains(word) {
			return true
		}
	}
	return false
}

func (u Union) IsValid(word string) bool { return isValid(u.Contains, word) }

func (u Union) Len() int {
	n := 0
	for _, l := range u {
		if l != nil {
			n += l.Len()
		}
	}
	return n
}

// Wordlister is implemented by lexicons that can list their words.
type Wordlister interface {
	Words() []string
}

// Words lists the words of every member that can list them. Duplicates are possible.
func (u Union) Words() []string {
	var out []string
	for _, l := range u {
		if wl, ok := l.(Wordlister); ok {
			out = append(out, wl.Words()...)
		}
	}
	return out
}
