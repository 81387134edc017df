package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellpipe/internal/lexicon"
	"spellpipe/pkg/options"
)

type counts map[string]int64

func (c counts) Count(w string) int64 { return c[w] }

func TestIndexLookup(t *testing.T) {
	freq := counts{"hello": 100, "help": 50, "hell": 10, "world": 80, "would": 70}
	ix, err := NewIndex([]string{"Hello", "help", "world", "hell", "would", "hello"}, freq)
	require.NoError(t, err)

	assert.Equal(t, 5, ix.Len())
	assert.True(t, ix.Contains("HELLO"))
	assert.False(t, ix.Contains("helo"))

	assert.Equal(t, []string{"hello", "help", "hell"}, ix.Lookup("helo", 2))
	assert.Equal(t, []string{"hell"}, ix.Lookup("hello", 1), "key itself is excluded")
	assert.Nil(t, ix.Lookup("", 2))
}

func TestIndexLimits(t *testing.T) {
	ix, err := NewIndex([]string{"cat", "cart", "carts"}, nil,
		options.WithMaxKeySize(4), options.WithMaxCandidates(1), options.WithoutPhonetic())
	require.NoError(t, err)

	assert.Nil(t, ix.Lookup("cartss", 2), "key longer than max key size")
	assert.Len(t, ix.Lookup("carx", 2), 1)
	// short keys are searched at distance 1 only
	assert.Equal(t, []string{"cat"}, ix.Lookup("czt", 2))

	_, err = NewIndex(nil, nil, options.WithMaxEditDistance(3))
	assert.Error(t, err)
}

func TestSharePhonetic(t *testing.T) {
	assert.True(t, SharePhonetic("Smith", "smyth"))
	assert.False(t, SharePhonetic("smith", "jones"))
}

func TestSplitter(t *testing.T) {
	lexicons := map[string]lexicon.Lexicon{
		"basic": lexicon.NewBasic(false, "hot", "flashes", "and", "know", "book", "of"),
		"full":  lexicon.NewFull(false, "hot", "flashes", "and", "know", "book", "of"),
	}
	for name, lex := range lexicons {
		t.Run(name, func(t *testing.T) {
			s := NewSplitter(lex, counts{"of": 500}, SplitOptions{ShortWordLength: 2, ShortWordMinWC: 1000})

			assert.Equal(t, []string{"hot flashes"}, s.Candidates("hotflashes", 2))
			assert.Equal(t, []string{"hot flashes"}, s.Candidates("HotFlashes", 3))
			assert.Empty(t, s.Candidates("hotflashesand", 2), "needs three pieces")
			assert.Equal(t, []string{"hot flashes and"}, s.Candidates("hotflashesand", 3))
			assert.Empty(t, s.Candidates("bookof", 2), "short piece below the count floor")
			assert.Empty(t, s.Candidates("hot", 1))
		})
	}

	s := NewSplitter(lexicon.NewBasic(false, "book", "of"), counts{"of": 2000}, SplitOptions{ShortWordLength: 2, ShortWordMinWC: 1000})
	assert.Equal(t, []string{"book of"}, s.Candidates("bookof", 2))
	assert.False(t, s.ValidPiece("12"))
}

func TestSplitterShortPieces(t *testing.T) {
	opts := SplitOptions{ShortWordLength: 2, ShortWordMinWC: 1000}

	frequentFragment := NewSplitter(lexicon.NewBasic(false, "good"), counts{"xq": 5000}, opts)
	assert.Empty(t, frequentFragment.Candidates("xqgood", 2), "a frequent fragment is still not a word")
	assert.False(t, frequentFragment.ValidPiece("xq"))

	rare := NewSplitter(lexicon.NewBasic(false, "good", "is"), counts{"is": 500}, opts)
	assert.Empty(t, rare.Candidates("isgood", 2), "short word below the count floor")

	common := NewSplitter(lexicon.NewBasic(false, "good", "is"), counts{"is": 1000}, opts)
	assert.Equal(t, []string{"is good"}, common.Candidates("isgood", 2))

	noFloor := NewSplitter(lexicon.NewFull(false, "good", "is"), nil, SplitOptions{ShortWordLength: 2})
	assert.Equal(t, []string{"is good"}, noFloor.Candidates("isgood", 2))
	assert.True(t, noFloor.ValidPiece("good"))
}

func TestSplitterMaxCandidates(t *testing.T) {
	lex := lexicon.NewBasic(false, "abc", "def", "abcd", "ef", "ghi")
	s := NewSplitter(lex, nil, SplitOptions{MaxCandidates: 1})
	assert.Len(t, s.Candidates("abcdefghi", 3), 1)
}

func TestMerges(t *testing.T) {
	valid := lexicon.NewBasic(false, "during", "e-mail", "nevertheless").IsValid

	got := Merges([]string{"dur", "ing", "the"}, 0, MergeOptions{Window: 2}, valid)
	require.Len(t, got, 1)
	assert.Equal(t, Merge{Start: 0, End: 1, Core: "during", Surface: "during"}, got[0])
	assert.Equal(t, 2, got[0].Size())

	got = Merges([]string{"(dur", "ing)."}, 1, MergeOptions{Window: 1}, valid)
	require.Len(t, got, 1)
	assert.Equal(t, "(during).", got[0].Surface)

	assert.Empty(t, Merges([]string{"dur,", "ing"}, 0, MergeOptions{Window: 1}, valid), "inner punctuation blocks a merge")
	assert.Empty(t, Merges([]string{"e", "mail"}, 0, MergeOptions{Window: 1}, valid))

	got = Merges([]string{"e", "mail"}, 0, MergeOptions{Window: 1, Hyphen: true}, valid)
	require.Len(t, got, 1)
	assert.True(t, got[0].Hyphen)
	assert.Equal(t, "e-mail", got[0].Core)
}

func TestMergesWindow(t *testing.T) {
	words := []string{"never", "the", "less"}
	valid := lexicon.NewBasic(false, "nevertheless").IsValid

	assert.Empty(t, Merges(words, 0, MergeOptions{Window: 1}, valid))
	got := Merges(words, 0, MergeOptions{Window: 2}, valid)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 2, got[0].End)

	// the target must lie inside the span
	assert.Len(t, Merges(words, 2, MergeOptions{Window: 2}, valid), 1)
	assert.Nil(t, Merges(words, 5, MergeOptions{Window: 2}, valid))
}
