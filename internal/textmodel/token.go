// Package textmodel holds the token model the correction pipeline works on: tokenization,
// reassembly, core terms and the per-token correction history.
//
// Tokens are values. A stage that changes a token builds a new one (WithCorrection, Merged)
// and leaves the original slice untouched, so every stage boundary can be re-rendered with
// Reassemble.
package textmodel

import (
	"fmt"
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	Word  Kind = iota // letters with optional inner apostrophes or hyphens
	Space             // a run of whitespace
	Punct             // punctuation or symbols only
	Mixed             // anything else: words with attached punctuation, digits, urls
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Space:
		return "Space"
	case Punct:
		return "Punct"
	case Mixed:
		return "Mixed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Stage tags the pipeline step that produced a correction.
type Stage string

const (
	StageNDSplit  Stage = "ND_SPLIT"
	StageNWMerge  Stage = "NW_MERGE"
	StageNWSplit  Stage = "NW_SPLIT"
	StageNW1To1   Stage = "NW_1TO1"
	StageRWMerge  Stage = "RW_MERGE"
	StageRWSplit  Stage = "RW_SPLIT"
	StageRW1To1   Stage = "RW_1TO1"
	mergedSuffix        = "+MERGED"
)

// Event is one entry of a token's correction history.
type Event struct {
	Stage  Stage  `json:"stage" msgpack:"stage"`
	Before string `json:"before" msgpack:"before"`
	After  string `json:"after" msgpack:"after"`
	// Merged marks an entry forwarded from a token that was absorbed by a merge.
	Merged bool `json:"merged,omitempty" msgpack:"merged,omitempty"`
	// Trigger is set on merge events only.
	Trigger *Trigger `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

// Trigger names the flagged token a merge was proposed for.
type Trigger struct {
	Word     string `json:"word" msgpack:"word"`
	Position int    `json:"position" msgpack:"position"`
}

// Tag is the stage name, suffixed with the merged-into marker for forwarded entries.
func (e Event) Tag() string {
	if e.Merged {
		return string(e.Stage) + mergedSuffix
	}
	return string(e.Stage)
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %q -> %q", e.Tag(), e.Before, e.After)
}

// Token is one unit of the tokenized text.
type Token struct {
	Text     string  `json:"text" msgpack:"text"`
	Kind     Kind    `json:"kind" msgpack:"kind"`
	Position int     `json:"position" msgpack:"position"`
	History  []Event `json:"history,omitempty" msgpack:"history,omitempty"`
}

// NewToken classifies text and returns a token without history.
func NewToken(text string, pos int) Token {
	return Token{Text: text, Kind: Classify(text), Position: pos}
}

func (t Token) IsSpace() bool    { return t.Kind == Space }
func (t Token) HasHistory() bool { return len(t.History) > 0 }

// WithCorrection returns a copy of t carrying text and one more history entry.
func (t Token) WithCorrection(stage Stage, text string) Token {
	hist := make([]Event, 0, len(t.History)+1)
	hist = append(hist, t.History...)
	hist = append(hist, Event{Stage: stage, Before: t.Text, After: text})
	return Token{Text: text, Kind: Classify(text), Position: t.Position, History: hist}
}

// Inherit returns a token for text that carries a copy of parent's history.
func Inherit(parent Token, text string) Token {
	var hist []Event
	if len(parent.History) > 0 {
		hist = append([]Event(nil), parent.History...)
	}
	return Token{Text: text, Kind: Classify(text), Position: parent.Position, History: hist}
}

// Merged builds the token replacing absorbed. Histories of the absorbed tokens are forwarded
// with the merged-into marker, followed by the merge event itself, which records trigger.
func Merged(stage Stage, text string, absorbed []Token, trigger Trigger) Token {
	var hist []Event
	var before strings.Builder
	for _, t := range absorbed {
		before.WriteString(t.Text)
		for _, e := range t.History {
			e.Merged = true
			hist = append(hist, e)
		}
	}
	hist = append(hist, Event{Stage: stage, Before: before.String(), After: text, Trigger: &trigger})
	pos := 0
	if len(absorbed) > 0 {
		pos = absorbed[0].Position
	}
	return Token{Text: text, Kind: Classify(text), Position: pos, History: hist}
}
