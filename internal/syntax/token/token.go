// Package token provides the keywords of the script notation and the rules for
// splitting an expression's content into words.
package token

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Kind is the kind of keyword leading an expression.
type Kind int

const (
	Other         Kind = iota // Other
	Label                     // Label
	StartDialogue             // StartDialogue
	Set                       // Set
	Text                      // Text
	Background                // Background
)

// String implements [fmt.Stringer] for a [Kind].
func (k Kind) String() string {
	switch k {
	case Other:
		return "Other"
	case Label:
		return "Label"
	case StartDialogue:
		return "StartDialogue"
	case Set:
		return "Set"
	case Text:
		return "Text"
	case Background:
		return "Background"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Keyword reports whether a word is one of the keywords allowed to lead a top level
// expression, returning it's [Kind] and true if it is. Otherwise [Other] and false are returned.
//
// Matching is exact, "labels" or "label-x" are not keywords.
func Keyword(word string) (kind Kind, ok bool) {
	switch word {
	case "label":
		return Label, true
	case "start-dialogue":
		return StartDialogue, true
	case "set":
		return Set, true
	default:
		return Other, false
	}
}

// Annotation reports whether a word is one of the keywords that annotate a label
// from inside it's body, returning it's [Kind] and true if it is. Otherwise [Other]
// and false are returned.
func Annotation(word string) (kind Kind, ok bool) {
	switch word {
	case "text":
		return Text, true
	case "bg":
		return Background, true
	default:
		return Other, false
	}
}

// Split splits text into it's leading word and the rest.
//
// A word is the longest leading run of characters that are not whitespace, '(', ')'
// or '"'. The rest has surrounding whitespace removed and offset is the byte index
// into text at which it begins.
//
//	Split(`label intro (text "hi")`) // "label", `intro (text "hi")`, 6
func Split(text string) (word, rest string, offset int) {
	end := strings.IndexFunc(text, isBoundary)
	if end == -1 {
		return text, "", len(text)
	}

	word = text[:end]
	remainder := text[end:]
	trimmed := strings.TrimLeftFunc(remainder, unicode.IsSpace)
	offset = end + len(remainder) - len(trimmed)

	return word, strings.TrimRightFunc(trimmed, unicode.IsSpace), offset
}

// isBoundary reports whether r ends a word.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"'
}

//go:embed keywords.json
var keywordsJSON []byte

// descriptions is the keyword metadata table, loaded once and never modified.
var descriptions = mustLoadDescriptions(keywordsJSON)

// Descriptions returns a copy of the human readable description of every keyword
// in the notation, keyed by keyword name.
//
// It's the same data the editor hover and completion providers use, validation
// itself only relies on [Keyword] and [Annotation].
func Descriptions() map[string]string {
	return maps.Clone(descriptions)
}

// Names returns the sorted names of every keyword in [Descriptions].
func Names() []string {
	return slices.Sorted(maps.Keys(descriptions))
}

// mustLoadDescriptions decodes the embedded keyword table, panicking if it's malformed.
func mustLoadDescriptions(data []byte) map[string]string {
	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		panic(fmt.Sprintf("embedded keywords.json is invalid: %v", err))
	}

	return table
}
