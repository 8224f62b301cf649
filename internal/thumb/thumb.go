// Package thumb classifies letters by the thumb that types them.
package thumb

import "unicode"

// Side identifies the input side of a keystroke or word.
type Side int

const (
	// SideUnknown means no thumb signal is available.
	SideUnknown Side = iota
	// SideLeft is the left half of the keyboard.
	SideLeft
	// SideRight is the right half of the keyboard.
	SideRight
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

var leftLetters = map[rune]struct{}{
	'q': {}, 'w': {}, 'e': {}, 'r': {}, 't': {},
	'a': {}, 's': {}, 'd': {}, 'f': {}, 'g': {},
	'z': {}, 'x': {}, 'c': {}, 'v': {}, 'b': {},
}

// IsLeft reports whether r belongs to the left-thumb letter set.
func IsLeft(r rune) bool {
	_, ok := leftLetters[unicode.ToLower(r)]
	return ok
}

// Expected returns the thumb that should type word, judged by its first letter.
func Expected(word string) Side {
	for _, r := range word {
		if IsLeft(r) {
			return SideLeft
		}
		return SideRight
	}
	return SideUnknown
}

// InferFromRune returns the side of a typed character, or SideUnknown when the
// character is not a plain letter and carries no thumb signal.
func InferFromRune(r rune) Side {
	lower := unicode.ToLower(r)
	if lower < 'a' || lower > 'z' {
		return SideUnknown
	}
	if IsLeft(lower) {
		return SideLeft
	}
	return SideRight
}

// AllLeft reports whether every letter of word belongs to the left set.
func AllLeft(word string) bool {
	for _, r := range word {
		if !IsLeft(r) {
			return false
		}
	}
	return word != ""
}

// AllRight reports whether every letter of word belongs to the right set.
func AllRight(word string) bool {
	for _, r := range word {
		lower := unicode.ToLower(r)
		if lower < 'a' || lower > 'z' || IsLeft(lower) {
			return false
		}
	}
	return word != ""
}
