package upgrade

import (
	"unicode"
	"unicode/utf8"
)

// Highlighter marks a span of text as emphasized. Rendering stays
// agnostic of how emphasis is painted; tests pass identity functions and
// the CLI wires terminal colors.
type Highlighter func(string) string

// PlainHighlighter returns its input unchanged.
//
// Parameters:
//   - s: The span to mark
//
// Returns:
//   - string: The span, unmodified
func PlainHighlighter(s string) string {
	return s
}

// DiffVersions splits two version strings at their shared prefix and
// marks the divergent suffixes.
//
// It performs the following operations:
//   - Step 1: Computes the boundary-aware shared prefix length
//   - Step 2: Returns each string as unmodified prefix plus marked suffix
//
// Identical strings produce empty marked suffixes.
//
// Parameters:
//   - old: The installed version
//   - new: The candidate version
//   - oldMark: Highlighter for the divergent suffix of old
//   - newMark: Highlighter for the divergent suffix of new
//
// Returns:
//   - string: old with its divergent suffix marked
//   - string: new with its divergent suffix marked
func DiffVersions(old, new string, oldMark, newMark Highlighter) (string, string) {
	shared := sharedPrefix(old, new)

	highlightedOld := old[:shared]
	if shared < len(old) {
		highlightedOld += oldMark(old[shared:])
	}
	highlightedNew := new[:shared]
	if shared < len(new) {
		highlightedNew += newMark(new[shared:])
	}
	return highlightedOld, highlightedNew
}

// sharedPrefix computes the byte length of the boundary-aware shared
// prefix of two version strings.
//
// It performs the following operations:
//   - Step 1: Scans both strings in lock-step by rune while they match
//   - Step 2: After each matching non-alphanumeric rune, records the
//     position just past it as the latest boundary
//   - Step 3: Stops at the first mismatch or when either string is
//     exhausted and returns the last recorded boundary, never the raw
//     mismatch position
//
// Splitting only at boundaries avoids cutting a numeric or alphabetic
// run in half: "1234" vs "1235" has no boundary and so no shared prefix.
// Fully identical strings share their entire length.
//
// Parameters:
//   - old: The installed version
//   - new: The candidate version
//
// Returns:
//   - int: Byte length of the shared prefix in both strings
func sharedPrefix(old, new string) int {
	if old == new {
		return len(old)
	}

	boundary := 0
	newRest := new
	for i, oc := range old {
		nc, size := utf8.DecodeRuneInString(newRest)
		if size == 0 || nc != oc {
			break
		}
		newRest = newRest[size:]
		if !unicode.IsLetter(oc) && !unicode.IsDigit(oc) {
			boundary = i + utf8.RuneLen(oc)
		}
	}
	return boundary
}
