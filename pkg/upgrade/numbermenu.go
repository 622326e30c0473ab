package upgrade

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseError reports a malformed token in the exclusion input.
//
// Fields:
//   - Token: The token that failed to parse
//   - Reason: What a valid token would have looked like
type ParseError struct {
	Token  string
	Reason string
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the token and the expected shape
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid selection %q: %s", e.Token, e.Reason)
}

// IsParseError checks if err is a ParseError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err is (or wraps) a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Selection is the parsed form of the operator's exclusion input.
//
// It is built once from the raw input text, immutable afterwards, and
// queried per record through Contains. Three token kinds exist: single
// indices, inclusive index ranges, and group labels.
type Selection struct {
	indices map[int]struct{}
	ranges  [][2]int
	labels  []string
}

// ParseSelection parses the exclusion input into a Selection.
//
// The grammar accepts whitespace- or comma-separated tokens:
//   - an integer selects that single display index
//   - "A-B" with A <= B selects the inclusive index range
//   - a bare alphabetic token selects every index of the matching group
//     (a database name, "aur", or "devel")
//
// Malformed tokens are rejected with an error naming the token rather
// than silently ignored, so the operator never believes a package was
// excluded when it was not. Empty input parses to an empty Selection.
//
// Parameters:
//   - raw: The operator's input line
//
// Returns:
//   - *Selection: The parsed selection, empty for blank input
//   - error: Parse error naming the first malformed token, or nil
func ParseSelection(raw string) (*Selection, error) {
	sel := &Selection{indices: make(map[int]struct{})}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	for _, token := range tokens {
		switch {
		case isDigits(token):
			n, err := strconv.Atoi(token)
			if err != nil {
				return nil, &ParseError{Token: token, Reason: err.Error()}
			}
			sel.indices[n] = struct{}{}
		case isLabel(token):
			sel.labels = append(sel.labels, token)
		default:
			lo, hi, ok := parseRange(token)
			if !ok {
				return nil, &ParseError{Token: token, Reason: "expected an index, a range like 1-3, or a group name"}
			}
			if lo > hi {
				return nil, &ParseError{Token: token, Reason: fmt.Sprintf("%d is greater than %d", lo, hi)}
			}
			sel.ranges = append(sel.ranges, [2]int{lo, hi})
		}
	}

	return sel, nil
}

// Contains reports whether a record is covered by the selection.
//
// A record is covered when its display index matches a single-index or
// range token, or when its group label matches a label token regardless
// of the index. Label comparison is case-insensitive.
//
// Parameters:
//   - index: The record's display index
//   - label: The record's group label
//
// Returns:
//   - bool: true if the selection covers the record
func (s *Selection) Contains(index int, label string) bool {
	if _, ok := s.indices[index]; ok {
		return true
	}
	for _, r := range s.ranges {
		if index >= r[0] && index <= r[1] {
			return true
		}
	}
	for _, l := range s.labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the selection holds no tokens at all.
//
// An empty selection evaluates every Contains call to false; callers
// still check emptiness explicitly when "select nothing" means "keep
// everything".
//
// Returns:
//   - bool: true if no token was parsed
func (s *Selection) IsEmpty() bool {
	return len(s.indices) == 0 && len(s.ranges) == 0 && len(s.labels) == 0
}

// parseRange parses an "A-B" token into its bounds.
//
// Parameters:
//   - token: The candidate range token
//
// Returns:
//   - int: The lower bound A
//   - int: The upper bound B
//   - bool: true if the token has the digits-hyphen-digits shape
func parseRange(token string) (int, int, bool) {
	lo, hi, found := strings.Cut(token, "-")
	if !found || !isDigits(lo) || !isDigits(hi) {
		return 0, 0, false
	}
	loN, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, false
	}
	hiN, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, false
	}
	return loN, hiN, true
}

// isDigits reports whether a token consists solely of ASCII digits.
//
// Parameters:
//   - s: The token to check
//
// Returns:
//   - bool: true for a non-empty all-digit token
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isLabel reports whether a token is a group label.
//
// Labels start with a letter and may contain letters, digits, dots,
// underscores, and hyphens, which covers database names like
// "community-testing" alongside "aur" and "devel".
//
// Parameters:
//   - s: The token to check
//
// Returns:
//   - bool: true if the token has label shape
func isLabel(s string) bool {
	if s == "" {
		return false
	}
	first := rune(s[0])
	if !unicode.IsLetter(first) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
