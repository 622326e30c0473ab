package utils

import (
	"strings"

	"golang.org/x/mod/semver"
)

// segment is one comparable unit of a version string: a maximal run of
// digits or a maximal run of letters. Separators never become segments.
type segment struct {
	text    string
	numeric bool
}

// VerCmp compares two package versions following pacman conventions.
//
// Versions have the shape [epoch:]version[-release]. Epochs compare
// numerically and dominate; the version and release parts compare
// segment-by-segment where numeric segments beat alphabetic ones.
// Plain semver-shaped versions take a fast path through semver.Compare.
//
// Parameters:
//   - a: The first version string
//   - b: The second version string
//
// Returns:
//   - int: Negative if a is older than b, positive if newer, 0 if equal
func VerCmp(a, b string) int {
	if a == b {
		return 0
	}

	if isPlainSemver(a) && isPlainSemver(b) {
		return semver.Compare("v"+a, "v"+b)
	}

	epochA, restA := splitEpoch(a)
	epochB, restB := splitEpoch(b)
	if c := compareNumeric(epochA, epochB); c != 0 {
		return c
	}

	verA, relA := splitRelease(restA)
	verB, relB := splitRelease(restB)
	if c := compareSegments(verA, verB); c != 0 {
		return c
	}
	if relA != "" && relB != "" {
		return compareSegments(relA, relB)
	}
	return 0
}

// isPlainSemver reports whether a version is a bare semver string with no
// epoch or release suffix, making semver.Compare safe to use.
//
// Parameters:
//   - v: The version string to check
//
// Returns:
//   - bool: true if "v"+v is a valid semver version without ':' or '-'
func isPlainSemver(v string) bool {
	if strings.ContainsAny(v, ":-+") {
		return false
	}
	return semver.IsValid("v" + v)
}

// splitEpoch splits an optional leading "epoch:" from a version string.
//
// Parameters:
//   - v: The full version string
//
// Returns:
//   - string: The epoch digits, or "0" when absent
//   - string: The remainder after the epoch separator
func splitEpoch(v string) (string, string) {
	idx := strings.IndexByte(v, ':')
	if idx <= 0 {
		return "0", v
	}
	epoch := v[:idx]
	for i := 0; i < len(epoch); i++ {
		if epoch[i] < '0' || epoch[i] > '9' {
			return "0", v
		}
	}
	return epoch, v[idx+1:]
}

// splitRelease splits an optional trailing "-release" from a version string.
//
// The split happens at the last hyphen so versions containing hyphens in
// the version part keep them.
//
// Parameters:
//   - v: The version string without epoch
//
// Returns:
//   - string: The version part
//   - string: The release part, or "" when absent
func splitRelease(v string) (string, string) {
	idx := strings.LastIndexByte(v, '-')
	if idx < 0 {
		return v, ""
	}
	return v[:idx], v[idx+1:]
}

// splitSegments breaks a version fragment into digit and letter runs.
//
// Any non-alphanumeric byte acts as a separator and is dropped. A run of
// digits and a run of letters never merge into one segment, so "1a2"
// yields three segments.
//
// Parameters:
//   - v: The version fragment to split
//
// Returns:
//   - []segment: The ordered comparable segments
func splitSegments(v string) []segment {
	var segs []segment
	i := 0
	for i < len(v) {
		c := v[i]
		switch {
		case isDigit(c):
			j := i
			for j < len(v) && isDigit(v[j]) {
				j++
			}
			segs = append(segs, segment{text: v[i:j], numeric: true})
			i = j
		case isAlpha(c):
			j := i
			for j < len(v) && isAlpha(v[j]) {
				j++
			}
			segs = append(segs, segment{text: v[i:j]})
			i = j
		default:
			i++
		}
	}
	return segs
}

// compareSegments compares two version fragments segment by segment.
//
// It performs the following operations:
//   - Step 1: Splits both fragments into digit/letter segments
//   - Step 2: Compares pairwise; numeric segments always beat alphabetic ones
//   - Step 3: When one side runs out, a trailing numeric segment counts as
//     newer and a trailing alphabetic segment as older (so "1.0a" < "1.0")
//
// Parameters:
//   - a: The first version fragment
//   - b: The second version fragment
//
// Returns:
//   - int: Negative, zero, or positive ordering result
func compareSegments(a, b string) int {
	segsA := splitSegments(a)
	segsB := splitSegments(b)

	n := len(segsA)
	if len(segsB) < n {
		n = len(segsB)
	}

	for i := 0; i < n; i++ {
		sa, sb := segsA[i], segsB[i]
		if sa.numeric != sb.numeric {
			if sa.numeric {
				return 1
			}
			return -1
		}
		var c int
		if sa.numeric {
			c = compareNumeric(sa.text, sb.text)
		} else {
			c = strings.Compare(sa.text, sb.text)
		}
		if c != 0 {
			return c
		}
	}

	switch {
	case len(segsA) == len(segsB):
		return 0
	case len(segsA) > len(segsB):
		if segsA[n].numeric {
			return 1
		}
		return -1
	default:
		if segsB[n].numeric {
			return -1
		}
		return 1
	}
}

// compareNumeric compares two digit strings numerically without overflow.
//
// Leading zeros are stripped before comparing lengths, then equal-length
// strings compare lexically.
//
// Parameters:
//   - a: The first digit string
//   - b: The second digit string
//
// Returns:
//   - int: Negative, zero, or positive ordering result
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
