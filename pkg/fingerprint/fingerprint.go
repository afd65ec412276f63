// Package fingerprint finds the shortest, earliest substring position at
// which a set of texts can be told apart.
//
// Given candidates ["APPLE", "APRON"], the first position at which the
// one-character slices differ is 2 ('P' vs 'R'):
//
//	fp, err := fingerprint.Find([]string{"APPLE", "APRON"}, 1)
//	// fp.Position == 2, fp.Segments == ["P", "R"]
//
// The search is first-match-wins: lengths are tried from the requested
// minimum upward and, within a length, positions from left to right. The
// first (length, position) pair that makes every slice pairwise distinct is
// returned; other valid positions are not explored.
//
// Slices are always taken at the reference (first) candidate's offsets. When
// another candidate is too short to cover a slice, the slice is left-padded
// with '0' to the full length. Padding can make a short text collide with or
// differ from a segment for reasons unrelated to its content; this mirrors
// the established cipher format and is kept as-is.
package fingerprint

import (
	stderrors "errors"
	"strings"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

// MinCandidates is the smallest candidate set that can be fingerprinted.
const MinCandidates = 2

// PadChar fills slices of candidates shorter than the reference window.
const PadChar = '0'

// ErrNotFound is returned (wrapped in an AMBIGUOUS_CANDIDATES error) when no
// distinguishing position exists for the requested minimum length.
var ErrNotFound = stderrors.New("no distinguishing fingerprint")

// Fingerprint is a distinguishing position shared by all candidates.
type Fingerprint struct {
	// Position is the zero-based offset into the reference candidate.
	Position int `json:"position"`
	// Length is the nominal segment length.
	Length int `json:"length"`
	// Segments holds one slice per candidate, index 0 being the reference.
	Segments []string `json:"segments"`
}

// Find returns the first (length, position) at which every candidate slice
// is pairwise distinct, searching lengths from minLength up to
// min(len(candidates))+1.
func Find(candidates []string, minLength int) (Fingerprint, error) {
	if len(candidates) < MinCandidates {
		return Fingerprint{}, errors.New(errors.ErrCodeInvalidInput,
			"need at least %d candidates, got %d", MinCandidates, len(candidates))
	}

	limit := len(candidates[0])
	for _, c := range candidates[1:] {
		limit = min(limit, len(c))
	}
	limit++

	if minLength <= 0 || minLength > limit {
		return Fingerprint{}, notFound(minLength, limit)
	}

	ref := candidates[0]
	others := make([]string, len(candidates)-1)
	for length := minLength; length <= limit; length++ {
		for k := 0; k+length <= len(ref); k++ {
			segment := ref[k : k+length]
			for i, c := range candidates[1:] {
				others[i] = slice(c, k, length)
			}
			if distinct(segment, others) {
				segments := make([]string, 0, len(candidates))
				segments = append(segments, segment)
				segments = append(segments, others...)
				return Fingerprint{Position: k, Length: length, Segments: segments}, nil
			}
		}
	}
	return Fingerprint{}, notFound(minLength, limit)
}

// Single fingerprints a lone candidate. With nothing to tell it apart from,
// its first minLength characters are the segment.
func Single(candidate string, minLength int) (Fingerprint, error) {
	if minLength <= 0 || minLength > len(candidate) {
		return Fingerprint{}, notFound(minLength, len(candidate)+1)
	}
	return Fingerprint{Length: minLength, Segments: []string{candidate[:minLength]}}, nil
}

// slice returns c[k:k+length] clipped to c and left-padded with PadChar.
func slice(c string, k, length int) string {
	var s string
	if k < len(c) {
		s = c[k:min(k+length, len(c))]
	}
	if len(s) < length {
		return strings.Repeat(string(PadChar), length-len(s)) + s
	}
	return s
}

// distinct reports whether segment differs from every entry in others and
// the entries of others differ from each other.
func distinct(segment string, others []string) bool {
	seen := make(map[string]struct{}, len(others)+1)
	seen[segment] = struct{}{}
	for _, o := range others {
		if _, dup := seen[o]; dup {
			return false
		}
		seen[o] = struct{}{}
	}
	return true
}

func notFound(minLength, limit int) error {
	return errors.Wrap(errors.ErrCodeAmbiguousCandidates, ErrNotFound,
		"cannot disambiguate candidates (min length %d, limit %d)", minLength, limit)
}
