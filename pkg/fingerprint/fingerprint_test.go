package fingerprint

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		minLength  int
		wantPos    int
		wantLen    int
		wantSegs   []string
	}{
		{
			name:       "apple apron",
			candidates: []string{"APPLE", "APRON"},
			minLength:  1,
			wantPos:    2,
			wantLen:    1,
			wantSegs:   []string{"P", "R"},
		},
		{
			name:       "three way",
			candidates: []string{"AB", "AC", "AD"},
			minLength:  1,
			wantPos:    1,
			wantLen:    1,
			wantSegs:   []string{"B", "C", "D"},
		},
		{
			name:       "first character differs",
			candidates: []string{"CAT", "BAT"},
			minLength:  1,
			wantPos:    0,
			wantLen:    1,
			wantSegs:   []string{"C", "B"},
		},
		{
			name:       "min length two",
			candidates: []string{"ABCD", "ABCE"},
			minLength:  2,
			wantPos:    2,
			wantLen:    2,
			wantSegs:   []string{"CD", "CE"},
		},
		{
			name:       "needs longer segment",
			candidates: []string{"ABAB", "ABBA", "BAAB"},
			minLength:  1,
			wantPos:    1,
			wantLen:    2,
			wantSegs:   []string{"BA", "BB", "AA"},
		},
		{
			name:       "short candidate padded",
			candidates: []string{"ABC", "AB"},
			minLength:  1,
			wantPos:    2,
			wantLen:    1,
			wantSegs:   []string{"C", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, err := Find(tt.candidates, tt.minLength)
			require.NoError(t, err)
			assertDistinguishing(t, tt.candidates, fp)
			assertMinimal(t, tt.candidates, tt.minLength, fp)
			assert.Equal(t, tt.wantPos, fp.Position)
			assert.Equal(t, tt.wantLen, fp.Length)
			assert.Equal(t, tt.wantSegs, fp.Segments)
		})
	}
}

func TestFindNotFound(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		minLength  int
	}{
		{"zero min length", []string{"APPLE", "APRON"}, 0},
		{"negative min length", []string{"APPLE", "APRON"}, -1},
		{"min length above limit", []string{"APPLE", "APRON"}, 7},
		{"identical texts", []string{"SAME", "SAME"}, 1},
		{"two identical of three", []string{"ABC", "XYZ", "XYZ"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Find(tt.candidates, tt.minLength)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeAmbiguousCandidates))
			assert.True(t, stderrors.Is(err, ErrNotFound))
		})
	}
}

func TestFindLimitBoundary(t *testing.T) {
	// limit = min(len) + 1 = 6, so 6 is still a valid starting length even
	// though no window of that size fits.
	_, err := Find([]string{"APPLE", "APRON"}, 6)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNotFound))

	// A reference longer than the limit can still match at the limit length.
	fp, err := Find([]string{"AAAAAAB", "AAAAA"}, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, fp.Position)
	assert.Equal(t, []string{"AAAAAA", "0AAAAA"}, fp.Segments)
}

func TestFindTooFewCandidates(t *testing.T) {
	for _, c := range [][]string{nil, {"ONLY"}} {
		_, err := Find(c, 1)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
	}
}

func TestSingle(t *testing.T) {
	fp, err := Single("APPLE", 2)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint{Position: 0, Length: 2, Segments: []string{"AP"}}, fp)

	fp, err = Single("AB", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"AB"}, fp.Segments)

	for _, n := range []int{0, 3} {
		_, err := Single("AB", n)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeAmbiguousCandidates, errors.GetCode(err))
		assert.True(t, stderrors.Is(err, ErrNotFound))
	}
}

func TestFindProperties(t *testing.T) {
	sets := [][]string{
		{"THEQUICKBROWNFOX", "THEQUICKREDFOX", "THESLOWBROWNDOG"},
		{"ABABABAB", "ABABBABA", "BABAABAB", "AABBAABB"},
		{"LOREMIPSUM", "LOREMIPSUN", "LOREMIPSUS", "LOREMIPSUT"},
		{"XY", "XYZ", "XYZW"},
		{"MISSISSIPPI", "MISSOURI", "MINNESOTA"},
	}
	for _, set := range sets {
		for minLength := 1; minLength <= 3; minLength++ {
			fp, err := Find(set, minLength)
			if err != nil {
				continue
			}
			assertDistinguishing(t, set, fp)
			assertMinimal(t, set, minLength, fp)
		}
	}
}

func TestSlice(t *testing.T) {
	tests := []struct {
		c      string
		k, n   int
		expect string
	}{
		{"ABCDE", 1, 2, "BC"},
		{"ABCDE", 4, 2, "0E"},
		{"ABC", 3, 2, "00"},
		{"ABC", 7, 3, "000"},
		{"", 0, 1, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, slice(tt.c, tt.k, tt.n), "slice(%q, %d, %d)", tt.c, tt.k, tt.n)
	}
}

// assertDistinguishing checks that fp's segments are equal-length, pairwise
// distinct and taken at fp.Position.
func assertDistinguishing(t *testing.T, candidates []string, fp Fingerprint) {
	t.Helper()
	require.Len(t, fp.Segments, len(candidates))
	seen := map[string]bool{}
	for i, s := range fp.Segments {
		assert.Len(t, s, fp.Length)
		assert.False(t, seen[s], "segment %q repeated", s)
		seen[s] = true
		assert.Equal(t, slice(candidates[i], fp.Position, fp.Length), s)
	}
}

// assertMinimal checks by brute force that no earlier (length, position)
// satisfies the distinctness predicate.
func assertMinimal(t *testing.T, candidates []string, minLength int, fp Fingerprint) {
	t.Helper()
	ref := candidates[0]
	for length := minLength; length <= fp.Length; length++ {
		for k := 0; k+length <= len(ref); k++ {
			if length == fp.Length && k >= fp.Position {
				return
			}
			others := make([]string, len(candidates)-1)
			for i, c := range candidates[1:] {
				others[i] = slice(c, k, length)
			}
			assert.False(t, distinct(ref[k:k+length], others),
				"earlier match at length %d position %d", length, k)
		}
	}
}
