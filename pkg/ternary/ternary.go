package ternary

import (
	"strings"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

const (
	// BlockWidth is the number of trits written per source character.
	BlockWidth = 5

	// Separator is the literal character carrying code 0.
	Separator = '0'

	// MaxBlockValue is the largest value a single block can hold (3^5 - 1).
	MaxBlockValue = 242

	// MaxCode is the highest code in the supported alphabet ('Z').
	MaxCode = 26
)

// CharToCode returns the code for r: 0 for the literal '0', 1..26 for
// letters regardless of case.
func CharToCode(r rune) (int, error) {
	switch {
	case r == Separator:
		return 0, nil
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1, nil
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1, nil
	}
	return 0, errors.New(errors.ErrCodeUnsupportedCharacter, "character %q is not in the cipher alphabet", r)
}

// CodeToChar is the inverse of CharToCode. Codes above 26 are not clamped.
func CodeToChar(code int) rune {
	if code == 0 {
		return Separator
	}
	return rune('A' + code - 1)
}

// Encode converts s into concatenated 5-trit blocks.
func Encode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) * BlockWidth)
	for i, r := range s {
		code, err := CharToCode(r)
		if err != nil {
			return "", errors.New(errors.ErrCodeUnsupportedCharacter, "character %q at offset %d is not in the cipher alphabet", r, i)
		}
		b.WriteString(block(code))
	}
	return b.String(), nil
}

// block renders code as exactly BlockWidth trits.
func block(code int) string {
	var digits [BlockWidth]byte
	for i := range digits {
		digits[i] = '0'
	}
	for i := BlockWidth - 1; code > 0 && i >= 0; i-- {
		digits[i] = byte('0' + code%3)
		code /= 3
	}
	return string(digits[:])
}

// Decode converts 5-trit blocks back into characters. A final block shorter
// than BlockWidth is evaluated on its own.
func Decode(t string) (string, error) {
	var b strings.Builder
	b.Grow(len(t)/BlockWidth + 1)
	for i := 0; i < len(t); i += BlockWidth {
		end := min(i+BlockWidth, len(t))
		value, ok := blockValue(t[i:end])
		if !ok {
			return "", errors.New(errors.ErrCodeUnsupportedCharacter, "block %q at offset %d contains a non-digit", t[i:end], i)
		}
		b.WriteRune(CodeToChar(value))
	}
	return b.String(), nil
}

// blockValue evaluates a block positionally in base 3. Each digit contributes
// its decimal value, so only non-digits are rejected here.
func blockValue(s string) (int, bool) {
	value := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, false
		}
		value = value*3 + int(c-'0')
	}
	return value, true
}

// Validate reports whether t is a well-formed ternary string: only trits and
// a length that is a multiple of BlockWidth.
func Validate(t string) error {
	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '2' {
			return errors.New(errors.ErrCodeInvalidInput, "character %q at offset %d is not a trit", t[i], i)
		}
	}
	if len(t)%BlockWidth != 0 {
		return errors.New(errors.ErrCodeInvalidInput, "length %d is not a multiple of %d", len(t), BlockWidth)
	}
	return nil
}
