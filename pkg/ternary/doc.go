// Package ternary transcodes letter content to and from a fixed-width
// base-3 alphabet.
//
// # Alphabet
//
// Each source character maps to a code in [0, 26]:
//
//   - '0' (the literal separator) maps to 0
//   - 'A'..'Z' and 'a'..'z' map to 1..26 by alphabetic rank
//
// Every code is written as exactly [BlockWidth] trits, most significant trit
// first and left-padded with '0', so the output of [Encode] is always
// 5*len(s) characters long:
//
//	t, _ := ternary.Encode("A0") // "0000100000"
//
// # Decoding
//
// [Decode] reads consecutive 5-trit blocks. A trailing partial block is
// evaluated as-is rather than rejected. Block values above 26 (up to 242)
// are passed through [CodeToChar] without a bounds check and come back as
// runes past 'Z'. Decoding always yields uppercase letters, so
//
//	Decode(Encode(s)) == strings.ToUpper(s)
//
// for every s over {'0', A..Z, a..z}.
package ternary
