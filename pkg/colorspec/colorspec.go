// Package colorspec parses the small color literal syntax used by the
// rendering options and configuration files.
//
// A color is an RGB triple or a hex string:
//
//	(0, 0, 0)
//	128,128,128
//	#ffffff
//	#fff
//
// A color map assigns colors to the trits 0, 1 and 2:
//
//	{'0': (0, 0, 0), '1': (128, 128, 128), '2': #ffffff}
//	0=#000,1=#808080,2=#fff
//
// Input is parsed, never evaluated. Anything outside this grammar is
// rejected with an INVALID_COLOR error.
package colorspec

import (
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

// Trits lists the valid color map keys in order.
var Trits = []byte{'0', '1', '2'}

// ParseRGB parses a single color.
func ParseRGB(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil || (len(s) != 4 && len(s) != 7) {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	body := s
	if strings.HasPrefix(body, "(") || strings.HasSuffix(body, ")") {
		if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unbalanced parentheses in %q", s)
		}
		body = body[1 : len(body)-1]
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "color %q must have exactly 3 components", s)
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "component %q of %q is not an integer in 0..255", strings.TrimSpace(p), s)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}

// ParseColorMap parses a trit → color map. An empty string yields a nil map.
func ParseColorMap(s string) (map[byte]color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "{") || strings.HasSuffix(s, "}") {
		if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
			return nil, errors.New(errors.ErrCodeInvalidColor, "unbalanced braces in color map")
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	entries, err := splitTopLevel(s)
	if err != nil {
		return nil, err
	}

	m := make(map[byte]color.RGBA, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue // trailing comma
		}
		idx := strings.IndexAny(entry, ":=")
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidColor, "entry %q is missing ':' or '='", entry)
		}
		key, err := parseKey(entry[:idx])
		if err != nil {
			return nil, err
		}
		if _, dup := m[key]; dup {
			return nil, errors.New(errors.ErrCodeInvalidColor, "duplicate key %q", key)
		}
		c, err := ParseRGB(entry[idx+1:])
		if err != nil {
			return nil, err
		}
		m[key] = c
	}
	if len(m) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidColor, "color map has no entries")
	}
	return m, nil
}

// splitTopLevel splits s on commas that are not inside parentheses.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New(errors.ErrCodeInvalidColor, "unbalanced parentheses in color map")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New(errors.ErrCodeInvalidColor, "unbalanced parentheses in color map")
	}
	return append(parts, s[start:]), nil
}

func parseKey(raw string) (byte, error) {
	k := strings.TrimSpace(raw)
	if len(k) >= 2 && (k[0] == '\'' || k[0] == '"') && k[len(k)-1] == k[0] {
		k = k[1 : len(k)-1]
	}
	if len(k) != 1 || !slices.Contains(Trits, k[0]) {
		return 0, errors.New(errors.ErrCodeInvalidColor, "key %q is not a trit (0, 1 or 2)", strings.TrimSpace(raw))
	}
	return k[0], nil
}

// FormatRGB renders c as "(r, g, b)". Alpha is ignored.
func FormatRGB(c color.Color) string {
	r, g, b := rgb8(c)
	return fmt.Sprintf("(%d, %d, %d)", r, g, b)
}

// Hex renders c as "#rrggbb". Alpha is ignored.
func Hex(c color.Color) string {
	r, g, b := rgb8(c)
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// FormatColorMap renders m in the braces form accepted by ParseColorMap.
func FormatColorMap[C color.Color](m map[byte]C) string {
	keys := make([]byte, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("'%c': %s", k, FormatRGB(m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
