package grid

import (
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

// DefaultOutputPath is used when no output path is given, and as the file
// name when the output path is a directory.
const DefaultOutputPath = "output.png"

// Extensions lists the output extensions that are kept as given. Any other
// extension gets ".png" appended.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif"}

var (
	// White fills borders, unmapped trits and the default background.
	White = color.RGBA{255, 255, 255, 255}
	// Black is the default color for trit 0.
	Black = color.RGBA{0, 0, 0, 255}
	// Gray is the default color for trit 1.
	Gray = color.RGBA{128, 128, 128, 255}
)

// DefaultColorMap returns the default trit colors.
func DefaultColorMap() map[byte]color.Color {
	return map[byte]color.Color{'0': Black, '1': Gray, '2': White}
}

// Options configures rendering. The zero value is valid.
type Options struct {
	// OutputPath is the destination file or an existing directory.
	OutputPath string
	// ColorMap maps trits to cell colors.
	ColorMap map[byte]color.Color
	// MarkerPath is the corner marker image; empty uses DefaultMarker.
	MarkerPath string
	// Background fills the canvas behind the grid and markers.
	Background color.Color
	// BackgroundPath is an optional full-bleed background image.
	BackgroundPath string
}

// Resolve returns a copy of o with every unset or unusable field replaced by
// its default and the output path normalized.
func (o Options) Resolve() (Options, error) {
	out, err := resolveOutputPath(o.OutputPath)
	if err != nil {
		return Options{}, err
	}
	o.OutputPath = out

	if len(o.ColorMap) == 0 {
		o.ColorMap = DefaultColorMap()
	}
	if !isRGB(o.Background) {
		o.Background = White
	}
	return o, nil
}

// ColorFor returns the color for trit t, or white when t is unmapped.
func (o Options) ColorFor(t byte) color.Color {
	if c, ok := o.ColorMap[t]; ok && c != nil {
		return c
	}
	return White
}

func resolveOutputPath(p string) (string, error) {
	if p == "" {
		return DefaultOutputPath, nil
	}
	if err := errors.ValidatePath(p); err != nil {
		return "", err
	}
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, DefaultOutputPath), nil
	}
	if !slices.Contains(Extensions, strings.ToLower(filepath.Ext(p))) {
		return p + ".png", nil
	}
	return p, nil
}

// isRGB reports whether c is a plain opaque RGB color.
func isRGB(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a == 0xffff
}
