package grid

import (
	"image"
	"os"

	// Decoders for marker and background assets.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/image/draw"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

const (
	markerModules    = 7
	markerModuleSize = 4
)

// loadImage opens and decodes an image asset.
func loadImage(kind, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "open %s image %s", kind, path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetLoad, err, "decode %s image %s", kind, path)
	}
	return img, nil
}

// DefaultMarker returns the built-in corner marker: a 7×7-module finder
// pattern with a dark ring, a light ring and a dark 3×3 core.
func DefaultMarker() image.Image {
	size := markerModules * markerModuleSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for my := range markerModules {
		for mx := range markerModules {
			c := White
			if finderDark(mx, my) {
				c = Black
			}
			r := image.Rect(mx*markerModuleSize, my*markerModuleSize,
				(mx+1)*markerModuleSize, (my+1)*markerModuleSize)
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

// finderDark reports whether module (x, y) of the finder pattern is dark.
func finderDark(x, y int) bool {
	ring := min(x, y, markerModules-1-x, markerModules-1-y)
	return ring != 1
}

// resize scales src to a w×h RGBA image.
func resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
