package grid

import (
	"context"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

// jpegQuality is the quality used for .jpg/.jpeg outputs.
const jpegQuality = 95

// Render paints ternary onto a framed grid image and saves it to the
// resolved output path, which it returns.
func Render(ctx context.Context, ternary string, opts Options) (string, error) {
	opts, err := opts.Resolve()
	if err != nil {
		return "", err
	}

	img, err := Paint(ctx, ternary, opts)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := Save(img, opts.OutputPath); err != nil {
		return "", err
	}
	return opts.OutputPath, nil
}

// Paint builds the final framed image without saving it. opts should
// already be resolved.
func Paint(ctx context.Context, ternary string, opts Options) (*image.RGBA, error) {
	l := NewLayout(len(ternary))
	base := PaintGrid(ternary, l, opts)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	marker := DefaultMarker()
	if opts.MarkerPath != "" {
		var err error
		if marker, err = loadImage("marker", opts.MarkerPath); err != nil {
			return nil, err
		}
	}
	mb := marker.Bounds()
	mw, mh := mb.Dx(), mb.Dy()

	size := l.Size() + 2*mw
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if opts.BackgroundPath != "" {
		bg, err := loadImage("background", opts.BackgroundPath)
		if err != nil {
			return nil, err
		}
		draw.Draw(canvas, canvas.Bounds(), resize(bg, size, size), image.Point{}, draw.Over)
	}

	corners := []image.Point{
		image.Pt(0, 0),       // top-left
		image.Pt(size-mw, 0), // top-right
		image.Pt(0, size-mh), // bottom-left
	}
	for _, pt := range corners {
		draw.Draw(canvas, image.Rectangle{Min: pt, Max: pt.Add(image.Pt(mw, mh))}, marker, mb.Min, draw.Over)
	}

	offset := image.Pt(mw, mw)
	draw.Draw(canvas, base.Bounds().Add(offset), base, image.Point{}, draw.Src)
	return canvas, nil
}

// PaintGrid paints the bare cell grid for ternary on a background-filled
// canvas of l.Size() pixels. Cells at index l.Cells and beyond are untouched.
func PaintGrid(ternary string, l Layout, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, l.Size(), l.Size()))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	border := image.NewUniform(White)
	for i := 0; i < len(ternary); i++ {
		draw.Draw(img, l.Cell(i), border, image.Point{}, draw.Src)
		draw.Draw(img, l.Interior(i), image.NewUniform(opts.ColorFor(ternary[i])), image.Point{}, draw.Src)
	}
	return img
}

// Save encodes img by the extension of path and writes it atomically.
func Save(img image.Image, path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "create %s", path)
	}

	if err := encode(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "save %s", path)
	}
	return nil
}

func encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		return gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.Src})
	default:
		return png.Encode(w, img)
	}
}
