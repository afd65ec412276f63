// Package grid renders a ternary string as a disguised pixel-grid image.
//
// # Overview
//
// Each trit becomes one square cell of [BoxSize] pixels: a 1-pixel white
// border around an [InnerSize] interior filled with the color mapped from
// the trit. Cells are laid out row by row on a square grid of
// side = ceil(sqrt(n)) cells. When n is not a perfect square the remaining
// cells of the last row are left unpainted and show the background.
//
// The grid is then framed by a marker image pasted at the top-left,
// top-right and bottom-left corners (never bottom-right), which makes the
// result look like a two-dimensional barcode. It is not one: there is no
// error correction and no way to read the data back from the image.
//
// # Compositing
//
// The canvas is filled with the background color first. A background image
// is scaled to the canvas and drawn over it, then the markers are drawn
// over that, both with alpha blending ([draw.Over]). Transparent pixels of
// a marker or background image therefore show what lies beneath, usually
// the background color, instead of replacing it. The cell grid is copied in
// last and is opaque.
//
// # Usage
//
//	path, err := grid.Render(ctx, "0000100000", grid.Options{
//	    OutputPath: "out/cipher.png",
//	    MarkerPath: "img/horn.png",
//	})
//
// Every [Options] field has a default, applied by [Options.Resolve]:
//
//   - OutputPath: "output.png"; a directory gets "output.png" inside it and
//     an unknown extension gets ".png" appended
//   - ColorMap: 0 black, 1 mid-gray, 2 white; unmapped trits are white
//   - MarkerPath: the built-in [DefaultMarker]
//   - Background: white
//   - BackgroundPath: none
//
// # Errors
//
// Marker and background images that cannot be opened or decoded fail with
// an ASSET_LOAD error. An unwritable destination fails with OUTPUT_WRITE.
// The image is written to a temporary file next to the destination and
// renamed into place, so a failed render never leaves a partial file.
package grid
