// Package pkg provides the core libraries for Cipherwen.
//
// # Overview
//
// Cipherwen condenses a quiz of articles into a short cipher text. For every
// article it keeps only the shortest segment that tells its text apart from
// the other texts, and for every answer the shortest segment that tells it
// apart from the article's other answers. The cipher text can be transcoded to
// ternary and painted as a grid image that looks like a 2D barcode.
//
// # Architecture
//
// The typical data flow through Cipherwen:
//
//	Articles file
//	     ↓
//	[article] package (split articles, strip Q:/A: prefixes, keep letters)
//	     ↓
//	[fingerprint] package (texts, then each article's answers)
//	     ↓
//	[ternary] package (5-trit blocks)
//	     ↓
//	[grid] package (cells + corner markers)
//	     ↓
//	PNG/JPEG/GIF output
//
// [pipeline] runs these stages with caching, per-article concurrency and
// hooks; the CLI is a thin layer on top of it.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/matzehuels/cipherwen/pkg/article"
//	    "github.com/matzehuels/cipherwen/pkg/config"
//	    "github.com/matzehuels/cipherwen/pkg/pipeline"
//	)
//
//	cfg := config.Default()
//	articles, _ := article.ReadFile("quiz.txt", cfg.Separator)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Cipher(context.Background(), articles, pipeline.Options{
//	    Ternary: true,
//	    Render:  true,
//	})
//	fmt.Println(result.CipherText, result.ImagePath)
//
// # Main Packages
//
// ## Domain Logic
//
// [article] - Articles document parsing with configurable separators.
//
// [fingerprint] - The distinguishing-segment search. Candidates shorter than
// a segment are left-padded with '0'.
//
// [ternary] - Transcoding between cipher text and fixed-width base-3 blocks.
//
// [grid] - Rendering ternary strings as framed square grids with optional
// marker and background images.
//
// [colorspec] - Parsing of the RGB and color map literals used by flags and
// config files. Input is parsed, never evaluated.
//
// ## Infrastructure
//
// [pipeline] - The complete run (fingerprint → transcode → render) used by
// the CLI.
//
// [cache] - Fingerprint cache with file and null backends and SHA-256 keys.
//
// [config] - TOML, YAML or JSON configuration with validation.
//
// [observability] - Hooks for pipeline stages and cache events.
//
// [errors] - Structured error codes shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                   # All tests
//	go test ./pkg/fingerprint/...       # Specific package
//	go test -run Example ./pkg/...      # Examples only
//
// [article]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/article
// [fingerprint]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/fingerprint
// [ternary]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/ternary
// [grid]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/grid
// [colorspec]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/colorspec
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cipherwen/pkg/errors
package pkg
