// Package pipeline runs the complete cipherwen flow: fingerprint the
// articles, fingerprint each article's answers, join the cipher text, then
// optionally transcode it to ternary and paint it as a grid image.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Text fingerprint: one segment per article, searched from
//     Options.TextMinLength
//  2. Answer fingerprints: one search per article over its answers, from
//     Options.AnswerMinLength, run concurrently
//  3. Transcode: the cipher text as 5-trit blocks (Options.Ternary)
//  4. Render: the ternary string as a framed grid image (Options.Render)
//
// The cipher text is, for each article in order, its text segment, a '0'
// and its answer segments.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Cipher(ctx, articles, pipeline.Options{Ternary: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.CipherText, result.Ternary)
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cipherwen/pkg/article"
	"github.com/matzehuels/cipherwen/pkg/errors"
	"github.com/matzehuels/cipherwen/pkg/fingerprint"
	"github.com/matzehuels/cipherwen/pkg/grid"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTextMinLength is the starting segment length for article texts.
	DefaultTextMinLength = 2

	// DefaultAnswerMinLength is the starting segment length for answers.
	DefaultAnswerMinLength = 1
)

// DefaultWorkers is the default number of concurrent answer searches.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Fingerprint options
	TextMinLength   int  `json:"text_min_length,omitempty"`
	AnswerMinLength int  `json:"answer_min_length,omitempty"`
	Workers         int  `json:"workers,omitempty"`
	Refresh         bool `json:"refresh,omitempty"` // Ignore cached results (still writes)

	// Output options
	Ternary bool         `json:"ternary,omitempty"`
	Render  bool         `json:"render,omitempty"` // Requires Ternary
	Grid    grid.Options `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// Articles are copies of the inputs with Cipher and CipherAnswer filled.
	Articles []article.Article

	// Text is the fingerprint across article texts.
	Text fingerprint.Fingerprint

	// Answers holds one answer fingerprint per article.
	Answers []fingerprint.Fingerprint

	// CipherText is the joined cipher stream.
	CipherText string

	// Ternary is CipherText transcoded, when Options.Ternary was set.
	Ternary string

	// ImagePath is the written image, when Options.Render was set.
	ImagePath string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which searches hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Articles        int
	QAs             int
	FingerprintTime time.Duration
	EncodeTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for the fingerprint searches.
type CacheInfo struct {
	TextHit    bool // Whether the text fingerprint came from cache
	AnswerHits int  // Number of answer fingerprints that came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TextMinLength == 0 {
		o.TextMinLength = DefaultTextMinLength
	}
	if o.AnswerMinLength == 0 {
		o.AnswerMinLength = DefaultAnswerMinLength
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateMinLength("text", o.TextMinLength); err != nil {
		return err
	}
	if err := errors.ValidateMinLength("answer", o.AnswerMinLength); err != nil {
		return err
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be positive, got %d", o.Workers)
	}
	if o.Render && !o.Ternary {
		return errors.New(errors.ErrCodeInvalidConfig, "rendering requires ternary output")
	}
	if o.Render {
		resolved, err := o.Grid.Resolve()
		if err != nil {
			return err
		}
		o.Grid = resolved
	}

	o.validated = true
	return nil
}
