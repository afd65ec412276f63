package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cipherwen/pkg/article"
	"github.com/matzehuels/cipherwen/pkg/cache"
	"github.com/matzehuels/cipherwen/pkg/errors"
	"github.com/matzehuels/cipherwen/pkg/fingerprint"
	"github.com/matzehuels/cipherwen/pkg/grid"
	"github.com/matzehuels/cipherwen/pkg/observability"
	"github.com/matzehuels/cipherwen/pkg/ternary"
)

// Runner executes pipeline stages against a fingerprint cache. It keeps no
// per-run state, so one Runner may serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. Nil arguments fall back to DefaultKeyer,
// NullCache and log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Cipher runs every requested stage over articles. The inputs are not
// modified. Any fingerprint failure aborts the whole run.
func (r *Runner) Cipher(ctx context.Context, articles []article.Article, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if len(articles) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no articles to encipher")
	}
	result := &Result{
		RunID:    uuid.NewString(),
		Articles: cloneArticles(articles),
		Answers:  make([]fingerprint.Fingerprint, len(articles)),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Text fingerprint
	start := time.Now()
	texts := make([]string, len(articles))
	for i, a := range result.Articles {
		texts[i] = a.Text
		result.Stats.QAs += len(a.QAs)
	}
	result.Stats.Articles = len(articles)

	fp, hit, err := r.FingerprintWithCacheInfo(ctx, "text", texts, opts.TextMinLength, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("fingerprint texts: %w", err)
	}
	result.Text = fp
	result.CacheInfo.TextHit = hit
	for i := range result.Articles {
		result.Articles[i].Cipher = fp.Segments[i]
	}
	logger.Info("fingerprinted texts",
		"articles", len(texts),
		"position", fp.Position,
		"length", fp.Length,
		"cached", hit)

	// Stage 2: Answer fingerprints
	hits := make([]bool, len(articles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range result.Articles {
		g.Go(func() error {
			a := &result.Articles[i]
			scope := fmt.Sprintf("article %d", i)
			fp, hit, err := r.FingerprintWithCacheInfo(gctx, scope, a.Answers(), opts.AnswerMinLength, opts.Refresh)
			if err != nil {
				return fmt.Errorf("fingerprint answers of article %d: %w", i, err)
			}
			for j := range a.QAs {
				a.QAs[j].CipherAnswer = fp.Segments[j]
			}
			result.Answers[i] = fp
			hits[i] = hit
			logger.Debug("fingerprinted answers",
				"article", i,
				"answers", len(a.QAs),
				"position", fp.Position,
				"length", fp.Length,
				"cached", hit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, h := range hits {
		if h {
			result.CacheInfo.AnswerHits++
		}
	}
	result.Stats.FingerprintTime = time.Since(start)
	result.CipherText = Join(result.Articles)
	logger.Info("built cipher text",
		"length", len(result.CipherText),
		"duration", result.Stats.FingerprintTime)

	if err := r.Encode(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Encode runs the transcode and render stages on a result produced by
// Cipher, as selected by opts.Ternary and opts.Render. It fills
// result.Ternary and result.ImagePath.
func (r *Runner) Encode(ctx context.Context, result *Result, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if !opts.Ternary {
		return nil
	}
	logger := opts.Logger
	if len(result.RunID) >= 8 {
		logger = logger.With("run", result.RunID[:8])
	}

	// Stage 3: Transcode
	start := time.Now()
	var err error
	result.Ternary, err = ternary.Encode(result.CipherText)
	result.Stats.EncodeTime = time.Since(start)
	observability.Pipeline().OnEncodeComplete(ctx, len(result.Ternary), result.Stats.EncodeTime, err)
	if err != nil {
		return fmt.Errorf("transcode: %w", err)
	}
	logger.Debug("transcoded", "trits", len(result.Ternary))

	if !opts.Render {
		return nil
	}

	// Stage 4: Render
	start = time.Now()
	observability.Pipeline().OnRenderStart(ctx, len(result.Ternary))
	result.ImagePath, err = grid.Render(ctx, result.Ternary, opts.Grid)
	result.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, result.ImagePath, result.Stats.RenderTime, err)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Info("rendered image",
		"path", result.ImagePath,
		"side", grid.NewLayout(len(result.Ternary)).Side,
		"duration", result.Stats.RenderTime)
	return nil
}

// FingerprintWithCacheInfo runs fingerprint.Find with caching and reports
// whether the result came from cache. scope only labels events.
func (r *Runner) FingerprintWithCacheInfo(ctx context.Context, scope string, candidates []string, minLength int, refresh bool) (fingerprint.Fingerprint, bool, error) {
	if err := ctx.Err(); err != nil {
		return fingerprint.Fingerprint{}, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnFingerprintStart(ctx, scope, len(candidates))
	start := time.Now()

	key := r.Keyer.FingerprintKey(candidates, minLength)
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var fp fingerprint.Fingerprint
			if json.Unmarshal(data, &fp) == nil && len(fp.Segments) == len(candidates) {
				observability.Cache().OnCacheHit(ctx, "fingerprint")
				hooks.OnFingerprintComplete(ctx, scope, fp.Length, time.Since(start), nil)
				return fp, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "fingerprint")
	}

	fp, err := find(candidates, minLength)
	hooks.OnFingerprintComplete(ctx, scope, fp.Length, time.Since(start), err)
	if err != nil {
		return fingerprint.Fingerprint{}, false, err
	}

	if data, err := json.Marshal(fp); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLFingerprint) == nil {
			observability.Cache().OnCacheSet(ctx, "fingerprint", len(data))
		}
	}
	return fp, false, nil
}

// find is fingerprint.Find, except that a lone candidate (one article, or an
// article with one Q&A pair) keeps its leading minLength letters.
func find(candidates []string, minLength int) (fingerprint.Fingerprint, error) {
	if len(candidates) == 1 {
		return fingerprint.Single(candidates[0], minLength)
	}
	return fingerprint.Find(candidates, minLength)
}

// Fingerprint is a convenience wrapper that calls FingerprintWithCacheInfo and discards the cache hit info.
func (r *Runner) Fingerprint(ctx context.Context, candidates []string, minLength int) (fingerprint.Fingerprint, error) {
	fp, _, err := r.FingerprintWithCacheInfo(ctx, "adhoc", candidates, minLength, false)
	return fp, err
}

// Join builds the cipher stream from enciphered articles: for each article,
// its text segment, a '0', then its answer segments.
func Join(articles []article.Article) string {
	var b strings.Builder
	for _, a := range articles {
		b.WriteString(a.Cipher)
		b.WriteByte(ternary.Separator)
		for _, qa := range a.QAs {
			b.WriteString(qa.CipherAnswer)
		}
	}
	return b.String()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func cloneArticles(in []article.Article) []article.Article {
	out := make([]article.Article, len(in))
	for i, a := range in {
		out[i] = a
		out[i].QAs = append([]article.QA(nil), a.QAs...)
	}
	return out
}
