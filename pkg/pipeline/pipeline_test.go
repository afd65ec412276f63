package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/cipherwen/pkg/article"
	"github.com/matzehuels/cipherwen/pkg/cache"
	"github.com/matzehuels/cipherwen/pkg/errors"
	"github.com/matzehuels/cipherwen/pkg/fingerprint"
	"github.com/matzehuels/cipherwen/pkg/grid"
	"github.com/matzehuels/cipherwen/pkg/observability"
	"github.com/matzehuels/cipherwen/pkg/ternary"
)

func sampleArticles() []article.Article {
	return []article.Article{
		{Text: "APPLE", QAs: []article.QA{
			{Question: "What", Answer: "AB"},
			{Question: "Which", Answer: "AC"},
		}},
		{Text: "APRON", QAs: []article.QA{
			{Question: "Who", Answer: "CAT"},
			{Question: "Where", Answer: "DOG"},
		}},
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}
	if opts.TextMinLength != DefaultTextMinLength {
		t.Errorf("TextMinLength = %d, want %d", opts.TextMinLength, DefaultTextMinLength)
	}
	if opts.AnswerMinLength != DefaultAnswerMinLength {
		t.Errorf("AnswerMinLength = %d, want %d", opts.AnswerMinLength, DefaultAnswerMinLength)
	}
	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, DefaultWorkers)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.TextMinLength != before.TextMinLength || opts.Workers != before.Workers {
		t.Error("second call changed options")
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative text min", Options{TextMinLength: -1}, errors.ErrCodeInvalidConfig},
		{"negative answer min", Options{AnswerMinLength: -2}, errors.ErrCodeInvalidConfig},
		{"negative workers", Options{Workers: -1}, errors.ErrCodeInvalidConfig},
		{"render without ternary", Options{Render: true}, errors.ErrCodeInvalidConfig},
		{"bad output path", Options{Ternary: true, Render: true, Grid: grid.Options{OutputPath: "a\x00.png"}}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestCipher(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	in := sampleArticles()

	result, err := runner.Cipher(ctx, in, Options{})
	if err != nil {
		t.Fatalf("Cipher error: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.Text.Position != 1 || result.Text.Length != 2 {
		t.Errorf("Text fingerprint = %+v, want position 1 length 2", result.Text)
	}

	wantCipher := []string{"PP", "PR"}
	wantAnswers := [][]string{{"B", "C"}, {"C", "D"}}
	for i, a := range result.Articles {
		if a.Cipher != wantCipher[i] {
			t.Errorf("article %d cipher = %q, want %q", i, a.Cipher, wantCipher[i])
		}
		for j, qa := range a.QAs {
			if qa.CipherAnswer != wantAnswers[i][j] {
				t.Errorf("article %d answer %d cipher = %q, want %q", i, j, qa.CipherAnswer, wantAnswers[i][j])
			}
		}
	}

	if result.CipherText != "PP0BCPR0CD" {
		t.Errorf("CipherText = %q, want PP0BCPR0CD", result.CipherText)
	}
	if result.Ternary != "" || result.ImagePath != "" {
		t.Error("ternary and image should be empty when not requested")
	}
	if result.Stats.Articles != 2 || result.Stats.QAs != 4 {
		t.Errorf("Stats = %+v", result.Stats)
	}

	// Inputs untouched
	if in[0].Cipher != "" || in[0].QAs[0].CipherAnswer != "" {
		t.Error("Cipher modified its input")
	}
}

func TestCipherWorkersAgree(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	var articles []article.Article
	for _, text := range []string{"ALPHA", "BRAVO", "CHARLIE", "DELTA", "ECHO", "FOXTROT"} {
		articles = append(articles, article.Article{Text: text, QAs: []article.QA{
			{Answer: text + "X"}, {Answer: text + "Y"}, {Answer: "Z" + text},
		}})
	}

	serial, err := runner.Cipher(ctx, articles, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := runner.Cipher(ctx, articles, Options{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	if serial.CipherText != parallel.CipherText {
		t.Errorf("worker count changed output: %q vs %q", serial.CipherText, parallel.CipherText)
	}
}

func TestCipherTernaryAndRender(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	out := filepath.Join(t.TempDir(), "cipher")

	result, err := runner.Cipher(ctx, sampleArticles(), Options{
		Ternary: true,
		Render:  true,
		Grid:    grid.Options{OutputPath: out},
	})
	if err != nil {
		t.Fatalf("Cipher error: %v", err)
	}

	want, _ := ternary.Encode("PP0BCPR0CD")
	if result.Ternary != want {
		t.Errorf("Ternary = %q, want %q", result.Ternary, want)
	}
	if result.ImagePath != out+".png" {
		t.Errorf("ImagePath = %q, want %q", result.ImagePath, out+".png")
	}
	if _, err := os.Stat(result.ImagePath); err != nil {
		t.Errorf("image not written: %v", err)
	}
}

func TestEncodeAfterCipher(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Cipher(ctx, sampleArticles(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Ternary != "" {
		t.Fatal("Ternary should be empty before Encode")
	}

	out := filepath.Join(t.TempDir(), "later.gif")
	if err := runner.Encode(ctx, result, Options{Ternary: true, Render: true, Grid: grid.Options{OutputPath: out}}); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want, _ := ternary.Encode(result.CipherText)
	if result.Ternary != want {
		t.Errorf("Ternary = %q, want %q", result.Ternary, want)
	}
	if result.ImagePath != out {
		t.Errorf("ImagePath = %q, want %q", result.ImagePath, out)
	}

	// Nothing requested: no-op
	again := &Result{CipherText: "AB"}
	if err := runner.Encode(ctx, again, Options{}); err != nil || again.Ternary != "" {
		t.Errorf("Encode without Ternary = %q, %v", again.Ternary, err)
	}

	bad := &Result{CipherText: "A-B"}
	err = runner.Encode(ctx, bad, Options{Ternary: true})
	if !errors.Is(err, errors.ErrCodeUnsupportedCharacter) {
		t.Errorf("code = %s, want UNSUPPORTED_CHARACTER", errors.GetCode(err))
	}
}

func TestCipherCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	first, err := runner.Cipher(ctx, sampleArticles(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.TextHit || first.CacheInfo.AnswerHits != 0 {
		t.Errorf("first run CacheInfo = %+v, want all misses", first.CacheInfo)
	}

	second, err := runner.Cipher(ctx, sampleArticles(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.TextHit || second.CacheInfo.AnswerHits != 2 {
		t.Errorf("second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if second.CipherText != first.CipherText {
		t.Errorf("cached run = %q, want %q", second.CipherText, first.CipherText)
	}

	refreshed, err := runner.Cipher(ctx, sampleArticles(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.TextHit || refreshed.CacheInfo.AnswerHits != 0 {
		t.Errorf("refresh CacheInfo = %+v, want all misses", refreshed.CacheInfo)
	}
}

func TestCipherIgnoresMismatchedCacheEntry(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)

	texts := []string{"APPLE", "APRON"}
	key := runner.Keyer.FingerprintKey(texts, 2)
	if err := c.Set(ctx, key, []byte(`{"position":0,"length":1,"segments":["X"]}`), 0); err != nil {
		t.Fatal(err)
	}

	fp, hit, err := runner.FingerprintWithCacheInfo(ctx, "text", texts, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("entry with wrong segment count should be a miss")
	}
	if fp.Position != 1 {
		t.Errorf("Position = %d, want 1", fp.Position)
	}
}

func TestCipherErrors(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Cipher(ctx, nil, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no articles: code = %s, want INVALID_INPUT", errors.GetCode(err))
	}

	same := sampleArticles()
	same[1].Text = same[0].Text
	_, err = runner.Cipher(ctx, same, Options{})
	if !errors.Is(err, errors.ErrCodeAmbiguousCandidates) {
		t.Errorf("identical texts: code = %s, want AMBIGUOUS_CANDIDATES", errors.GetCode(err))
	}
	if !stderrors.Is(err, fingerprint.ErrNotFound) {
		t.Errorf("identical texts should wrap ErrNotFound: %v", err)
	}

	answers := sampleArticles()
	answers[1].QAs[1].Answer = answers[1].QAs[0].Answer
	_, err = runner.Cipher(ctx, answers, Options{})
	if !errors.Is(err, errors.ErrCodeAmbiguousCandidates) {
		t.Errorf("identical answers: code = %s, want AMBIGUOUS_CANDIDATES", errors.GetCode(err))
	}

	empty := sampleArticles()
	empty[0].QAs = nil
	_, err = runner.Cipher(ctx, empty, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("article without Q&A: code = %s, want INVALID_INPUT", errors.GetCode(err))
	}

	short := []article.Article{{Text: "A", QAs: []article.QA{{Question: "Q", Answer: "B"}}}}
	_, err = runner.Cipher(ctx, short, Options{})
	if !errors.Is(err, errors.ErrCodeAmbiguousCandidates) {
		t.Errorf("lone text shorter than min length: code = %s, want AMBIGUOUS_CANDIDATES", errors.GetCode(err))
	}
}

func TestCipherLoneCandidates(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	lone := []article.Article{{Text: "APPLE", QAs: []article.QA{{Question: "What", Answer: "AB"}}}}
	result, err := runner.Cipher(context.Background(), lone, Options{})
	if err != nil {
		t.Fatalf("Cipher() = %v", err)
	}
	if result.Text.Position != 0 || result.Text.Length != DefaultTextMinLength {
		t.Errorf("Text = %+v, want position 0 length %d", result.Text, DefaultTextMinLength)
	}
	if result.Articles[0].Cipher != "AP" {
		t.Errorf("Cipher = %q, want AP", result.Articles[0].Cipher)
	}
	if got := result.Articles[0].QAs[0].CipherAnswer; got != "A" {
		t.Errorf("CipherAnswer = %q, want A", got)
	}
	if result.CipherText != "AP0A" {
		t.Errorf("CipherText = %q, want AP0A", result.CipherText)
	}

	// The other article's answers still go through the full search.
	mixed := sampleArticles()
	mixed[0].QAs = mixed[0].QAs[:1]
	result, err = runner.Cipher(context.Background(), mixed, Options{})
	if err != nil {
		t.Fatalf("Cipher() = %v", err)
	}
	if got := result.Articles[0].QAs[0].CipherAnswer; got != "A" {
		t.Errorf("lone answer = %q, want A", got)
	}
	if len(result.Answers[1].Segments) != 2 {
		t.Errorf("Answers[1] = %+v, want two segments", result.Answers[1])
	}
}

func TestCipherCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Cipher(ctx, sampleArticles(), Options{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCipherEmitsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	_, err := NewRunner(nil, nil, nil).Cipher(context.Background(), sampleArticles(), Options{
		Ternary: true,
		Render:  true,
		Grid:    grid.Options{OutputPath: t.TempDir()},
	})
	if err != nil {
		t.Fatal(err)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.fingerprints != 3 {
		t.Errorf("fingerprint completions = %d, want 3", hooks.fingerprints)
	}
	if hooks.encodes != 1 || hooks.renders != 1 {
		t.Errorf("encodes = %d renders = %d, want 1 each", hooks.encodes, hooks.renders)
	}
}

func TestJoin(t *testing.T) {
	articles := []article.Article{
		{Cipher: "AB", QAs: []article.QA{{CipherAnswer: "X"}, {CipherAnswer: "0Y"}}},
		{Cipher: "CD"},
	}
	if got := Join(articles); got != "AB0X0YCD0" {
		t.Errorf("Join = %q, want AB0X0YCD0", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu           sync.Mutex
	fingerprints int
	encodes      int
	renders      int
}

func (h *countingHooks) OnFingerprintComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	h.fingerprints++
	h.mu.Unlock()
}

func (h *countingHooks) OnEncodeComplete(context.Context, int, time.Duration, error) {
	h.mu.Lock()
	h.encodes++
	h.mu.Unlock()
}

func (h *countingHooks) OnRenderComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	h.renders++
	h.mu.Unlock()
}
