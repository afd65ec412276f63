// Package observability lets callers watch the cipher pipeline and its cache
// without the libraries depending on a logging or metrics backend.
//
// The pipeline and cache packages report through [Pipeline] and [Cache].
// Both return no-op receivers until a program installs its own:
//
//	observability.SetPipelineHooks(myHooks)
//	observability.SetCacheHooks(myHooks)
//
// The cipherwen CLI installs hooks that write debug log lines.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks is notified as the pipeline moves through its stages.
// scope names the candidate set being searched: "text", "article 3", and so on.
type PipelineHooks interface {
	OnFingerprintStart(ctx context.Context, scope string, candidates int)
	OnFingerprintComplete(ctx context.Context, scope string, length int, duration time.Duration, err error)
	OnEncodeComplete(ctx context.Context, trits int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, trits int)
	OnRenderComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// CacheHooks is notified on cache lookups and writes. kind is the entry
// kind, currently always "fingerprint".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFingerprintStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnFingerprintComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnRenderStart(context.Context, int)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// registered wraps the interfaces so atomic.Pointer can hold them.
type registered[T any] struct{ hooks T }

var (
	pipeline atomic.Pointer[registered[PipelineHooks]]
	cache    atomic.Pointer[registered[CacheHooks]]
)

func init() { Reset() }

// SetPipelineHooks installs h as the pipeline receiver. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipeline.Store(&registered[PipelineHooks]{h})
	}
}

// SetCacheHooks installs h as the cache receiver. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cache.Store(&registered[CacheHooks]{h})
	}
}

// Pipeline returns the installed pipeline receiver.
func Pipeline() PipelineHooks { return pipeline.Load().hooks }

// Cache returns the installed cache receiver.
func Cache() CacheHooks { return cache.Load().hooks }

// Reset puts the no-op receivers back.
func Reset() {
	pipeline.Store(&registered[PipelineHooks]{NoopPipelineHooks{}})
	cache.Store(&registered[CacheHooks]{NoopCacheHooks{}})
}
