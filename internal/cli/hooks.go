package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnFingerprintStart(_ context.Context, scope string, candidates int) {
	h.logger.Debug("fingerprint search", "scope", scope, "candidates", candidates)
}

func (h logHooks) OnFingerprintComplete(_ context.Context, scope string, length int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fingerprint failed", "scope", scope, "err", err)
		return
	}
	h.logger.Debug("fingerprint found", "scope", scope, "length", length, "duration", d)
}

func (h logHooks) OnEncodeComplete(_ context.Context, trits int, d time.Duration, err error) {
	h.logger.Debug("encode", "trits", trits, "duration", d, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, trits int) {
	h.logger.Debug("render start", "trits", trits)
}

func (h logHooks) OnRenderComplete(_ context.Context, path string, d time.Duration, err error) {
	h.logger.Debug("render", "path", path, "duration", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
