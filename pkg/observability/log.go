package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a charm logger at debug level, except
// failures which are logged as warnings. It implements all three hook
// interfaces so one value can be registered for each.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns LogHooks writing to l, or to log.Default() if l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l.WithPrefix("obs")}
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnFetchStart(_ context.Context, source string, symbolCount int) {
	h.Logger.Debug("fetch start", "source", source, "symbols", symbolCount)
}

func (h *LogHooks) OnFetchComplete(_ context.Context, source string, stockCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("fetch failed", "source", source, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("fetch done", "source", source, "stocks", stockCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, itemCount int) {
	h.Logger.Debug("layout start", "items", itemCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, tileCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout done", "tiles", tileCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
