package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnFetchStart(ctx, "sp500", 503)
	p.OnFetchComplete(ctx, "sp500", 498, time.Second, nil)
	p.OnLayoutStart(ctx, 498)
	p.OnLayoutComplete(ctx, 498, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "quotes")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "financialmodelingprep.com", "/api/v3/quote/AAPL")
	h.OnResponse(ctx, "GET", "financialmodelingprep.com", "/api/v3/quote/AAPL", 200, time.Second)
	h.OnError(ctx, "GET", "financialmodelingprep.com", "/api/v3/quote/AAPL", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	pipeline, cache, http := &testPipelineHooks{}, &testCacheHooks{}, &testHTTPHooks{}
	SetPipelineHooks(pipeline)
	SetCacheHooks(cache)
	SetHTTPHooks(http)

	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Pipeline() != pipeline || Cache() != cache || HTTP() != http {
		t.Error("setting nil hooks should keep the registered ones")
	}
}

func TestHooksConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetCacheHooks(&testCacheHooks{})
			} else {
				SetHTTPHooks(&testHTTPHooks{})
			}
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(ctx, "layout")
			HTTP().OnRequest(ctx, "GET", "example.com", "/")
		}()
	}
	wg.Wait()

	// Setting one kind never clobbers another.
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("pipeline hooks should be untouched")
	}
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	h.Register()

	ctx := context.Background()
	Pipeline().OnLayoutComplete(ctx, 42, time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "quotes")
	HTTP().OnError(ctx, "GET", "example.com", "/q", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"layout done", "tiles=42", "cache miss", "kind=quotes", "http error", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
