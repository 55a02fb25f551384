package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/goleak"

	"github.com/visarcu/heatmap/pkg/cache"
	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/pipeline"
	"github.com/visarcu/heatmap/pkg/treemap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

type fakeQuotes struct {
	calls atomic.Int32
	err   error
}

func (f *fakeQuotes) FetchQuotes(_ context.Context, symbols []string, _ bool) ([]market.Quote, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]market.Quote, len(symbols))
	for i, s := range symbols {
		out[i] = market.Quote{
			Symbol:            s,
			Name:              s + " Corp",
			Price:             100,
			ChangesPercentage: float64(i) - 1,
			MarketCap:         float64(len(symbols)-i) * 1e9,
		}
	}
	return out, nil
}

func newTestServer(t *testing.T, quotes *fakeQuotes) (*httptest.Server, *cache.MemoryCache) {
	t.Helper()
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	runner := pipeline.NewRunner(c, nil, quotes, log.New(io.Discard))
	srv := httptest.NewServer(New(runner, Options{MaxBodyBytes: 4096}))
	t.Cleanup(srv.Close)
	return srv, c
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-Id"); id != "" {
		t.Logf("request id %s", id)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestLayout(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	req := `{"items":[{"id":"a","weight":6},{"id":"b","weight":3},{"id":"c","weight":1}],
		"box":{"x":0,"y":0,"width":100,"height":50},"padding":0}`
	resp, err := http.Post(srv.URL+"/v1/layout", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Rects) != 3 {
		t.Fatalf("got %d rects, want 3", len(body.Rects))
	}
	var area float64
	for _, r := range body.Rects {
		area += r.Area()
	}
	if diff := area - 5000; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("total area = %v, want 5000", area)
	}
	if body.Rects[0].Item.ID != "a" {
		t.Errorf("first rect = %q, want heaviest item first", body.Rects[0].Item.ID)
	}
}

func TestLayoutEmpty(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	resp, err := http.Post(srv.URL+"/v1/layout", "application/json",
		strings.NewReader(`{"items":[],"box":{"width":10,"height":10}}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(raw, []byte(`"rects":[]`)) {
		t.Errorf("body = %s, want an empty rects array", raw)
	}
}

func TestLayoutErrors(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	tests := []struct {
		name   string
		body   string
		status int
		code   errs.Code
	}{
		{"bad box", `{"items":[{"id":"a","weight":1}],"box":{"width":0,"height":10}}`, http.StatusBadRequest, errs.ErrCodeInvalidBox},
		{"bad option", `{"items":[],"box":{"width":10,"height":10},"split_fraction":2}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown field", `{"items":[],"box":{"width":10,"height":10},"bogus":1}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"malformed", `{"items":`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"empty", ``, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"trailing", `{"items":[],"box":{"width":1,"height":1}} {}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"too large", `{"items":[` + strings.Repeat(`{"id":"x","weight":1},`, 400) + `{"id":"y","weight":1}],"box":{"width":1,"height":1}}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/layout", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp); body.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.code, body.Message)
			}
		})
	}
}

func TestHeatmap(t *testing.T) {
	quotes := &fakeQuotes{}
	srv, _ := newTestServer(t, quotes)

	url := srv.URL + "/v1/heatmap?symbols=AAPL,MSFT,JPM,XOM&width=800&height=400&legend"
	for i, wantCache := range []string{"MISS", "HIT"} {
		resp, err := http.Get(url)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, body %s", i, resp.StatusCode, body)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("Content-Type = %q", ct)
		}
		if got := resp.Header.Get("X-Cache"); got != wantCache {
			t.Errorf("request %d: X-Cache = %q, want %q", i, got, wantCache)
		}
		if !bytes.HasPrefix(body, []byte("<svg")) && !bytes.Contains(body, []byte("<svg")) {
			t.Errorf("body is not SVG: %.60s", body)
		}
	}
	if n := quotes.calls.Load(); n != 1 {
		t.Errorf("quote fetches = %d, want 1", n)
	}
}

func TestHeatmapJSON(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	resp, err := http.Get(srv.URL + "/v1/heatmap?symbols=AAPL,MSFT&format=JSON&title=Mine")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h struct {
		Title string            `json:"title"`
		Tiles []json.RawMessage `json:"tiles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Title != "Mine" || len(h.Tiles) != 2 {
		t.Errorf("heatmap = %q with %d tiles, want Mine with 2", h.Title, len(h.Tiles))
	}
}

func TestHeatmapErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		quotes *fakeQuotes
		status int
		code   errs.Code
	}{
		{"bad top", "top=many", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"bad width", "width=wide&height=1", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"bad bool", "legend=maybe", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"width only", "symbols=AAPL&width=100", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidBox},
		{"bad format", "symbols=AAPL&format=pdf", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"bad universe", "universe=ftse", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidUniverse},
		{"bad sector", "symbols=AAPL&sector=Nope", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidSector},
		{"bad symbol", "symbols=$$$", &fakeQuotes{}, http.StatusBadRequest, errs.ErrCodeInvalidSymbol},
		{"upstream down", "symbols=AAPL", &fakeQuotes{err: errs.New(errs.ErrCodeNetwork, "boom")}, http.StatusBadGateway, errs.ErrCodeNetwork},
		{"upstream auth", "symbols=AAPL", &fakeQuotes{err: errs.New(errs.ErrCodeUnauthorized, "bad key")}, http.StatusBadGateway, errs.ErrCodeUnauthorized},
		{"rate limited", "symbols=AAPL", &fakeQuotes{err: &errs.RateLimitedError{RetryAfter: 3 * time.Second}}, http.StatusTooManyRequests, errs.ErrCodeRateLimited},
		{"internal", "symbols=AAPL", &fakeQuotes{err: io.ErrUnexpectedEOF}, http.StatusInternalServerError, errs.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.quotes)
			resp, err := http.Get(srv.URL + "/v1/heatmap?" + tt.query)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.code, body.Message)
			}
			if tt.code == errs.ErrCodeInternal && body.Message != "internal error" {
				t.Errorf("internal message = %q, want it hidden", body.Message)
			}
			if tt.code == errs.ErrCodeRateLimited && resp.Header.Get("Retry-After") != "3" {
				t.Errorf("Retry-After = %q, want 3", resp.Header.Get("Retry-After"))
			}
		})
	}
}

func TestRenders(t *testing.T) {
	srv, c := newTestServer(t, &fakeQuotes{})

	req := `{"symbols":["AAPL","MSFT","JPM"],"formats":["svg","json"],"width":600,"height":300}`
	resp, err := http.Post(srv.URL+"/v1/renders", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, body %+v", resp.StatusCode, decodeError(t, resp))
	}

	var created renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.Tiles != 3 || len(created.Formats) != 2 {
		t.Errorf("created = %+v", created)
	}
	if loc := resp.Header.Get("Location"); loc != created.URLs["json"] {
		t.Errorf("Location = %q, want %q", loc, created.URLs["json"])
	}

	for format, path := range created.URLs {
		if _, hit, _ := c.Get(context.Background(), cache.NewDefaultKeyer().RenderKey(created.ID, format)); !hit {
			t.Errorf("%s render not stored", format)
		}
		got, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		got.Body.Close()
		if got.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d", path, got.StatusCode)
		}
		if ct := got.Header.Get("Content-Type"); ct != pipeline.ContentType(format) {
			t.Errorf("GET %s Content-Type = %q", path, ct)
		}
	}

	missing, err := http.Get(srv.URL + "/v1/renders/" + created.ID + ".png")
	if err != nil {
		t.Fatal(err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unrendered format status = %d, want 404", missing.StatusCode)
	}
}

func TestRenderPreloadedStocks(t *testing.T) {
	quotes := &fakeQuotes{}
	srv, _ := newTestServer(t, quotes)

	stocks, _ := json.Marshal([]market.Stock{
		{Symbol: "AAA", Name: "A", Sector: market.SectorTechnology, MarketCap: 2e9, ChangePct: 1},
		{Symbol: "BBB", Name: "B", Sector: market.SectorEnergy, MarketCap: 1e9, ChangePct: -2},
	})
	req := `{"stocks":` + string(stocks) + `,"formats":["json"]}`
	resp, err := http.Post(srv.URL+"/v1/renders", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if n := quotes.calls.Load(); n != 0 {
		t.Errorf("quote fetches = %d, want none for preloaded stocks", n)
	}
}

func TestGetRenderNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	tests := []struct {
		path   string
		status int
		code   errs.Code
	}{
		{"/v1/renders/0b6f3a3e-8d7c-4f0e-9a59-1f8a2c3d4e5f.svg", http.StatusNotFound, errs.ErrCodeRenderNotFound},
		{"/v1/renders/not-a-uuid.svg", http.StatusNotFound, errs.ErrCodeRenderNotFound},
		{"/v1/renders/noextension", http.StatusNotFound, errs.ErrCodeRenderNotFound},
		{"/v1/renders/0b6f3a3e-8d7c-4f0e-9a59-1f8a2c3d4e5f.gif", http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"/v1/nothing", http.StatusNotFound, errs.ErrCodeNotFound},
	}
	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		if body := decodeError(t, resp); body.Code != tt.code {
			t.Errorf("GET %s code = %s, want %s", tt.path, body.Code, tt.code)
		}
		resp.Body.Close()
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &fakeQuotes{})

	resp, err := http.Get(srv.URL + "/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestRequestOptionsKeepDefaults(t *testing.T) {
	padding := 3.0
	runner := pipeline.NewRunner(nil, nil, &fakeQuotes{}, log.New(io.Discard))
	s := New(runner, Options{Defaults: pipeline.Options{
		Universe: market.UniverseDAX,
		Padding:  &padding,
		Formats:  []string{"svg"},
	}})

	opts, err := s.requestOptions(func(o *pipeline.Options) error {
		return json.Unmarshal([]byte(`{"symbols":["SAP"],"padding":5,"formats":["png"]}`), o)
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Universe != "" {
		t.Errorf("Universe = %q, want explicit symbols to drop the default universe", opts.Universe)
	}
	if *opts.Padding != 5 || opts.Formats[0] != "png" {
		t.Errorf("request values not applied: padding %v formats %v", *opts.Padding, opts.Formats)
	}
	if padding != 3 || s.defaults.Formats[0] != "svg" {
		t.Errorf("defaults mutated: padding %v formats %v", padding, s.defaults.Formats)
	}

	opts, err = s.requestOptions(func(*pipeline.Options) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if opts.Universe != market.UniverseDAX {
		t.Errorf("Universe = %q, want default %q", opts.Universe, market.UniverseDAX)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.New(errs.ErrCodeInvalidWeight, "x"), http.StatusBadRequest},
		{errs.New(errs.ErrCodeNoData, "x"), http.StatusUnprocessableEntity},
		{errs.New(errs.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{errs.New(errs.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestLayoutError(t *testing.T) {
	if !errs.Is(layoutError(treemap.ErrInvalidWeight), errs.ErrCodeInvalidWeight) {
		t.Error("ErrInvalidWeight should map to INVALID_WEIGHT")
	}
	if !errs.Is(layoutError(treemap.ErrInvalidBox), errs.ErrCodeInvalidBox) {
		t.Error("ErrInvalidBox should map to INVALID_BOX")
	}
}

func TestListenAndServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	runner := pipeline.NewRunner(nil, nil, &fakeQuotes{}, log.New(io.Discard))
	s := New(runner, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, addr) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := client.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after shutdown", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
