package server

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/visarcu/heatmap/pkg/buildinfo"
	"github.com/visarcu/heatmap/pkg/cache"
	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/pipeline"
	"github.com/visarcu/heatmap/pkg/treemap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Current(),
	})
}

// =============================================================================
// POST /v1/layout
// =============================================================================

type layoutRequest struct {
	Items         []treemap.Item `json:"items"`
	Box           treemap.Box    `json:"box"`
	Padding       *float64       `json:"padding,omitempty"`
	MinSize       *float64       `json:"min_size,omitempty"`
	SplitFraction *float64       `json:"split_fraction,omitempty"`
}

type layoutResponse struct {
	Rects []treemap.Rect `json:"rects"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	var opts []treemap.Option
	if req.Padding != nil {
		opts = append(opts, treemap.WithPadding(*req.Padding))
	}
	if req.MinSize != nil {
		opts = append(opts, treemap.WithMinSize(*req.MinSize))
	}
	if req.SplitFraction != nil {
		opts = append(opts, treemap.WithMaxSplitFraction(*req.SplitFraction))
	}

	rects, err := treemap.Layout(req.Items, req.Box, opts...)
	if err != nil {
		writeError(w, r, s.logger, layoutError(err))
		return
	}
	if rects == nil {
		rects = []treemap.Rect{}
	}
	writeJSON(w, http.StatusOK, layoutResponse{Rects: rects})
}

// =============================================================================
// GET /v1/heatmap
// =============================================================================

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(func(o *pipeline.Options) error {
		return parseQuery(r.URL.Query(), o)
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	format := pipeline.FormatSVG
	if len(opts.Formats) > 0 {
		format = strings.ToLower(strings.TrimSpace(opts.Formats[0]))
	}
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// parseQuery applies heatmap query parameters to opts.
func parseQuery(q url.Values, opts *pipeline.Options) error {
	p := queryParser{values: q}

	if v := q.Get("universe"); v != "" {
		opts.Universe = v
	}
	if v := q.Get("symbols"); v != "" {
		opts.Symbols = errs.ParseSymbols(v)
	}
	if v := q.Get("sector"); v != "" {
		opts.Sector = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("locale"); v != "" {
		opts.Locale = v
	}
	if v := q.Get("format"); v != "" {
		opts.Formats = []string{v}
	} else {
		opts.Formats = []string{pipeline.FormatSVG}
	}

	p.int("top", &opts.Top)
	p.float("width", &opts.Width)
	p.float("height", &opts.Height)
	p.float("viewport", &opts.Viewport)
	p.float("split_fraction", &opts.SplitFraction)
	p.float("scale", &opts.Scale)
	p.floatPtr("padding", &opts.Padding)
	p.floatPtr("min_size", &opts.MinSize)
	p.bool("legend", &opts.Legend)
	p.bool("no_tooltips", &opts.NoTooltips)
	p.bool("refresh", &opts.Refresh)
	return p.err
}

// queryParser reads typed query parameters, keeping the first error.
type queryParser struct {
	values url.Values
	err    error
}

func (p *queryParser) raw(name string) (string, bool) {
	if p.err != nil || !p.values.Has(name) {
		return "", false
	}
	return p.values.Get(name), true
}

func (p *queryParser) int(name string, dst *int) {
	if v, ok := p.raw(name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.err = errBadRequest("%s must be an integer, got %q", name, v)
			return
		}
		*dst = n
	}
}

func (p *queryParser) float(name string, dst *float64) {
	if v, ok := p.raw(name); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.err = errBadRequest("%s must be a number, got %q", name, v)
			return
		}
		*dst = f
	}
}

func (p *queryParser) floatPtr(name string, dst **float64) {
	var f float64
	if _, ok := p.raw(name); !ok {
		return
	}
	p.float(name, &f)
	if p.err == nil {
		*dst = &f
	}
}

func (p *queryParser) bool(name string, dst *bool) {
	if v, ok := p.raw(name); ok {
		if v == "" {
			*dst = true
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.err = errBadRequest("%s must be a boolean, got %q", name, v)
			return
		}
		*dst = b
	}
}

// =============================================================================
// POST /v1/renders, GET /v1/renders/{id}.{format}
// =============================================================================

type renderResponse struct {
	ID      string            `json:"id"`
	Title   string            `json:"title,omitempty"`
	Tiles   int               `json:"tiles"`
	Formats []string          `json:"formats"`
	URLs    map[string]string `json:"urls"`
}

func (s *Server) handleCreateRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(func(o *pipeline.Options) error {
		return s.decodeJSON(w, r, o)
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	id := uuid.NewString()
	resp := renderResponse{
		ID:      id,
		Title:   result.Heatmap.Title,
		Tiles:   len(result.Heatmap.Tiles),
		Formats: slices.Sorted(maps.Keys(result.Artifacts)),
		URLs:    make(map[string]string, len(result.Artifacts)),
	}
	for _, format := range resp.Formats {
		key := s.keyer().RenderKey(id, format)
		if err := s.cache().Set(r.Context(), key, result.Artifacts[format], cache.TTLRender); err != nil {
			writeError(w, r, s.logger, errs.Wrap(errs.ErrCodeInternal, err, "store render"))
			return
		}
		resp.URLs[format] = "/v1/renders/" + id + "." + format
	}

	s.logger.Debug("stored render", "id", id, "formats", resp.Formats)
	w.Header().Set("Location", resp.URLs[resp.Formats[0]])
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	dot := strings.LastIndexByte(file, '.')
	if dot < 0 {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeRenderNotFound, "render not found: %s", file))
		return
	}
	id, format := file[:dot], strings.ToLower(file[dot+1:])
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeRenderNotFound, "render not found: %s", file))
		return
	}

	data, hit, err := s.cache().Get(r.Context(), s.keyer().RenderKey(id, format))
	if err != nil {
		writeError(w, r, s.logger, errs.Wrap(errs.ErrCodeInternal, err, "load render"))
		return
	}
	if !hit {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeRenderNotFound, "render not found: %s", file))
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Cache-Control", "public, max-age=604800, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Request decoding
// =============================================================================

// requestOptions builds pipeline options from the server defaults and a
// request. The default universe only applies when the request names no
// universe, symbols or stocks of its own.
func (s *Server) requestOptions(apply func(*pipeline.Options) error) (pipeline.Options, error) {
	opts := s.options()
	universe := opts.Universe
	opts.Universe = ""
	if err := apply(&opts); err != nil {
		return opts, err
	}
	if opts.Universe == "" && len(opts.Symbols) == 0 && opts.Stocks == nil {
		opts.Universe = universe
	}
	opts.Logger = s.logger
	return opts, nil
}

// decodeJSON decodes a single JSON value from the size-limited body,
// rejecting unknown fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return errBadRequest("request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errBadRequest("request body is empty")
		default:
			return errBadRequest("invalid JSON body: %v", err)
		}
	}
	if dec.More() {
		return errBadRequest("request body must contain a single JSON value")
	}
	return nil
}
