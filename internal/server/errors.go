package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/treemap"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

var statusByCode = map[errs.Code]int{
	errs.ErrCodeInvalidInput:    http.StatusBadRequest,
	errs.ErrCodeInvalidBox:      http.StatusBadRequest,
	errs.ErrCodeInvalidWeight:   http.StatusBadRequest,
	errs.ErrCodeInvalidSymbol:   http.StatusBadRequest,
	errs.ErrCodeInvalidUniverse: http.StatusBadRequest,
	errs.ErrCodeInvalidSector:   http.StatusBadRequest,
	errs.ErrCodeInvalidFormat:   http.StatusBadRequest,
	errs.ErrCodeNotFound:        http.StatusNotFound,
	errs.ErrCodeRenderNotFound:  http.StatusNotFound,
	errs.ErrCodeFileNotFound:    http.StatusNotFound,
	errs.ErrCodeNoData:          http.StatusUnprocessableEntity,
	errs.ErrCodeRateLimited:     http.StatusTooManyRequests,
	errs.ErrCodeNetwork:         http.StatusBadGateway,
	errs.ErrCodeUnauthorized:    http.StatusBadGateway,
	errs.ErrCodeTimeout:         http.StatusGatewayTimeout,
	errs.ErrCodeUnsupported:     http.StatusNotImplemented,
	errs.ErrCodeInvalidConfig:   http.StatusInternalServerError,
	errs.ErrCodeInternal:        http.StatusInternalServerError,
}

// statusFor maps an error to its HTTP status. Upstream authorization
// failures are the server's problem, not the caller's, hence 502.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if status, ok := statusByCode[errs.GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status := statusFor(err)
	body := errorBody{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if body.Code == "" {
		body.Code = errs.ErrCodeInternal
	}
	if after, ok := errs.RetryAfter(err); ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(after.Seconds()))))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		body.Code = errs.ErrCodeTimeout
		body.Message = "request timed out"
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
		if body.Code == errs.ErrCodeInternal || body.Code == errs.ErrCodeInvalidConfig {
			body.Message = "internal error"
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// layoutError attaches a code to errors from [treemap.Layout].
func layoutError(err error) error {
	switch {
	case errors.Is(err, treemap.ErrInvalidBox):
		return errs.Wrap(errs.ErrCodeInvalidBox, err, "invalid box")
	case errors.Is(err, treemap.ErrInvalidWeight):
		return errs.Wrap(errs.ErrCodeInvalidWeight, err, "invalid weight")
	case errors.Is(err, treemap.ErrInvalidOption):
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid layout option")
	default:
		return err
	}
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func errBadRequest(format string, args ...any) error {
	return errs.New(errs.ErrCodeInvalidInput, format, args...)
}
