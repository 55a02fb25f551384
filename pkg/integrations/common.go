package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/httputil"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the upstream resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for 401 and 403 responses, usually a
	// missing or invalid API key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is returned for 429 responses once retries are exhausted.
	ErrRateLimited = errors.New("rate limited")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Classify converts the sentinel errors of this package into coded
// pkg/errors values. Rate limits become an [errs.RateLimitedError] that
// keeps the upstream's Retry-After. Errors that are already coded, or
// unknown, are returned unchanged.
func Classify(err error, format string, args ...any) error {
	if err == nil || errs.GetCode(err) != "" {
		return err
	}
	var code errs.Code
	switch {
	case errors.Is(err, ErrUnauthorized):
		code = errs.ErrCodeUnauthorized
	case errors.Is(err, ErrRateLimited):
		rl := &errs.RateLimitedError{Cause: err}
		var re *httputil.RetryableError
		if errors.As(err, &re) {
			rl.RetryAfter = re.After
		}
		return rl
	case errors.Is(err, ErrNotFound):
		code = errs.ErrCodeNotFound
	case errors.Is(err, ErrNetwork):
		code = errs.ErrCodeNetwork
	default:
		return err
	}
	return errs.Wrap(code, err, format, args...)
}

// RedactURL returns raw with the values of the named query parameters
// replaced by "REDACTED", for logs and cache keys. Unparsable input is
// returned unchanged.
func RedactURL(raw string, params ...string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	changed := false
	for _, p := range params {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}
