// Package httputil holds the retry policy shared by upstream API clients.
//
// Wrap transient failures (connection errors, 5xx, 429) in [RetryableError]
// and run the request through [Retry] or [RetryWithBackoff]. Any other error
// stops the loop immediately. A RetryableError may carry an After hint, taken
// from a Retry-After header with [ParseRetryAfter], which replaces the
// backoff delay for that attempt.
//
// Defaults: 3 attempts, 1 second initial delay, doubling after each failure.
package httputil
