package common

import "errors"

// Error taxonomy for the deduplication run. Callers classify with
// errors.Is after unwrapping.
var (
	// ErrProviderUnavailable means the embedding/classification backend is
	// unreachable. Fatal for the whole run, no partial result.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrEncoding means a scenario's text could not be embedded (empty or
	// malformed input). The scenario is skipped and logged, never merged.
	ErrEncoding = errors.New("encoding error")

	// ErrResponseValidation means an LLM structured response failed the
	// partition check for its chunk.
	ErrResponseValidation = errors.New("response validation failed")

	// ErrRateLimited means the backend returned a rate-limit rejection.
	// Retried with backoff, then the affected chunk fails open.
	ErrRateLimited = errors.New("rate limit exceeded")
)
