package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Providers map their SDK errors onto the types below so callers and the
// retry decorator can treat every backend the same way.

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider did not say how long to wait.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("model rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("model rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply with no usable JSON value, or one that
// fails its schema. Schema names the schema when one was involved.
type ErrInvalidResponse struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("invalid %s response: %v", e.Schema, e.Err)
	}
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures and 5xx replies.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "model provider unavailable"
	}
	return fmt.Sprintf("model provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a structured reply cut off at MaxTokens. Content
// holds the partial text.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("model response truncated at max tokens (%d bytes received)", len(e.Content))
}
