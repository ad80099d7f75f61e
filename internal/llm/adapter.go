package llm

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// defaultMaxTokens caps replies when a request leaves MaxTokens unset.
const defaultMaxTokens = 4096

// Normalized stop reasons.
const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// reply is what every adapter pulls out of its SDK's response type.
type reply struct {
	text      string
	truncated bool
	model     string
	usage     Usage
}

// finish applies the shared post-processing to a reply: a truncated
// structured reply is an error, otherwise the JSON value is extracted
// and validated against the request schema.
func finish(req Request, r reply) (*Response, error) {
	if r.truncated && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(r.text)}
	}
	content, err := structuredContent(req.Schema, r.text)
	if err != nil {
		return nil, err
	}
	stop := stopEnd
	if r.truncated {
		stop = stopMaxTokens
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: stop}, nil
}

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

// fromStatus maps an SDK error carrying an HTTP status onto the package
// error types. Anything that is not a 429 is treated as unavailable.
func fromStatus(status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// modelAlias resolves a short alias such as "claude-haiku" to a full
// model id. Unknown names are used as given.
func modelAlias(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
