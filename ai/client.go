package ai

import (
	"context"
	"errors"
)

// Error taxonomy for the remote reasoning boundary. Callers recover from all
// of these with a degraded response; none of them should abort a request.
var (
	ErrRateLimited = errors.New("ai: rate limited")
	ErrUnavailable = errors.New("ai: unavailable")
	ErrMalformed   = errors.New("ai: malformed response")
)

// Attachment is a binary part sent alongside the prompt, e.g. an uploaded
// PDF statement forwarded to the model as inline data.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Request describes a single completion call.
type Request struct {
	System      string
	Prompt      string
	Attachments []Attachment
	Temperature float32
}

// Completer is the boundary to an external language model: prompt in,
// free-text completion out. Implementations own timeout handling and must
// map provider failures onto the error taxonomy above.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
