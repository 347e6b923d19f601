package output

import (
	"context"
	"errors"

	"pdf-agent/internal/domain/entity"
)

// ErrMissingCredential means the selected provider has no API key; the
// call must fail fast rather than silently fall back.
var ErrMissingCredential = errors.New("llm: missing credential")

// ErrMalformedReply wraps provider responses that cannot be normalized
// (no choices, unparsable payloads).
var ErrMalformedReply = errors.New("llm: malformed provider reply")

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	// System travels outside the transcript; each adapter maps it to its
	// provider's system channel.
	System      string
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	Temperature float32
}

type ChatResponse struct {
	Message entity.Message
	// StopReason is the provider's free-form finish indicator. The loop
	// only distinguishes "tool calls present" from "final answer".
	StopReason string
}
