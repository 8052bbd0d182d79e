// Package llm defines the Provider interface for the language-model
// backends used by the LLM-assisted transcript correction stage.
//
// A provider wraps a remote or local chat-completion API (OpenAI, or any
// backend reachable through any-llm-go) behind a uniform, SDK-agnostic
// interface. Correction requests are single-shot: one system prompt, one
// user message, one JSON answer — so the interface deliberately omits
// streaming and tool calling.
//
// Implementations must be safe for concurrent use and must propagate
// context cancellation promptly.
package llm

import "context"

// CompletionRequest carries everything the model needs to produce a
// response. Messages must be non-empty.
type CompletionRequest struct {
	// SystemPrompt is a high-priority instruction injected before the
	// conversation. Providers that lack a dedicated system slot prepend
	// it as a system-role message.
	SystemPrompt string

	// Messages is the ordered conversation. For correction requests this
	// is a single user message.
	Messages []Message

	// Temperature controls output randomness in [0.0, 2.0]. Zero means
	// use the provider default.
	Temperature float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int
}

// CompletionResponse is the model's reply.
type CompletionResponse struct {
	// Content is the full text of the reply.
	Content string

	// Usage contains token accounting for this request/response pair.
	Usage Usage
}

// Provider is the abstraction over any chat-completion backend.
type Provider interface {
	// Complete sends req to the model and waits for the full response.
	// Returns an error if the request fails or ctx is cancelled first.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Capabilities returns static metadata about the underlying model,
	// assumed constant for the lifetime of the Provider.
	Capabilities() Capabilities
}
