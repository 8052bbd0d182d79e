package llm

// Message roles understood by all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a chat-completion conversation.
type Message struct {
	// Role is one of the Role* constants.
	Role string

	// Content is the message text.
	Content string
}

// Usage holds token accounting returned by the backend. Counts are in the
// model's native token unit and may differ between providers for the same
// text.
type Usage struct {
	// PromptTokens is the number of tokens consumed by the input.
	PromptTokens int

	// CompletionTokens is the number of tokens generated in the response.
	CompletionTokens int

	// TotalTokens is PromptTokens + CompletionTokens.
	TotalTokens int
}

// Capabilities describes static properties of a provider's model.
type Capabilities struct {
	// ContextWindow is the model's maximum context size in tokens.
	ContextWindow int

	// MaxOutputTokens is the largest completion the model can produce.
	MaxOutputTokens int

	// SupportsJSONOutput reports whether the model reliably follows
	// JSON-only response instructions.
	SupportsJSONOutput bool
}
