package domain

import "context"

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat roles used by the answer stage.
const (
	RoleSystem ChatRole = "system"
	RoleUser   ChatRole = "user"
)

// ChatMessage is one message of a chat exchange.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ChatCompleter is the chat-completion contract between layers.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (Completion, error)
}

// Completion carries the first choice and token usage through the decorator chain.
type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
