package domain

import "context"

type chatUsageKey struct{}

// ChatUsage collects chat token usage for a single user action.
// The handler puts a mutable pointer into the context before calling the service;
// the answer service writes after the completion; the handler reads it for the response.
type ChatUsage struct {
	PromptTokens     int  `json:"prompt_tokens"`
	CompletionTokens int  `json:"completion_tokens"`
	TotalTokens      int  `json:"total_tokens"`
	Called           bool `json:"-"` // true if the chat endpoint was invoked
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *ChatUsage) {
	u := &ChatUsage{}
	return context.WithValue(ctx, chatUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *ChatUsage {
	u, _ := ctx.Value(chatUsageKey{}).(*ChatUsage)
	return u
}

// Add records consumed tokens.
func (u *ChatUsage) Add(prompt, completion, total int) {
	if u != nil {
		u.PromptTokens += prompt
		u.CompletionTokens += completion
		u.TotalTokens += total
		u.Called = true
	}
}
