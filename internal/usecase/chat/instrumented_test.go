package chat

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain"
)

type mockChat struct {
	result domain.Completion
	err    error
	calls  int
}

func (m *mockChat) Complete(_ context.Context, _ []domain.ChatMessage) (domain.Completion, error) {
	m.calls++
	return m.result, m.err
}

func TestInstrumentedChat_Success(t *testing.T) {
	inner := &mockChat{result: domain.Completion{Content: "hi", PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}}
	p := NewInstrumentedChat(inner, "azure", "gpt-4o-mini", zap.NewNop())

	ctx, usage := domain.NewContextWithUsage(context.Background())
	res, err := p.Complete(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Content != "hi" {
		t.Errorf("Content = %q", res.Content)
	}
	if !usage.Called || usage.TotalTokens != 15 || usage.PromptTokens != 10 || usage.CompletionTokens != 5 {
		t.Errorf("usage = %+v", usage)
	}
}

func TestInstrumentedChat_NoCollector(t *testing.T) {
	inner := &mockChat{result: domain.Completion{Content: "hi", TotalTokens: 3}}
	p := NewInstrumentedChat(inner, "azure", "m", zap.NewNop())

	if _, err := p.Complete(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInstrumentedChat_Error(t *testing.T) {
	inner := &mockChat{err: domain.ErrChatService}
	p := NewInstrumentedChat(inner, "azure", "m", zap.NewNop())

	ctx, usage := domain.NewContextWithUsage(context.Background())
	_, err := p.Complete(ctx, nil)
	if !errors.Is(err, domain.ErrChatService) {
		t.Fatalf("expected ErrChatService, got %v", err)
	}
	if usage.Called {
		t.Error("usage must not be recorded on failure")
	}
}
