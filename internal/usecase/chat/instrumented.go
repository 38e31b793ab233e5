package chat

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/logger"
)

// InstrumentedChat wraps a ChatCompleter with logging and per-action usage accounting.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type InstrumentedChat struct {
	inner    domain.ChatCompleter
	provider string
	model    string
	logger   *zap.Logger
}

// NewInstrumentedChat wraps a chat provider with observability.
func NewInstrumentedChat(inner domain.ChatCompleter, provider, model string, logger *zap.Logger) *InstrumentedChat {
	return &InstrumentedChat{
		inner:    inner,
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Complete delegates to the inner provider and records usage into the context collector.
func (p *InstrumentedChat) Complete(ctx context.Context, messages []domain.ChatMessage) (domain.Completion, error) {
	log := logger.FromContext(ctx, p.logger)
	start := time.Now()

	result, err := p.inner.Complete(ctx, messages)

	duration := time.Since(start)

	if err != nil {
		log.Error("Chat request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.Completion{}, fmt.Errorf("chat complete: %w", err)
	}

	domain.UsageFromContext(ctx).Add(result.PromptTokens, result.CompletionTokens, result.TotalTokens)

	log.Debug("Chat request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("messages", len(messages)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}
