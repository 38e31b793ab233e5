package answer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/excerpt"
	"github.com/kailas-cloud/wikibot/internal/logger"
	"github.com/kailas-cloud/wikibot/internal/metrics"
)

// Answer is the outcome of one question.
type Answer struct {
	Text string
	// Fallback is true when no excerpt fit the context and the model was not called.
	Fallback bool
	// ContextChars is the number of snippet characters sent to the model.
	ContextChars int
	Blocks       int
}

// Service turns retrieved documents plus a question into a grounded answer.
type Service struct {
	chat     Chat
	budget   int
	language string
	logger   *zap.Logger
}

// New creates an answer service. budget is the context size in characters.
func New(chat Chat, budget int, language string, logger *zap.Logger) *Service {
	return &Service{chat: chat, budget: budget, language: language, logger: logger}
}

// Ask builds the excerpt context and asks the model. An empty context yields
// FallbackMessage without a model call. Chat failures are returned unchanged in kind.
func (s *Service) Ask(ctx context.Context, query string, docs []document.Document) (Answer, error) {
	built := excerpt.Assemble(docs, s.budget)
	metrics.ContextChars.Observe(float64(built.Chars))

	log := logger.FromContext(ctx, s.logger)

	if built.Empty() {
		metrics.FallbackAnswersTotal.Inc()
		log.Info("empty context, skipping chat", zap.Int("documents", len(docs)))
		return Answer{Text: FallbackMessage, Fallback: true}, nil
	}

	res, err := s.chat.Complete(ctx, Messages(s.language, built.String(), query))
	if err != nil {
		return Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	log.Info("answer generated",
		zap.Int("blocks", len(built.Blocks)),
		zap.Int("context_chars", built.Chars),
		zap.Int("total_tokens", res.TotalTokens),
	)

	return Answer{
		Text:         res.Content,
		ContextChars: built.Chars,
		Blocks:       len(built.Blocks),
	}, nil
}
