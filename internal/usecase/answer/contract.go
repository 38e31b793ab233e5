package answer

import (
	"context"

	"github.com/kailas-cloud/wikibot/internal/domain"
)

// Chat generates a completion for a fixed message exchange.
type Chat interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (domain.Completion, error)
}
