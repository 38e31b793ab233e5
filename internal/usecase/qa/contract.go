package qa

import (
	"context"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/usecase/answer"
)

// Searcher retrieves documents for a question.
type Searcher interface {
	Search(ctx context.Context, query string, top int) ([]document.Document, error)
	Highlight() bool
}

// Answerer produces an answer from retrieved documents.
type Answerer interface {
	Ask(ctx context.Context, query string, docs []document.Document) (answer.Answer, error)
}
