package search

import (
	"context"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/search/request"
)

// Index defines the search index contract.
type Index interface {
	Search(ctx context.Context, req request.Request) ([]document.Document, error)
}
