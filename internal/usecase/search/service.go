package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/search/mode"
	"github.com/kailas-cloud/wikibot/internal/domain/search/request"
	"github.com/kailas-cloud/wikibot/internal/logger"
)

// Options shape every request sent by the service.
type Options struct {
	Highlight             bool
	Semantic              bool
	SemanticConfiguration string
}

// Service dispatches user questions to the search index.
type Service struct {
	index  Index
	opts   Options
	logger *zap.Logger
}

// New creates a search service.
func New(index Index, opts Options, logger *zap.Logger) *Service {
	return &Service{index: index, opts: opts, logger: logger}
}

// Highlight reports whether requests ask the index for highlight fragments.
func (s *Service) Highlight() bool { return s.opts.Highlight }

// Search runs one query and returns up to top documents in service order.
// The query text is forwarded untouched.
func (s *Service) Search(ctx context.Context, query string, top int) ([]document.Document, error) {
	m := mode.Simple
	if s.opts.Semantic {
		m = mode.Semantic
	}

	req, err := request.New(query, top, m, s.opts.SemanticConfiguration, s.opts.Highlight)
	if err != nil {
		return nil, err
	}

	docs, err := s.index.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	logger.FromContext(ctx, s.logger).Info("search",
		zap.Int("top", req.Top()),
		zap.String("mode", string(req.Mode())),
		zap.Int("hits", len(docs)),
	)
	return docs, nil
}
