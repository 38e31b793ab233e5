// Package qa runs one user action end to end: search, context assembly and answer generation.
package qa

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/reference"
	"github.com/kailas-cloud/wikibot/internal/usecase/answer"
)

// NoResultsNotice is reported when the index returns zero hits.
const NoResultsNotice = "No search results. Try rephrasing the question or check the index."

// Retrieval is the presentation-ready outcome of a search.
type Retrieval struct {
	Documents  []document.Document
	References []reference.Reference
	Details    []reference.Detail
	// Notice is informational, set when nothing matched.
	Notice string
}

// Result is the outcome of one question.
type Result struct {
	Retrieval
	Answer answer.Answer
}

// Service is the question pipeline shared by the HTTP API, the CLI and the TUI.
// A Service built by Disabled refuses every action with a configuration error.
type Service struct {
	search  Searcher
	answer  Answerer
	missing []string
}

// New creates a configured pipeline.
func New(search Searcher, answer Answerer) *Service {
	return &Service{search: search, answer: answer}
}

// Disabled creates a pipeline that reports the missing settings on every call.
func Disabled(missing []string) *Service {
	return &Service{missing: missing}
}

// Ready returns nil when the pipeline can run, or the configuration error.
func (s *Service) Ready() error {
	if len(s.missing) > 0 || s.search == nil || s.answer == nil {
		return domain.NewConfigurationError(s.missing)
	}
	return nil
}

// Retrieve runs the search step only.
func (s *Service) Retrieve(ctx context.Context, query string, top int) (Retrieval, error) {
	if err := s.Ready(); err != nil {
		return Retrieval{}, err
	}

	docs, err := s.search.Search(ctx, query, top)
	if err != nil {
		return Retrieval{}, fmt.Errorf("retrieve: %w", err)
	}

	r := Retrieval{
		Documents:  docs,
		References: reference.References(docs),
		Details:    reference.Details(docs, s.search.Highlight()),
	}
	if len(docs) == 0 {
		r.Notice = NoResultsNotice
	}
	return r, nil
}

// Run searches, then answers. Zero hits is not an error: the answer stage
// still runs and yields the fallback message.
func (s *Service) Run(ctx context.Context, query string, top int) (Result, error) {
	r, err := s.Retrieve(ctx, query, top)
	if err != nil {
		return Result{}, err
	}

	ans, err := s.answer.Ask(ctx, query, r.Documents)
	if err != nil {
		return Result{Retrieval: r}, fmt.Errorf("answer: %w", err)
	}
	return Result{Retrieval: r, Answer: ans}, nil
}
