package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed question length in characters.
	MaxQueryLength = 4096
	MinTop         = 1
	MaxTop         = 8
	DefaultTop     = 3
)

// Request is a validated search query.
type Request struct {
	query      string
	top        int
	searchMode mode.Mode
	semConfig  string
	highlight  bool
}

// New validates and normalizes search parameters.
// An empty or blank query is passed through; the search service decides what it matches.
// top is clamped to [MinTop, MaxTop]; zero or negative means DefaultTop.
func New(query string, top int, m mode.Mode, semanticConfiguration string, highlight bool) (Request, error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidQuery)
	}
	if m == "" {
		m = mode.Simple
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode %q: %w", m, domain.ErrInvalidQuery)
	}
	if m == mode.Semantic && semanticConfiguration == "" {
		return Request{}, fmt.Errorf("semantic mode requires a configuration name: %w", domain.ErrInvalidQuery)
	}
	if m != mode.Semantic {
		semanticConfiguration = ""
	}

	return Request{
		query:      query,
		top:        ClampTop(top),
		searchMode: m,
		semConfig:  semanticConfiguration,
		highlight:  highlight,
	}, nil
}

// ClampTop bounds a result count to [MinTop, MaxTop], mapping non-positive values to DefaultTop.
func ClampTop(top int) int {
	switch {
	case top <= 0:
		return DefaultTop
	case top > MaxTop:
		return MaxTop
	default:
		return top
	}
}

// Query returns the raw question text.
func (r *Request) Query() string { return r.query }

// Top returns the result cap.
func (r *Request) Top() int { return r.top }

// Mode returns the query type.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// SemanticConfiguration returns the semantic configuration name (empty unless Mode is Semantic).
func (r *Request) SemanticConfiguration() string { return r.semConfig }

// Highlight reports whether inline highlight fragments are requested.
func (r *Request) Highlight() bool { return r.highlight }
