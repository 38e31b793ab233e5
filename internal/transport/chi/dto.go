package chi

import (
	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/reference"
	healthuc "github.com/kailas-cloud/wikibot/internal/usecase/health"
	qauc "github.com/kailas-cloud/wikibot/internal/usecase/qa"
)

// ErrorResponseCode is the machine-readable error code of an API error.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeNotConfigured      ErrorResponseCode = "not_configured"
	ErrorResponseCodeSearchServiceError ErrorResponseCode = "search_service_error"
	ErrorResponseCodeChatServiceError   ErrorResponseCode = "chat_service_error"
	ErrorResponseCodeRateLimited        ErrorResponseCode = "rate_limited"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Missing []string          `json:"missing,omitempty"`
}

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Query string `json:"query"`
	Top   *int   `json:"top,omitempty"`
}

// DocumentItem is one search hit.
type DocumentItem struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Path         string  `json:"path"`
	LastModified string  `json:"last_modified,omitempty"`
	Score        float64 `json:"score"`
}

// UsageResponse reports chat tokens consumed by the request.
type UsageResponse struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Notice     string                `json:"notice,omitempty"`
	Total      int                   `json:"total"`
	Documents  []DocumentItem        `json:"documents"`
	References []reference.Reference `json:"references"`
	Details    []reference.Detail    `json:"details"`
}

// AskResponse is the body of POST /api/v1/ask.
type AskResponse struct {
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html,omitempty"`
	Fallback   bool   `json:"fallback"`
	SearchResponse
	Usage *UsageResponse `json:"usage,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Missing []string                        `json:"missing,omitempty"`
}

func documentsToDTO(docs []document.Document) []DocumentItem {
	items := make([]DocumentItem, len(docs))
	for i := range docs {
		d := &docs[i]
		items[i] = DocumentItem{
			Index:        i + 1,
			Name:         d.DisplayName(i + 1),
			Path:         reference.DecodeStoragePath(d.Path()),
			LastModified: d.LastModified(),
			Score:        d.Score(),
		}
	}
	return items
}

func retrievalToDTO(r *qauc.Retrieval) SearchResponse {
	refs := r.References
	if refs == nil {
		refs = []reference.Reference{}
	}
	details := r.Details
	if details == nil {
		details = []reference.Detail{}
	}
	return SearchResponse{
		Notice:     r.Notice,
		Total:      len(r.Documents),
		Documents:  documentsToDTO(r.Documents),
		References: refs,
		Details:    details,
	}
}

func usageToDTO(u *domain.ChatUsage) *UsageResponse {
	if u == nil || !u.Called {
		return nil
	}
	return &UsageResponse{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
