package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/usecase/answer"
	healthuc "github.com/kailas-cloud/wikibot/internal/usecase/health"
	qauc "github.com/kailas-cloud/wikibot/internal/usecase/qa"
)

// --- Mocks ---

type mockSearcher struct {
	docs    []document.Document
	err     error
	lastQ   string
	lastTop int
	calls   int
}

func (m *mockSearcher) Search(_ context.Context, q string, top int) ([]document.Document, error) {
	m.calls++
	m.lastQ = q
	m.lastTop = top
	return m.docs, m.err
}

func (m *mockSearcher) Highlight() bool { return false }

type mockAnswerer struct {
	ans answer.Answer
	err error
}

func (m *mockAnswerer) Ask(ctx context.Context, _ string, _ []document.Document) (answer.Answer, error) {
	if m.err != nil {
		return answer.Answer{}, m.err
	}
	if !m.ans.Fallback {
		domain.UsageFromContext(ctx).Add(100, 20, 120)
	}
	return m.ans, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error        { return m.err }
func (m *mockPinger) HealthCheck(context.Context) error { return m.err }

func sampleDocs() []document.Document {
	return []document.Document{
		document.New("leave.pdf", "aHR0cHM6Ly94L2xlYXZlLnBkZg==", "2025-01-01", 2.5,
			map[string]string{"content": "Annual leave is 15 days."}, nil),
		document.New("", "", "", 1.0, map[string]string{"text": "Unnamed"}, nil),
	}
}

func newTestRouter(qa *qauc.Service, health *healthuc.Service) http.Handler {
	srv := NewServer(qa, health, 3, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func configuredRouter(s *mockSearcher, a *mockAnswerer) http.Handler {
	return newTestRouter(qauc.New(s, a), healthuc.New(&mockPinger{}, &mockPinger{}, nil))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

// --- Tests ---

func TestAsk_Success(t *testing.T) {
	s := &mockSearcher{docs: sampleDocs()}
	a := &mockAnswerer{ans: answer.Answer{Text: "**15 days** [1]"}}
	h := configuredRouter(s, a)

	rr := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]any{"query": "leave?", "top": 5})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Chat-Tokens") != "120" {
		t.Errorf("X-Chat-Tokens = %q", rr.Header().Get("X-Chat-Tokens"))
	}

	var resp AskResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "**15 days** [1]" {
		t.Errorf("answer = %q", resp.Answer)
	}
	if !strings.Contains(resp.AnswerHTML, "<strong>15 days</strong>") {
		t.Errorf("answer_html = %q", resp.AnswerHTML)
	}
	if s.lastTop != 5 || s.lastQ != "leave?" {
		t.Errorf("search called with %q/%d", s.lastQ, s.lastTop)
	}
	if resp.Total != 2 || len(resp.Documents) != 2 {
		t.Fatalf("documents = %+v", resp.Documents)
	}
	if resp.Documents[0].Path != "https://x/leave.pdf" {
		t.Errorf("path = %q, want decoded", resp.Documents[0].Path)
	}
	if resp.Documents[1].Name != "doc-2" {
		t.Errorf("placeholder name = %q", resp.Documents[1].Name)
	}
	if len(resp.References) != 2 || len(resp.Details) != 2 {
		t.Errorf("refs=%d details=%d", len(resp.References), len(resp.Details))
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 120 {
		t.Errorf("usage = %+v", resp.Usage)
	}
}

func TestAsk_DefaultTop(t *testing.T) {
	s := &mockSearcher{}
	h := configuredRouter(s, &mockAnswerer{ans: answer.Answer{Text: answer.FallbackMessage, Fallback: true}})

	rr := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]any{"query": "q"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if s.lastTop != 3 {
		t.Errorf("top = %d, want default 3", s.lastTop)
	}

	var resp AskResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if !resp.Fallback || resp.Notice != qauc.NoResultsNotice {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Usage != nil {
		t.Error("usage must be omitted when the model was not called")
	}
	if resp.Documents == nil || resp.References == nil {
		t.Error("empty lists must encode as [] not null")
	}
}

func TestAsk_InvalidBody(t *testing.T) {
	h := configuredRouter(&mockSearcher{}, &mockAnswerer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != ErrorResponseCodeBadRequest {
		t.Errorf("code = %q", e.Code)
	}
}

func TestAsk_TopOutOfRange(t *testing.T) {
	s := &mockSearcher{}
	h := configuredRouter(s, &mockAnswerer{})

	for _, top := range []int{0, 9} {
		rr := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]any{"query": "q", "top": top})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("top=%d: expected 400, got %d", top, rr.Code)
		}
	}
	if s.calls != 0 {
		t.Error("search must not run for invalid input")
	}
}

func TestAsk_QueryTooLong(t *testing.T) {
	s := &mockSearcher{err: domain.ErrInvalidQuery}
	h := configuredRouter(s, &mockAnswerer{})

	rr := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]any{"query": "q"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != ErrorResponseCodeValidationFailed {
		t.Errorf("code = %q", e.Code)
	}
}

func TestAsk_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		search   error
		chat     error
		status   int
		code     ErrorResponseCode
		contains string
	}{
		{"search", domain.ErrSearchService, nil, http.StatusBadGateway, ErrorResponseCodeSearchServiceError, "search service error"},
		{"chat", nil, domain.ErrChatService, http.StatusBadGateway, ErrorResponseCodeChatServiceError, "chat service error"},
		{"rate limited", nil, domain.ErrRateLimited, http.StatusTooManyRequests, ErrorResponseCodeRateLimited, "rate limited"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := configuredRouter(&mockSearcher{docs: sampleDocs(), err: tc.search}, &mockAnswerer{err: tc.chat})
			rr := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]any{"query": "q"})
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			e := decodeError(t, rr)
			if e.Code != tc.code {
				t.Errorf("code = %q, want %q", e.Code, tc.code)
			}
			if !strings.Contains(e.Message, tc.contains) {
				t.Errorf("message = %q, want it to contain %q", e.Message, tc.contains)
			}
		})
	}
}

func TestAsk_NotConfigured(t *testing.T) {
	missing := []string{"SEARCH_ENDPOINT", "AOAI_KEY"}
	h := newTestRouter(qauc.Disabled(missing), healthuc.New(nil, nil, missing))

	rr := doJSON(t, h, http.MethodPost, "/api/v1/ask", map[string]any{"query": "q"})
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	e := decodeError(t, rr)
	if e.Code != ErrorResponseCodeNotConfigured {
		t.Errorf("code = %q", e.Code)
	}
	if len(e.Missing) != 2 || e.Missing[0] != "SEARCH_ENDPOINT" {
		t.Errorf("missing = %v", e.Missing)
	}
}

func TestSearch_QueryParams(t *testing.T) {
	s := &mockSearcher{docs: sampleDocs()}
	h := configuredRouter(s, &mockAnswerer{})

	rr := doJSON(t, h, http.MethodGet, "/api/v1/search?q=%EC%B6%9C%EC%82%B0+%ED%9C%B4%EA%B0%80&top=2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if s.lastQ != "출산 휴가" || s.lastTop != 2 {
		t.Errorf("search called with %q/%d", s.lastQ, s.lastTop)
	}

	var resp SearchResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Total != 2 || resp.References[0].Path != "https://x/leave.pdf" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSearch_DefaultsAndErrors(t *testing.T) {
	s := &mockSearcher{}
	h := configuredRouter(s, &mockAnswerer{})

	rr := doJSON(t, h, http.MethodGet, "/api/v1/search", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if s.lastQ != "" || s.lastTop != 3 {
		t.Errorf("search called with %q/%d", s.lastQ, s.lastTop)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/v1/search?q=x&top=abc", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("top=abc: expected 400, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/v1/search?q=x&top=12", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("top=12: expected 400, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := configuredRouter(&mockSearcher{}, &mockAnswerer{})
	rr := doJSON(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp HealthResponse
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Status != healthuc.Healthy || resp.Checks["search"] != healthuc.CheckOK {
		t.Errorf("resp = %+v", resp)
	}

	missing := []string{"INDEX_NAME"}
	h = newTestRouter(qauc.Disabled(missing), healthuc.New(nil, nil, missing))
	rr = doJSON(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	resp = HealthResponse{}
	_ = json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Status != healthuc.Unhealthy || len(resp.Missing) != 1 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestMetrics(t *testing.T) {
	h := configuredRouter(&mockSearcher{}, &mockAnswerer{})
	rr := doJSON(t, h, http.MethodGet, "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("expected non-empty metrics response")
	}
}

func TestDomainMessage_HidesUnknownErrors(t *testing.T) {
	if got := domainMessage(context.Canceled); got != "internal error" {
		t.Errorf("domainMessage = %q", got)
	}
}
