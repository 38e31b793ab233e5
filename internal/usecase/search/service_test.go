package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/search/mode"
	"github.com/kailas-cloud/wikibot/internal/domain/search/request"
)

// --- Mocks ---

type mockIndex struct {
	docs    []document.Document
	err     error
	called  bool
	lastReq request.Request
}

func (m *mockIndex) Search(_ context.Context, req request.Request) ([]document.Document, error) {
	m.called = true
	m.lastReq = req
	return m.docs, m.err
}

// --- Tests ---

func TestSearch_PassesQueryThrough(t *testing.T) {
	idx := &mockIndex{docs: []document.Document{
		document.New("b", "", "", 2, nil, nil),
		document.New("a", "", "", 1, nil, nil),
	}}
	svc := New(idx, Options{Highlight: true}, zap.NewNop())

	docs, err := svc.Search(context.Background(), "  출산 ", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.lastReq.Query() != "  출산 " {
		t.Errorf("query = %q, want untouched", idx.lastReq.Query())
	}
	if !idx.lastReq.Highlight() {
		t.Error("expected highlight on")
	}
	if idx.lastReq.Mode() != mode.Simple {
		t.Errorf("mode = %q", idx.lastReq.Mode())
	}
	if len(docs) != 2 || docs[0].Name() != "b" {
		t.Error("result order must match the index order")
	}
}

func TestSearch_EmptyQueryAllowed(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx, Options{}, zap.NewNop())

	if _, err := svc.Search(context.Background(), "", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !idx.called {
		t.Error("empty query must still reach the index")
	}
}

func TestSearch_TopClamped(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 3}, {-1, 3}, {1, 1}, {8, 8}, {50, 8},
	}
	for _, tc := range tests {
		idx := &mockIndex{}
		svc := New(idx, Options{}, zap.NewNop())
		if _, err := svc.Search(context.Background(), "q", tc.in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if idx.lastReq.Top() != tc.want {
			t.Errorf("top %d -> %d, want %d", tc.in, idx.lastReq.Top(), tc.want)
		}
	}
}

func TestSearch_Semantic(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx, Options{Semantic: true, SemanticConfiguration: "hr"}, zap.NewNop())

	if _, err := svc.Search(context.Background(), "q", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.lastReq.Mode() != mode.Semantic || idx.lastReq.SemanticConfiguration() != "hr" {
		t.Errorf("req = %v / %q", idx.lastReq.Mode(), idx.lastReq.SemanticConfiguration())
	}
}

func TestSearch_QueryTooLong(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx, Options{}, zap.NewNop())

	_, err := svc.Search(context.Background(), strings.Repeat("x", request.MaxQueryLength+1), 3)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if idx.called {
		t.Error("index must not be called for a rejected query")
	}
}

func TestSearch_IndexError(t *testing.T) {
	idx := &mockIndex{err: domain.ErrSearchService}
	svc := New(idx, Options{}, zap.NewNop())

	_, err := svc.Search(context.Background(), "q", 3)
	if !errors.Is(err, domain.ErrSearchService) {
		t.Fatalf("expected ErrSearchService, got %v", err)
	}
}
