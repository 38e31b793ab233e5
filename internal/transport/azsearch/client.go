// Package azsearch is a minimal REST client for the Azure AI Search documents API.
package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/search/mode"
	"github.com/kailas-cloud/wikibot/internal/domain/search/request"
	"github.com/kailas-cloud/wikibot/internal/logger"
	"github.com/kailas-cloud/wikibot/internal/metrics"
)

// Highlight markers wrapped around matched terms.
const (
	HighlightPreTag  = "<mark>"
	HighlightPostTag = "</mark>"
)

const maxErrorBody = 4 << 10

// Client queries one index. Safe for concurrent use; holds no per-query state.
type Client struct {
	endpoint   string
	apiKey     string
	index      string
	apiVersion string
	http       *http.Client
	logger     *zap.Logger
}

// Config holds the search service connection settings.
type Config struct {
	Endpoint   string
	APIKey     string
	Index      string
	APIVersion string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a search client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		index:      cfg.Index,
		apiVersion: cfg.APIVersion,
		http:       hc,
		logger:     log,
	}
}

// Search sends a single full-text query and returns the hits in service order.
// Any failure is wrapped with domain.ErrSearchService; there are no retries.
func (c *Client) Search(ctx context.Context, req request.Request) ([]document.Document, error) {
	body := buildRequest(&req)
	searchMode := string(req.Mode())

	start := time.Now()
	var resp searchResponse
	err := c.postJSON(ctx, c.indexURL("/docs/search"), body, &resp)
	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(c.index, searchMode, "error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(c.index, searchMode, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(c.index, searchMode).Observe(duration.Seconds())
	metrics.SearchDocumentsReturned.Observe(float64(len(resp.Value)))

	docs := make([]document.Document, 0, len(resp.Value))
	for i := range resp.Value {
		docs = append(docs, resp.Value[i].toDomain())
	}

	fields := []zap.Field{
		zap.String("index", c.index),
		zap.Int("hits", len(docs)),
		zap.Duration("duration", duration),
	}
	if resp.Count != nil {
		fields = append(fields, zap.Int("total_count", *resp.Count))
	}
	logger.FromContext(ctx, c.logger).Debug("search completed", fields...)

	return docs, nil
}

// Ping checks that the index exists and the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL("/docs/$count"), http.NoBody)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ping index %s: %w: %w", c.index, err, domain.ErrSearchService)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("ping index %s: status %d: %w", c.index, resp.StatusCode, domain.ErrSearchService)
	}
	return nil
}

func buildRequest(req *request.Request) searchRequest {
	body := searchRequest{
		Search:       req.Query(),
		Select:       strings.Join(document.SelectFields(), ","),
		SearchFields: strings.Join(document.BodyFields, ","),
		Top:          req.Top(),
		Count:        true,
	}
	if req.Highlight() {
		body.Highlight = strings.Join(document.BodyFields, ",")
		body.HighlightPreTag = HighlightPreTag
		body.HighlightPostTag = HighlightPostTag
	}
	if req.Mode() == mode.Semantic {
		body.QueryType = string(mode.Semantic)
		body.SemanticConfiguration = req.SemanticConfiguration()
	}
	return body
}

func (c *Client) indexURL(suffix string) string {
	q := url.Values{}
	q.Set("api-version", c.apiVersion)
	return fmt.Sprintf("%s/indexes/%s%s?%s", c.endpoint, url.PathEscape(c.index), suffix, q.Encode())
}

func (c *Client) postJSON(ctx context.Context, u string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("search request failed: %w: %w", err, domain.ErrSearchService)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("search API error %d: %s: %w", resp.StatusCode, errorDetail(raw), domain.ErrSearchService)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w: %w", err, domain.ErrSearchService)
	}
	return nil
}

// errorDetail extracts error.message from the service envelope, falling back to the raw body.
func errorDetail(body []byte) string {
	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return strings.TrimSpace(string(body))
}
