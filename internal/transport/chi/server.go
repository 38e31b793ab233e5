package chi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wikibot/internal/domain"
	"github.com/kailas-cloud/wikibot/internal/domain/search/request"
	"github.com/kailas-cloud/wikibot/internal/logger"
	healthuc "github.com/kailas-cloud/wikibot/internal/usecase/health"
	qauc "github.com/kailas-cloud/wikibot/internal/usecase/qa"
)

const maxBodyBytes = 64 << 10

// Server is the HTTP API over the question pipeline.
type Server struct {
	qa            *qauc.Service
	health        *healthuc.Service
	defaultTop    int
	markdown      goldmark.Markdown
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. defaultTop is used when a request omits top.
func NewServer(qa *qauc.Service, health *healthuc.Service, defaultTop int, logger *zap.Logger) *Server {
	return &Server{
		qa:            qa,
		health:        health,
		defaultTop:    defaultTop,
		markdown:      goldmark.New(),
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", s.Ask)
		r.Get("/search", s.Search)
	})
}

// Ask handles POST /api/v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	top := s.defaultTop
	if req.Top != nil {
		if *req.Top < request.MinTop || *req.Top > request.MaxTop {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
				"top must be between "+strconv.Itoa(request.MinTop)+" and "+strconv.Itoa(request.MaxTop))
			return
		}
		top = *req.Top
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.qa.Run(ctx, req.Query, top)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setChatHeaders(w, usage)
	writeJSON(w, http.StatusOK, AskResponse{
		Answer:         res.Answer.Text,
		AnswerHTML:     s.renderMarkdown(r, res.Answer.Text),
		Fallback:       res.Answer.Fallback,
		SearchResponse: retrievalToDTO(&res.Retrieval),
		Usage:          usageToDTO(usage),
	})
}

// Search handles GET /api/v1/search?q=&top=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		q   string
		top *int
	)
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "top", query, &top); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter top: "+err.Error())
		return
	}

	n := s.defaultTop
	if top != nil {
		if *top < request.MinTop || *top > request.MaxTop {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
				"top must be between "+strconv.Itoa(request.MinTop)+" and "+strconv.Itoa(request.MaxTop))
			return
		}
		n = *top
	}

	res, err := s.qa.Retrieve(r.Context(), q, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, retrievalToDTO(&res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  report.Status,
		Checks:  report.Checks,
		Missing: report.Missing,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// renderMarkdown converts the model answer to HTML. Raw HTML in the answer is not passed through.
func (s *Server) renderMarkdown(r *http.Request, text string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		logger.FromContext(r.Context(), s.logger).Warn("render answer markdown", zap.Error(err))
		return ""
	}
	return buf.String()
}

func setChatHeaders(w http.ResponseWriter, usage *domain.ChatUsage) {
	if usage != nil && usage.Called {
		w.Header().Set("X-Chat-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := domainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
