package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and chat Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikibot",
			Name:      "search_requests_total",
			Help:      "Total number of search index requests",
		},
		[]string{"index", "mode", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wikibot",
			Name:      "search_request_duration_seconds",
			Help:      "Search index request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"index", "mode"},
	)

	SearchDocumentsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wikibot",
			Name:      "search_documents_returned",
			Help:      "Number of documents returned per search",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		},
	)

	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikibot",
			Name:      "chat_requests_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"provider", "model", "status"},
	)

	ChatRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wikibot",
			Name:      "chat_request_duration_seconds",
			Help:      "Chat completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"provider", "model"},
	)

	ChatTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikibot",
			Name:      "chat_tokens_total",
			Help:      "Total chat tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	ChatErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wikibot",
			Name:      "chat_errors_total",
			Help:      "Total chat completion errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	ContextChars = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wikibot",
			Name:      "context_chars",
			Help:      "Characters of excerpt text sent to the model",
			Buckets:   []float64{0, 100, 250, 500, 750, 1000, 1600, 3200},
		},
	)

	FallbackAnswersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wikibot",
			Name:      "fallback_answers_total",
			Help:      "Answers produced without a chat call because the context was empty",
		},
	)
)

var serviceMetricsRegistered bool

// RegisterServiceMetrics registers API, search and chat metrics. Must be called once from main.
func RegisterServiceMetrics() {
	if serviceMetricsRegistered {
		return
	}
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchDocumentsReturned)
	prometheus.MustRegister(ChatRequestsTotal)
	prometheus.MustRegister(ChatRequestDuration)
	prometheus.MustRegister(ChatTokensTotal)
	prometheus.MustRegister(ChatErrorsTotal)
	prometheus.MustRegister(ContextChars)
	prometheus.MustRegister(FallbackAnswersTotal)
	serviceMetricsRegistered = true
}
