package chi

import (
	"errors"
	"net/http"

	"github.com/kailas-cloud/wikibot/internal/domain"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// exposedSentinels are errors whose full message is safe to return to clients.
var exposedSentinels = []error{
	domain.ErrNotConfigured,
	domain.ErrInvalidQuery,
	domain.ErrRateLimited,
	domain.ErrSearchService,
	domain.ErrChatService,
}

// domainMessage returns the error message for the client, or a generic text for unknown errors.
func domainMessage(err error) string {
	for _, s := range exposedSentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// notConfiguredHandler reports the missing setting names alongside the message.
func notConfiguredHandler(w http.ResponseWriter, err error, msg string) bool {
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		return false
	}
	writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
		Code:    ErrorResponseCodeNotConfigured,
		Message: msg,
		Missing: cfgErr.Missing,
	})
	return true
}

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		notConfiguredHandler,
		sentinelHandler(domain.ErrNotConfigured, http.StatusServiceUnavailable, ErrorResponseCodeNotConfigured),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorResponseCodeRateLimited),
		sentinelHandler(domain.ErrSearchService, http.StatusBadGateway, ErrorResponseCodeSearchServiceError),
		sentinelHandler(domain.ErrChatService, http.StatusBadGateway, ErrorResponseCodeChatServiceError),
	}
}
