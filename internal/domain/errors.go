package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured signals that required settings are absent and service-backed actions are disabled.
	ErrNotConfigured = errors.New("not configured")
	// ErrInvalidQuery signals a query rejected before any external call.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSearchService signals a failure of the search index service.
	ErrSearchService = errors.New("search service error")
	// ErrChatService signals a failure of the chat-completion provider.
	ErrChatService = errors.New("chat service error")
	// ErrRateLimited signals a provider rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// ConfigurationError wraps ErrNotConfigured with the names of the missing settings.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrNotConfigured.Error(), strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Unwrap() error { return ErrNotConfigured }

// NewConfigurationError creates a configuration error for the given setting names.
func NewConfigurationError(missing []string) error {
	return &ConfigurationError{Missing: missing}
}
