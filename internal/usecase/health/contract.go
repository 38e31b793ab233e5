package health

import "context"

// SearchPinger checks search index availability.
type SearchPinger interface {
	Ping(ctx context.Context) error
}

// ChatChecker checks chat provider availability.
type ChatChecker interface {
	HealthCheck(ctx context.Context) error
}
