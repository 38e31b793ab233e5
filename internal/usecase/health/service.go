package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Missing []string
}

// Service coordinates health checks.
type Service struct {
	search  SearchPinger
	chat    ChatChecker
	missing []string
}

// New creates a Service. Either checker can be nil when the process is not configured;
// missing lists the absent settings reported under the "config" check.
func New(search SearchPinger, chat ChatChecker, missing []string) *Service {
	return &Service{search: search, chat: chat, missing: missing}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if len(s.missing) > 0 {
		checks["config"] = CheckError
	} else {
		checks["config"] = CheckOK
	}

	if s.search != nil {
		checks["search"] = result(s.search.Ping(ctx))
	}
	if s.chat != nil {
		checks["chat"] = result(s.chat.HealthCheck(ctx))
	}

	// A passing config check does not count toward the service tally.
	services, failed := 0, 0
	for name, v := range checks {
		if name == "config" {
			continue
		}
		services++
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case checks["config"] == CheckError:
		status = Unhealthy
	case services > 0 && failed == services:
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Missing: s.missing}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
