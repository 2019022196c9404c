package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates a provider is failing; queries will return upstream errors.
	Degraded Status = "degraded"
	// Unhealthy indicates the document store is unreachable.
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

const defaultCheckTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type provider struct {
	name    string
	checker ProviderChecker
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	providers []provider
	timeout   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithProvider adds a named provider check. Nil checkers are ignored.
func WithProvider(name string, c ProviderChecker) Option {
	return func(s *Service) {
		if c != nil {
			s.providers = append(s.providers, provider{name: name, checker: c})
		}
	}
}

// WithTimeout bounds each individual check.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Service.
func New(db DBPinger, opts ...Option) *Service {
	s := &Service{db: db, timeout: defaultCheckTimeout}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Check runs every check. The store is mandatory; providers only degrade.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 1+len(s.providers))
	status := Healthy

	checks["database"] = s.run(ctx, s.db.Ping)
	if checks["database"] == CheckError {
		status = Unhealthy
	}

	for _, p := range s.providers {
		checks[p.name] = s.run(ctx, p.checker.HealthCheck)
		if checks[p.name] == CheckError && status == Healthy {
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) run(ctx context.Context, fn func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
