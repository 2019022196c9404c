package health

import "context"

// DBPinger checks document store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks an external model provider (embedding or generation).
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
