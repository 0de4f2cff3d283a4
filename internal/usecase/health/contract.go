package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// AgentChecker checks agent provider availability.
type AgentChecker interface {
	HealthCheck(ctx context.Context) error
}
