package ports

import "context"

// HealthChecker is a dependency the readiness probe reports on, such as the
// pipeline store or the remote pipeline API.
type HealthChecker interface {
	// Name keys the component in readiness output ("storage", "pipeline-api").
	Name() string
	// HealthCheck returns nil when the component can serve requests. It must
	// return promptly once ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry fans a readiness probe out to every registered checker.
type HealthRegistry interface {
	Register(checker HealthChecker)
	// CheckAll maps each checker's name to its result; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
