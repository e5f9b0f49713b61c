package domain

import "context"

// Action is one write inside a unit of work: an entity insert, a stage
// update, a ledger append. Rollback is only called after a successful
// Execute and should undo its effect where the store cannot roll back on
// its own.
type Action interface {
	// Execute performs the write.
	Execute(ctx context.Context) error

	// Rollback compensates a previously successful Execute.
	Rollback(ctx context.Context) error

	// Description is used in logs, e.g. "append ledger entry client 42".
	Description() string
}

// WriteStager is the view of the application-layer RequestContext that
// write paths depend on. Stage records the entity under key for
// read-your-writes within the request and queues action for Commit.
// Execute runs an action immediately, outside the commit queue.
type WriteStager interface {
	Stage(key string, entity any, action Action) error
	Execute(action Action) error
}
