package appctx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/platform/logging"
)

// CommitError reports which queued action failed. Step is zero-based;
// Step > 0 means earlier actions had already been applied when the failure
// happened. Failed is the action that returned Err.
type CommitError struct {
	Step   int
	Total  int
	Action string
	Failed domain.Action
	Err    error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("executing %s (step %d/%d): %v", e.Action, e.Step+1, e.Total, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// PartiallyApplied reports whether any action ran before the failing one.
func (e *CommitError) PartiallyApplied() bool { return e.Step > 0 }

// Commit executes the queued actions in insertion order. If one fails the
// completed ones are rolled back in reverse order and a *CommitError is
// returned. Rollback failures are logged and do not change the returned
// error. The RequestContext is committed after the first call either way.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.mu.Lock()
	if rc.committed {
		rc.mu.Unlock()
		return ErrAlreadyCommitted
	}
	rc.committed = true
	actions := rc.actions
	rc.mu.Unlock()

	logger := logging.FromContext(ctx)

	for i, action := range actions {
		logger.DebugContext(ctx, "executing action",
			slog.String("operation", "RequestContext.Commit"),
			slog.Int("step", i+1),
			slog.Int("total", len(actions)),
			slog.String("action", action.Description()),
		)

		if err := action.Execute(ctx); err != nil {
			logger.ErrorContext(ctx, "action failed, rolling back",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("failed_step", i+1),
				slog.String("action", action.Description()),
				slog.Any("error", err),
			)
			for j := i - 1; j >= 0; j-- {
				if rbErr := actions[j].Rollback(ctx); rbErr != nil {
					logger.ErrorContext(ctx, "rollback failed",
						slog.String("operation", "RequestContext.Commit"),
						slog.Int("step", j+1),
						slog.String("action", actions[j].Description()),
						slog.Any("error", rbErr),
					)
				}
			}
			return &CommitError{Step: i, Total: len(actions), Action: action.Description(), Failed: action, Err: err}
		}
	}

	return nil
}
