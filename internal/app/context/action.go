package appctx

import "context"

// Func adapts a pair of closures to domain.Action. Undo may be nil when the
// write has no compensation.
type Func struct {
	Desc string
	Do   func(ctx context.Context) error
	Undo func(ctx context.Context) error
}

// Execute calls Do.
func (f *Func) Execute(ctx context.Context) error { return f.Do(ctx) }

// Rollback calls Undo if set.
func (f *Func) Rollback(ctx context.Context) error {
	if f.Undo == nil {
		return nil
	}
	return f.Undo(ctx)
}

// Description returns Desc.
func (f *Func) Description() string { return f.Desc }
