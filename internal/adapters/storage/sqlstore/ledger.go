package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

// Append writes one ledger entry.
func (s *Store) Append(ctx context.Context, h pipeline.HistoryEntry) error {
	var from sql.NullString
	if h.From != nil {
		from = sql.NullString{String: string(*h.From), Valid: true}
	}
	_, err := s.exec(ctx,
		`INSERT INTO stage_history (id, kind, entity_id, from_stage, to_stage, reason, actor_id, changed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Kind.String(), h.EntityID, from, string(h.To), h.Reason, h.ActorID, toMillis(h.ChangedAt),
	)
	if err != nil {
		return fmt.Errorf("append ledger entry %s: %w", h, err)
	}
	return nil
}

// ListFor returns an entity's entries, newest first. Entries written in the
// same millisecond keep insertion order through seq.
func (s *Store) ListFor(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.HistoryEntry, error) {
	rows, err := s.query(ctx,
		`SELECT id, kind, entity_id, from_stage, to_stage, reason, actor_id, changed_at
		   FROM stage_history
		  WHERE kind = ? AND entity_id = ?
		  ORDER BY changed_at DESC, seq DESC`,
		kind.String(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("list history %s %s: %w", kind, id, err)
	}
	defer rows.Close()

	out := []pipeline.HistoryEntry{}
	for rows.Next() {
		var (
			h         pipeline.HistoryEntry
			k, to     string
			from      sql.NullString
			changedAt int64
		)
		if err := rows.Scan(&h.ID, &k, &h.EntityID, &from, &to, &h.Reason, &h.ActorID, &changedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if h.Kind, err = pipeline.ParseKind(k); err != nil {
			return nil, err
		}
		if from.Valid {
			f := pipeline.Stage(from.String)
			h.From = &f
		}
		h.To = pipeline.Stage(to)
		h.ChangedAt = fromMillis(changedAt)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

// CountTransitionsInto tallies entries into stage during month.
func (s *Store) CountTransitionsInto(ctx context.Context, kind pipeline.Kind, stage pipeline.Stage, month report.MonthKey) (report.WeekCounts, error) {
	return s.weekCounts(ctx,
		`SELECT changed_at FROM stage_history
		  WHERE kind = ? AND to_stage = ? AND changed_at >= ? AND changed_at < ?`,
		kind.String(), string(stage), toMillis(month.Start()), toMillis(month.End()),
	)
}

// CountCreations tallies creation entries during month.
func (s *Store) CountCreations(ctx context.Context, kind pipeline.Kind, month report.MonthKey) (report.WeekCounts, error) {
	return s.weekCounts(ctx,
		`SELECT changed_at FROM stage_history
		  WHERE kind = ? AND from_stage IS NULL AND changed_at >= ? AND changed_at < ?`,
		kind.String(), toMillis(month.Start()), toMillis(month.End()),
	)
}

// weekCounts buckets the millisecond timestamps returned by q. The bucket
// is computed in Go so both dialects share one definition of a week.
func (s *Store) weekCounts(ctx context.Context, q string, args ...any) (report.WeekCounts, error) {
	var counts report.WeekCounts

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return counts, fmt.Errorf("count history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return counts, fmt.Errorf("scan history timestamp: %w", err)
		}
		counts.Inc(fromMillis(ms))
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("iterate history timestamps: %w", err)
	}
	return counts, nil
}
