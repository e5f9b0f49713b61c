package sqlstore

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

// AppendContact inserts a contact event.
func (s *Store) AppendContact(ctx context.Context, ev pipeline.ContactEvent) error {
	_, err := s.exec(ctx,
		`INSERT INTO contact_events (id, kind, entity_id, direction, subject, snippet,
		                             from_email, to_email, thread_id, sent_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Kind.String(), ev.EntityID, string(ev.Direction), ev.Subject, ev.Snippet,
		ev.FromEmail, ev.ToEmail, ev.ThreadID, toMillis(ev.SentAt), toMillis(ev.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("append contact event: %w", err)
	}
	return nil
}

// DeleteContact removes a contact event. Missing events are not an error.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	if _, err := s.exec(ctx, `DELETE FROM contact_events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete contact event %s: %w", id, err)
	}
	return nil
}

// ListContacts returns an entity's events, newest sent first.
func (s *Store) ListContacts(ctx context.Context, kind pipeline.Kind, id string) ([]pipeline.ContactEvent, error) {
	rows, err := s.query(ctx,
		`SELECT id, kind, entity_id, direction, subject, snippet, from_email, to_email, thread_id, sent_at, created_at
		   FROM contact_events
		  WHERE kind = ? AND entity_id = ?
		  ORDER BY sent_at DESC, created_at DESC`,
		kind.String(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("list contact events: %w", err)
	}
	defer rows.Close()

	out := []pipeline.ContactEvent{}
	for rows.Next() {
		var (
			ev                pipeline.ContactEvent
			k, direction      string
			sentAt, createdAt int64
		)
		if err := rows.Scan(&ev.ID, &k, &ev.EntityID, &direction, &ev.Subject, &ev.Snippet,
			&ev.FromEmail, &ev.ToEmail, &ev.ThreadID, &sentAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan contact event: %w", err)
		}
		if ev.Kind, err = pipeline.ParseKind(k); err != nil {
			return nil, err
		}
		ev.Direction = pipeline.Direction(direction)
		ev.SentAt = fromMillis(sentAt)
		ev.CreatedAt = fromMillis(createdAt)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact events: %w", err)
	}
	return out, nil
}
