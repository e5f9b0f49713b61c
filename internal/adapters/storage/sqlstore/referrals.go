package sqlstore

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
)

// CreateReferral inserts a referral link.
func (s *Store) CreateReferral(ctx context.Context, r pipeline.Referral) error {
	_, err := s.exec(ctx,
		`INSERT INTO referrals (id, referral_source_id, client_id, referred_at, status) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.ReferralSourceID, r.ClientID, toMillis(r.ReferredAt), string(r.Status),
	)
	if err != nil {
		return fmt.Errorf("create referral: %w", err)
	}
	return nil
}

// DeleteReferral removes a referral link. Missing links are not an error.
func (s *Store) DeleteReferral(ctx context.Context, id string) error {
	if _, err := s.exec(ctx, `DELETE FROM referrals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete referral %s: %w", id, err)
	}
	return nil
}

// ListReferrals returns links newest first, optionally for one source.
func (s *Store) ListReferrals(ctx context.Context, sourceID string) ([]pipeline.Referral, error) {
	q := `SELECT id, referral_source_id, client_id, referred_at, status FROM referrals`
	var args []any
	if sourceID != "" {
		q += ` WHERE referral_source_id = ?`
		args = append(args, sourceID)
	}
	q += ` ORDER BY referred_at DESC, id DESC`

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	out := []pipeline.Referral{}
	for rows.Next() {
		var (
			r          pipeline.Referral
			referredAt int64
			status     string
		)
		if err := rows.Scan(&r.ID, &r.ReferralSourceID, &r.ClientID, &referredAt, &status); err != nil {
			return nil, fmt.Errorf("scan referral: %w", err)
		}
		r.ReferredAt = fromMillis(referredAt)
		r.Status = pipeline.ReferralStatus(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate referrals: %w", err)
	}
	return out, nil
}
