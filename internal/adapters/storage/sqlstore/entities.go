package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

const entityColumns = `id, kind, name, email, phone, business_name, stage, notes,
	last_contact_at, deal_size_cents, expected_close_date, referral_source_id,
	created_at, updated_at`

// Create inserts e.
func (s *Store) Create(ctx context.Context, e *pipeline.Entity) error {
	_, err := s.exec(ctx,
		`INSERT INTO entities (`+entityColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Kind.String(),
		e.Name,
		e.Email,
		e.Phone,
		e.BusinessName,
		string(e.Stage),
		e.Notes,
		nullMillis(e.LastContactAt),
		e.DealSizeCents,
		nullDate(e.ExpectedCloseDate),
		nullString(e.ReferralSourceID),
		toMillis(e.CreatedAt),
		toMillis(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", e.Kind, err)
	}
	return nil
}

// Get returns one entity of kind.
func (s *Store) Get(ctx context.Context, kind pipeline.Kind, id string) (*pipeline.Entity, error) {
	row := s.queryRow(ctx,
		`SELECT `+entityColumns+` FROM entities WHERE kind = ? AND id = ?`,
		kind.String(), id,
	)
	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrEntityNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return e, nil
}

// Update writes the non-stage fields of e.
func (s *Store) Update(ctx context.Context, e *pipeline.Entity) error {
	res, err := s.exec(ctx,
		`UPDATE entities
		    SET name = ?, email = ?, phone = ?, business_name = ?, notes = ?,
		        last_contact_at = ?, deal_size_cents = ?, expected_close_date = ?,
		        updated_at = ?
		  WHERE kind = ? AND id = ?`,
		e.Name,
		e.Email,
		e.Phone,
		e.BusinessName,
		e.Notes,
		nullMillis(e.LastContactAt),
		e.DealSizeCents,
		nullDate(e.ExpectedCloseDate),
		toMillis(e.UpdatedAt),
		e.Kind.String(),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", e.Kind, err)
	}
	return expectOne(res, e.Kind, e.ID)
}

// SetStage moves an entity and optionally replaces its close date.
func (s *Store) SetStage(ctx context.Context, kind pipeline.Kind, id string, stage pipeline.Stage, closeDate *time.Time, at time.Time) error {
	var (
		res sql.Result
		err error
	)
	if closeDate != nil {
		res, err = s.exec(ctx,
			`UPDATE entities SET stage = ?, expected_close_date = ?, updated_at = ? WHERE kind = ? AND id = ?`,
			string(stage), closeDate.UTC().Format(pipeline.DateLayout), toMillis(at), kind.String(), id,
		)
	} else {
		res, err = s.exec(ctx,
			`UPDATE entities SET stage = ?, updated_at = ? WHERE kind = ? AND id = ?`,
			string(stage), toMillis(at), kind.String(), id,
		)
	}
	if err != nil {
		return fmt.Errorf("set stage %s %s: %w", kind, id, err)
	}
	return expectOne(res, kind, id)
}

// Touch sets last_contact_at.
func (s *Store) Touch(ctx context.Context, kind pipeline.Kind, id string, lastContactAt, at time.Time) error {
	res, err := s.exec(ctx,
		`UPDATE entities SET last_contact_at = ?, updated_at = ? WHERE kind = ? AND id = ?`,
		toMillis(lastContactAt), toMillis(at), kind.String(), id,
	)
	if err != nil {
		return fmt.Errorf("touch %s %s: %w", kind, id, err)
	}
	return expectOne(res, kind, id)
}

// Delete removes an entity.
func (s *Store) Delete(ctx context.Context, kind pipeline.Kind, id string) error {
	res, err := s.exec(ctx, `DELETE FROM entities WHERE kind = ? AND id = ?`, kind.String(), id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	return expectOne(res, kind, id)
}

// List returns entities of kind, newest first.
func (s *Store) List(ctx context.Context, kind pipeline.Kind, filter pipeline.ListFilter) ([]pipeline.Entity, error) {
	q := `SELECT ` + entityColumns + ` FROM entities WHERE kind = ?`
	args := []any{kind.String()}
	if filter.Stage != "" {
		q += ` AND stage = ?`
		args = append(args, string(filter.Stage))
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	out := []pipeline.Entity{}
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	return out, nil
}

// Count returns the number of entities of kind.
func (s *Store) Count(ctx context.Context, kind pipeline.Kind) (int, error) {
	var n int
	if err := s.queryRow(ctx, `SELECT COUNT(*) FROM entities WHERE kind = ?`, kind.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// SumDealSize sums client deal sizes outside the excluded stages.
func (s *Store) SumDealSize(ctx context.Context, exclude []pipeline.Stage) (int64, error) {
	q := `SELECT COALESCE(SUM(deal_size_cents), 0) FROM entities WHERE kind = ?`
	args := []any{pipeline.KindClient.String()}
	if len(exclude) > 0 {
		q += ` AND stage NOT IN (` + placeholders(len(exclude)) + `)`
		for _, st := range exclude {
			args = append(args, string(st))
		}
	}

	var sum int64
	if err := s.queryRow(ctx, q, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum deal size: %w", err)
	}
	return sum, nil
}

// DealSizeByCloseMonth groups client deal sizes by close month in
// [from, to]. Close dates are stored as YYYY-MM-DD so the month is the
// seven-character prefix.
func (s *Store) DealSizeByCloseMonth(ctx context.Context, from, to report.MonthKey) (map[report.MonthKey]int64, error) {
	rows, err := s.query(ctx,
		`SELECT substr(expected_close_date, 1, 7) AS month, COALESCE(SUM(deal_size_cents), 0)
		   FROM entities
		  WHERE kind = ?
		    AND expected_close_date IS NOT NULL
		    AND expected_close_date >= ?
		    AND expected_close_date < ?
		  GROUP BY substr(expected_close_date, 1, 7)`,
		pipeline.KindClient.String(),
		from.Start().Format(pipeline.DateLayout),
		to.End().Format(pipeline.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("deal size by close month: %w", err)
	}
	defer rows.Close()

	out := make(map[report.MonthKey]int64)
	for rows.Next() {
		var (
			month string
			sum   int64
		)
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, fmt.Errorf("scan close month: %w", err)
		}
		key, err := report.ParseMonth(month)
		if err != nil {
			continue
		}
		out[key] += sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate close months: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(sc scanner) (*pipeline.Entity, error) {
	var (
		e              pipeline.Entity
		kind, stage    string
		lastContact    sql.NullInt64
		closeDate      sql.NullString
		referralSource sql.NullString
		createdAt      int64
		updatedAt      int64
	)
	err := sc.Scan(
		&e.ID,
		&kind,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.BusinessName,
		&stage,
		&e.Notes,
		&lastContact,
		&e.DealSizeCents,
		&closeDate,
		&referralSource,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	k, err := pipeline.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	e.Kind = k
	e.Stage = pipeline.Stage(stage)
	e.LastContactAt = timeFromNull(lastContact)
	e.ReferralSourceID = referralSource.String
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	if closeDate.Valid {
		d, err := time.Parse(pipeline.DateLayout, closeDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse expected_close_date %q: %w", closeDate.String, err)
		}
		e.ExpectedCloseDate = &d
	}
	return &e, nil
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(pipeline.DateLayout), Valid: true}
}

func expectOne(res sql.Result, kind pipeline.Kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrEntityNotFound)
	}
	return nil
}
