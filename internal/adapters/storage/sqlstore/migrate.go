package sqlstore

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jsamuelsen11/referral-pipeline/internal/adapters/storage/sqlstore/migrations"
)

const migrationTable = "schema_migrations"

// migrate applies the dialect's embedded migrations that have not run yet,
// each in its own transaction.
func (s *Store) migrate(ctx context.Context) error {
	root := s.dialect.name
	entries, err := fs.ReadDir(migrations.FS, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name       TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, name := range files {
		var found int
		err := s.db.QueryRowContext(ctx,
			s.dialect.rebind(`SELECT COUNT(*) FROM `+migrationTable+` WHERE name = ?`), name,
		).Scan(&found)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if found > 0 {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		up := upSection(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}

		err = s.InTx(ctx, func(ctx context.Context) error {
			for _, stmt := range splitStatements(up) {
				if _, err := s.exec(ctx, stmt); err != nil {
					return fmt.Errorf("exec: %w", err)
				}
			}
			_, err := s.exec(ctx,
				`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
				name, toMillis(time.Now()),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// upSection returns the SQL between "-- +migrate Up" and "-- +migrate Down".
func upSection(content string) string {
	const upMarker, downMarker = "-- +migrate Up", "-- +migrate Down"
	if i := strings.Index(content, upMarker); i >= 0 {
		content = content[i+len(upMarker):]
	}
	if i := strings.Index(content, downMarker); i >= 0 {
		content = content[:i]
	}
	return content
}

// splitStatements splits on semicolons. The migrations contain no
// semicolons inside literals or bodies.
func splitStatements(sqlText string) []string {
	var out []string
	for _, stmt := range strings.Split(sqlText, ";") {
		if strings.TrimSpace(stmt) != "" {
			out = append(out, strings.TrimSpace(stmt))
		}
	}
	return out
}
