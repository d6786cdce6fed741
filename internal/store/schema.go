package store

import (
	"context"
	"database/sql"
	"fmt"
)

// createTables defines the initial schema. CREATE TABLE IF NOT EXISTS
// keeps this idempotent; columns added after the first release are
// handled by migrate, never here, so existing installs are untouched.
func (s *Store) createTables() error {
	return s.createTablesContext(context.Background())
}

func (s *Store) createTablesContext(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS journals (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		locationName TEXT,
		dateTime TEXT,
		latitude REAL,
		longitude REAL,
		createdAt INTEGER DEFAULT (strftime('%s', 'now'))
	);

	CREATE TABLE IF NOT EXISTS journal_images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		journal_id TEXT NOT NULL,
		image_url TEXT NOT NULL,
		image_order INTEGER DEFAULT 0,
		FOREIGN KEY (journal_id) REFERENCES journals (id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS journal_tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		journal_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		FOREIGN KEY (journal_id) REFERENCES journals (id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_images_journal ON journal_images(journal_id);
	CREATE INDEX IF NOT EXISTS idx_tags_journal ON journal_tags(journal_id);
	CREATE INDEX IF NOT EXISTS idx_tags_tag ON journal_tags(tag);
	`

	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// migrate runs the fixed, ordered list of additive schema changes. It
// runs on every Open and only ever adds columns; nothing is dropped,
// renamed, or rewritten.
func (s *Store) migrate() error {
	ctx := context.Background()

	migrations := []struct {
		table, column, ddl string
	}{
		{"journals", "latitude", "REAL"},
		{"journals", "longitude", "REAL"},
		// ALTER TABLE cannot carry the strftime default the fresh-install
		// schema uses (SQLite rejects non-constant defaults on ADD
		// COLUMN); pre-existing rows read NULL and scan as zero.
		{"journals", "createdAt", "INTEGER"},
		{"journals", "synced", "INTEGER DEFAULT 0"},
		// Normalized epoch of the calendar date in dateTime, used for
		// range filtering. The display string stays authoritative for
		// presentation.
		{"journals", "dateUnix", "INTEGER"},
	}

	for _, m := range migrations {
		if err := s.ensureColumnExists(ctx, m.table, m.column, m.ddl); err != nil {
			return err
		}
	}

	return nil
}

// ensureColumnExists inspects the table's current column list and adds
// the column with the given type clause if it is absent. Idempotent:
// safe to call on every startup.
func (s *Store) ensureColumnExists(ctx context.Context, table, column, ddl string) error {
	exists, err := s.columnExists(ctx, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, ddl)
	if _, err := s.conn.ExecContext(ctx, alter); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}

	return nil
}

func (s *Store) columnExists(ctx context.Context, table, column string) (bool, error) {
	rows, err := s.conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	exists := false
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table_info for %s: %w", table, err)
		}
		if name == column {
			exists = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("error iterating table_info for %s: %w", table, err)
	}

	return exists, nil
}
