package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
)

// finalTags resolves the tag set for a write: explicit tags win when
// any survive normalization, otherwise tags are derived from the text.
func finalTags(e *journal.Entry) []string {
	if tags := journal.NormalizeTags(e.Tags); len(tags) > 0 {
		return tags
	}
	return journal.DeriveTags(e.Title, e.Description)
}

// AddEntry inserts the entry row, its ordered images, and its tag set
// in one transaction. Either all rows land or none do.
//
// On success the entry is updated in place with its final tag set and
// assigned createdAt, and is marked unsynced.
func (s *Store) AddEntry(ctx context.Context, e *journal.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("cannot add entry without id")
	}

	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	tags := finalTags(e)

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO journals (id, title, description, locationName, dateTime, latitude, longitude, createdAt, dateUnix, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		e.ID, e.Title, e.Description, e.LocationName, e.DateTime,
		e.Latitude, e.Longitude, e.CreatedAt, parseDisplayDate(e.DateTime),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
	}

	if err := insertChildren(ctx, tx, e.ID, e.Images, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", e.ID, err)
	}

	e.Tags = tags
	e.Synced = false
	return nil
}

// UpdateEntry updates the scalar fields of the entry row by id and
// fully replaces its images and tags. Returns ErrNotFound if no row
// with that id exists. The entry becomes eligible for re-sync: any
// local mutation resets the synced flag.
func (s *Store) UpdateEntry(ctx context.Context, e *journal.Entry) error {
	tags := finalTags(e)

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE journals
		SET title = ?, description = ?, locationName = ?, dateTime = ?, latitude = ?, longitude = ?, dateUnix = ?, synced = 0
		WHERE id = ?`,
		e.Title, e.Description, e.LocationName, e.DateTime,
		e.Latitude, e.Longitude, parseDisplayDate(e.DateTime), e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", e.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of entry %s: %w", e.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update entry %s: %w", e.ID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM journal_images WHERE journal_id = ?", e.ID); err != nil {
		return fmt.Errorf("failed to clear images for entry %s: %w", e.ID, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM journal_tags WHERE journal_id = ?", e.ID); err != nil {
		return fmt.Errorf("failed to clear tags for entry %s: %w", e.ID, err)
	}

	if err := insertChildren(ctx, tx, e.ID, e.Images, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", e.ID, err)
	}

	e.Tags = tags
	e.Synced = false
	return nil
}

// insertChildren writes the image and tag rows for an entry inside an
// open transaction. Image order follows input order.
func insertChildren(ctx context.Context, tx *sql.Tx, id string, images []journal.Image, tags []string) error {
	for i, img := range images {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO journal_images (journal_id, image_url, image_order) VALUES (?, ?, ?)",
			id, img.URL, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert image %d for entry %s: %w", i, id, err)
		}
	}

	for _, tag := range tags {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO journal_tags (journal_id, tag) VALUES (?, ?)",
			id, tag,
		)
		if err != nil {
			return fmt.Errorf("failed to insert tag %q for entry %s: %w", tag, id, err)
		}
	}

	return nil
}

// DeleteEntry removes the entry and its owned images and tags. Child
// rows are deleted explicitly in the same transaction rather than
// relying on cascade being active. Deleting a nonexistent id is a
// no-op, not an error.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM journal_images WHERE journal_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete images for entry %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM journal_tags WHERE journal_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete tags for entry %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM journals WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of entry %s: %w", id, err)
	}

	return nil
}

// GetAll returns every entry ordered newest first, hydrated with its
// ordered image list and tag set.
func (s *Store) GetAll(ctx context.Context) ([]journal.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT id, title, description, locationName, dateTime, latitude, longitude, createdAt, synced
		FROM journals
		ORDER BY createdAt DESC, rowid DESC`)
}

// ListUnsynced returns the entries whose current local state has not
// been pushed to the remote store, hydrated with images and tags.
func (s *Store) ListUnsynced(ctx context.Context) ([]journal.Entry, error) {
	return s.queryEntries(ctx, `
		SELECT id, title, description, locationName, dateTime, latitude, longitude, createdAt, synced
		FROM journals
		WHERE synced = 0 OR synced IS NULL
		ORDER BY createdAt DESC, rowid DESC`)
}

// MarkSynced sets synced = 1 for exactly the given entry ids.
func (s *Store) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("UPDATE journals SET synced = 1 WHERE id IN (%s)", placeholders)
	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark entries synced: %w", err)
	}

	return nil
}

// ResetSyncStatus marks every synced entry unsynced again. Used to
// force a full re-push for testing.
func (s *Store) ResetSyncStatus(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, "UPDATE journals SET synced = 0 WHERE synced = 1"); err != nil {
		return fmt.Errorf("failed to reset sync status: %w", err)
	}
	return nil
}

// queryEntries runs an entry SELECT and hydrates each result with its
// images and tags.
func (s *Store) queryEntries(ctx context.Context, query string, args ...interface{}) ([]journal.Entry, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.hydrate(ctx, &entries[i]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// scanEntries scans entry rows without children.
func scanEntries(rows *sql.Rows) ([]journal.Entry, error) {
	var entries []journal.Entry

	for rows.Next() {
		var (
			e           journal.Entry
			description sql.NullString
			location    sql.NullString
			dateTime    sql.NullString
			lat, lon    sql.NullFloat64
			createdAt   sql.NullInt64
			synced      sql.NullInt64
		)

		err := rows.Scan(&e.ID, &e.Title, &description, &location, &dateTime, &lat, &lon, &createdAt, &synced)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		e.Description = description.String
		e.LocationName = location.String
		e.DateTime = dateTime.String
		if lat.Valid && lon.Valid {
			e.Latitude = &lat.Float64
			e.Longitude = &lon.Float64
		}
		e.CreatedAt = createdAt.Int64
		e.Synced = synced.Int64 == 1

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// hydrate loads the ordered image list and tag set for one entry.
func (s *Store) hydrate(ctx context.Context, e *journal.Entry) error {
	imgRows, err := s.conn.QueryContext(ctx,
		"SELECT id, image_url, image_order FROM journal_images WHERE journal_id = ? ORDER BY image_order",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query images for entry %s: %w", e.ID, err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img journal.Image
		if err := imgRows.Scan(&img.ID, &img.URL, &img.Order); err != nil {
			return fmt.Errorf("failed to scan image for entry %s: %w", e.ID, err)
		}
		e.Images = append(e.Images, img)
	}
	if err := imgRows.Err(); err != nil {
		return fmt.Errorf("error iterating images for entry %s: %w", e.ID, err)
	}

	tagRows, err := s.conn.QueryContext(ctx,
		"SELECT tag FROM journal_tags WHERE journal_id = ?",
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query tags for entry %s: %w", e.ID, err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag string
		if err := tagRows.Scan(&tag); err != nil {
			return fmt.Errorf("failed to scan tag for entry %s: %w", e.ID, err)
		}
		e.Tags = append(e.Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("error iterating tags for entry %s: %w", e.ID, err)
	}

	return nil
}
