package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Stats summarizes the local journal collection.
type Stats struct {
	TotalEntries    int `json:"total_entries"`
	TotalImages     int `json:"total_images"`
	UniqueLocations int `json:"unique_locations"`
	UniqueTags      int `json:"unique_tags"`
}

// AllTags returns the distinct tags across all entries, sorted.
func (s *Store) AllTags(ctx context.Context) ([]string, error) {
	return s.stringColumn(ctx, "SELECT DISTINCT tag FROM journal_tags ORDER BY tag")
}

// AllLocations returns the distinct non-empty location names, sorted.
func (s *Store) AllLocations(ctx context.Context) ([]string, error) {
	return s.stringColumn(ctx, `
		SELECT DISTINCT locationName FROM journals
		WHERE locationName IS NOT NULL AND locationName != ''
		ORDER BY locationName`)
}

func (s *Store) stringColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating values: %w", err)
	}

	return out, nil
}

// DateRange returns the earliest and latest calendar dates among
// entries with a parseable date, formatted as YYYY-MM-DD. Both values
// are empty when no entry carries a usable date.
func (s *Store) DateRange(ctx context.Context) (minDate, maxDate string, err error) {
	var lo, hi sql.NullInt64
	err = s.conn.QueryRowContext(ctx,
		"SELECT MIN(dateUnix), MAX(dateUnix) FROM journals WHERE dateUnix IS NOT NULL",
	).Scan(&lo, &hi)
	if err != nil {
		return "", "", fmt.Errorf("failed to query date range: %w", err)
	}
	if !lo.Valid || !hi.Valid {
		return "", "", nil
	}

	minDate = time.Unix(lo.Int64, 0).UTC().Format("2006-01-02")
	maxDate = time.Unix(hi.Int64, 0).UTC().Format("2006-01-02")
	return minDate, maxDate, nil
}

// GetStats returns entry, image, location, and tag counts.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM journals", &st.TotalEntries},
		{"SELECT COUNT(*) FROM journal_images", &st.TotalImages},
		{"SELECT COUNT(DISTINCT locationName) FROM journals WHERE locationName IS NOT NULL AND locationName != ''", &st.UniqueLocations},
		{"SELECT COUNT(DISTINCT tag) FROM journal_tags", &st.UniqueTags},
	}

	for _, c := range counts {
		if err := s.conn.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("failed to query stats: %w", err)
		}
	}

	return st, nil
}
