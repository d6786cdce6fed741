package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
)

// Filters configures a search. All fields are optional and conjunctive:
// an entry matches when it passes every supplied filter, and omitted
// filters impose no constraint.
type Filters struct {
	// Keyword matches case-insensitively as a substring of title,
	// description, or location name. Blank means no keyword filter.
	Keyword string

	// Tags requires the entry to carry at least one of these tags.
	Tags []string

	// StartDate/EndDate bound the entry's calendar date, inclusive,
	// formatted YYYY-MM-DD. Entries whose display date cannot be
	// parsed are excluded when either bound is set.
	StartDate string
	EndDate   string

	// Location matches case-insensitively as a substring of the
	// location name.
	Location string
}

// Search returns the entries matching all supplied filters, hydrated,
// newest first. An empty Filters value returns the identity listing.
func (s *Store) Search(ctx context.Context, f Filters) ([]journal.Entry, error) {
	var conditions []string
	var args []interface{}

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		pattern := "%" + strings.ToLower(kw) + "%"
		conditions = append(conditions,
			"(LOWER(j.title) LIKE ? OR LOWER(j.description) LIKE ? OR LOWER(j.locationName) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	if len(f.Tags) > 0 {
		placeholders := strings.Repeat("?,", len(f.Tags)-1) + "?"
		conditions = append(conditions, fmt.Sprintf("jt.tag IN (%s)", placeholders))
		for _, t := range f.Tags {
			args = append(args, t)
		}
	}

	if start := parseDisplayDate(f.StartDate); start.Valid {
		conditions = append(conditions, "j.dateUnix >= ?")
		args = append(args, start.Int64)
	}
	if end := parseDisplayDate(f.EndDate); end.Valid {
		conditions = append(conditions, "j.dateUnix <= ?")
		args = append(args, end.Int64)
	}

	if loc := strings.TrimSpace(f.Location); loc != "" {
		conditions = append(conditions, "LOWER(j.locationName) LIKE ?")
		args = append(args, "%"+strings.ToLower(loc)+"%")
	}

	// DISTINCT because the tag join can produce one row per matching tag.
	query := `
		SELECT DISTINCT j.id, j.title, j.description, j.locationName, j.dateTime, j.latitude, j.longitude, j.createdAt, j.synced
		FROM journals j
		LEFT JOIN journal_tags jt ON j.id = jt.journal_id`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// rowid cannot tiebreak here: SQLite rejects ORDER BY terms outside
	// the result set of a DISTINCT select.
	query += " ORDER BY j.createdAt DESC"

	return s.queryEntries(ctx, query, args...)
}

// SearchByKeyword is shorthand for Search with only a keyword filter.
// A blank term means no filter, so callers get the identity listing.
func (s *Store) SearchByKeyword(ctx context.Context, term string) ([]journal.Entry, error) {
	return s.Search(ctx, Filters{Keyword: term})
}
