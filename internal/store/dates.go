package store

import (
	"database/sql"
	"strings"
	"time"
)

// displayDateFormats are the layouts the app has historically written
// into dateTime. Parsing is defensive: the display string is free-form
// user-facing text, so a miss is not an error.
var displayDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"01/02/2006",
	"2 January 2006",
}

// parseDisplayDate resolves a display-formatted date string to the
// epoch of its calendar date at midnight UTC. Returns an invalid
// NullInt64 when the string is empty or matches no known layout; rows
// with a NULL dateUnix are simply excluded from date-range filters.
func parseDisplayDate(s string) sql.NullInt64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullInt64{}
	}
	for _, layout := range displayDateFormats {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return sql.NullInt64{Int64: day.Unix(), Valid: true}
	}
	return sql.NullInt64{}
}
