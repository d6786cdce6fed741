// Package remote defines the remote store contract the sync engine
// pushes to, and a Postgres implementation of it.
//
// The core depends on exactly two remote capabilities: upsert-by-id of
// entry rows (tags travel as a native list value, not a serialized
// blob) and delete-then-insert replacement of an entry's image rows.
// Authentication and transport concerns live behind the implementation.
package remote

import (
	"context"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
)

// Store is the remote side of the sync protocol.
type Store interface {
	// UpsertEntries pushes the scalar fields and tag lists of the given
	// entries in one batch. The whole batch fails or succeeds together;
	// a failure leaves the remote unchanged from the caller's view and
	// the same entries eligible for the next attempt.
	UpsertEntries(ctx context.Context, entries []journal.Entry) error

	// DeleteImages removes any previously pushed image rows for the
	// entry, so a re-sync of an edited entry cannot leave stale rows.
	DeleteImages(ctx context.Context, journalID string) error

	// InsertImages bulk-inserts the entry's current ordered image list.
	InsertImages(ctx context.Context, journalID string, images []journal.Image) error

	// Ping reports whether the remote is reachable. The connectivity
	// prober polls it to detect offline/online transitions.
	Ping(ctx context.Context) error
}
