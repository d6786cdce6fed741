// Package syncer moves locally-created and edited journal entries to
// the remote store exactly once, tolerating partial failure and
// repeated invocation.
//
// One pass: collect unsynced entries from the local store, upsert their
// scalar fields and tags to the remote in a single batch, replace each
// entry's remote image rows, then mark exactly the fully-pushed ids as
// synced locally. A pass with nothing to collect is a no-op, so
// re-running is always safe.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
	"github.com/krishnakoushik192/travel-journal/internal/remote"
)

// ErrSyncInFlight is returned when a sync attempt is requested while a
// previous one is still running. Triggers are coalesced, not queued:
// the running pass already covers the same unsynced set.
var ErrSyncInFlight = errors.New("sync already in progress")

// LocalStore is the slice of the local store the engine needs.
type LocalStore interface {
	ListUnsynced(ctx context.Context) ([]journal.Entry, error)
	MarkSynced(ctx context.Context, ids []string) error
}

// Result describes one completed sync pass.
type Result struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Collected int           `json:"collected"`
	Pushed    int           `json:"pushed"`
	FailedIDs []string      `json:"failed_ids,omitempty"`
	Err       error         `json:"-"`
}

// Engine is the sync engine. Create with New; all methods are safe for
// concurrent use.
type Engine struct {
	local  LocalStore
	remote remote.Store
	logger *log.Logger

	// Notify, when set, receives every completed Result. Sends never
	// block the sync pass.
	notify chan Result

	inFlight sync.Mutex

	mu         sync.Mutex
	wasOnline  bool
	lastResult *Result
}

// New creates an Engine. If logger is nil, a default logger writing to
// stderr is used.
func New(local LocalStore, rem remote.Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &Engine{
		local:  local,
		remote: rem,
		logger: logger,
		notify: make(chan Result, 16),
	}
}

// Results returns the channel carrying completed sync results. It is
// the status side-channel: local writes never wait on it, and slow
// consumers only lose notifications, never data.
func (e *Engine) Results() <-chan Result {
	return e.notify
}

// LastResult returns the most recently completed pass, or nil if none
// has run.
func (e *Engine) LastResult() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastResult
}

// HandleConnectivity reacts to a connectivity report. Only the
// offline→online transition starts a sync; repeated online reports
// while already online are ignored. Returns whether a pass ran.
func (e *Engine) HandleConnectivity(ctx context.Context, online bool) (Result, bool) {
	e.mu.Lock()
	edge := online && !e.wasOnline
	e.wasOnline = online
	e.mu.Unlock()

	if !edge {
		return Result{}, false
	}

	res, err := e.Sync(ctx)
	if errors.Is(err, ErrSyncInFlight) {
		return Result{}, false
	}
	return res, true
}

// Sync runs one pass. A concurrent call returns ErrSyncInFlight rather
// than starting a second pass over the same unsynced set. Once started,
// a pass runs to completion; there is no mid-sync cancellation beyond
// what the remote client honors through ctx.
func (e *Engine) Sync(ctx context.Context) (Result, error) {
	if !e.inFlight.TryLock() {
		return Result{}, ErrSyncInFlight
	}
	defer e.inFlight.Unlock()

	res := Result{StartedAt: time.Now()}
	err := e.run(ctx, &res)
	res.Duration = time.Since(res.StartedAt)
	res.Err = err

	e.mu.Lock()
	e.lastResult = &res
	e.mu.Unlock()

	select {
	case e.notify <- res:
	default:
		e.logger.Printf("Warning: result channel full, dropping notification")
	}

	if err != nil {
		return res, err
	}
	return res, nil
}

func (e *Engine) run(ctx context.Context, res *Result) error {
	entries, err := e.local.ListUnsynced(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect unsynced entries: %w", err)
	}
	res.Collected = len(entries)

	if len(entries) == 0 {
		e.logger.Printf("No unsynced entries")
		return nil
	}

	e.logger.Printf("Pushing %d entries", len(entries))

	// Entry batch is all-or-nothing: on failure nothing is marked and
	// the whole set stays eligible for the next trigger.
	if err := e.remote.UpsertEntries(ctx, entries); err != nil {
		return fmt.Errorf("remote entry push failed: %w", err)
	}

	// Image replacement is per entry. A failed delete is non-fatal
	// (the insert is still attempted); a failed insert excludes that
	// entry from the synced set but does not abort the others.
	var syncedIDs []string
	for _, entry := range entries {
		if err := e.remote.DeleteImages(ctx, entry.ID); err != nil {
			e.logger.Printf("Warning: failed to clear remote images for %s: %v", entry.ID, err)
		}

		if err := e.remote.InsertImages(ctx, entry.ID, entry.Images); err != nil {
			e.logger.Printf("Failed to push images for %s: %v", entry.ID, err)
			res.FailedIDs = append(res.FailedIDs, entry.ID)
			continue
		}

		syncedIDs = append(syncedIDs, entry.ID)
	}

	if err := e.local.MarkSynced(ctx, syncedIDs); err != nil {
		return fmt.Errorf("failed to mark entries synced: %w", err)
	}
	res.Pushed = len(syncedIDs)

	e.logger.Printf("Sync complete: pushed=%d failed=%d", len(syncedIDs), len(res.FailedIDs))

	if len(res.FailedIDs) > 0 {
		return fmt.Errorf("image push failed for %d of %d entries", len(res.FailedIDs), len(entries))
	}
	return nil
}
