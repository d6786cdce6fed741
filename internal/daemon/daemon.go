// Package daemon runs the background process that keeps the local
// journal pushed to the remote store.
//
// The daemon:
//  1. Polls remote reachability and hands offline→online transitions
//     to the sync engine (edge-triggered)
//  2. Watches the journal database file for local writes and schedules
//     a debounced sync while online
//  3. Handles graceful shutdown
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/krishnakoushik192/travel-journal/internal/syncer"
)

// Config holds daemon configuration.
type Config struct {
	// ProbeInterval is how often remote reachability is checked.
	ProbeInterval time.Duration

	// DebounceInterval is how long to wait after a local write before
	// syncing. Batches rapid edits together.
	DebounceInterval time.Duration

	// Logger for daemon activity.
	Logger *log.Logger

	// OnConnectivity, when set, is called with every online state
	// change the prober reports. Used to feed status consumers like the
	// dashboard; must not block.
	OnConnectivity func(online bool)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ProbeInterval:    15 * time.Second,
		DebounceInterval: 2 * time.Second,
		Logger:           log.New(os.Stderr, "[daemon] ", log.LstdFlags),
	}
}

// Daemon orchestrates connectivity probing, write watching, and sync
// triggering. Only one sync pass is ever in flight; extra triggers are
// coalesced by the engine.
type Daemon struct {
	engine *syncer.Engine
	prober *syncer.Prober
	dbPath string
	config *Config

	watcher *fsnotify.Watcher

	mu          sync.Mutex
	online      bool
	writeQueued time.Time

	wg sync.WaitGroup
}

// New creates a Daemon. dbPath is the journal database file to watch
// for local writes.
func New(engine *syncer.Engine, prober *syncer.Prober, dbPath string, config *Config) (*Daemon, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if prober == nil {
		return nil, fmt.Errorf("prober cannot be nil")
	}
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}
	if config == nil {
		config = DefaultConfig()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Daemon{
		engine:  engine,
		prober:  prober,
		dbPath:  dbPath,
		config:  config,
		watcher: watcher,
	}, nil
}

// Start runs the daemon until ctx is cancelled.
func (d *Daemon) Start(ctx context.Context) error {
	d.config.Logger.Println("Starting daemon")

	// fsnotify watches directories; events are filtered to the journal
	// database file (and its WAL sibling) below.
	if err := d.watcher.Add(filepath.Dir(d.dbPath)); err != nil {
		return fmt.Errorf("failed to watch database directory: %w", err)
	}

	d.wg.Add(3)
	go func() {
		defer d.wg.Done()
		d.prober.Run(ctx)
	}()
	go d.watchConnectivity(ctx)
	go d.watchWrites(ctx)

	<-ctx.Done()
	d.config.Logger.Println("Shutdown signal received")
	return d.stop()
}

func (d *Daemon) stop() error {
	if err := d.watcher.Close(); err != nil {
		d.config.Logger.Printf("Error closing watcher: %v", err)
	}
	d.wg.Wait()
	d.config.Logger.Println("Daemon stopped")
	return nil
}

// watchConnectivity feeds prober transitions to the sync engine.
func (d *Daemon) watchConnectivity(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-d.prober.Changes():
			if !ok {
				return
			}

			d.mu.Lock()
			d.online = online
			d.mu.Unlock()

			if d.config.OnConnectivity != nil {
				d.config.OnConnectivity(online)
			}

			if online {
				d.config.Logger.Printf("Online, triggering sync")
			} else {
				d.config.Logger.Printf("Offline, entries will queue locally")
			}

			// Fire-and-forget: a sync pass must never block the
			// connectivity loop.
			d.wg.Add(1)
			go func() {
				defer d.wg.Done()
				if res, ran := d.engine.HandleConnectivity(ctx, online); ran && res.Err != nil {
					d.config.Logger.Printf("Sync failed: %v", res.Err)
				}
			}()
		}
	}
}

// watchWrites debounces database file events into sync triggers.
func (d *Daemon) watchWrites(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.DebounceInterval)
	defer ticker.Stop()

	base := filepath.Base(d.dbPath)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			// The WAL file is where writes land between checkpoints.
			if name := filepath.Base(event.Name); name != base && !strings.HasPrefix(name, base+"-") {
				continue
			}

			// A pass's own MarkSynced write lands here too; the
			// follow-up sync collects nothing and the queue settles.
			d.mu.Lock()
			d.writeQueued = time.Now()
			d.mu.Unlock()

		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.config.Logger.Printf("Watcher error: %v", err)

		case <-ticker.C:
			d.maybeSyncPending(ctx)
		}
	}
}

// maybeSyncPending starts a sync when a local write has settled for a
// full debounce interval and the remote is reachable.
func (d *Daemon) maybeSyncPending(ctx context.Context) {
	d.mu.Lock()
	pending := !d.writeQueued.IsZero() && time.Since(d.writeQueued) >= d.config.DebounceInterval
	online := d.online
	if pending {
		d.writeQueued = time.Time{}
	}
	d.mu.Unlock()

	if !pending || !online {
		return
	}

	d.config.Logger.Printf("Local writes settled, triggering sync")
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if _, err := d.engine.Sync(ctx); err != nil && !errors.Is(err, syncer.ErrSyncInFlight) {
			d.config.Logger.Printf("Sync failed: %v", err)
		}
	}()
}
