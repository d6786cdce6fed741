package syncer

import (
	"context"
	"log"
	"os"
	"time"
)

// Pinger reports remote reachability. remote.Store satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober polls a Pinger and reports connectivity transitions. It emits
// on its channel only when the online state changes, so consumers see
// edges, not levels.
type Prober struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	logger   *log.Logger

	changes chan bool
}

// NewProber creates a connectivity prober. If logger is nil, a default
// stderr logger is used.
func NewProber(p Pinger, interval time.Duration, logger *log.Logger) *Prober {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if logger == nil {
		logger = log.New(os.Stderr, "[probe] ", log.LstdFlags)
	}
	return &Prober{
		pinger:   p,
		interval: interval,
		timeout:  5 * time.Second,
		logger:   logger,
		changes:  make(chan bool, 4),
	}
}

// Changes returns the channel of connectivity transitions. The first
// observed state is always emitted so consumers can seed themselves.
func (p *Prober) Changes() <-chan bool {
	return p.changes
}

// Check performs a single probe.
func (p *Prober) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.pinger.Ping(ctx) == nil
}

// Run polls until ctx is cancelled, emitting state changes. It blocks;
// run it in its own goroutine.
func (p *Prober) Run(ctx context.Context) {
	// Seed with the initial state.
	online := p.Check(ctx)
	p.emit(ctx, online)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := p.Check(ctx)
			if now != online {
				if now {
					p.logger.Printf("Connectivity restored")
				} else {
					p.logger.Printf("Connectivity lost")
				}
				online = now
				p.emit(ctx, online)
			}
		}
	}
}

func (p *Prober) emit(ctx context.Context, online bool) {
	select {
	case p.changes <- online:
	case <-ctx.Done():
	}
}
