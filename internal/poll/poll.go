// Package poll periodically fetches the current snapshot while the view is visible.
package poll

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

const DefaultInterval = 2 * time.Second

// FetchFunc loads the current snapshot.
type FetchFunc func(ctx context.Context) (match.Snapshot, error)

// SinkFunc receives the outcome of every fetch that was attempted.
type SinkFunc func(snap match.Snapshot, err error)

type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	visible  *atomic.Bool
	skipped  *atomic.Uint64
}

func New(fetch FetchFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}

	visible := &atomic.Bool{}
	visible.Store(true)

	return &Poller{fetch: fetch, interval: interval, visible: visible, skipped: &atomic.Uint64{}}
}

// SetVisible suspends polling while false. Ticks still fire but do nothing.
func (p *Poller) SetVisible(visible bool) {
	if p.visible.Swap(visible) != visible {
		slog.Debug("Poller visibility changed", slog.Bool("visible", visible))
	}
}

func (p *Poller) Visible() bool {
	return p.visible.Load()
}

// Skipped is the number of ticks ignored while hidden.
func (p *Poller) Skipped() uint64 {
	return p.skipped.Load()
}

// Run ticks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context, sink SinkFunc) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.visible.Load() {
				p.skipped.Add(1)

				continue
			}

			snap, err := p.fetch(ctx)
			if ctx.Err() != nil {
				return
			}

			sink(snap, err)
		}
	}
}
