// Package blackbox journals applied snapshots and dispatched actions into the local store.
package blackbox

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/store"
)

const (
	DefaultBuffer = 64
	// DefaultRetention is how long journal rows are kept before Start prunes them.
	DefaultRetention = 30 * 24 * time.Hour
)

var errBlackBox = errors.New("failed to save blackbox record")

// Record is a single journal entry, exactly one of the fields is set.
type Record struct {
	Snapshot *store.Snapshot
	Action   *store.Action
}

// BlackBox handles recording match activity for later diagnostics. Nothing it writes is
// ever read back into match state.
type BlackBox struct {
	db         *store.Queries
	records    chan Record
	lastDigest string
	dropped    atomic.Uint64
}

func New(conn *store.Queries, buffer int) *BlackBox {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &BlackBox{db: conn, records: make(chan Record, buffer)}
}

// RecordSnapshot queues a snapshot. When the buffer is full the record is dropped rather
// than stalling the caller.
func (b *BlackBox) RecordSnapshot(source state.Source, snap match.Snapshot) {
	if snap.Innings == nil {
		return
	}

	b.enqueue(Record{Snapshot: &store.Snapshot{
		MatchID:   int64(snap.MatchID),
		Source:    string(source),
		Status:    string(snap.Status),
		Inning:    int64(snap.Innings.CurrentInning),
		Runs:      int64(snap.Innings.Runs),
		Wickets:   int64(snap.Innings.Wickets),
		Overs:     snap.Innings.Overs.Display(),
		Digest:    Digest(snap),
		CreatedOn: time.Now(),
	}})
}

func (b *BlackBox) RecordAction(req dispatch.Request, result match.ActionResult, err error) {
	outcome := string(result.Status)
	message := result.Message

	if failure, failed := result.Failure(); failed {
		message = failure
	}

	if err != nil {
		outcome = "transport_error"
		message = err.Error()
	} else if outcome == "" {
		outcome = string(match.ResultSuccess)
	}

	b.enqueue(Record{Action: &store.Action{
		RequestID: req.RequestID,
		MatchID:   int64(req.MatchID),
		Action:    string(req.Action),
		Value:     req.ValueText(),
		Outcome:   outcome,
		Message:   message,
		CreatedOn: time.Now(),
	}})
}

// Dropped is the count of records discarded because the writer fell behind.
func (b *BlackBox) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *BlackBox) enqueue(record Record) {
	select {
	case b.records <- record:
	default:
		b.dropped.Add(1)
	}
}

func (b *BlackBox) Start(ctx context.Context) {
	removed, errPrune := b.db.Prune(ctx, time.Now().Add(-DefaultRetention))
	if errPrune != nil {
		slog.Warn("Failed to prune blackbox journal", slog.String("error", errPrune.Error()))
	} else if removed > 0 {
		slog.Debug("Pruned blackbox journal", slog.Int64("rows", removed))
	}

	for {
		select {
		case record := <-b.records:
			if err := b.write(ctx, record); err != nil {
				slog.Error("Failed to handle blackbox record", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *BlackBox) write(ctx context.Context, record Record) error {
	switch {
	case record.Snapshot != nil:
		if record.Snapshot.Digest == b.lastDigest {
			return nil
		}

		if err := b.db.InsertSnapshot(ctx, *record.Snapshot); err != nil {
			return errors.Join(err, errBlackBox)
		}

		b.lastDigest = record.Snapshot.Digest
	case record.Action != nil:
		if err := b.db.InsertAction(ctx, *record.Action); err != nil {
			return errors.Join(err, errBlackBox)
		}
	}

	return nil
}

// Digest fingerprints the wire form of a snapshot so repeated polls of an unchanged match
// collapse into one row.
func Digest(snap match.Snapshot) string {
	body, err := json.Marshal(snap.Wire())
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(body)

	return hex.EncodeToString(sum[:8])
}
