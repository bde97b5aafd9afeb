package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type Snapshot struct {
	SnapshotID int64
	MatchID    int64
	Source     string
	Status     string
	Inning     int64
	Runs       int64
	Wickets    int64
	Overs      string
	Digest     string
	CreatedOn  time.Time
}

type Action struct {
	ActionID  int64
	RequestID string
	MatchID   int64
	Action    string
	Value     string
	Outcome   string
	Message   string
	CreatedOn time.Time
}

const insertSnapshot = `INSERT INTO snapshots (match_id, source, status, inning, runs, wickets, overs, digest, created_on)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertSnapshot(ctx context.Context, arg Snapshot) error {
	if _, err := q.db.ExecContext(ctx, insertSnapshot, arg.MatchID, arg.Source, arg.Status, arg.Inning,
		arg.Runs, arg.Wickets, arg.Overs, arg.Digest, arg.CreatedOn.UnixMilli()); err != nil {
		return errors.Join(err, ErrQuery)
	}

	return nil
}

const insertAction = `INSERT INTO actions (request_id, match_id, action, value, outcome, message, created_on)
VALUES (?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertAction(ctx context.Context, arg Action) error {
	if _, err := q.db.ExecContext(ctx, insertAction, arg.RequestID, arg.MatchID, arg.Action, arg.Value,
		arg.Outcome, arg.Message, arg.CreatedOn.UnixMilli()); err != nil {
		return errors.Join(err, ErrQuery)
	}

	return nil
}

const recentSnapshots = `SELECT snapshot_id, match_id, source, status, inning, runs, wickets, overs, digest, created_on
FROM snapshots WHERE match_id = ? ORDER BY snapshot_id DESC LIMIT ?`

// RecentSnapshots returns the newest journalled snapshots of a match first.
func (q *Queries) RecentSnapshots(ctx context.Context, matchID int64, limit int) ([]Snapshot, error) {
	rows, errQuery := q.db.QueryContext(ctx, recentSnapshots, matchID, limit)
	if errQuery != nil {
		return nil, errors.Join(errQuery, ErrQuery)
	}
	defer closeRows(rows)

	var items []Snapshot
	for rows.Next() {
		var (
			item    Snapshot
			created int64
		)
		if err := rows.Scan(&item.SnapshotID, &item.MatchID, &item.Source, &item.Status, &item.Inning,
			&item.Runs, &item.Wickets, &item.Overs, &item.Digest, &created); err != nil {
			return nil, errors.Join(err, ErrQuery)
		}
		item.CreatedOn = time.UnixMilli(created)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrQuery)
	}

	return items, nil
}

const recentActions = `SELECT action_id, request_id, match_id, action, value, outcome, message, created_on
FROM actions WHERE match_id = ? ORDER BY action_id DESC LIMIT ?`

// RecentActions returns the newest journalled actions of a match first.
func (q *Queries) RecentActions(ctx context.Context, matchID int64, limit int) ([]Action, error) {
	rows, errQuery := q.db.QueryContext(ctx, recentActions, matchID, limit)
	if errQuery != nil {
		return nil, errors.Join(errQuery, ErrQuery)
	}
	defer closeRows(rows)

	var items []Action
	for rows.Next() {
		var (
			item    Action
			created int64
		)
		if err := rows.Scan(&item.ActionID, &item.RequestID, &item.MatchID, &item.Action, &item.Value,
			&item.Outcome, &item.Message, &created); err != nil {
			return nil, errors.Join(err, ErrQuery)
		}
		item.CreatedOn = time.UnixMilli(created)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrQuery)
	}

	return items, nil
}

const (
	pruneSnapshots = `DELETE FROM snapshots WHERE created_on < ?`
	pruneActions   = `DELETE FROM actions WHERE created_on < ?`
)

// Prune deletes journal rows recorded before the cutoff, returning how many were removed.
func (q *Queries) Prune(ctx context.Context, before time.Time) (int64, error) {
	var removed int64

	for _, query := range []string{pruneSnapshots, pruneActions} {
		result, errExec := q.db.ExecContext(ctx, query, before.UnixMilli())
		if errExec != nil {
			return removed, errors.Join(errExec, ErrQuery)
		}

		count, errCount := result.RowsAffected()
		if errCount != nil {
			return removed, errors.Join(errCount, ErrQuery)
		}

		removed += count
	}

	return removed, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("Failed to close rows", slog.String("error", err.Error()))
	}
}
