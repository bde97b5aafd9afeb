package blackbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/blackbox"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/store"
	"github.com/stretchr/testify/require"
)

func snapshot(runs int) match.Snapshot {
	return match.Snapshot{
		MatchID: 4,
		Status:  match.StatusLive,
		Innings: &match.Innings{Runs: runs, Wickets: 1, Overs: "3.2", CurrentInning: 1},
	}
}

func TestBlackBox(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	conn, err := store.Open(ctx, "", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	queries := store.New(conn)
	box := blackbox.New(queries, 0)

	go box.Start(ctx)

	box.RecordSnapshot(state.SourcePoll, snapshot(20))
	box.RecordSnapshot(state.SourcePoll, snapshot(20))
	box.RecordSnapshot(state.SourcePush, snapshot(24))
	box.RecordSnapshot(state.SourcePoll, match.Snapshot{MatchID: 4})

	req := dispatch.Score(dispatch.ActionRun, 4, "")
	req.RequestID = "r-1"
	req.MatchID = 4
	box.RecordAction(req, match.ActionResult{Status: match.ResultError, Message: "Select a bowler"}, nil)

	failed := dispatch.Simple(dispatch.ActionUndo)
	failed.RequestID = "r-2"
	failed.MatchID = 4
	box.RecordAction(failed, match.ActionResult{}, errors.New("connection refused"))

	require.Eventually(t, func() bool {
		actions, errActions := queries.RecentActions(ctx, 4, 10)

		return errActions == nil && len(actions) == 2
	}, time.Second, 10*time.Millisecond)

	snaps, err := queries.RecentSnapshots(ctx, 4, 10)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, int64(24), snaps[0].Runs)
	require.Equal(t, "push", snaps[0].Source)
	require.Equal(t, "3.2", snaps[0].Overs)

	actions, err := queries.RecentActions(ctx, 4, 10)
	require.NoError(t, err)
	require.Equal(t, "transport_error", actions[0].Outcome)
	require.Equal(t, "error", actions[1].Outcome)
	require.Equal(t, "Select a bowler", actions[1].Message)
	require.Equal(t, "4", actions[1].Value)
	require.Zero(t, box.Dropped())
}

func TestDigest(t *testing.T) {
	require.Equal(t, blackbox.Digest(snapshot(1)), blackbox.Digest(snapshot(1)))
	require.NotEqual(t, blackbox.Digest(snapshot(1)), blackbox.Digest(snapshot(2)))
}
