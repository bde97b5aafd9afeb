package poll_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/poll"
	"github.com/stretchr/testify/require"
)

func TestPollerDeliversAndStops(t *testing.T) {
	var calls atomic.Int32

	poller := poll.New(func(_ context.Context) (match.Snapshot, error) {
		calls.Add(1)

		return match.Snapshot{MatchID: 2, Innings: &match.Innings{}}, nil
	}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan match.Snapshot, 64)
	done := make(chan struct{})

	go func() {
		poller.Run(ctx, func(snap match.Snapshot, err error) {
			if err != nil {
				t.Errorf("unexpected poll error: %v", err)
			}

			select {
			case results <- snap:
			default:
			}
		})
		close(done)
	}()

	select {
	case snap := <-results:
		require.Equal(t, 2, snap.MatchID)
	case <-time.After(time.Second):
		t.Fatal("no poll result")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}

	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, stopped, calls.Load())
}

func TestPollerSuspendedWhileHidden(t *testing.T) {
	var calls atomic.Int32

	poller := poll.New(func(_ context.Context) (match.Snapshot, error) {
		calls.Add(1)

		return match.Snapshot{}, errors.New("offline")
	}, 2*time.Millisecond)
	poller.SetVisible(false)
	require.False(t, poller.Visible())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 64)
	go poller.Run(ctx, func(_ match.Snapshot, err error) {
		select {
		case errs <- err:
		default:
		}
	})

	require.Eventually(t, func() bool { return poller.Skipped() >= 3 }, time.Second, time.Millisecond)
	require.Equal(t, int32(0), calls.Load())

	poller.SetVisible(true)

	select {
	case err := <-errs:
		require.EqualError(t, err, "offline")
	case <-time.After(time.Second):
		t.Fatal("poller did not resume")
	}
}

func TestPollerDefaultInterval(t *testing.T) {
	poller := poll.New(nil, 0)
	require.True(t, poller.Visible())
}
