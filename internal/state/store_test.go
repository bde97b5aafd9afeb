package state_test

import (
	"sync"
	"testing"

	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/stretchr/testify/require"
)

func TestStoreLastWins(t *testing.T) {
	store := state.NewStore()
	_, found := store.Current()
	require.False(t, found)

	store.Set(state.SourcePoll, match.Snapshot{MatchID: 1, Innings: &match.Innings{Runs: 10}})
	store.Set(state.SourcePush, match.Snapshot{MatchID: 1, Innings: &match.Innings{Runs: 12}})

	current, found := store.Current()
	require.True(t, found)
	require.Equal(t, 12, current.Innings.Runs)

	_, source := store.Updated()
	require.Equal(t, state.SourcePush, source)
	require.Equal(t, uint64(2), store.Revision())
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := state.NewStore()
	waitGroup := sync.WaitGroup{}

	for idx := range 8 {
		waitGroup.Add(2)
		go func() {
			defer waitGroup.Done()
			store.Set(state.SourcePoll, match.Snapshot{MatchID: idx, Innings: &match.Innings{Runs: idx}})
		}()
		go func() {
			defer waitGroup.Done()
			if snap, ok := store.Current(); ok && snap.MatchID != snap.Innings.Runs {
				t.Errorf("torn snapshot: match %d runs %d", snap.MatchID, snap.Innings.Runs)
			}
		}()
	}

	waitGroup.Wait()
	require.Equal(t, uint64(8), store.Revision())
}
