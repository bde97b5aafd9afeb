package squad_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/cache"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/squad"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	available int
	bowling   int
	fail      bool
}

func (s *countingSource) AvailablePlayers(_ context.Context, _ int, teamID int) (match.Squad, error) {
	s.available++
	if s.fail {
		return match.Squad{}, errors.New("offline")
	}

	return match.Squad{Players: []match.SquadPlayer{{ID: teamID*10 + 2, Name: "zed"}, {ID: teamID*10 + 1, Name: "Amir"}}}, nil
}

func (s *countingSource) BowlingSquad(_ context.Context, _ int) (match.Squad, error) {
	s.bowling++

	return match.Squad{Players: []match.SquadPlayer{{ID: 9, Name: "Chen"}}}, nil
}

func newFetcher(t *testing.T) (*squad.Fetcher, *countingSource) {
	t.Helper()

	store, err := cache.New(time.Minute, t.TempDir())
	require.NoError(t, err)

	source := &countingSource{}

	return squad.New(source, store, 1), source
}

func TestPlayersCachedAndSorted(t *testing.T) {
	fetcher, source := newFetcher(t)

	players, err := fetcher.Players(context.Background(), match.RoleStriker, 2)
	require.NoError(t, err)
	require.Equal(t, []match.SquadPlayer{{ID: 21, Name: "Amir"}, {ID: 22, Name: "zed"}}, players)

	again, err := fetcher.Players(context.Background(), match.RoleNonStriker, 2)
	require.NoError(t, err)
	require.Equal(t, players, again)
	require.Equal(t, 1, source.available)

	bowlers, err := fetcher.Players(context.Background(), match.RoleBowler, 3)
	require.NoError(t, err)
	require.Len(t, bowlers, 1)
	require.Equal(t, 1, source.bowling)
}

func TestPlayersInvalidate(t *testing.T) {
	fetcher, source := newFetcher(t)

	_, err := fetcher.Players(context.Background(), match.RoleStriker, 2)
	require.NoError(t, err)

	fetcher.Invalidate()

	_, err = fetcher.Players(context.Background(), match.RoleStriker, 2)
	require.NoError(t, err)
	require.Equal(t, 2, source.available)
}

func TestPlayersError(t *testing.T) {
	fetcher, source := newFetcher(t)
	source.fail = true

	_, err := fetcher.Players(context.Background(), match.RoleStriker, 2)
	require.ErrorIs(t, err, squad.ErrFetchSquad)
}
