// Package squad loads the player lists offered by the selection picker.
package squad

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/leighmacdonald/cricket-tui/internal/cache"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/network/encoding"
	"golang.org/x/exp/slices"
)

var ErrFetchSquad = errors.New("failed to fetch squad")

// Source is the backend side of the squad listings.
type Source interface {
	AvailablePlayers(ctx context.Context, matchID int, teamID int) (match.Squad, error)
	BowlingSquad(ctx context.Context, matchID int) (match.Squad, error)
}

func New(source Source, cache cache.Cache, matchID int) *Fetcher {
	return &Fetcher{source: source, cache: cache, matchID: matchID}
}

type Fetcher struct {
	source  Source
	cache   cache.Cache
	matchID int
}

// Players handles loading the candidates for a role. It first attempts to load from the local
// filesystem cache and if missing or expired, they will be fetched from the api, and
// subsequently cached.
func (f *Fetcher) Players(ctx context.Context, role match.Role, teamID int) ([]match.SquadPlayer, error) {
	key := cache.Key{MatchID: f.matchID, TeamID: teamID, Variant: cache.AvailableBatsmen}
	if role == match.RoleBowler {
		key.Variant = cache.BowlingSquad
	}

	if cached, found := f.cached(key); found {
		return cached, nil
	}

	var (
		squad    match.Squad
		errFetch error
	)

	if key.Variant == cache.BowlingSquad {
		squad, errFetch = f.source.BowlingSquad(ctx, f.matchID)
	} else {
		squad, errFetch = f.source.AvailablePlayers(ctx, f.matchID, teamID)
	}

	if errFetch != nil {
		return nil, errors.Join(errFetch, ErrFetchSquad)
	}

	players := sorted(squad.Players)

	var buf bytes.Buffer
	if errBody := json.NewEncoder(&buf).Encode(match.Squad{Players: players}); errBody != nil {
		return nil, errors.Join(errBody, ErrFetchSquad)
	}

	if errSet := f.cache.Set(key, buf.Bytes()); errSet != nil {
		slog.Warn("Failed to cache squad", slog.String("error", errSet.Error()))
	}

	return players, nil
}

// Invalidate forgets the cached lists, called after the roster on the field has changed.
func (f *Fetcher) Invalidate() {
	if err := f.cache.Invalidate(f.matchID); err != nil {
		slog.Warn("Failed to invalidate squad cache", slog.String("error", err.Error()))
	}
}

func (f *Fetcher) cached(key cache.Key) ([]match.SquadPlayer, bool) {
	body, errGet := f.cache.Get(key)
	if errGet != nil {
		if !errors.Is(errGet, cache.ErrCacheMiss) {
			slog.Warn("Failed to read squad cache", slog.String("error", errGet.Error()))
		}

		return nil, false
	}

	squad, errDecode := encoding.UnmarshalJSON[match.Squad](bytes.NewReader(body))
	if errDecode != nil {
		return nil, false
	}

	return squad.Players, true
}

func sorted(players []match.SquadPlayer) []match.SquadPlayer {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b match.SquadPlayer) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return out
}
