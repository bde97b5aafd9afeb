package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/cache"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	store, err := cache.New(time.Minute, t.TempDir())
	require.NoError(t, err)

	key := cache.Key{MatchID: 1, TeamID: 2, Variant: cache.AvailableBatsmen}
	_, errMiss := store.Get(key)
	require.ErrorIs(t, errMiss, cache.ErrCacheMiss)

	require.NoError(t, store.Set(key, []byte(`{"players": []}`)))

	body, errGet := store.Get(key)
	require.NoError(t, errGet)
	require.JSONEq(t, `{"players": []}`, string(body))

	other := cache.Key{MatchID: 1, TeamID: 2, Variant: cache.BowlingSquad}
	_, errOther := store.Get(other)
	require.ErrorIs(t, errOther, cache.ErrCacheMiss)
}

func TestCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.New(time.Minute, dir)
	require.NoError(t, err)

	key := cache.Key{MatchID: 3, TeamID: 4}
	require.NoError(t, store.Set(key, []byte("{}")))

	entries, _ := filepath.Glob(filepath.Join(dir, "3_*"))
	require.Len(t, entries, 1)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(entries[0], old, old))

	_, errGet := store.Get(key)
	require.ErrorIs(t, errGet, cache.ErrCacheMiss)

	_, errStat := os.Stat(entries[0])
	require.ErrorIs(t, errStat, os.ErrNotExist)
}

func TestCacheInvalidate(t *testing.T) {
	store, err := cache.New(time.Minute, t.TempDir())
	require.NoError(t, err)

	keep := cache.Key{MatchID: 50, TeamID: 1}
	drop := cache.Key{MatchID: 5, TeamID: 1}
	require.NoError(t, store.Set(keep, []byte("{}")))
	require.NoError(t, store.Set(drop, []byte("{}")))

	require.NoError(t, store.Invalidate(5))

	_, errDrop := store.Get(drop)
	require.ErrorIs(t, errDrop, cache.ErrCacheMiss)

	_, errKeep := store.Get(keep)
	require.NoError(t, errKeep)
}
