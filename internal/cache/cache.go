// Package cache implements a very trivial filesystem cache for squad listings.
package cache

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/config"
)

// DefaultTTL is how long until an entry is considered stale.
const DefaultTTL = 10 * time.Minute

var (
	ErrCacheMiss = errors.New("cache miss error")
	errCacheSet  = errors.New("cache set error")
	errCacheDir  = errors.New("cache dir error")
)

type Cache interface {
	Get(key Key) ([]byte, error)
	Set(key Key, content []byte) error
	Invalidate(matchID int) error
}

type ItemVariant int

const (
	// AvailableBatsmen are the batting side players still to bat.
	AvailableBatsmen ItemVariant = iota
	// BowlingSquad is the full fielding side.
	BowlingSquad
)

// Key identifies a cached listing.
type Key struct {
	MatchID int
	TeamID  int
	Variant ItemVariant
}

func (k Key) name() string {
	return strconv.Itoa(k.MatchID) + "_" + strconv.Itoa(k.TeamID) + "_" + strconv.Itoa(int(k.Variant))
}

// Filesystem implements the default filesystem based Cache interface.
type Filesystem struct {
	cacheDir string
	ttl      time.Duration
}

// New creates the cache under the user cache dir, or under dir when given.
func New(ttl time.Duration, dir ...string) (Filesystem, error) {
	cachePath := config.PathCache(config.CacheDirName)
	if len(dir) > 0 && dir[0] != "" {
		cachePath = dir[0]
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		slog.Error("Failed to make cache root", slog.String("error", err.Error()),
			slog.String("path", cachePath))

		return Filesystem{}, errors.Join(err, errCacheDir)
	}

	return Filesystem{cacheDir: cachePath, ttl: ttl}, nil
}

func (c Filesystem) Set(key Key, content []byte) error {
	file, errFile := os.Create(path.Join(c.cacheDir, key.name()))
	if errFile != nil {
		return errors.Join(errFile, errCacheSet)
	}

	defer func(file io.Closer) {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close cache file", slog.String("error", err.Error()))
		}
	}(file)

	if _, err := file.Write(content); err != nil {
		return errors.Join(err, errCacheSet)
	}

	return nil
}

// Get returns a cached entry. Entries older than the ttl are removed and reported as a miss.
func (c Filesystem) Get(key Key) ([]byte, error) {
	fullPath := path.Join(c.cacheDir, key.name())

	stat, errStat := os.Stat(fullPath)
	if errStat != nil {
		return nil, errors.Join(errStat, ErrCacheMiss)
	}

	if time.Since(stat.ModTime()) > c.ttl {
		if err := os.Remove(fullPath); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, ErrCacheMiss
	}

	body, errRead := os.ReadFile(fullPath)
	if errRead != nil {
		return nil, errors.Join(errRead, ErrCacheMiss)
	}

	return body, nil
}

// Invalidate drops every entry of a match, used once the roster changes.
func (c Filesystem) Invalidate(matchID int) error {
	matches, errGlob := filepath.Glob(path.Join(c.cacheDir, strconv.Itoa(matchID)+"_*"))
	if errGlob != nil {
		return errGlob
	}

	var errs error
	for _, entry := range matches {
		if err := os.Remove(entry); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
