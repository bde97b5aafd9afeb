// Package state holds the single current match snapshot shared by the UI.
package state

import (
	"sync"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

// Source identifies which intake path delivered a snapshot.
type Source string

const (
	SourceAction Source = "action"
	SourcePoll   Source = "poll"
	SourcePush   Source = "push"
	SourceFetch  Source = "fetch"
)

// Store is the process wide slot for the current snapshot. It has one writer, the intake,
// and any number of readers. Writes replace the whole value; the last one applied wins.
type Store struct {
	mu       *sync.RWMutex
	current  match.Snapshot
	has      bool
	source   Source
	updated  time.Time
	revision uint64
}

func NewStore() *Store {
	return &Store{mu: &sync.RWMutex{}}
}

func (s *Store) Set(source Source, snap match.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = snap
	s.has = true
	s.source = source
	s.updated = time.Now()
	s.revision++
}

// Current returns the latest snapshot, false until the first one arrives.
func (s *Store) Current() (match.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, s.has
}

func (s *Store) Updated() (time.Time, Source) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.updated, s.source
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revision
}
