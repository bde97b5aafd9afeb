// Package demo implements a replay scoring backend. It serves a recorded sequence of match
// snapshots over the same HTTP and push endpoints as the real backend, stepping forward one
// frame for every scoring action.
package demo

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/stream"
	"github.com/r3labs/sse/v2"
)

const maxLineSize = 1 << 20

var (
	ErrReplay   = errors.New("failed to read replay")
	ErrNoFrames = errors.New("replay contains no snapshots")
)

// Load reads one snapshot per line. Blank lines and lines starting with # are skipped.
func Load(reader io.Reader) ([]match.Wire, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		frames []match.Wire
		lineNo int
	)

	for scanner.Scan() {
		lineNo++

		frame, skip, errFrame := parseLine(scanner.Text())
		if errFrame != nil {
			return nil, errors.Join(errFrame, fmt.Errorf("%w: line %d", ErrReplay, lineNo))
		}

		if !skip {
			frames = append(frames, frame)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Join(err, ErrReplay)
	}

	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	return frames, nil
}

func parseLine(line string) (match.Wire, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return match.Wire{}, true, nil
	}

	var frame match.Wire
	if err := json.Unmarshal([]byte(line), &frame); err != nil {
		return match.Wire{}, false, err
	}

	if frame.Innings == nil {
		return match.Wire{}, false, match.ErrMissingInnings
	}

	return frame, false, nil
}

// Backend holds the replay cursor. current is the frame at the cursor plus any roster edits
// made since it was reached.
type Backend struct {
	mu      *sync.RWMutex
	matchID int
	frames  []match.Wire
	cursor  int
	current match.Wire
	locked  bool
	squads  map[int]map[int]string
	events  *sse.Server
	sockets map[chan []byte]struct{}
}

func New(frames []match.Wire) (*Backend, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	events := sse.New()
	events.AutoReplay = false

	backend := &Backend{
		mu:      &sync.RWMutex{},
		matchID: frames[0].MatchID,
		frames:  frames,
		current: clone(frames[0]),
		squads:  map[int]map[int]string{},
		events:  events,
		sockets: map[chan []byte]struct{}{},
	}

	events.CreateStream(stream.StreamName(backend.matchID))

	for _, frame := range frames {
		backend.learnSquads(frame)
	}

	return backend, nil
}

func (b *Backend) MatchID() int {
	return b.matchID
}

// Current returns the frame being served.
func (b *Backend) Current() match.Wire {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return clone(b.current)
}

// Append adds a newly recorded frame and moves the cursor onto it.
func (b *Backend) Append(frame match.Wire) {
	b.mu.Lock()
	b.frames = append(b.frames, frame)
	b.learnSquads(frame)
	b.seek(len(b.frames) - 1)
	current := clone(b.current)
	b.mu.Unlock()

	b.publish(current)
}

// Close stops the push streams.
func (b *Backend) Close() {
	b.events.Close()
}

// seek moves the cursor, discarding roster edits. Callers hold the lock.
func (b *Backend) seek(idx int) {
	b.cursor = idx
	b.current = clone(b.frames[idx])

	if b.locked {
		b.current.Status = match.StatusCompleted
	}
}

// learnSquads remembers every player seen so the roster endpoints have something to offer.
func (b *Backend) learnSquads(frame match.Wire) {
	for _, batsman := range frame.CurrentBatsmen {
		b.remember(frame.BattingTeamID, batsman.ID, batsman.Name)
	}

	if frame.CurrentBowler != nil {
		b.remember(frame.BowlingTeamID, frame.CurrentBowler.ID, frame.CurrentBowler.Name)
	}
}

func (b *Backend) remember(teamID int, playerID int, name string) {
	if teamID == 0 || playerID == 0 || name == "" {
		return
	}

	if b.squads[teamID] == nil {
		b.squads[teamID] = map[int]string{}
	}

	b.squads[teamID][playerID] = name
}

func clone(frame match.Wire) match.Wire {
	out := frame
	out.CurrentBatsmen = append([]match.PlayerRef(nil), frame.CurrentBatsmen...)
	out.ThisOverBalls = append([]match.BallEvent(nil), frame.ThisOverBalls...)

	if frame.CurrentBowler != nil {
		bowler := *frame.CurrentBowler
		out.CurrentBowler = &bowler
	}

	if frame.Innings != nil {
		innings := *frame.Innings
		out.Innings = &innings
	}

	return out
}
