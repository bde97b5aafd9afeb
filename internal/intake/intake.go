// Package intake funnels snapshots from action responses, polling and the push stream into a
// single Apply entry point that stores, derives and renders them.
package intake

import (
	"errors"
	"log/slog"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/state"
)

// DefaultSelectionDelay is the pause between a wicket and the new batsman picker, long
// enough for the empty slot to be seen.
const DefaultSelectionDelay = 300 * time.Millisecond

var ErrMalformed = errors.New("malformed snapshot")

// Recorder receives counters about applied snapshots.
type Recorder interface {
	SnapshotApplied(source state.Source)
	SnapshotRejected(source state.Source)
	RenderWrites(count int)
}

// Journal receives every applied snapshot for diagnostics.
type Journal interface {
	RecordSnapshot(source state.Source, snap match.Snapshot)
}

type Option func(*Intake)

func WithRecorder(recorder Recorder) Option {
	return func(in *Intake) { in.recorder = recorder }
}

func WithJournal(journal Journal) Option {
	return func(in *Intake) { in.journal = journal }
}

func WithSelectionDelay(delay time.Duration) Option {
	return func(in *Intake) { in.selectionDelay = delay }
}

// Intake is the only writer of the snapshot store.
type Intake struct {
	store          *state.Store
	renderer       *render.Renderer
	recorder       Recorder
	journal        Journal
	selectionDelay time.Duration
	view           derive.View
}

func New(store *state.Store, renderer *render.Renderer, opts ...Option) *Intake {
	in := &Intake{
		store:          store,
		renderer:       renderer,
		selectionDelay: DefaultSelectionDelay,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Apply stores, derives and renders a snapshot. A snapshot without innings is rejected and
// nothing already rendered is touched.
func (in *Intake) Apply(source state.Source, snap match.Snapshot) error {
	if snap.Innings == nil {
		if in.recorder != nil {
			in.recorder.SnapshotRejected(source)
		}

		slog.Warn("Skipping snapshot without innings", slog.String("source", string(source)))

		return ErrMalformed
	}

	in.store.Set(source, snap)
	in.render(snap)

	if in.recorder != nil {
		in.recorder.SnapshotApplied(source)
	}

	if in.journal != nil {
		in.journal.RecordSnapshot(source, snap)
	}

	return nil
}

// ApplyBytes decodes a raw payload, as received from a poll or push message, and applies it.
func (in *Intake) ApplyBytes(source state.Source, payload []byte) error {
	snap, errDecode := match.DecodeBytes(payload)
	if errDecode != nil {
		if in.recorder != nil {
			in.recorder.SnapshotRejected(source)
		}

		return errors.Join(errDecode, ErrMalformed)
	}

	return in.Apply(source, snap)
}

// Reject counts a payload that reached the client but could not be used as a snapshot. The
// held snapshot and the board are left as they are.
func (in *Intake) Reject(source state.Source, err error) error {
	if in.recorder != nil {
		in.recorder.SnapshotRejected(source)
	}

	slog.Warn("Rejected snapshot", slog.String("source", string(source)), slog.String("error", err.Error()))

	return errors.Join(err, ErrMalformed)
}

// Rerender draws the held snapshot again, returning false when there is none.
func (in *Intake) Rerender() bool {
	snap, found := in.store.Current()
	if !found {
		return false
	}

	in.render(snap)

	return true
}

// View returns the most recently derived view.
func (in *Intake) View() derive.View {
	return in.view
}

func (in *Intake) render(snap match.Snapshot) {
	in.view = derive.Derive(snap)

	writes := in.renderer.Render(in.view)
	if in.recorder != nil {
		in.recorder.RenderWrites(writes)
	}
}

// HandleActionResponse applies the snapshot carried by an action response as dictated by its
// status and returns the follow-ups for the UI.
func (in *Intake) HandleActionResponse(result match.ActionResult) []Effect {
	if msg, failed := result.Failure(); failed {
		return []Effect{Notify{Message: msg, Err: true}}
	}

	switch result.Status {
	case match.ResultWicketFall:
		return in.onWicketFall(result)
	case match.ResultOverComplete:
		effects := in.applyCarried(result)

		return append(effects, OpenSelection{
			Role:   match.RoleBowler,
			TeamID: in.bowlingTeamID(),
			Title:  "Select Next Bowler",
		})
	case match.ResultInningBreak:
		// The carried payload does not describe the new innings, always fetch it.
		return []Effect{
			Notify{Message: result.Message},
			SwitchSection{Section: SectionSquad},
			Refetch{},
		}
	case match.ResultInningsOver:
		effects := in.applyCarried(result)

		return append(effects, Notify{Message: result.Message})
	default:
		effects := in.applyCarried(result)
		if result.Result != "" {
			effects = append(effects, Notify{Message: result.Result})
		}

		return effects
	}
}

// applyCarried applies the response snapshot, or asks for a fetch when none was sent.
func (in *Intake) applyCarried(result match.ActionResult) []Effect {
	snap, found := result.Snapshot()
	if !found {
		return []Effect{Refetch{}}
	}

	if err := in.Apply(state.SourceAction, snap); err != nil {
		return []Effect{Refetch{}}
	}

	return nil
}

func (in *Intake) onWicketFall(result match.ActionResult) []Effect {
	snap, found := result.Snapshot()
	if !found || in.Apply(state.SourceAction, snap) != nil {
		in.Rerender()
	}

	return []Effect{Refetch{}, OpenSelection{
		Role:   in.vacantBatsman(),
		TeamID: in.battingTeamID(),
		Title:  "Select New Batsman",
		Delay:  in.selectionDelay,
	}}
}

func (in *Intake) vacantBatsman() match.Role {
	snap, found := in.store.Current()
	if !found {
		return match.RoleStriker
	}

	striker, nonStriker := snap.Batsmen()
	if striker.Valid() && !nonStriker.Valid() {
		return match.RoleNonStriker
	}

	return match.RoleStriker
}

func (in *Intake) battingTeamID() int {
	snap, _ := in.store.Current()

	return snap.BattingTeam.ID
}

func (in *Intake) bowlingTeamID() int {
	snap, _ := in.store.Current()

	return snap.BowlingTeam.ID
}
