package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/cricket-tui/internal/api"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	snapshot match.Snapshot
	sent     []dispatch.Request
	sendErr  error
	result   match.ActionResult
}

func (f *fakeBackend) MatchData(_ context.Context, _ int) (match.Snapshot, error) {
	return f.snapshot, nil
}

func (f *fakeBackend) Scorecard(_ context.Context, _ int) (match.Scorecard, error) {
	return match.Scorecard{}, nil
}

func (f *fakeBackend) Commentary(_ context.Context, _ int, inning int) (match.Commentary, error) {
	return match.Commentary{Inning: inning}, nil
}

func (f *fakeBackend) UpdateSettings(_ context.Context, _ int, _ api.Settings) (match.ActionResult, error) {
	return match.ActionResult{Status: match.ResultSuccess}, nil
}

func (f *fakeBackend) SelectSquad(_ context.Context, _ int, _ int, _ []int) (match.ActionResult, error) {
	return match.ActionResult{Status: match.ResultSuccess}, nil
}

func (f *fakeBackend) Send(_ context.Context, req dispatch.Request) (match.ActionResult, error) {
	f.sent = append(f.sent, req)

	return f.result, f.sendErr
}

type fakeSquads struct {
	invalidated int
}

func (f *fakeSquads) Players(_ context.Context, _ match.Role, teamID int) ([]match.SquadPlayer, error) {
	return []match.SquadPlayer{{ID: teamID + 1, Name: "Dev"}}, nil
}

func (f *fakeSquads) Invalidate() { f.invalidated++ }

type fakeVisibility struct {
	visible bool
}

func (f *fakeVisibility) SetVisible(visible bool) { f.visible = visible }

type countingRecorder struct {
	rejected map[state.Source]int
}

func (r *countingRecorder) SnapshotApplied(_ state.Source) {}

func (r *countingRecorder) SnapshotRejected(source state.Source) { r.rejected[source]++ }

func (r *countingRecorder) RenderWrites(_ int) {}

type fixture struct {
	root     *rootModel
	backend  *fakeBackend
	squads   *fakeSquads
	store    *state.Store
	board    *render.Board
	recorder *countingRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := state.NewStore()
	board := render.NewBoard()
	renderer := render.New(board)
	backend := &fakeBackend{snapshot: readySnapshot()}
	squads := &fakeSquads{}
	recorder := &countingRecorder{rejected: map[state.Source]int{}}

	root := newRootModel(context.Background(), Services{
		MatchID:    3,
		Backend:    backend,
		Intake:     intake.New(store, renderer, intake.WithRecorder(recorder)),
		Dispatcher: dispatch.New(backend, 3),
		Store:      store,
		Board:      board,
		Renderer:   renderer,
		Squads:     squads,
		Visibility: &fakeVisibility{},
	})

	return fixture{root: root, backend: backend, squads: squads, store: store, board: board, recorder: recorder}
}

func readySnapshot() match.Snapshot {
	return match.Snapshot{
		MatchID:     3,
		Status:      match.StatusLive,
		TotalOvers:  20,
		BattingTeam: match.Team{ID: 10, Name: "Lions"},
		BowlingTeam: match.Team{ID: 20, Name: "Tigers"},
		Innings:     &match.Innings{Runs: 42, Wickets: 1, Overs: "5.2", CurrentInning: 1},
		CurrentBatsmen: []match.PlayerRef{
			{ID: 1, Name: "Asha", OnStrike: true},
			{ID: 2, Name: "Bilal"},
		},
		CurrentBowler: &match.BowlerRef{ID: 9, Name: "Chen"},
	}
}

func TestSnapshotAppliedToBoard(t *testing.T) {
	fix := newFixture(t)

	fix.root.Update(command.SnapshotMsg{Source: state.SourcePoll, Snapshot: readySnapshot()})

	require.Equal(t, "42/1", fix.board.Text(render.FieldScore))
	_, source := fix.store.Updated()
	require.Equal(t, state.SourcePoll, source)
}

func TestSnapshotWithoutInningsKeepsBoard(t *testing.T) {
	fix := newFixture(t)
	fix.root.Update(command.SnapshotMsg{Source: state.SourcePoll, Snapshot: readySnapshot()})

	broken := readySnapshot()
	broken.Innings = nil
	fix.root.Update(command.SnapshotMsg{Source: state.SourcePush, Snapshot: broken})

	require.Equal(t, "42/1", fix.board.Text(render.FieldScore))
}

func TestPolledPayloadWithoutInningsIsRejected(t *testing.T) {
	fix := newFixture(t)
	fix.root.Update(command.SnapshotMsg{Source: state.SourcePoll, Snapshot: readySnapshot()})

	cmd := fix.root.onSnapshot(command.SnapshotMsg{Source: state.SourcePoll, Err: match.ErrMissingInnings})
	require.Nil(t, cmd)
	require.Equal(t, 1, fix.recorder.rejected[state.SourcePoll])
	require.Equal(t, "42/1", fix.board.Text(render.FieldScore))

	offline, ok := fix.root.onSnapshot(command.SnapshotMsg{
		Source: state.SourcePoll, Err: errors.New("connection refused"),
	})().(command.StatusMsg)
	require.True(t, ok)
	require.True(t, offline.Err)
	require.Equal(t, 1, fix.recorder.rejected[state.SourcePoll])
}

func TestBlockedActionOpensSelection(t *testing.T) {
	fix := newFixture(t)

	snap := readySnapshot()
	snap.CurrentBatsmen = nil
	fix.store.Set(state.SourcePoll, snap)

	msg := fix.root.onAction(command.ActionMsg{Request: dispatch.Score(dispatch.ActionRun, 1, "")})()
	effects, ok := msg.(command.EffectsMsg)
	require.True(t, ok)
	require.Equal(t, []intake.Effect{
		intake.Notify{Message: "ACTION BLOCKED: Please select a STRIKER first.", Err: true},
		intake.OpenSelection{Role: match.RoleStriker, TeamID: 10, Title: "Select Striker"},
	}, effects.Effects)
	require.Empty(t, fix.backend.sent)
}

func TestCompletedMatchBlocksUndo(t *testing.T) {
	fix := newFixture(t)

	snap := readySnapshot()
	snap.Status = match.StatusCompleted
	fix.store.Set(state.SourcePoll, snap)

	msg := fix.root.onAction(command.ActionMsg{Request: dispatch.Simple(dispatch.ActionUndo)})()
	effects, ok := msg.(command.EffectsMsg)
	require.True(t, ok)
	require.Equal(t, []intake.Effect{
		intake.Notify{Message: "Match is completed. No more changes allowed.", Err: true},
	}, effects.Effects)
	require.Equal(t, model.ModalNone, fix.root.viewState.Modal)
}

func TestActionWithVariantsOpensMenu(t *testing.T) {
	fix := newFixture(t)
	fix.store.Set(state.SourcePoll, readySnapshot())

	fix.root.onAction(command.ActionMsg{Request: dispatch.Simple(dispatch.ActionWide)})

	require.Equal(t, model.ModalPicker, fix.root.viewState.Modal)
	require.Empty(t, fix.backend.sent)
}

func TestEndInningNeedsConfirmation(t *testing.T) {
	fix := newFixture(t)
	fix.store.Set(state.SourcePoll, readySnapshot())

	req := dispatch.Simple(dispatch.ActionEndInning)
	require.Nil(t, fix.root.onAction(command.ActionMsg{Request: req}))
	require.Equal(t, model.ModalConfirm, fix.root.viewState.Modal)
	require.Empty(t, fix.backend.sent)

	fix.root.viewState.Modal = model.ModalNone
	msg := fix.root.onAction(command.ActionMsg{Request: req, Confirmed: true})()

	result, ok := msg.(command.ActionResultMsg)
	require.True(t, ok)
	require.NoError(t, result.Err)
	require.Len(t, fix.backend.sent, 1)
	require.Equal(t, dispatch.ActionEndInning, fix.backend.sent[0].Action)
	require.NotEmpty(t, fix.backend.sent[0].RequestID)
}

func TestSendFailureIsReported(t *testing.T) {
	fix := newFixture(t)
	fix.store.Set(state.SourcePoll, readySnapshot())
	fix.backend.sendErr = errors.New("connection refused")

	msg := fix.root.onAction(command.ActionMsg{Request: dispatch.Score(dispatch.ActionRun, 2, "")})()
	result, ok := msg.(command.ActionResultMsg)
	require.True(t, ok)
	require.ErrorIs(t, result.Err, dispatch.ErrSend)

	status, ok := fix.root.onActionResult(result)().(command.StatusMsg)
	require.True(t, ok)
	require.True(t, status.Err)
	require.Len(t, fix.backend.sent, 1)
}

func TestRosterChangeInvalidatesSquads(t *testing.T) {
	fix := newFixture(t)
	fix.store.Set(state.SourcePoll, readySnapshot())

	fix.root.onActionResult(command.ActionResultMsg{
		Request: dispatch.SetBowler(21),
		Result:  match.ActionResult{Status: match.ResultSuccess},
	})

	require.Equal(t, 1, fix.squads.invalidated)
}

func TestSelectionFlow(t *testing.T) {
	fix := newFixture(t)
	fix.store.Set(state.SourcePoll, readySnapshot())

	msg := fix.root.onAction(command.ActionMsg{Request: dispatch.SetBowler(0)})()
	selection, ok := msg.(command.SelectionMsg)
	require.True(t, ok)
	require.Equal(t, match.RoleBowler, selection.Selection.Role)
	require.Equal(t, 20, selection.Selection.TeamID)

	players, ok := fix.root.loadPlayers(selection.Selection)().(command.PlayersMsg)
	require.True(t, ok)
	require.Equal(t, []match.SquadPlayer{{ID: 21, Name: "Dev"}}, players.Players)

	fix.root.onPlayers(players)
	require.Equal(t, model.ModalPicker, fix.root.viewState.Modal)
}

func TestRunEffects(t *testing.T) {
	fix := newFixture(t)

	cmds := fix.root.runEffects([]intake.Effect{
		intake.Notify{Message: "Innings Break! Target set: 121 runs"},
		intake.SwitchSection{Section: intake.SectionSquad},
		intake.Refetch{},
	})
	require.Len(t, cmds, 3)

	status, ok := cmds[0]().(command.StatusMsg)
	require.True(t, ok)
	require.Equal(t, "Innings Break! Target set: 121 runs", status.Message)

	viewState, ok := cmds[1]().(model.ViewState)
	require.True(t, ok)
	require.Equal(t, model.SectionSquad, viewState.Section)

	snapshot, ok := cmds[2]().(command.SnapshotMsg)
	require.True(t, ok)
	require.Equal(t, state.SourceFetch, snapshot.Source)
	require.Equal(t, 42, snapshot.Snapshot.Innings.Runs)
}

func TestFocusTogglesVisibility(t *testing.T) {
	fix := newFixture(t)
	visibility, ok := fix.root.services.Visibility.(*fakeVisibility)
	require.True(t, ok)

	fix.root.Update(tea.FocusMsg{})
	require.True(t, visibility.visible)

	fix.root.Update(tea.BlurMsg{})
	require.False(t, visibility.visible)
}

func TestFetchSquads(t *testing.T) {
	fix := newFixture(t)
	fix.store.Set(state.SourcePoll, readySnapshot())

	squads, ok := fix.root.fetchSquads()().(command.SquadMsg)
	require.True(t, ok)
	require.NoError(t, squads.Err)
	require.Equal(t, 10, squads.BattingID)
	require.Equal(t, []match.SquadPlayer{{ID: 11, Name: "Dev"}}, squads.Batting)
	require.Equal(t, []match.SquadPlayer{{ID: 21, Name: "Dev"}}, squads.Bowling)
}
