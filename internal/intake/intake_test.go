package intake_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	applied  map[state.Source]int
	rejected map[state.Source]int
	writes   int
}

func newRecorder() *countingRecorder {
	return &countingRecorder{applied: map[state.Source]int{}, rejected: map[state.Source]int{}}
}

func (r *countingRecorder) SnapshotApplied(source state.Source)  { r.applied[source]++ }
func (r *countingRecorder) SnapshotRejected(source state.Source) { r.rejected[source]++ }
func (r *countingRecorder) RenderWrites(count int)               { r.writes += count }

type fixture struct {
	store    *state.Store
	board    *render.Board
	recorder *countingRecorder
	intake   *intake.Intake
}

func newFixture() fixture {
	store := state.NewStore()
	board := render.NewBoard()
	recorder := newRecorder()

	return fixture{
		store:    store,
		board:    board,
		recorder: recorder,
		intake: intake.New(store, render.New(board),
			intake.WithRecorder(recorder), intake.WithSelectionDelay(time.Millisecond)),
	}
}

func liveSnapshot() match.Snapshot {
	return match.Snapshot{
		MatchID:     7,
		TotalOvers:  20,
		Status:      match.StatusLive,
		BattingTeam: match.Team{ID: 1, Name: "Lions"},
		BowlingTeam: match.Team{ID: 2, Name: "Tigers"},
		Innings:     &match.Innings{Runs: 42, Wickets: 1, Overs: "5.2", CurrentInning: 1},
		CurrentBatsmen: []match.PlayerRef{
			{ID: 1, Name: "Asha", OnStrike: true},
			{ID: 2, Name: "Bilal"},
		},
		CurrentBowler: &match.BowlerRef{ID: 9, Name: "Chen"},
	}
}

func payload(t *testing.T, snap match.Snapshot) json.RawMessage {
	t.Helper()

	body, err := json.Marshal(snap.Wire())
	require.NoError(t, err)

	return body
}

func result(t *testing.T, status match.ResultStatus, message string, data json.RawMessage) match.ActionResult {
	t.Helper()

	body, err := json.Marshal(map[string]any{"status": status, "message": message, "data": data})
	require.NoError(t, err)

	decoded, err := match.DecodeActionResult(body)
	require.NoError(t, err)

	return decoded
}

func TestApplyRejectsMissingInnings(t *testing.T) {
	fix := newFixture()
	require.NoError(t, fix.intake.Apply(state.SourcePoll, liveSnapshot()))
	before := fix.board.Version()

	broken := liveSnapshot()
	broken.Innings = nil
	broken.BattingTeam.Name = "Changed"

	require.ErrorIs(t, fix.intake.Apply(state.SourcePush, broken), intake.ErrMalformed)
	require.Equal(t, before, fix.board.Version())
	require.Equal(t, "Lions", fix.board.Text(render.FieldBattingName))
	require.Equal(t, uint64(1), fix.store.Revision())
	require.Equal(t, 1, fix.recorder.rejected[state.SourcePush])
}

func TestApplyBytes(t *testing.T) {
	fix := newFixture()

	require.NoError(t, fix.intake.ApplyBytes(state.SourcePush, payload(t, liveSnapshot())))
	require.Equal(t, "42/1", fix.board.Text(render.FieldScore))
	require.Equal(t, 1, fix.recorder.applied[state.SourcePush])

	require.ErrorIs(t, fix.intake.ApplyBytes(state.SourcePush, []byte(`{"match_id": 7}`)), intake.ErrMalformed)
	require.ErrorIs(t, fix.intake.ApplyBytes(state.SourcePush, []byte(`not json`)), intake.ErrMalformed)
	require.Equal(t, 2, fix.recorder.rejected[state.SourcePush])
}

func TestReject(t *testing.T) {
	fix := newFixture()
	require.NoError(t, fix.intake.Apply(state.SourcePoll, liveSnapshot()))

	err := fix.intake.Reject(state.SourcePoll, match.ErrMissingInnings)
	require.ErrorIs(t, err, intake.ErrMalformed)
	require.ErrorIs(t, err, match.ErrMissingInnings)
	require.Equal(t, 1, fix.recorder.rejected[state.SourcePoll])
	require.Equal(t, "42/1", fix.board.Text(render.FieldScore))
}

func TestRerenderWithoutSnapshot(t *testing.T) {
	fix := newFixture()
	require.False(t, fix.intake.Rerender())

	require.NoError(t, fix.intake.Apply(state.SourceFetch, liveSnapshot()))
	require.True(t, fix.intake.Rerender())
}

func TestWicketFallOpensBatsmanSelection(t *testing.T) {
	fix := newFixture()
	require.NoError(t, fix.intake.Apply(state.SourceFetch, liveSnapshot()))

	afterWicket := liveSnapshot()
	afterWicket.Innings.Wickets = 2
	afterWicket.CurrentBatsmen = []match.PlayerRef{{ID: 2, Name: "Bilal"}}

	effects := fix.intake.HandleActionResponse(result(t, match.ResultWicketFall, "", payload(t, afterWicket)))
	require.Equal(t, []intake.Effect{intake.Refetch{}, intake.OpenSelection{
		Role:   match.RoleStriker,
		TeamID: 1,
		Title:  "Select New Batsman",
		Delay:  time.Millisecond,
	}}, effects)
	require.Equal(t, "42/2", fix.board.Text(render.FieldScore))
}

func TestWicketFallWithoutDataRefetches(t *testing.T) {
	fix := newFixture()
	require.NoError(t, fix.intake.Apply(state.SourceFetch, liveSnapshot()))

	effects := fix.intake.HandleActionResponse(result(t, match.ResultWicketFall, "", nil))
	require.Len(t, effects, 2)
	require.Equal(t, intake.Refetch{}, effects[0])

	selection, ok := effects[1].(intake.OpenSelection)
	require.True(t, ok)
	require.Equal(t, match.RoleStriker, selection.Role)
}

func TestOverCompleteOpensBowlerSelection(t *testing.T) {
	fix := newFixture()

	next := liveSnapshot()
	next.Innings.Overs = "6.0"
	next.CurrentBowler = nil

	effects := fix.intake.HandleActionResponse(result(t, match.ResultOverComplete, "Over Complete", payload(t, next)))
	require.Equal(t, []intake.Effect{intake.OpenSelection{
		Role:   match.RoleBowler,
		TeamID: 2,
		Title:  "Select Next Bowler",
	}}, effects)
	require.Equal(t, "(6.0 ov)", fix.board.Text(render.FieldOvers))
}

func TestInningBreakDoesNotApply(t *testing.T) {
	fix := newFixture()
	require.NoError(t, fix.intake.Apply(state.SourceFetch, liveSnapshot()))

	effects := fix.intake.HandleActionResponse(result(t, match.ResultInningBreak,
		"Innings Break! Target set: 43 runs", payload(t, liveSnapshot())))
	require.Equal(t, []intake.Effect{
		intake.Notify{Message: "Innings Break! Target set: 43 runs"},
		intake.SwitchSection{Section: intake.SectionSquad},
		intake.Refetch{},
	}, effects)
	require.Equal(t, uint64(1), fix.store.Revision())
}

func TestInningsOverNotifies(t *testing.T) {
	fix := newFixture()

	effects := fix.intake.HandleActionResponse(result(t, match.ResultInningsOver, "All Out!", payload(t, liveSnapshot())))
	require.Equal(t, []intake.Effect{intake.Notify{Message: "All Out!"}}, effects)
	require.Equal(t, uint64(1), fix.store.Revision())
}

func TestErrorSurfacesVerbatim(t *testing.T) {
	fix := newFixture()

	effects := fix.intake.HandleActionResponse(result(t, match.ResultError, "Bowler cannot bowl consecutive overs", nil))
	require.Equal(t, []intake.Effect{intake.Notify{Message: "Bowler cannot bowl consecutive overs", Err: true}}, effects)

	bare, err := match.DecodeActionResult([]byte(`{"error": "Player already batting"}`))
	require.NoError(t, err)
	require.Equal(t, []intake.Effect{intake.Notify{Message: "Player already batting", Err: true}},
		fix.intake.HandleActionResponse(bare))

	_, found := fix.store.Current()
	require.False(t, found)
}

func TestSuccessAppliesBareSnapshot(t *testing.T) {
	fix := newFixture()

	bare, err := match.DecodeActionResult(payload(t, liveSnapshot()))
	require.NoError(t, err)
	require.Empty(t, fix.intake.HandleActionResponse(bare))

	current, found := fix.store.Current()
	require.True(t, found)
	require.Equal(t, 7, current.MatchID)

	_, source := fix.store.Updated()
	require.Equal(t, state.SourceAction, source)
}

func TestEndMatchWithoutDataRefetches(t *testing.T) {
	fix := newFixture()

	ended, err := match.DecodeActionResult([]byte(`{"status": "success", "result": "Lions won by 5 runs", "winner_id": 1}`))
	require.NoError(t, err)
	require.Equal(t, []intake.Effect{
		intake.Refetch{},
		intake.Notify{Message: "Lions won by 5 runs"},
	}, fix.intake.HandleActionResponse(ended))
}
