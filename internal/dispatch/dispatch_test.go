package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	requests []dispatch.Request
	result   match.ActionResult
	err      error
}

func (s *recordingSender) Send(ctx context.Context, req dispatch.Request) (match.ActionResult, error) {
	if ctx.Err() != nil {
		return match.ActionResult{}, ctx.Err()
	}

	s.requests = append(s.requests, req)

	return s.result, s.err
}

type countingRecorder struct {
	dispatched map[string]int
	blocked    map[string]int
}

func (r *countingRecorder) ActionDispatched(action string) { r.dispatched[action]++ }
func (r *countingRecorder) ActionBlocked(reason string)    { r.blocked[reason]++ }

func readySnapshot() match.Snapshot {
	return match.Snapshot{
		MatchID:     3,
		Status:      match.StatusLive,
		BattingTeam: match.Team{ID: 10, Name: "Lions"},
		BowlingTeam: match.Team{ID: 20, Name: "Tigers"},
		Innings:     &match.Innings{Runs: 12, Overs: "2.1", CurrentInning: 1},
		CurrentBatsmen: []match.PlayerRef{
			{ID: 1, Name: "Asha", OnStrike: true},
			{ID: 2, Name: "Bilal"},
		},
		CurrentBowler: &match.BowlerRef{ID: 9, Name: "Chen"},
	}
}

func TestDispatchGatekeeping(t *testing.T) {
	convey.Convey("Given a dispatcher for match 3", t, func() {
		sender := &recordingSender{result: match.ActionResult{Status: match.ResultSuccess}}
		recorder := &countingRecorder{dispatched: map[string]int{}, blocked: map[string]int{}}
		dispatcher := dispatch.New(sender, 3, dispatch.WithRecorder(recorder))
		snap := readySnapshot()

		convey.Convey("When the striker slot is empty", func() {
			snap.CurrentBatsmen = []match.PlayerRef{{ID: 2, Name: "Bilal"}, {Name: "Unknown"}}
			snap.CurrentBatsmen[0].OnStrike = false
			snap.CurrentBatsmen[1].OnStrike = true

			_, err := dispatcher.Dispatch(context.Background(), snap, true, dispatch.Score(dispatch.ActionRun, 1, ""))

			convey.Convey("Then nothing is sent", func() {
				convey.So(sender.requests, convey.ShouldBeEmpty)
				convey.So(recorder.blocked["striker"], convey.ShouldEqual, 1)
			})

			convey.Convey("Then the striker picker is opened for the batting side", func() {
				var missing dispatch.MissingRoleError
				convey.So(errors.As(err, &missing), convey.ShouldBeTrue)
				convey.So(missing.Role, convey.ShouldEqual, match.RoleStriker)

				effects := dispatch.Blocked(err, snap)
				convey.So(effects, convey.ShouldResemble, []intake.Effect{
					intake.Notify{Message: "ACTION BLOCKED: Please select a STRIKER first.", Err: true},
					intake.OpenSelection{Role: match.RoleStriker, TeamID: 10, Title: "Select Striker"},
				})
			})
		})

		convey.Convey("When only the unflagged survivor of a wicket is in", func() {
			snap.CurrentBatsmen = []match.PlayerRef{{ID: 2, Name: "Bilal", OnStrike: false}}

			_, err := dispatcher.Dispatch(context.Background(), snap, true, dispatch.Score(dispatch.ActionRun, 1, ""))

			convey.Convey("Then the striker is reported missing", func() {
				var missing dispatch.MissingRoleError
				convey.So(errors.As(err, &missing), convey.ShouldBeTrue)
				convey.So(missing.Role, convey.ShouldEqual, match.RoleStriker)
				convey.So(sender.requests, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the bowler is missing", func() {
			snap.CurrentBowler = nil
			_, err := dispatcher.Dispatch(context.Background(), snap, true, dispatch.Score(dispatch.ActionWide, 0, ""))

			convey.Convey("Then the bowler picker is opened for the fielding side", func() {
				effects := dispatch.Blocked(err, snap)
				convey.So(effects, convey.ShouldHaveLength, 2)
				convey.So(effects[1], convey.ShouldResemble,
					intake.OpenSelection{Role: match.RoleBowler, TeamID: 20, Title: "Select Bowler"})
				convey.So(sender.requests, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the match is completed", func() {
			snap.Status = match.StatusCompleted
			snap.CurrentBowler = nil

			convey.Convey("Then every action is refused without a request", func() {
				for _, action := range append(dispatch.ScoringActions, dispatch.ActionUndo, dispatch.ActionEndInning) {
					_, err := dispatcher.Dispatch(context.Background(), snap, true, dispatch.Simple(action))
					convey.So(errors.Is(err, dispatch.ErrMatchCompleted), convey.ShouldBeTrue)
				}

				convey.So(sender.requests, convey.ShouldBeEmpty)
				convey.So(dispatch.Notice(dispatch.ErrMatchCompleted), convey.ShouldEqual,
					"Match is completed. No more changes allowed.")
			})
		})

		convey.Convey("When all roles are filled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := dispatcher.Dispatch(ctx, snap, true, dispatch.Score(dispatch.ActionRun, 4, ""))

			convey.Convey("Then exactly one request is sent with a request id", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(result.Status, convey.ShouldEqual, match.ResultSuccess)
				convey.So(sender.requests, convey.ShouldHaveLength, 1)
				convey.So(sender.requests[0].RequestID, convey.ShouldNotBeEmpty)
				convey.So(sender.requests[0].MatchID, convey.ShouldEqual, 3)
				convey.So(recorder.dispatched["run"], convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the backend cannot be reached", func() {
			sender.err = errors.New("connection refused")
			_, err := dispatcher.Dispatch(context.Background(), snap, true, dispatch.Simple(dispatch.ActionUndo))

			convey.Convey("Then the failure is reported once and not retried", func() {
				convey.So(errors.Is(err, dispatch.ErrSend), convey.ShouldBeTrue)
				convey.So(sender.requests, convey.ShouldHaveLength, 1)
			})
		})
	})
}

func TestGateOrder(t *testing.T) {
	empty := readySnapshot()
	empty.CurrentBatsmen = nil
	empty.CurrentBowler = nil

	var missing dispatch.MissingRoleError
	require.ErrorAs(t, dispatch.Gate(dispatch.ActionRun, empty), &missing)
	require.Equal(t, match.RoleStriker, missing.Role)

	oneBat := readySnapshot()
	oneBat.CurrentBatsmen = oneBat.CurrentBatsmen[:1]
	require.ErrorAs(t, dispatch.Gate(dispatch.ActionWicket, oneBat), &missing)
	require.Equal(t, match.RoleNonStriker, missing.Role)
	require.Equal(t, "ACTION BLOCKED: Please select a NON-STRIKER first.", dispatch.Notice(missing))

	require.NoError(t, dispatch.Gate(dispatch.ActionRotateStrike, empty))
	require.NoError(t, dispatch.Gate(dispatch.ActionUndo, empty))
	require.NoError(t, dispatch.Gate(dispatch.ActionRun, readySnapshot()))
}

func TestCheckWithoutSnapshot(t *testing.T) {
	dispatcher := dispatch.New(&recordingSender{}, 1)
	err := dispatcher.Check(dispatch.ActionRun, match.Snapshot{}, false)
	require.ErrorIs(t, err, dispatch.ErrNoSnapshot)
	require.Equal(t, "Match data not loaded yet.", dispatch.Notice(err))
}

func TestMenu(t *testing.T) {
	runs := dispatch.Menu(dispatch.ActionRun)
	require.Len(t, runs, 7)
	require.Equal(t, "Dot ball", runs[0].Label)
	require.Equal(t, "2 Bat runs", runs[2].Label)

	wides := dispatch.Menu(dispatch.ActionWide)
	require.Len(t, wides, 7)
	require.Equal(t, "Wide", wides[0].Label)
	require.Equal(t, "Wide + 1 run", wides[1].Label)

	byes := dispatch.Menu(dispatch.ActionBye)
	require.Len(t, byes, 4)
	require.Equal(t, 1, byes[0].Value)

	boundary := dispatch.Menu(dispatch.ActionBoundary)[1].Request()
	require.Equal(t, dispatch.ActionBoundary, boundary.Action)
	require.Equal(t, 6, boundary.Value)
	require.Equal(t, "boundary", boundary.Type)

	require.Len(t, dispatch.Menu(dispatch.ActionWicket), 6)
	require.Nil(t, dispatch.Menu(dispatch.ActionUndo))
}

func TestActionFlags(t *testing.T) {
	require.True(t, dispatch.ActionEndMatch.NeedsConfirm())
	require.True(t, dispatch.ActionUndo.NeedsConfirm())
	require.False(t, dispatch.ActionRun.NeedsConfirm())
	require.False(t, dispatch.ActionSetBowler.Scoring())
	require.Equal(t, "5", dispatch.Score(dispatch.ActionPenalty, 5, "").ValueText())
	require.Equal(t, "42", dispatch.SetBowler(42).ValueText())
}
