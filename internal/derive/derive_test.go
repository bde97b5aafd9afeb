package derive_test

import (
	"testing"

	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/stretchr/testify/require"
)

func chaseSnapshot(runs, wickets int, overs match.Overs, target int) match.Snapshot {
	return match.Snapshot{
		TotalOvers:  20,
		Status:      match.StatusLive,
		BattingTeam: match.Team{ID: 1, Name: "Lions"},
		BowlingTeam: match.Team{ID: 2, Name: "Tigers"},
		Innings: &match.Innings{
			Runs:          runs,
			Wickets:       wickets,
			Overs:         overs,
			CurrentInning: 2,
			Target:        target,
		},
	}
}

func TestChase(t *testing.T) {
	type tc struct {
		name    string
		snap    match.Snapshot
		outcome derive.Outcome
		message string
	}

	cases := []tc{
		{
			name:    "needs one from one",
			snap:    chaseSnapshot(150, 4, "19.5", 151),
			outcome: derive.InProgress,
			message: "Lions needs 1 runs from 1 balls",
		},
		{
			name:    "target reached",
			snap:    chaseSnapshot(151, 4, "19.5", 151),
			outcome: derive.BattingWin,
			message: "Lions won by 6 wickets",
		},
		{
			name:    "target reached on the last ball",
			snap:    chaseSnapshot(151, 9, "20.0", 151),
			outcome: derive.BattingWin,
			message: "Lions won by 1 wickets",
		},
		{
			name:    "tie on the last ball",
			snap:    chaseSnapshot(150, 3, "20.0", 151),
			outcome: derive.Tie,
			message: "MATCH TIED!",
		},
		{
			name:    "defended on overs",
			snap:    chaseSnapshot(140, 5, "20.0", 151),
			outcome: derive.BowlingWin,
			message: "Tigers won by 10 runs",
		},
		{
			name:    "all out short of target",
			snap:    chaseSnapshot(120, 10, "17.2", 151),
			outcome: derive.BowlingWin,
			message: "Tigers won by 30 runs",
		},
		{
			name:    "all out on target minus one is a bowling win by zero",
			snap:    chaseSnapshot(150, 10, "18.0", 151),
			outcome: derive.BowlingWin,
			message: "Tigers won by 0 runs",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			view := derive.Derive(testCase.snap)
			require.Equal(t, testCase.outcome, view.Chase.Outcome)
			require.Equal(t, testCase.message, view.Chase.Message)
		})
	}
}

func TestChaseFirstInnings(t *testing.T) {
	for _, runs := range []int{0, 150, 151, 400} {
		snap := chaseSnapshot(runs, 10, "20.0", 151)
		snap.Innings.CurrentInning = 1

		view := derive.Derive(snap)
		require.Equal(t, derive.NotApplicable, view.Chase.Outcome)
		require.Empty(t, view.Chase.Message)
		require.Empty(t, view.Target)
		require.Empty(t, view.PreviousScore)
		require.Equal(t, derive.ButtonEndInning, view.Button)
	}
}

func TestChaseNoTarget(t *testing.T) {
	view := derive.Derive(chaseSnapshot(10, 0, "1.0", 0))
	require.Equal(t, derive.NotApplicable, view.Chase.Outcome)
	require.Empty(t, view.Target)
}

func TestChaseDefaultsTotalOvers(t *testing.T) {
	snap := chaseSnapshot(100, 2, "15.0", 151)
	snap.TotalOvers = 0

	view := derive.Derive(snap)
	require.Equal(t, "Lions needs 51 runs from 30 balls", view.Chase.Message)
}

func TestDeterministic(t *testing.T) {
	snap := chaseSnapshot(150, 4, "19.5", 151)
	snap.CurrentBatsmen = []match.PlayerRef{
		{ID: 1, Name: "Asha", OnStrike: true, Runs: 60, Balls: 40},
		{ID: 2, Name: "Bilal", Runs: 3, Balls: 4},
	}
	snap.CurrentBowler = &match.BowlerRef{ID: 9, Name: "Chen", Overs: "3.5"}
	snap.ThisOverBalls = []match.BallEvent{{RunsOffBat: 4}, {ExtraType: "wide", ExtrasCount: 1}}

	first := derive.Derive(snap)
	second := derive.Derive(snap)
	require.Equal(t, first, second)
}

func TestActionButton(t *testing.T) {
	completed := chaseSnapshot(100, 2, "15.0", 151)
	completed.Status = match.StatusCompleted
	require.Equal(t, derive.ButtonLocked, derive.Derive(completed).Button)
	require.True(t, derive.Derive(completed).ScoringDisabled)

	require.Equal(t, derive.ButtonSaveMatch, derive.Derive(chaseSnapshot(151, 2, "15.0", 151)).Button)
	require.Equal(t, derive.ButtonSaveMatch, derive.Derive(chaseSnapshot(120, 2, "20.0", 151)).Button)
	require.Equal(t, derive.ButtonHidden, derive.Derive(chaseSnapshot(120, 2, "19.0", 151)).Button)
	require.Equal(t, "Save Match", derive.ButtonSaveMatch.Label())
	require.Equal(t, "", derive.ButtonHidden.Label())
}

func TestBadgePriority(t *testing.T) {
	cases := []struct {
		ball  match.BallEvent
		kind  derive.BadgeKind
		label string
	}{
		{match.BallEvent{IsWicket: true, RunsOffBat: 6}, derive.BadgeWicket, "W"},
		{match.BallEvent{RunsOffBat: 6, ExtraType: "noball", ExtrasCount: 1}, derive.BadgeSix, "6"},
		{match.BallEvent{RunsOffBat: 4}, derive.BadgeFour, "4"},
		{match.BallEvent{ExtraType: "wide", ExtrasCount: 1}, derive.BadgeExtra, "WI"},
		{match.BallEvent{ExtraType: "wide", ExtrasCount: 5}, derive.BadgeExtra, "5WI"},
		{match.BallEvent{ExtraType: "leg-bye", ExtrasCount: 2}, derive.BadgeExtra, "2LE"},
		{match.BallEvent{RunsOffBat: 2}, derive.BadgeRuns, "2"},
		{match.BallEvent{}, derive.BadgeRuns, "0"},
	}

	for _, testCase := range cases {
		badge := derive.ClassifyBall(testCase.ball)
		require.Equal(t, testCase.kind, badge.Kind)
		require.Equal(t, testCase.label, badge.Label)
	}
}

func TestBanner(t *testing.T) {
	snap := chaseSnapshot(0, 0, "0.0", 0)
	snap.Innings.CurrentInning = 1
	snap.TossWinnerName = "Lions"
	snap.TossDecision = "bat"
	require.Equal(t, "Lions won the toss and elected to Bat", derive.Derive(snap).Banner.Text)

	snap.ResultMessage = "live"
	require.Equal(t, "Lions won the toss and elected to Bat", derive.Derive(snap).Banner.Text)

	snap.ResultMessage = "Rain stopped play"
	require.Equal(t, "Rain stopped play", derive.Derive(snap).Banner.Text)

	snap.Status = match.StatusCompleted
	snap.ResultMessage = ""
	require.Equal(t, "MATCH COMPLETED: Result Saved", derive.Derive(snap).Banner.Text)

	won := derive.Derive(chaseSnapshot(151, 4, "19.5", 151))
	require.Equal(t, "MATCH COMPLETED: Lions won by 6 wickets", won.Banner.Text)
	require.Equal(t, derive.ToneResult, won.Banner.Tone)
}

func TestCards(t *testing.T) {
	snap := chaseSnapshot(20, 0, "2.0", 0)
	snap.Innings.CurrentInning = 1
	snap.CurrentBatsmen = []match.PlayerRef{{ID: 1, Name: "Asha", OnStrike: true, Runs: 12, Balls: 8}}
	snap.CurrentBowler = &match.BowlerRef{ID: 5, Name: " Select Bowler "}

	view := derive.Derive(snap)
	require.Equal(t, derive.CardFilled, view.Striker.State)
	require.Equal(t, "12 (8)", view.Striker.Score)
	require.Equal(t, derive.DefaultAvatar, view.Striker.Photo)
	require.Equal(t, derive.CardEmpty, view.NonStriker.State)
	require.Equal(t, derive.CardEmpty, view.Bowler.State)
	require.False(t, view.RotateStrike)

	snap.CurrentBatsmen = append(snap.CurrentBatsmen, match.PlayerRef{ID: 2, Name: "Bilal"})
	snap.CurrentBowler = &match.BowlerRef{ID: 5, Name: "Chen", Overs: "2", Maidens: 1, RunsConceded: 9, Wickets: 2}
	view = derive.Derive(snap)
	require.True(t, view.RotateStrike)
	require.Equal(t, derive.CardFilled, view.Bowler.State)
	require.Equal(t, "2.0 - 1 - 9 - 2", view.Bowler.Figures)
	require.Equal(t, "0.00", view.Bowler.Economy)

	snap.CurrentBatsmen[1].Name = "Unknown"
	require.False(t, derive.Derive(snap).RotateStrike)
}

func TestPartnershipAndDefaults(t *testing.T) {
	snap := chaseSnapshot(20, 0, "4", 0)
	snap.Innings.CurrentInning = 1
	snap.BattingTeam.Name = ""

	view := derive.Derive(snap)
	require.Equal(t, "0 (0)", view.Partnership.Text)
	require.False(t, view.Partnership.Highlight)
	require.Equal(t, "Batting Team", view.Batting.Name)
	require.Equal(t, "(4.0 ov)", view.OversLabel)
	require.Equal(t, "0.00", view.CRR)
	require.Equal(t, "0", view.Projected)
	require.Equal(t, "Match No. --", view.MatchNumber)
	require.Equal(t, "League Match", view.MatchType)

	snap.CurrentPartnership = &match.Partnership{Runs: 50, Balls: 31}
	view = derive.Derive(snap)
	require.Equal(t, "50 (31)", view.Partnership.Text)
	require.True(t, view.Partnership.Highlight)
}

func TestPreviousScore(t *testing.T) {
	snap := chaseSnapshot(20, 0, "2.0", 151)
	require.Equal(t, "150", derive.Derive(snap).PreviousScore)
	require.Equal(t, "Target: 151", derive.Derive(snap).Target)

	snap.PreviousInnings = &match.PreviousInnings{Runs: 150, Wickets: 7, Overs: "20.0"}
	require.Equal(t, "150/7 (20.0 ov)", derive.Derive(snap).PreviousScore)
}

func TestLastOut(t *testing.T) {
	snap := chaseSnapshot(20, 1, "2.0", 0)
	snap.LastOut = &match.DismissalRef{BatterName: "Asha", Dismissal: "b Chen", Runs: 12, Balls: 9, Fours: 2}
	require.Equal(t, "Asha b Chen 12(9b 2x4 0x6)", derive.Derive(snap).LastOut)
}
