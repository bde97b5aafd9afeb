package match_test

import (
	"strings"
	"testing"

	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/stretchr/testify/require"
)

const livePayload = `{
	"match_id": 7,
	"match_number": 12,
	"match_type": "League Match",
	"total_overs": 20,
	"status": "live",
	"batting_team": "Lions",
	"batting_team_id": 1,
	"batting_team_color": "#ff0000",
	"bowling_team": "Tigers",
	"bowling_team_id": 2,
	"crr": 7.5,
	"projected_score": 150,
	"innings": {"runs": 75, "wickets": 2, "overs": "10.0", "current_inning": 1, "target": 0},
	"current_batsmen": [
		{"id": 11, "name": "Asha", "runs": 30, "balls": 20, "on_strike": false, "sr": 150.0},
		{"id": 12, "name": "Bilal", "runs": 12, "balls": 10, "on_strike": true, "sr": "120.00"}
	],
	"current_bowler": {"id": 21, "name": "Chen", "overs": "2.0", "econ": 6.5, "runs_conceded": 13},
	"this_over_balls": [{"runs": 4, "extras": 0, "extra_type": null, "is_wicket": false}]
}`

func TestDecode(t *testing.T) {
	snap, err := match.Decode(strings.NewReader(livePayload))
	require.NoError(t, err)
	require.Equal(t, 7, snap.MatchID)
	require.NotNil(t, snap.MatchNumber)
	require.Equal(t, 12, *snap.MatchNumber)
	require.Equal(t, match.StatusLive, snap.Status)
	require.Equal(t, "Lions", snap.BattingTeam.Name)
	require.Equal(t, 2, snap.BowlingTeam.ID)
	require.Equal(t, "7.5", snap.CRR.String())
	require.Equal(t, "120.00", snap.CurrentBatsmen[1].StrikeRate.String())
	require.Equal(t, 60, snap.Innings.Overs.BallsBowled())
	require.Nil(t, snap.HasPlayStarted)
	require.Len(t, snap.ThisOverBalls, 1)
}

func TestDecodeMissingInnings(t *testing.T) {
	_, err := match.DecodeBytes([]byte(`{"match_id": 1, "status": "live"}`))
	require.ErrorIs(t, err, match.ErrMissingInnings)

	_, errBad := match.DecodeBytes([]byte(`{"innings": `))
	require.ErrorIs(t, errBad, match.ErrDecodeSnapshot)
}

func TestStatusDecode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want match.Status
	}{
		{`"completed"`, match.StatusCompleted},
		{`"COMPLETED"`, match.StatusCompleted},
		{`"scheduled"`, match.StatusScheduled},
		{`"in_progress"`, match.StatusLive},
		{`""`, match.StatusLive},
	} {
		snap, err := match.DecodeBytes([]byte(`{"status": ` + tc.in + `, "innings": {"overs": "0.0"}}`))
		require.NoError(t, err)
		require.Equal(t, tc.want, snap.Status, tc.in)
	}
}

func TestOvers(t *testing.T) {
	for _, tc := range []struct {
		in      match.Overs
		overs   int
		balls   int
		display string
	}{
		{"19.5", 19, 5, "19.5"},
		{"4", 4, 0, "4.0"},
		{"", 0, 0, "0.0"},
		{"0.3", 0, 3, "0.3"},
	} {
		overs, balls := tc.in.Parse()
		require.Equal(t, tc.overs, overs)
		require.Equal(t, tc.balls, balls)
		require.Equal(t, tc.overs*6+tc.balls, tc.in.BallsBowled())
		require.Equal(t, tc.display, tc.in.Display())
	}
}

func TestOversNumeric(t *testing.T) {
	snap, err := match.DecodeBytes([]byte(`{"innings": {"overs": 4}}`))
	require.NoError(t, err)
	require.Equal(t, "4.0", snap.Innings.Overs.Display())
}

func TestBatsmen(t *testing.T) {
	striker := match.PlayerRef{ID: 1, Name: "A", OnStrike: true}
	other := match.PlayerRef{ID: 2, Name: "B"}

	snap := match.Snapshot{CurrentBatsmen: []match.PlayerRef{other, striker}}
	gotStriker, gotNon := snap.Batsmen()
	require.Equal(t, 1, gotStriker.ID)
	require.Equal(t, 2, gotNon.ID)

	survivor := match.Snapshot{CurrentBatsmen: []match.PlayerRef{other}}
	gotStriker, gotNon = survivor.Batsmen()
	require.Nil(t, gotStriker)
	require.Equal(t, 2, gotNon.ID)

	decoded, err := match.DecodeBytes([]byte(`{"innings": {"runs": 40},
		"current_batsmen": [{"id": 2, "name": "Bilal", "on_strike": false}]}`))
	require.NoError(t, err)
	gotStriker, gotNon = decoded.Batsmen()
	require.Nil(t, gotStriker)
	require.Equal(t, "Bilal", gotNon.Name)

	onlyStriker := match.Snapshot{CurrentBatsmen: []match.PlayerRef{striker}}
	gotStriker, gotNon = onlyStriker.Batsmen()
	require.Equal(t, 1, gotStriker.ID)
	require.Nil(t, gotNon)

	empty := match.Snapshot{}
	gotStriker, gotNon = empty.Batsmen()
	require.Nil(t, gotStriker)
	require.Nil(t, gotNon)
}

func TestPlayerValid(t *testing.T) {
	var missing *match.PlayerRef
	require.False(t, missing.Valid())
	require.False(t, (&match.PlayerRef{ID: 0, Name: "A"}).Valid())
	require.False(t, (&match.PlayerRef{ID: 3, Name: "Unknown"}).Valid())
	require.False(t, (&match.PlayerRef{ID: 3, Name: ""}).Valid())
	require.True(t, (&match.PlayerRef{ID: 3, Name: "Dev"}).Valid())

	var bowler *match.BowlerRef
	require.False(t, bowler.Valid())
	require.True(t, (&match.BowlerRef{ID: 9, Name: "Eli"}).Valid())
}
