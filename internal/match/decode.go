package match

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/leighmacdonald/cricket-tui/internal/network/encoding"
)

var (
	ErrDecodeSnapshot = errors.New("failed to decode match snapshot")
	// ErrMissingInnings is returned for payloads without an innings block. Such a payload is
	// never rendered.
	ErrMissingInnings = errors.New("snapshot missing innings")
)

// Wire is the JSON shape published by the backend for GET /match_data and push messages.
type Wire struct {
	MatchID            int              `json:"match_id"`
	MatchNumber        *int             `json:"match_number"`
	MatchType          string           `json:"match_type"`
	TotalOvers         int              `json:"total_overs"`
	Status             Status           `json:"status"`
	ResultMessage      string           `json:"result_message"`
	BattingTeam        string           `json:"batting_team"`
	BattingTeamID      int              `json:"batting_team_id"`
	BattingTeamLogo    string           `json:"batting_team_logo"`
	BattingTeamColor   string           `json:"batting_team_color"`
	BowlingTeam        string           `json:"bowling_team"`
	BowlingTeamID      int              `json:"bowling_team_id"`
	BowlingTeamLogo    string           `json:"bowling_team_logo"`
	BowlingTeamColor   string           `json:"bowling_team_color"`
	ThisOverRuns       int              `json:"this_over_runs"`
	ThisOverBalls      []BallEvent      `json:"this_over_balls"`
	CRR                Number           `json:"crr"`
	ProjectedScore     Number           `json:"projected_score"`
	TossWinnerName     string           `json:"toss_winner_name"`
	TossDecision       string           `json:"toss_decision"`
	CurrentPartnership *Partnership     `json:"current_partnership"`
	Innings            *Innings         `json:"innings"`
	LastOut            *DismissalRef    `json:"last_out"`
	PreviousInning     *PreviousInnings `json:"previous_inning"`
	CurrentBatsmen     []PlayerRef      `json:"current_batsmen"`
	CurrentBowler      *BowlerRef       `json:"current_bowler"`
	HasPlayStarted     *bool            `json:"has_play_started,omitempty"`
}

// Snapshot converts the wire form, rejecting payloads with no innings block.
func (w Wire) Snapshot() (Snapshot, error) {
	if w.Innings == nil {
		return Snapshot{}, ErrMissingInnings
	}

	status := w.Status
	if status == "" {
		status = StatusLive
	}

	return Snapshot{
		MatchID:       w.MatchID,
		MatchNumber:   w.MatchNumber,
		MatchType:     w.MatchType,
		TotalOvers:    w.TotalOvers,
		Status:        status,
		ResultMessage: w.ResultMessage,
		BattingTeam: Team{
			ID:        w.BattingTeamID,
			Name:      w.BattingTeam,
			LogoURL:   w.BattingTeamLogo,
			ColorCode: w.BattingTeamColor,
		},
		BowlingTeam: Team{
			ID:        w.BowlingTeamID,
			Name:      w.BowlingTeam,
			LogoURL:   w.BowlingTeamLogo,
			ColorCode: w.BowlingTeamColor,
		},
		Innings:            w.Innings,
		PreviousInnings:    w.PreviousInning,
		CurrentBatsmen:     w.CurrentBatsmen,
		CurrentBowler:      w.CurrentBowler,
		CurrentPartnership: w.CurrentPartnership,
		ThisOverBalls:      w.ThisOverBalls,
		ThisOverRuns:       w.ThisOverRuns,
		LastOut:            w.LastOut,
		CRR:                w.CRR,
		ProjectedScore:     w.ProjectedScore,
		TossWinnerName:     w.TossWinnerName,
		TossDecision:       w.TossDecision,
		HasPlayStarted:     w.HasPlayStarted,
	}, nil
}

// Wire converts a snapshot back to its JSON form. Used by the replay backend.
func (s Snapshot) Wire() Wire {
	return Wire{
		MatchID:            s.MatchID,
		MatchNumber:        s.MatchNumber,
		MatchType:          s.MatchType,
		TotalOvers:         s.TotalOvers,
		Status:             s.Status,
		ResultMessage:      s.ResultMessage,
		BattingTeam:        s.BattingTeam.Name,
		BattingTeamID:      s.BattingTeam.ID,
		BattingTeamLogo:    s.BattingTeam.LogoURL,
		BattingTeamColor:   s.BattingTeam.ColorCode,
		BowlingTeam:        s.BowlingTeam.Name,
		BowlingTeamID:      s.BowlingTeam.ID,
		BowlingTeamLogo:    s.BowlingTeam.LogoURL,
		BowlingTeamColor:   s.BowlingTeam.ColorCode,
		ThisOverRuns:       s.ThisOverRuns,
		ThisOverBalls:      s.ThisOverBalls,
		CRR:                s.CRR,
		ProjectedScore:     s.ProjectedScore,
		TossWinnerName:     s.TossWinnerName,
		TossDecision:       s.TossDecision,
		CurrentPartnership: s.CurrentPartnership,
		Innings:            s.Innings,
		LastOut:            s.LastOut,
		PreviousInning:     s.PreviousInnings,
		CurrentBatsmen:     s.CurrentBatsmen,
		CurrentBowler:      s.CurrentBowler,
		HasPlayStarted:     s.HasPlayStarted,
	}
}

// Decode reads a single snapshot.
func Decode(reader io.Reader) (Snapshot, error) {
	wire, errDecode := encoding.UnmarshalJSON[Wire](reader)
	if errDecode != nil {
		return Snapshot{}, errors.Join(errDecode, ErrDecodeSnapshot)
	}

	return wire.Snapshot()
}

// DecodeBytes is Decode for an in-memory payload such as a push message.
func DecodeBytes(data []byte) (Snapshot, error) {
	var wire Wire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Snapshot{}, errors.Join(err, ErrDecodeSnapshot)
	}

	return wire.Snapshot()
}
