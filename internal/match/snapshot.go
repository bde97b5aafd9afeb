// Package match defines the match state snapshot published by the scoring backend.
package match

import (
	"strings"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

func (s *Status) UnmarshalText(text []byte) error {
	switch Status(strings.ToLower(strings.TrimSpace(string(text)))) {
	case StatusScheduled:
		*s = StatusScheduled
	case StatusCompleted:
		*s = StatusCompleted
	default:
		*s = StatusLive
	}

	return nil
}

// Role identifies one of the three on-field positions the scorer must fill.
type Role string

const (
	RoleStriker    Role = "striker"
	RoleNonStriker Role = "non_striker"
	RoleBowler     Role = "bowler"
)

func (r Role) String() string {
	switch r {
	case RoleStriker:
		return "STRIKER"
	case RoleNonStriker:
		return "NON-STRIKER"
	case RoleBowler:
		return "BOWLER"
	default:
		return strings.ToUpper(string(r))
	}
}

// Innings is the score of the team currently batting.
type Innings struct {
	Runs          int   `json:"runs"`
	Wickets       int   `json:"wickets"`
	Overs         Overs `json:"overs"`
	CurrentInning int   `json:"current_inning"`
	Target        int   `json:"target"`
}

// PreviousInnings is the completed first innings, only present during the second.
type PreviousInnings struct {
	Runs    int   `json:"runs"`
	Wickets int   `json:"wickets"`
	Overs   Overs `json:"overs"`
}

type Team struct {
	ID        int
	Name      string
	LogoURL   string
	ColorCode string
}

// PlayerRef is a batsman at the crease.
type PlayerRef struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PhotoURL   string `json:"photo_url"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
	StrikeRate Number `json:"sr"`
	OnStrike   bool   `json:"on_strike"`
}

// Valid reports whether the reference points at a real selected player.
func (p *PlayerRef) Valid() bool {
	return p != nil && validPlayer(p.ID, p.Name)
}

// BowlerRef is the bowler of the current over.
type BowlerRef struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	PhotoURL      string `json:"photo_url"`
	Overs         Overs  `json:"overs"`
	Maidens       int    `json:"maidens"`
	RunsConceded  int    `json:"runs_conceded"`
	Wickets       int    `json:"wickets"`
	Economy       Number `json:"econ"`
	Dots          int    `json:"dots"`
	ExtrasAllowed int    `json:"extras"`
}

func (b *BowlerRef) Valid() bool {
	return b != nil && validPlayer(b.ID, b.Name)
}

const unknownPlayer = "Unknown"

func validPlayer(id int, name string) bool {
	return id != 0 && name != "" && name != unknownPlayer
}

type Partnership struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
}

// BallEvent is a single delivery of the over in progress.
type BallEvent struct {
	Over        int    `json:"over"`
	Ball        int    `json:"ball"`
	RunsOffBat  int    `json:"runs"`
	IsWicket    bool   `json:"is_wicket"`
	ExtrasCount int    `json:"extras"`
	ExtraType   string `json:"extra_type"`
	Commentary  string `json:"commentary"`
}

// DismissalRef describes the most recent batsman out.
type DismissalRef struct {
	BatterName string `json:"batter_name"`
	Dismissal  string `json:"dismissal"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Fours      int    `json:"fours"`
	Sixes      int    `json:"sixes"`
}

// Snapshot is a complete, immutable view of a match as published by the backend. A new
// snapshot always replaces the previous one in full.
type Snapshot struct {
	MatchID            int
	MatchNumber        *int
	MatchType          string
	TotalOvers         int
	Status             Status
	ResultMessage      string
	BattingTeam        Team
	BowlingTeam        Team
	Innings            *Innings
	PreviousInnings    *PreviousInnings
	CurrentBatsmen     []PlayerRef
	CurrentBowler      *BowlerRef
	CurrentPartnership *Partnership
	ThisOverBalls      []BallEvent
	ThisOverRuns       int
	LastOut            *DismissalRef
	CRR                Number
	ProjectedScore     Number
	TossWinnerName     string
	TossDecision       string
	// HasPlayStarted is nil when the backend does not report it.
	HasPlayStarted *bool
}

// Batsmen splits the current pair into striker and non-striker by the strike flag. After the
// striker is out the backend sends the survivor unflagged, leaving the striker vacant.
func (s Snapshot) Batsmen() (*PlayerRef, *PlayerRef) {
	var striker, nonStriker *PlayerRef

	for idx := range s.CurrentBatsmen {
		batsman := &s.CurrentBatsmen[idx]
		if batsman.OnStrike && striker == nil {
			striker = batsman
		} else if nonStriker == nil {
			nonStriker = batsman
		}
	}

	return striker, nonStriker
}

// Completed reports whether the match is locked against further scoring.
func (s Snapshot) Completed() bool {
	return s.Status == StatusCompleted
}
