package derive

import (
	"fmt"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

// defaultTotalOvers applies when a snapshot omits the format length.
const defaultTotalOvers = 20

const maxWickets = 10

// Outcome classifies the state of a run chase.
type Outcome int

const (
	// NotApplicable means no chase is underway: first innings, or no target set.
	NotApplicable Outcome = iota
	InProgress
	BattingWin
	BowlingWin
	Tie
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case BattingWin:
		return "batting team win"
	case BowlingWin:
		return "bowling team win"
	case Tie:
		return "tie"
	case NotApplicable:
		fallthrough
	default:
		return "not applicable"
	}
}

// Decided reports whether the outcome ends the match.
func (o Outcome) Decided() bool {
	return o == BattingWin || o == BowlingWin || o == Tie
}

// Chase is the second innings equation.
type Chase struct {
	Outcome     Outcome
	Message     string
	RunsNeeded  int
	BallsLeft   int
	WicketsLeft int
	Margin      int
}

func totalBalls(snap match.Snapshot) int {
	overs := snap.TotalOvers
	if overs <= 0 {
		overs = defaultTotalOvers
	}

	return overs * match.BallsPerOver
}

// chase evaluates the second innings equation. Several branches can hold at once near the end
// of a match, so they are tested in a fixed order: batting win, bowling win on overs, bowling
// win all out, tie, then in progress.
func chase(snap match.Snapshot, battingName string, bowlingName string) Chase {
	innings := snap.Innings
	if innings == nil || innings.CurrentInning != 2 || innings.Target <= 0 {
		return Chase{Outcome: NotApplicable}
	}

	var (
		runs      = innings.Runs
		wickets   = innings.Wickets
		target    = innings.Target
		bowled    = innings.Overs.BallsBowled()
		available = totalBalls(snap)
	)

	switch {
	case runs >= target:
		left := maxWickets - wickets

		return Chase{
			Outcome:     BattingWin,
			WicketsLeft: left,
			Message:     fmt.Sprintf("%s won by %d wickets", battingName, left),
		}
	case bowled >= available && runs < target-1:
		margin := (target - 1) - runs

		return Chase{
			Outcome: BowlingWin,
			Margin:  margin,
			Message: fmt.Sprintf("%s won by %d runs", bowlingName, margin),
		}
	case wickets >= maxWickets && runs < target:
		margin := (target - 1) - runs

		return Chase{
			Outcome: BowlingWin,
			Margin:  margin,
			Message: fmt.Sprintf("%s won by %d runs", bowlingName, margin),
		}
	case (bowled >= available || wickets >= maxWickets) && runs == target-1:
		return Chase{Outcome: Tie, Message: "MATCH TIED!"}
	default:
		needed := target - runs
		left := available - bowled

		return Chase{
			Outcome:    InProgress,
			RunsNeeded: needed,
			BallsLeft:  left,
			Message:    fmt.Sprintf("%s needs %d runs from %d balls", battingName, needed, left),
		}
	}
}

// matchOver is the condition under which the scorer may save a second innings.
func matchOver(snap match.Snapshot) bool {
	innings := snap.Innings
	if innings == nil || innings.CurrentInning != 2 {
		return false
	}

	battingWon := innings.Target > 0 && innings.Runs >= innings.Target

	return battingWon || innings.Overs.BallsBowled() >= totalBalls(snap)
}
