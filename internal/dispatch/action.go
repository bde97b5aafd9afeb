// Package dispatch turns user intents into backend commands, refusing them locally when the
// match state does not allow them.
package dispatch

import (
	"strconv"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

// Action is the closed set of commands attached to the scoring controls.
type Action string

const (
	ActionRun          Action = "run"
	ActionBoundary     Action = "boundary"
	ActionWide         Action = "wide"
	ActionNoBall       Action = "noball"
	ActionBye          Action = "bye"
	ActionLegBye       Action = "leg-bye"
	ActionPenalty      Action = "penalty"
	ActionWicket       Action = "wicket"
	ActionUndo         Action = "undo"
	ActionEndInning    Action = "end_inning"
	ActionEndMatch     Action = "end_match"
	ActionRotateStrike Action = "rotate_strike"
	ActionSetBatsman   Action = "set_batsman"
	ActionSetBowler    Action = "set_bowler"
)

// ScoringActions lists the ball outcomes in the order they appear on the action bar.
var ScoringActions = []Action{ //nolint:gochecknoglobals
	ActionRun, ActionBoundary, ActionWide, ActionNoBall, ActionBye, ActionLegBye, ActionPenalty, ActionWicket,
}

// Scoring reports whether the action records a delivery and therefore needs both batsmen
// and a bowler in place.
func (a Action) Scoring() bool {
	switch a {
	case ActionRun, ActionBoundary, ActionWide, ActionNoBall, ActionBye, ActionLegBye, ActionPenalty, ActionWicket:
		return true
	case ActionUndo, ActionEndInning, ActionEndMatch, ActionRotateStrike, ActionSetBatsman, ActionSetBowler:
		return false
	}

	return false
}

// NeedsConfirm reports whether the UI must ask before sending.
func (a Action) NeedsConfirm() bool {
	switch a {
	case ActionUndo, ActionEndInning, ActionEndMatch:
		return true
	case ActionRun, ActionBoundary, ActionWide, ActionNoBall, ActionBye, ActionLegBye, ActionPenalty, ActionWicket,
		ActionRotateStrike, ActionSetBatsman, ActionSetBowler:
		return false
	}

	return false
}

func (a Action) Label() string {
	switch a {
	case ActionRun:
		return "Runs"
	case ActionBoundary:
		return "Boundary"
	case ActionWide:
		return "Wide"
	case ActionNoBall:
		return "No Ball"
	case ActionBye:
		return "Bye"
	case ActionLegBye:
		return "Leg Bye"
	case ActionPenalty:
		return "Penalty"
	case ActionWicket:
		return "Wicket"
	case ActionUndo:
		return "Undo"
	case ActionEndInning:
		return "End Inning"
	case ActionEndMatch:
		return "Save Match"
	case ActionRotateStrike:
		return "Rotate Strike"
	case ActionSetBatsman:
		return "Select Batsman"
	case ActionSetBowler:
		return "Select Bowler"
	}

	return string(a)
}

// Confirmation is the question asked before an action that needs one.
func (a Action) Confirmation() string {
	switch a {
	case ActionUndo:
		return "Are you sure you want to Undo the last ball?"
	case ActionEndInning:
		return "Are you sure you want to End the 1st Inning?"
	case ActionEndMatch:
		return "Match Finished! Save result and lock this match?"
	default:
		return "Are you sure?"
	}
}

// Request is a single outbound command. It is sent once and never retried.
type Request struct {
	RequestID string
	MatchID   int
	Action    Action
	// Value is the runs count, or the dismissal kind for a wicket.
	Value    any
	Type     string
	Role     match.Role
	PlayerID int
}

func Score(action Action, value any, kind string) Request {
	return Request{Action: action, Value: value, Type: kind}
}

func Simple(action Action) Request {
	return Request{Action: action}
}

func SetBatsman(role match.Role, playerID int) Request {
	return Request{Action: ActionSetBatsman, Role: role, PlayerID: playerID}
}

func SetBowler(playerID int) Request {
	return Request{Action: ActionSetBowler, Role: match.RoleBowler, PlayerID: playerID}
}

// ValueText is the request value as recorded in the journal.
func (r Request) ValueText() string {
	switch value := r.Value.(type) {
	case nil:
		if r.PlayerID != 0 {
			return strconv.Itoa(r.PlayerID)
		}

		return ""
	case int:
		return strconv.Itoa(value)
	case string:
		return value
	default:
		return ""
	}
}
