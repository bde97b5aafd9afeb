package dispatch

import (
	"errors"

	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
)

var (
	ErrMatchCompleted = errors.New("match is completed")
	ErrNoSnapshot     = errors.New("match data not loaded")
)

// MissingRoleError blocks a scoring action while a required player slot is empty.
type MissingRoleError struct {
	Role match.Role
}

func (e MissingRoleError) Error() string {
	return "missing " + string(e.Role)
}

// Gate checks the local preconditions for an action against the held snapshot. Only the
// first failing check is reported, in the order: completed, striker, non-striker, bowler.
func Gate(action Action, snap match.Snapshot) error {
	if snap.Completed() {
		return ErrMatchCompleted
	}

	if !action.Scoring() {
		return nil
	}

	striker, nonStriker := snap.Batsmen()

	switch {
	case !striker.Valid():
		return MissingRoleError{Role: match.RoleStriker}
	case !nonStriker.Valid():
		return MissingRoleError{Role: match.RoleNonStriker}
	case !snap.CurrentBowler.Valid():
		return MissingRoleError{Role: match.RoleBowler}
	}

	return nil
}

// Notice is the user facing text for a gate failure.
func Notice(err error) string {
	var missing MissingRoleError
	if errors.As(err, &missing) {
		return "ACTION BLOCKED: Please select a " + missing.Role.String() + " first."
	}

	switch {
	case errors.Is(err, ErrMatchCompleted):
		return "Match is completed. No more changes allowed."
	case errors.Is(err, ErrNoSnapshot):
		return "Match data not loaded yet."
	default:
		return err.Error()
	}
}

// reason labels a gate failure for the blocked actions counter.
func reason(err error) string {
	var missing MissingRoleError
	if errors.As(err, &missing) {
		return string(missing.Role)
	}

	if errors.Is(err, ErrMatchCompleted) {
		return "completed"
	}

	return "no_snapshot"
}

// Blocked converts a gate failure into the guidance shown to the user: a notice and, for a
// missing player, the picker for that slot.
func Blocked(err error, snap match.Snapshot) []intake.Effect {
	effects := []intake.Effect{intake.Notify{Message: Notice(err), Err: true}}

	var missing MissingRoleError
	if !errors.As(err, &missing) {
		return effects
	}

	selection := intake.OpenSelection{Role: missing.Role, TeamID: snap.BattingTeam.ID, Title: "Select " + titleFor(missing.Role)}
	if missing.Role == match.RoleBowler {
		selection.TeamID = snap.BowlingTeam.ID
	}

	return append(effects, selection)
}

func titleFor(role match.Role) string {
	switch role {
	case match.RoleStriker:
		return "Striker"
	case match.RoleNonStriker:
		return "Non-Striker"
	case match.RoleBowler:
		return "Bowler"
	}

	return "Player"
}
