package dispatch

import (
	"fmt"
	"strconv"
)

// MenuOption is one entry of the scoring menu shown for an action with variants.
type MenuOption struct {
	Label  string
	Action Action
	Value  any
	Type   string
}

func (o MenuOption) Request() Request {
	return Score(o.Action, o.Value, o.Type)
}

// Menu returns the variants offered for a scoring action. A nil result means the action has
// no variants and is sent as is.
func Menu(action Action) []MenuOption {
	switch action {
	case ActionRun:
		options := []MenuOption{{Label: "Dot ball", Action: ActionRun, Value: 0}}
		for runs := 1; runs <= 6; runs++ {
			options = append(options, MenuOption{Label: plural(runs, "Bat run"), Action: ActionRun, Value: runs})
		}

		return options
	case ActionBoundary:
		return []MenuOption{
			{Label: "4 Boundary", Action: ActionBoundary, Value: 4, Type: "boundary"},
			{Label: "6 Boundary", Action: ActionBoundary, Value: 6, Type: "boundary"},
		}
	case ActionWide:
		return extras(ActionWide, 0, 6, func(runs int) string {
			if runs == 0 {
				return "Wide"
			}

			return fmt.Sprintf("Wide + %s", plural(runs, "run"))
		})
	case ActionNoBall:
		options := []MenuOption{{Label: "No Ball", Action: ActionNoBall, Value: 0}}
		for runs := 1; runs <= 6; runs++ {
			options = append(options, MenuOption{
				Label: "No Ball + " + plural(runs, "Bat run"), Action: ActionNoBall, Value: runs,
			})
		}

		return options
	case ActionBye:
		return extras(ActionBye, 1, 4, func(runs int) string { return plural(runs, "Bye run") })
	case ActionLegBye:
		return extras(ActionLegBye, 1, 4, func(runs int) string { return plural(runs, "Leg-Bye run") })
	case ActionPenalty:
		return []MenuOption{{Label: "5 Penalty runs", Action: ActionPenalty, Value: 5}}
	case ActionWicket:
		return []MenuOption{
			{Label: "Bowled", Action: ActionWicket, Value: "bowled"},
			{Label: "Caught", Action: ActionWicket, Value: "caught"},
			{Label: "LBW", Action: ActionWicket, Value: "lbw"},
			{Label: "Run Out", Action: ActionWicket, Value: "run out"},
			{Label: "Stumped", Action: ActionWicket, Value: "stumped"},
			{Label: "Retired Out", Action: ActionWicket, Value: "retired"},
		}
	case ActionUndo, ActionEndInning, ActionEndMatch, ActionRotateStrike, ActionSetBatsman, ActionSetBowler:
		return nil
	}

	return nil
}

func extras(action Action, low int, high int, label func(runs int) string) []MenuOption {
	options := make([]MenuOption, 0, high-low+1)
	for runs := low; runs <= high; runs++ {
		options = append(options, MenuOption{Label: label(runs), Action: action, Value: runs})
	}

	return options
}

func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}

	return strconv.Itoa(count) + " " + noun + "s"
}
