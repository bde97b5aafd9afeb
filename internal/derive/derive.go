// Package derive computes every display value shown on the scoreboard from a match snapshot.
// Derive is pure: the same snapshot always yields the same View.
package derive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leighmacdonald/cricket-tui/internal/match"
)

const (
	defaultBattingName = "Batting Team"
	defaultBowlingName = "Bowling Team"
	defaultMatchType   = "League Match"

	partnershipHighlight = 50
)

// ActionButton is the state of the combined end-inning / save-match control.
type ActionButton int

const (
	ButtonHidden ActionButton = iota
	ButtonEndInning
	ButtonSaveMatch
	ButtonLocked
)

func (b ActionButton) Label() string {
	switch b {
	case ButtonEndInning:
		return "End Inning"
	case ButtonSaveMatch:
		return "Save Match"
	case ButtonLocked:
		return "Match Locked"
	case ButtonHidden:
		fallthrough
	default:
		return ""
	}
}

// Tone selects the banner colouring.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneResult
	ToneTie
	ToneEquation
	ToneCompleted
)

type Banner struct {
	Text string
	Tone Tone
}

type TeamView struct {
	ID    int
	Name  string
	Logo  string
	Color string
}

type Partnership struct {
	Text      string
	Highlight bool
}

// View is the fully derived scoreboard.
type View struct {
	MatchNumber string
	TotalOvers  string
	MatchType   string

	Batting TeamView
	Bowling TeamView

	Score      string
	Overs      string
	OversLabel string
	CRR        string
	Projected  string

	// Target is empty unless a second innings target applies.
	Target        string
	PreviousScore string

	Chase  Chase
	Banner Banner

	Button          ActionButton
	ScoringDisabled bool
	RotateStrike    bool
	Completed       bool

	Striker     BatsmanCard
	NonStriker  BatsmanCard
	Bowler      BowlerCard
	Partnership Partnership

	ThisOverRuns string
	Badges       []Badge
	LastOut      string

	// HasPlayStarted mirrors the backend predicate, nil when not reported.
	HasPlayStarted *bool
}

// Derive computes the View for a snapshot. A snapshot without innings yields the zero View;
// callers are expected to reject such snapshots before rendering.
func Derive(snap match.Snapshot) View {
	if snap.Innings == nil {
		return View{}
	}

	innings := snap.Innings
	batting := teamView(snap.BattingTeam, defaultBattingName)
	bowling := teamView(snap.BowlingTeam, defaultBowlingName)
	striker, nonStriker := snap.Batsmen()
	overs := innings.Overs.Display()
	chased := chase(snap, batting.Name, bowling.Name)

	view := View{
		MatchNumber:    matchNumber(snap.MatchNumber),
		TotalOvers:     fmt.Sprintf("%d Overs", snap.TotalOvers),
		MatchType:      orDefault(snap.MatchType, defaultMatchType),
		Batting:        batting,
		Bowling:        bowling,
		Score:          fmt.Sprintf("%d/%d", innings.Runs, innings.Wickets),
		Overs:          overs,
		OversLabel:     fmt.Sprintf("(%s ov)", overs),
		CRR:            truthyOr(snap.CRR, "0.00"),
		Projected:      truthyOr(snap.ProjectedScore, "0"),
		Target:         target(innings),
		PreviousScore:  previousScore(snap),
		Chase:          chased,
		Banner:         banner(snap, chased),
		Button:         actionButton(snap),
		Completed:      snap.Completed(),
		RotateStrike:   striker.Valid() && nonStriker.Valid(),
		Striker:        batsmanCard(match.RoleStriker, striker),
		NonStriker:     batsmanCard(match.RoleNonStriker, nonStriker),
		Bowler:         bowlerCard(snap.CurrentBowler),
		Partnership:    partnership(snap.CurrentPartnership),
		ThisOverRuns:   fmt.Sprintf("%d runs", snap.ThisOverRuns),
		Badges:         badges(snap.ThisOverBalls),
		LastOut:        lastOut(snap.LastOut),
		HasPlayStarted: snap.HasPlayStarted,
	}

	view.ScoringDisabled = view.Completed

	return view
}

func teamView(team match.Team, fallback string) TeamView {
	return TeamView{
		ID:    team.ID,
		Name:  orDefault(team.Name, fallback),
		Logo:  team.LogoURL,
		Color: team.ColorCode,
	}
}

func orDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func truthyOr(value match.Number, fallback string) string {
	if !value.Truthy() {
		return fallback
	}

	return value.String()
}

func matchNumber(number *int) string {
	if number == nil || *number == 0 {
		return "Match No. --"
	}

	return "Match No. " + strconv.Itoa(*number)
}

func target(innings *match.Innings) string {
	if innings.CurrentInning != 2 || innings.Target <= 0 {
		return ""
	}

	return "Target: " + strconv.Itoa(innings.Target)
}

// previousScore is the bowling side's first innings total shown during the chase.
func previousScore(snap match.Snapshot) string {
	if snap.Innings.CurrentInning != 2 {
		return ""
	}

	if prev := snap.PreviousInnings; prev != nil {
		return fmt.Sprintf("%d/%d (%s ov)", prev.Runs, prev.Wickets, prev.Overs.Display())
	}

	if snap.Innings.Target > 0 {
		return strconv.Itoa(snap.Innings.Target - 1)
	}

	return ""
}

func actionButton(snap match.Snapshot) ActionButton {
	switch {
	case snap.Completed():
		return ButtonLocked
	case matchOver(snap):
		return ButtonSaveMatch
	case snap.Innings.CurrentInning != 2:
		return ButtonEndInning
	default:
		return ButtonHidden
	}
}

func partnership(part *match.Partnership) Partnership {
	if part == nil {
		return Partnership{Text: "0 (0)"}
	}

	return Partnership{
		Text:      fmt.Sprintf("%d (%d)", part.Runs, part.Balls),
		Highlight: part.Runs >= partnershipHighlight,
	}
}

func banner(snap match.Snapshot, chased Chase) Banner {
	if snap.Completed() {
		return Banner{
			Text: "MATCH COMPLETED: " + orDefault(snap.ResultMessage, "Result Saved"),
			Tone: ToneCompleted,
		}
	}

	switch chased.Outcome {
	case BattingWin, BowlingWin:
		return Banner{Text: "MATCH COMPLETED: " + chased.Message, Tone: ToneResult}
	case Tie:
		return Banner{Text: chased.Message, Tone: ToneTie}
	case InProgress:
		return Banner{Text: chased.Message, Tone: ToneEquation}
	case NotApplicable:
	}

	result := strings.TrimSpace(snap.ResultMessage)
	if result != "" && result != string(match.StatusLive) && result != string(match.StatusScheduled) {
		return Banner{Text: result, Tone: ToneResult}
	}

	if snap.TossWinnerName != "" && snap.TossDecision != "" {
		return Banner{
			Text: fmt.Sprintf("%s won the toss and elected to %s", snap.TossWinnerName, capitalise(snap.TossDecision)),
			Tone: ToneNeutral,
		}
	}

	return Banner{Tone: ToneNeutral}
}

func capitalise(value string) string {
	if value == "" {
		return value
	}

	runes := []rune(value)

	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
