package command

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
)

func SetViewState(state model.ViewState) tea.Cmd {
	return func() tea.Msg { return state }
}

const ClearMessageTimeout = time.Second * 10

type ClearStatusMessageMsg struct{}

func ClearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return ClearStatusMessageMsg{}
	})
}

type StatusMsg struct {
	Message string
	Err     bool
}

func SetStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: msg, Err: err}
	}
}

// TickMsg refreshes relative times shown in the footer.
type TickMsg time.Time

func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SnapshotMsg carries the result of a poll or explicit fetch.
type SnapshotMsg struct {
	Source   state.Source
	Snapshot match.Snapshot
	Err      error
}

// PushMsg is a raw payload from the push stream. It is decoded by intake so malformed
// frames are counted.
type PushMsg struct {
	Payload []byte
}

// UpdatedMsg is broadcast after a snapshot has been applied to the board.
type UpdatedMsg struct {
	At      time.Time
	Source  state.Source
	Version uint64
}

// ActionMsg is a user intent. Confirmed is set once the confirmation step has been passed.
type ActionMsg struct {
	Request   dispatch.Request
	Confirmed bool
}

func Dispatch(req dispatch.Request) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Request: req} }
}

// ActionResultMsg is the outcome of a dispatched request.
type ActionResultMsg struct {
	Request dispatch.Request
	Result  match.ActionResult
	Err     error
}

// EffectsMsg carries the follow ups produced by intake or the gate.
type EffectsMsg struct {
	Effects []intake.Effect
}

func Effects(effects ...intake.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}

	return func() tea.Msg { return EffectsMsg{Effects: effects} }
}

// SelectionMsg asks for the player picker of a role to be loaded and opened.
type SelectionMsg struct {
	Selection intake.OpenSelection
}

// PlayersMsg is a loaded picker candidate list.
type PlayersMsg struct {
	Selection intake.OpenSelection
	Players   []match.SquadPlayer
	Err       error
}

// CloseModalMsg dismisses the open picker or dialog.
type CloseModalMsg struct{}

func CloseModal() tea.Cmd {
	return func() tea.Msg { return CloseModalMsg{} }
}

type ScorecardMsg struct {
	Scorecard match.Scorecard
	Err       error
}

type CommentaryMsg struct {
	Commentary match.Commentary
	Err        error
}

// SquadMsg carries both sides' listings for the squad tab.
type SquadMsg struct {
	BattingID   int
	BattingTeam string
	BowlingTeam string
	Batting     []match.SquadPlayer
	Bowling     []match.SquadPlayer
	Err         error
}

// SaveSettingsMsg asks for the match settings to be sent to the backend.
type SaveSettingsMsg struct {
	Settings Settings
}

// Settings are the editable match settings.
type Settings struct {
	MatchNumber  int
	TotalOvers   int
	BallsPerOver int
}

type SettingsSavedMsg struct {
	Result match.ActionResult
	Err    error
}

// LoadCommentaryMsg asks for the commentary of an innings. Zero means the innings in play.
type LoadCommentaryMsg struct {
	Inning int
}

func LoadCommentary(inning int) tea.Cmd {
	return func() tea.Msg { return LoadCommentaryMsg{Inning: inning} }
}

// SelectSquadMsg submits the playing squad of a team.
type SelectSquadMsg struct {
	TeamID    int
	PlayerIDs []int
}

type SquadSelectedMsg struct {
	Result match.ActionResult
	Err    error
}
