package component

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

type button struct {
	label   string
	request dispatch.Request
	style   lipgloss.Style
}

// ActionBarModel holds the scoring controls. Every button is tagged with the request it
// sends, and shortcut keys produce the same requests.
type ActionBarModel struct {
	board     *render.Board
	viewState model.ViewState
	id        string
}

func NewActionBarModel(board *render.Board) ActionBarModel {
	return ActionBarModel{board: board, id: zone.NewPrefix()}
}

func (m ActionBarModel) Init() tea.Cmd {
	return nil
}

func (m ActionBarModel) Update(msg tea.Msg) (ActionBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case tea.MouseMsg:
		if !m.active() || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for idx, btn := range m.buttons() {
			if zone.Get(m.zoneID(idx)).InBounds(msg) {
				return m, command.Dispatch(btn.request)
			}
		}
	case tea.KeyMsg:
		if !m.active() {
			return m, nil
		}

		if req, ok := m.shortcut(msg); ok {
			return m, command.Dispatch(req)
		}
	}

	return m, nil
}

func (m ActionBarModel) active() bool {
	return m.viewState.Page == model.PageMain &&
		m.viewState.Section == model.SectionLive &&
		m.viewState.Modal == model.ModalNone
}

// Shortcut resolves a key press to the request it triggers. Requests without a value open
// the scoring menu for their action.
func (m ActionBarModel) shortcut(msg tea.KeyMsg) (dispatch.Request, bool) {
	keys := input.Default

	switch {
	case key.Matches(msg, keys.Dot):
		return dispatch.Score(dispatch.ActionRun, 0, ""), true
	case key.Matches(msg, keys.Single):
		return dispatch.Score(dispatch.ActionRun, 1, ""), true
	case key.Matches(msg, keys.Double):
		return dispatch.Score(dispatch.ActionRun, 2, ""), true
	case key.Matches(msg, keys.Triple):
		return dispatch.Score(dispatch.ActionRun, 3, ""), true
	case key.Matches(msg, keys.Four):
		return dispatch.Score(dispatch.ActionBoundary, 4, "boundary"), true
	case key.Matches(msg, keys.Six):
		return dispatch.Score(dispatch.ActionBoundary, 6, "boundary"), true
	case key.Matches(msg, keys.Runs):
		return dispatch.Simple(dispatch.ActionRun), true
	case key.Matches(msg, keys.Wide):
		return dispatch.Simple(dispatch.ActionWide), true
	case key.Matches(msg, keys.NoBall):
		return dispatch.Simple(dispatch.ActionNoBall), true
	case key.Matches(msg, keys.Bye):
		return dispatch.Simple(dispatch.ActionBye), true
	case key.Matches(msg, keys.LegBye):
		return dispatch.Simple(dispatch.ActionLegBye), true
	case key.Matches(msg, keys.Penalty):
		return dispatch.Simple(dispatch.ActionPenalty), true
	case key.Matches(msg, keys.Wicket):
		return dispatch.Simple(dispatch.ActionWicket), true
	case key.Matches(msg, keys.Undo):
		return dispatch.Simple(dispatch.ActionUndo), true
	case key.Matches(msg, keys.Rotate):
		if m.board.Visible(render.FieldRotateStrike) {
			return dispatch.Simple(dispatch.ActionRotateStrike), true
		}
	case key.Matches(msg, keys.Finish):
		if action, ok := m.finishAction(); ok {
			return dispatch.Simple(action), true
		}
	case key.Matches(msg, keys.Striker):
		return dispatch.SetBatsman(match.RoleStriker, 0), true
	case key.Matches(msg, keys.Partner):
		return dispatch.SetBatsman(match.RoleNonStriker, 0), true
	case key.Matches(msg, keys.Bowler):
		return dispatch.SetBowler(0), true
	}

	return dispatch.Request{}, false
}

// finishAction maps the combined end-inning / save-match control to its action. A locked
// match still maps to end_match so the gate can explain why nothing happens.
func (m ActionBarModel) finishAction() (dispatch.Action, bool) {
	if !m.board.Visible(render.FieldActionButton) {
		return "", false
	}

	state, _ := strconv.Atoi(m.board.Attr(render.FieldActionButton, render.AttrAction))

	switch derive.ActionButton(state) {
	case derive.ButtonEndInning:
		return dispatch.ActionEndInning, true
	case derive.ButtonSaveMatch, derive.ButtonLocked:
		return dispatch.ActionEndMatch, true
	case derive.ButtonHidden:
		return "", false
	}

	return "", false
}

func (m ActionBarModel) buttons() []button {
	scoringStyle := styles.Button
	if m.board.Attr(render.FieldScoring, render.AttrDisabled) == "true" {
		scoringStyle = styles.ButtonDisabled
	}

	buttons := make([]button, 0, len(dispatch.ScoringActions)+4)
	for _, action := range dispatch.ScoringActions {
		buttons = append(buttons, button{label: action.Label(), request: dispatch.Simple(action), style: scoringStyle})
	}

	buttons = append(buttons, button{label: dispatch.ActionUndo.Label(), request: dispatch.Simple(dispatch.ActionUndo), style: styles.Button})

	if m.board.Visible(render.FieldRotateStrike) {
		buttons = append(buttons, button{
			label:   m.board.Text(render.FieldRotateStrike),
			request: dispatch.Simple(dispatch.ActionRotateStrike),
			style:   styles.Button,
		})
	}

	if action, ok := m.finishAction(); ok {
		style := styles.ButtonPrimary
		if m.board.Attr(render.FieldActionButton, render.AttrDisabled) == "true" {
			style = styles.ButtonLocked
		}

		buttons = append(buttons, button{label: m.board.Text(render.FieldActionButton), request: dispatch.Simple(action), style: style})
	}

	return buttons
}

func (m ActionBarModel) zoneID(idx int) string {
	return m.id + strconv.Itoa(idx)
}

func (m ActionBarModel) View() string {
	if m.board.Version() == 0 {
		return ""
	}

	rendered := make([]string, 0, 16)
	for idx, btn := range m.buttons() {
		rendered = append(rendered, zone.Mark(m.zoneID(idx), btn.style.Render(btn.label)))
	}

	return lipgloss.NewStyle().Width(m.viewState.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}
