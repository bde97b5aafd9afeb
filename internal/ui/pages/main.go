package pages

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/ui/component"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

func NewMain(board *render.Board) *Main {
	return &Main{
		tabsModel:       component.NewTabsModel(),
		scoreboardModel: component.NewScoreboardModel(board),
		actionBarModel:  component.NewActionBarModel(board),
		scorecardModel:  component.NewScorecardModel(board),
		commentaryModel: component.NewCommentaryModel(),
		squadModel:      component.NewSquadModel(),
		pickerModel:     component.NewPickerModel(),
		confirmModel:    component.NewConfirmModel(),
	}
}

type Main struct {
	tabsModel       component.TabsModel
	scoreboardModel component.ScoreboardModel
	actionBarModel  component.ActionBarModel
	scorecardModel  component.ScorecardModel
	commentaryModel component.CommentaryModel
	squadModel      component.SquadModel
	pickerModel     component.PickerModel
	confirmModel    component.ConfirmModel
	viewState       model.ViewState
}

func (m *Main) Init() tea.Cmd {
	return tea.Batch(
		m.tabsModel.Init(),
		m.scoreboardModel.Init(),
		m.actionBarModel.Init(),
		m.scorecardModel.Init(),
		m.commentaryModel.Init(),
		m.squadModel.Init(),
		m.pickerModel.Init(),
		m.confirmModel.Init())
}

// OpenPicker fills the picker. The caller is responsible for switching the modal on.
func (m *Main) OpenPicker(title string, items []component.PickerItem, filter bool) tea.Cmd {
	var cmd tea.Cmd
	m.pickerModel, cmd = m.pickerModel.Open(title, items, filter)

	return cmd
}

func (m *Main) OpenConfirm(req dispatch.Request) {
	m.confirmModel = m.confirmModel.Open(req)
}

func (m *Main) Update(msg tea.Msg) (*Main, tea.Cmd) {
	if viewState, ok := msg.(model.ViewState); ok {
		m.viewState = viewState
	}

	cmds := make([]tea.Cmd, 8)

	m.tabsModel, cmds[0] = m.tabsModel.Update(msg)
	m.scoreboardModel, cmds[1] = m.scoreboardModel.Update(msg)
	m.actionBarModel, cmds[2] = m.actionBarModel.Update(msg)
	m.scorecardModel, cmds[3] = m.scorecardModel.Update(msg)
	m.commentaryModel, cmds[4] = m.commentaryModel.Update(msg)
	m.squadModel, cmds[5] = m.squadModel.Update(msg)
	m.pickerModel, cmds[6] = m.pickerModel.Update(msg)
	m.confirmModel, cmds[7] = m.confirmModel.Update(msg)

	return m, tea.Batch(cmds...)
}

// Header is the tab strip, rendered by the root so it can measure it.
func (m *Main) Header() string {
	return m.tabsModel.View()
}

func (m *Main) View() string {
	var content string

	switch m.viewState.Section {
	case model.SectionLive:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.scoreboardModel.View(),
			"",
			m.actionBarModel.View())
	case model.SectionScorecard:
		content = m.scorecardModel.View()
	case model.SectionCommentary:
		content = m.commentaryModel.View()
	case model.SectionSquad:
		content = m.squadModel.View()
	}

	var overlay string

	switch m.viewState.Modal {
	case model.ModalPicker:
		overlay = m.pickerModel.View()
	case model.ModalConfirm:
		overlay = m.confirmModel.View()
	case model.ModalNone:
		return content
	}

	return lipgloss.Place(m.viewState.Width, max(m.viewState.Lower, lipgloss.Height(overlay)),
		lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceForeground(styles.GrayDark))
}
