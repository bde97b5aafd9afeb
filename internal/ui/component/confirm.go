package component

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

// ConfirmModel asks before a request that cannot be taken back.
type ConfirmModel struct {
	request   dispatch.Request
	viewState model.ViewState
	id        string
}

func NewConfirmModel() ConfirmModel {
	return ConfirmModel{id: zone.NewPrefix()}
}

func (m ConfirmModel) Open(req dispatch.Request) ConfirmModel {
	m.request = req

	return m
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case tea.MouseMsg:
		if m.viewState.Modal != model.ModalConfirm || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		switch {
		case zone.Get(m.id + "yes").InBounds(msg):
			return m, m.accept()
		case zone.Get(m.id + "no").InBounds(msg):
			return m, command.CloseModal()
		}
	case tea.KeyMsg:
		if m.viewState.Modal != model.ModalConfirm {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.Yes):
			return m, m.accept()
		case key.Matches(msg, input.Default.No):
			return m, command.CloseModal()
		}
	}

	return m, nil
}

func (m ConfirmModel) accept() tea.Cmd {
	confirmed := command.ActionMsg{Request: m.request, Confirmed: true}

	return tea.Sequence(command.CloseModal(), func() tea.Msg { return confirmed })
}

func (m ConfirmModel) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(m.id+"yes", styles.ButtonPrimary.Render("[y] Yes")),
		zone.Mark(m.id+"no", styles.Button.Render("[n] No")))

	return styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Center,
		styles.ContainerTitle.Render(m.request.Action.Confirmation()),
		"",
		buttons))
}
