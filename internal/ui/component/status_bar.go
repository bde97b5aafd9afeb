package component

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

type StatusBarModel struct {
	viewState   model.ViewState
	matchID     int
	statusMsg   string
	statusError bool
	updated     time.Time
	source      state.Source
	now         time.Time
	version     string
}

func NewStatusBarModel(version string, matchID int) StatusBarModel {
	return StatusBarModel{version: version, matchID: matchID, now: time.Now()}
}

func (m StatusBarModel) Init() tea.Cmd {
	return command.Tick()
}

func (m StatusBarModel) Update(msg tea.Msg) (StatusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case command.StatusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, command.ClearErrorAfter(command.ClearMessageTimeout)
	case command.ClearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case command.UpdatedMsg:
		m.updated = msg.At
		m.source = msg.Source
	case command.TickMsg:
		m.now = time.Time(msg)

		return m, command.Tick()
	case model.ViewState:
		m.viewState = msg
	}

	return m, nil
}

func (m StatusBarModel) View() string {
	args := []string{
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", input.Default.Help.Help().Key, input.Default.Help.Help().Desc)),
		styles.StatusMatch.Render(fmt.Sprintf("Match #%d", m.matchID)),
		styles.StatusUpdated.Render(m.freshness()),
		m.status(),
	}

	return lipgloss.NewStyle().Width(m.viewState.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m StatusBarModel) freshness() string {
	if m.updated.IsZero() {
		return styles.IconOffline + " waiting for data"
	}

	return fmt.Sprintf("%s via %s", humanize.RelTime(m.updated, m.now, "ago", "from now"), m.source)
}

func (m StatusBarModel) status() string {
	if m.statusMsg == "" {
		return ""
	}

	if m.statusError {
		return styles.StatusError.Render(m.statusMsg)
	}

	return styles.StatusMessage.Render(m.statusMsg)
}
