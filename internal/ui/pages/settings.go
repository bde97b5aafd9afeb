package pages

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/component"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

type settingsIdx int

const (
	fieldMatchNumber settingsIdx = iota
	fieldTotalOvers
	fieldBallsPerOver
	fieldSave
)

const defaultBallsPerOver = 6

// Settings edits the match settings held by the backend.
type Settings struct {
	fields     []*component.ValidatingTextInputModel
	focusIndex settingsIdx
	viewState  model.ViewState
	saving     bool
}

func NewSettings() *Settings {
	return &Settings{
		fields: []*component.ValidatingTextInputModel{
			component.NewValidatingTextInputModel("Match number", "", "1", component.IntRangeValidator{Min: 1}),
			component.NewValidatingTextInputModel("Total overs", "", "20", component.IntRangeValidator{Min: 1, Max: 50}),
			component.NewValidatingTextInputModel("Balls per over", strconv.Itoa(defaultBallsPerOver), "6",
				component.IntRangeValidator{Min: 4, Max: 10}),
		},
		focusIndex: fieldMatchNumber,
	}
}

// Load fills the form from the snapshot in play.
func (m *Settings) Load(snap match.Snapshot) tea.Cmd {
	if snap.MatchNumber != nil {
		m.fields[fieldMatchNumber].Input.SetValue(strconv.Itoa(*snap.MatchNumber))
	}

	if snap.TotalOvers > 0 {
		m.fields[fieldTotalOvers].Input.SetValue(strconv.Itoa(snap.TotalOvers))
	}

	m.focusIndex = fieldMatchNumber
	m.saving = false

	return m.focus()
}

func (m *Settings) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Settings) Update(msg tea.Msg) (*Settings, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg

		return m, nil
	case command.SettingsSavedMsg:
		m.saving = false
		if msg.Err != nil {
			return m, nil
		}

		if _, failed := msg.Result.Failure(); failed {
			return m, nil
		}

		m.viewState.Page = model.PageMain

		return m, command.SetViewState(m.viewState)
	case tea.KeyMsg:
		if m.viewState.Page != model.PageSettings {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.Back):
			m.viewState.Page = model.PageMain

			return m, command.SetViewState(m.viewState)
		case key.Matches(msg, input.Default.Up):
			if m.focusIndex > 0 {
				m.focusIndex--
			}

			return m, m.focus()
		case key.Matches(msg, input.Default.Down):
			if m.focusIndex < fieldSave {
				m.focusIndex++
			}

			return m, m.focus()
		case key.Matches(msg, input.Default.Accept):
			if m.focusIndex != fieldSave {
				m.focusIndex++

				return m, m.focus()
			}

			return m, m.save()
		}

		if m.focusIndex < fieldSave {
			var cmd tea.Cmd
			m.fields[m.focusIndex], cmd = m.fields[m.focusIndex].Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

func (m *Settings) save() tea.Cmd {
	if m.saving {
		return nil
	}

	for _, field := range m.fields {
		if field.Input.Err != nil || field.Input.Value() == "" {
			return command.SetStatusMessage("Settings are not valid, cannot save", true)
		}
	}

	m.saving = true
	settings := command.Settings{
		MatchNumber:  m.fields[fieldMatchNumber].Int(),
		TotalOvers:   m.fields[fieldTotalOvers].Int(),
		BallsPerOver: m.fields[fieldBallsPerOver].Int(),
	}

	return func() tea.Msg { return command.SaveSettingsMsg{Settings: settings} }
}

func (m *Settings) focus() tea.Cmd {
	var cmd tea.Cmd

	for idx := range m.fields {
		if settingsIdx(idx) == m.focusIndex {
			cmd = m.fields[idx].Focus()
		} else {
			m.fields[idx].Blur()
		}
	}

	return cmd
}

func (m *Settings) View() string {
	rows := make([]string, 0, len(m.fields)+2)
	rows = append(rows, styles.ContainerTitle.Render("Match settings"), "")

	for _, field := range m.fields {
		rows = append(rows, field.View())
	}

	if m.focusIndex == fieldSave {
		rows = append(rows, styles.FocusedSubmitButton)
	} else {
		rows = append(rows, styles.BlurredSubmitButton)
	}

	return lipgloss.NewStyle().Width(m.viewState.Width).Align(lipgloss.Left).Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Top, rows...))
}
