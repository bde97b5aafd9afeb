package component

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

// SquadModel lists both sides. Batting side players can be marked and submitted as the
// playing squad.
type SquadModel struct {
	viewState model.ViewState
	squads    command.SquadMsg
	cursor    int
	marked    map[int]bool
}

func NewSquadModel() SquadModel {
	return SquadModel{marked: map[int]bool{}}
}

func (m SquadModel) Init() tea.Cmd {
	return nil
}

func (m SquadModel) Update(msg tea.Msg) (SquadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
	case command.SquadMsg:
		if msg.BattingID != m.squads.BattingID {
			m.marked = map[int]bool{}
			m.cursor = 0
		}

		m.squads = msg
		m.cursor = min(m.cursor, max(len(msg.Batting)-1, 0))
	case tea.KeyMsg:
		if m.viewState.Section != model.SectionSquad || m.viewState.Modal != model.ModalNone {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, input.Default.Down):
			m.cursor = min(m.cursor+1, max(len(m.squads.Batting)-1, 0))
		case key.Matches(msg, input.Default.Mark):
			if m.cursor < len(m.squads.Batting) {
				playerID := m.squads.Batting[m.cursor].ID
				m.marked[playerID] = !m.marked[playerID]
			}
		case key.Matches(msg, input.Default.Accept):
			return m, m.submit()
		}
	}

	return m, nil
}

func (m SquadModel) submit() tea.Cmd {
	selected := m.Selected()
	if len(selected) == 0 {
		return command.SetStatusMessage("Mark players with space before submitting", true)
	}

	teamID := m.squads.BattingID

	return func() tea.Msg { return command.SelectSquadMsg{TeamID: teamID, PlayerIDs: selected} }
}

// Selected returns the marked batting side player ids in list order.
func (m SquadModel) Selected() []int {
	var selected []int

	for _, player := range m.squads.Batting {
		if m.marked[player.ID] {
			selected = append(selected, player.ID)
		}
	}

	return selected
}

func (m SquadModel) View() string {
	if m.squads.Err != nil {
		return styles.StatusError.Render("Failed to load squads: " + m.squads.Err.Error())
	}

	width := max(m.viewState.Width/2-4, 20)
	height := max(m.viewState.Lower-2, 1)

	batting := make([]string, 0, len(m.squads.Batting))
	for idx, player := range m.squads.Batting {
		mark := "[ ]"
		if m.marked[player.ID] {
			mark = "[x]"
		}

		row := fmt.Sprintf("%s %s", mark, player.Name)
		if idx == m.cursor {
			batting = append(batting, styles.ListSelectedRow.Render(row))
		} else {
			batting = append(batting, styles.ListUnselectedRow.Render(row))
		}
	}

	bowling := make([]string, 0, len(m.squads.Bowling))
	for _, player := range m.squads.Bowling {
		bowling = append(bowling, styles.ListUnselectedRow.Render(player.Name))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		model.Container(title(m.squads.BattingTeam, "Batting"), width, height, listOrEmpty(batting), true),
		model.Container(title(m.squads.BowlingTeam, "Bowling"), width, height, listOrEmpty(bowling), false))
}

func title(name string, fallback string) string {
	if name == "" {
		return fallback
	}

	return name
}

func listOrEmpty(rows []string) string {
	if len(rows) == 0 {
		return styles.CardEmpty.Render("No players available")
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
