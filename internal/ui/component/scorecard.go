package component

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

// ScorecardModel shows the batting and bowling breakdown of one innings at a time.
type ScorecardModel struct {
	board     *render.Board
	viewState model.ViewState
	inning    int
	viewport  viewport.Model
}

func NewScorecardModel(board *render.Board) ScorecardModel {
	return ScorecardModel{board: board, inning: 1, viewport: viewport.New(0, 0)}
}

func (m ScorecardModel) Init() tea.Cmd {
	return nil
}

func (m ScorecardModel) Update(msg tea.Msg) (ScorecardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Lower-2, 0)
	case tea.KeyMsg:
		if m.viewState.Section != model.SectionScorecard || m.viewState.Modal != model.ModalNone {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.PrevInns):
			m.inning = 1
		case key.Matches(msg, input.Default.NextInns):
			m.inning = 2
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m ScorecardModel) card() *match.InningsCard {
	region := render.RegionScorecard1
	if m.inning == 2 {
		region = render.RegionScorecard2
	}

	card, _ := render.Region[*match.InningsCard](m.board, region)

	return card
}

func (m ScorecardModel) View() string {
	title := fmt.Sprintf("Innings %d", m.inning)

	card := m.card()
	if card == nil {
		note := m.board.Text(render.FieldScorecardNote)
		if note == "" {
			note = "No balls bowled yet"
		}

		m.viewport.SetContent(styles.InfoMessage.Width(m.viewport.Width).Render(note))
	} else {
		title = fmt.Sprintf("Innings %d  %d/%d (%s ov)", m.inning, card.Total, card.Wickets, card.Overs.Display())
		m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left,
			BattingTable(card, m.viewport.Width),
			styles.TableSummary.Render(ExtrasLine(card.Extras)),
			"",
			BowlingTable(card, m.viewport.Width)))
	}

	return model.Container(title, m.viewState.Width-2, m.viewport.Height, m.viewport.View(), true)
}

// ExtrasLine summarises extras the way a printed scorecard does.
func ExtrasLine(extras match.Extras) string {
	return fmt.Sprintf("Extras %d (b %d, lb %d, w %d, nb %d, p %d)",
		extras.Total, extras.Byes, extras.LegByes, extras.Wides, extras.NoBalls, extras.Penalty)
}

const (
	colNameSize = 22
	colStatSize = 6
)

func BattingTable(card *match.InningsCard, width int) string {
	rows := make([][]string, 0, len(card.Batting))
	for _, row := range card.Batting {
		rows = append(rows, []string{
			row.Name, row.Dismissal,
			strconv.Itoa(row.Runs), strconv.Itoa(row.Balls),
			strconv.Itoa(row.Fours), strconv.Itoa(row.Sixes), row.StrikeRate.String(),
		})
	}

	return scoreTable(width, []string{"Batter", "", "R", "B", "4s", "6s", "SR"}, rows, 1)
}

func BowlingTable(card *match.InningsCard, width int) string {
	rows := make([][]string, 0, len(card.Bowling))
	for _, row := range card.Bowling {
		rows = append(rows, []string{
			row.Name, row.Overs.Display(),
			strconv.Itoa(row.Runs), strconv.Itoa(row.Wickets),
			strconv.Itoa(row.Dots), row.Economy.String(),
		})
	}

	return scoreTable(width, []string{"Bowler", "O", "R", "W", "0s", "Econ"}, rows, -1)
}

// scoreTable renders fixed width stat columns. The column at stretch takes the remaining
// width, or none does when stretch is negative.
func scoreTable(width int, headers []string, rows [][]string, stretch int) string {
	fixed := colNameSize + (len(headers)-1)*colStatSize

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			colWidth := colStatSize
			switch {
			case col == 0:
				colWidth = colNameSize
			case col == stretch:
				colWidth = max(width-fixed-4, colStatSize)
			}

			switch {
			case row == table.HeaderRow:
				return styles.TableHeading.Width(colWidth)
			case row%2 == 0:
				return styles.TableRowValuesEven.Width(colWidth)
			default:
				return styles.TableRowValuesOdd.Width(colWidth)
			}
		}).
		Render()
}
