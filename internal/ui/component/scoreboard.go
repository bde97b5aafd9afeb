package component

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

// ScoreboardModel draws the live scoreboard from the render board. It holds no match state
// of its own.
type ScoreboardModel struct {
	board     *render.Board
	viewState model.ViewState
}

func NewScoreboardModel(board *render.Board) ScoreboardModel {
	return ScoreboardModel{board: board}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	if viewState, ok := msg.(model.ViewState); ok {
		m.viewState = viewState
	}

	return m, nil
}

func (m ScoreboardModel) View() string {
	if m.board.Version() == 0 {
		return styles.InfoMessage.Render(styles.IconBat + " Waiting for match data...")
	}

	rows := []string{
		m.topBar(),
		m.header(),
		m.banner(),
		"",
		m.cards(),
		m.thisOver(),
	}

	if m.board.Visible(render.FieldLastOut) {
		rows = append(rows, styles.LastOut.Render("Last out: "+m.board.Text(render.FieldLastOut)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m ScoreboardModel) topBar() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TopBar.Render(m.board.Text(render.FieldMatchNumber)),
		styles.TopBar.Render(m.board.Text(render.FieldTotalOvers)),
		styles.TopBar.Render(m.board.Text(render.FieldMatchType)))
}

func (m ScoreboardModel) header() string {
	parts := []string{
		swatch(m.board.Style(render.FieldBattingColor, render.StyleBackground)),
		styles.TeamName.Render(m.board.Text(render.FieldBattingName)),
		styles.Score.Render(m.board.Text(render.FieldScore)),
		styles.Overs.Render(m.board.Text(render.FieldOvers)),
		styles.RateLabel.Render("CRR "),
		styles.RateValue.Render(m.board.Text(render.FieldCRR)),
		styles.RateLabel.Render("Proj "),
		styles.RateValue.Render(m.board.Text(render.FieldProjected)),
	}

	if m.board.Visible(render.FieldTarget) {
		parts = append(parts, styles.Target.Render(m.board.Text(render.FieldTarget)))
	}

	parts = append(parts,
		swatch(m.board.Style(render.FieldBowlingColor, render.StyleBackground)),
		styles.TeamName.Render(m.board.Text(render.FieldBowlingName)))

	if m.board.Visible(render.FieldBowlingScore) {
		parts = append(parts, styles.Overs.Render(m.board.Text(render.FieldBowlingScore)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m ScoreboardModel) banner() string {
	text := m.board.Text(render.FieldBanner)
	if text == "" {
		return ""
	}

	tone, _ := strconv.Atoi(m.board.Attr(render.FieldBanner, render.AttrTone))

	return BannerStyle(derive.Tone(tone)).Render(text)
}

// BannerStyle maps a banner tone to its colouring.
func BannerStyle(tone derive.Tone) lipgloss.Style {
	switch tone {
	case derive.ToneResult:
		return styles.BannerResult
	case derive.ToneTie:
		return styles.BannerTie
	case derive.ToneEquation:
		return styles.BannerEquation
	case derive.ToneCompleted:
		return styles.BannerCompleted
	case derive.ToneNeutral:
		return styles.BannerNeutral
	}

	return styles.BannerNeutral
}

func (m ScoreboardModel) cards() string {
	striker, _ := render.Region[derive.BatsmanCard](m.board, render.RegionStriker)
	nonStriker, _ := render.Region[derive.BatsmanCard](m.board, render.RegionNonStriker)
	bowler, _ := render.Region[derive.BowlerCard](m.board, render.RegionBowler)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		BatsmanCardView(striker, true),
		BatsmanCardView(nonStriker, false),
		BowlerCardView(bowler))
}

// BatsmanCardView renders a batsman slot, or the prompt to fill it.
func BatsmanCardView(card derive.BatsmanCard, onStrike bool) string {
	if card.State == derive.CardEmpty {
		label := "Select Striker"
		if !onStrike {
			label = "Select Non-Striker"
		}

		return styles.CardBoxEmpty.Render(styles.CardEmpty.Render(label))
	}

	name := styles.CardName.Render(card.Name)
	if onStrike {
		name = styles.CardStrike.Render(card.Name + " *")
	}

	return styles.CardBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		name,
		card.Score,
		styles.CardStat.Render("4s "+card.Fours+"  6s "+card.Sixes+"  SR "+card.StrikeRate)))
}

func BowlerCardView(card derive.BowlerCard) string {
	if card.State == derive.CardEmpty {
		return styles.CardBoxEmpty.Render(styles.CardEmpty.Render("Select Bowler"))
	}

	return styles.CardBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardName.Render(card.Name),
		card.Figures,
		styles.CardStat.Render("Econ "+card.Economy+"  Dots "+card.Dots+"  Extras "+card.Extras)))
}

func (m ScoreboardModel) thisOver() string {
	badges, _ := render.Region[[]derive.Badge](m.board, render.RegionBadges)

	partnership := m.board.Text(render.FieldPartnership)
	partnershipStyle := styles.Partnership.Foreground(lipgloss.Color(m.board.Style(render.FieldPartnership, render.StyleColor)))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.RateLabel.Render("Partnership "),
		partnershipStyle.Render(partnership),
		styles.RateLabel.Render("This over "),
		BadgesView(badges),
		styles.RateValue.Render(m.board.Text(render.FieldThisOverRuns)))
}

// BadgesView renders the deliveries of the current over.
func BadgesView(badges []derive.Badge) string {
	if len(badges) == 0 {
		return styles.CardEmpty.Render("- ")
	}

	rendered := make([]string, 0, len(badges))
	for _, badge := range badges {
		rendered = append(rendered, badgeStyle(badge.Kind).Render(badge.Label))
	}

	return strings.Join(rendered, "")
}

func badgeStyle(kind derive.BadgeKind) lipgloss.Style {
	switch kind {
	case derive.BadgeWicket:
		return styles.BadgeWicket
	case derive.BadgeSix:
		return styles.BadgeSix
	case derive.BadgeFour:
		return styles.BadgeFour
	case derive.BadgeExtra:
		return styles.BadgeExtra
	case derive.BadgeRuns:
		return styles.BadgeRuns
	}

	return styles.BadgeRuns
}

// swatch draws a team colour block, or nothing for a transparent colour.
func swatch(colour string) string {
	if colour == "" || colour == "transparent" {
		return ""
	}

	return styles.Swatch.Background(lipgloss.Color(colour)).Render(" ")
}
