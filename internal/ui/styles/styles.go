package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#2f3030")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	Muted       = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#cccccc")

	Red    = lipgloss.Color("#B8383B")
	Blue   = lipgloss.Color("#5885A2")
	Green  = lipgloss.Color("#00e676")
	Gold   = lipgloss.Color("#ffd700")
	Purple = lipgloss.Color("#8650ac")
	Orange = lipgloss.Color("#cf6a32")
	Teal   = lipgloss.Color("#4d7455")

	ContainerTitle       = lipgloss.NewStyle().Bold(true)
	ContainerBorder      = lipgloss.DoubleBorder()
	ContainerStyle       = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gray)
	ContainerStyleActive = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Blue)

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(Black)
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()
	HelpStyle    = BlurredStyle

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Accent).Render("[ Submit ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Submit"))

	// Scoreboard.
	TopBar       = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1).PaddingRight(1)
	TeamName     = lipgloss.NewStyle().Bold(true).Foreground(White).PaddingRight(1)
	Score        = lipgloss.NewStyle().Bold(true).Foreground(Gold).PaddingLeft(1).PaddingRight(1)
	Overs        = lipgloss.NewStyle().Foreground(White).PaddingRight(2)
	RateLabel    = lipgloss.NewStyle().Foreground(Muted)
	RateValue    = lipgloss.NewStyle().Foreground(White).PaddingRight(2)
	Target       = lipgloss.NewStyle().Foreground(Orange).Bold(true).PaddingRight(2)
	Swatch       = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	LastOut      = lipgloss.NewStyle().Foreground(Red).Italic(true)
	Partnership  = lipgloss.NewStyle().PaddingRight(2)
	CardName     = lipgloss.NewStyle().Bold(true).Foreground(White)
	CardStrike   = lipgloss.NewStyle().Bold(true).Foreground(Gold)
	CardEmpty    = lipgloss.NewStyle().Foreground(Gray).Italic(true)
	CardStat     = lipgloss.NewStyle().Foreground(Muted)
	CardBox      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Gray).Padding(0, 1).Width(30)
	CardBoxEmpty = CardBox.BorderForeground(GrayDark)

	BannerNeutral   = lipgloss.NewStyle().Foreground(White).Bold(true)
	BannerResult    = lipgloss.NewStyle().Foreground(Black).Background(Green).Bold(true).Padding(0, 1)
	BannerTie       = lipgloss.NewStyle().Foreground(Black).Background(Gold).Bold(true).Padding(0, 1)
	BannerEquation  = lipgloss.NewStyle().Foreground(Orange).Bold(true)
	BannerCompleted = lipgloss.NewStyle().Foreground(White).Background(Purple).Bold(true).Padding(0, 1)

	BadgeRuns   = lipgloss.NewStyle().Foreground(White).Background(GrayDark).Padding(0, 1).MarginRight(1)
	BadgeWicket = lipgloss.NewStyle().Foreground(White).Background(Red).Bold(true).Padding(0, 1).MarginRight(1)
	BadgeSix    = lipgloss.NewStyle().Foreground(Black).Background(Purple).Bold(true).Padding(0, 1).MarginRight(1)
	BadgeFour   = lipgloss.NewStyle().Foreground(Black).Background(Blue).Bold(true).Padding(0, 1).MarginRight(1)
	BadgeExtra  = lipgloss.NewStyle().Foreground(Black).Background(Gold).Padding(0, 1).MarginRight(1)

	// Action bar.
	Button         = lipgloss.NewStyle().Foreground(White).Background(GrayDark).Padding(0, 1).MarginRight(1)
	ButtonDisabled = lipgloss.NewStyle().Foreground(Gray).Background(GrayDarkAlt).Padding(0, 1).MarginRight(1)
	ButtonPrimary  = lipgloss.NewStyle().Foreground(Black).Background(Accent).Bold(true).Padding(0, 1).MarginRight(1)
	ButtonLocked   = lipgloss.NewStyle().Foreground(Muted).Background(Purple).Padding(0, 1).MarginRight(1)

	// Tables.
	TableHeading       = lipgloss.NewStyle().Background(Black).Foreground(Accent).Bold(true)
	TableRowValuesEven = lipgloss.NewStyle().Background(GrayDark)
	TableRowValuesOdd  = lipgloss.NewStyle().Background(GrayDarkAlt)
	TableSummary       = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)

	ListSelectedRow   = lipgloss.NewStyle().Padding(0).Bold(true).Foreground(Blue).Inline(true)
	ListUnselectedRow = lipgloss.NewStyle().Padding(0).Bold(false).Foreground(White).Inline(true)

	// Commentary.
	CommentaryOver    = lipgloss.NewStyle().Foreground(Orange).Bold(true).Width(6)
	CommentaryText    = lipgloss.NewStyle().Foreground(White)
	CommentarySummary = lipgloss.NewStyle().Foreground(Black).Background(Muted).Bold(true)

	Modal = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(Accent).Padding(1, 2)

	PanelLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue   = lipgloss.NewStyle().Width(60)
	TabContainer = lipgloss.NewStyle().Align(lipgloss.Center)
	TabsInactive = lipgloss.NewStyle().Bold(true).
			Foreground(Teal).PaddingLeft(2).PaddingRight(2)
	TabsActive = lipgloss.NewStyle().
			Foreground(Accent).PaddingLeft(2).PaddingRight(2)

	StatusMatch   = lipgloss.NewStyle().Foreground(Orange).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusUpdated = lipgloss.NewStyle().Foreground(Teal).PaddingRight(2).PaddingLeft(1)
	StatusError   = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center)
	StatusVersion = lipgloss.NewStyle().Foreground(Teal).Bold(true).Align(lipgloss.Center)

	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)

	HelpBox = lipgloss.NewStyle().Padding(3)

	IconBat     = "🏏"
	IconBall    = "🔴"
	IconWicket  = "☝"
	IconLock    = "🔒"
	IconOffline = "📡"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// WrapX will wrap a centered string with the supplied character up to the lenth specified.
func WrapX(width int, value string, character string) string {
	all := width - lipgloss.Width(value)
	if all <= 0 {
		return value
	}

	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all/2)
}

func TitleBorder(border lipgloss.Border, width int, title string) lipgloss.Border {
	border.Top = WrapX(width, "║"+title+"║", border.Top)

	return border
}
