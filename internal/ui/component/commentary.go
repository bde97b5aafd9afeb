package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/derive"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
	"github.com/muesli/reflow/wordwrap"
)

// CommentaryModel is the ball by ball feed, newest first.
type CommentaryModel struct {
	viewState  model.ViewState
	commentary match.Commentary
	err        error
	viewport   viewport.Model
}

func NewCommentaryModel() CommentaryModel {
	return CommentaryModel{viewport: viewport.New(0, 0)}
}

func (m CommentaryModel) Init() tea.Cmd {
	return nil
}

func (m CommentaryModel) Update(msg tea.Msg) (CommentaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Lower-2, 0)
		m.viewport.SetContent(m.content())
	case command.CommentaryMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.commentary = msg.Commentary
		}

		m.viewport.SetContent(m.content())
		m.viewport.GotoTop()
	case tea.KeyMsg:
		if m.viewState.Section != model.SectionCommentary || m.viewState.Modal != model.ModalNone {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.PrevInns):
			return m, command.LoadCommentary(1)
		case key.Matches(msg, input.Default.NextInns):
			return m, command.LoadCommentary(2)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m CommentaryModel) content() string {
	if m.err != nil {
		return styles.StatusError.Render("Failed to load commentary: " + m.err.Error())
	}

	if len(m.commentary.Timeline) == 0 {
		return styles.InfoMessage.Width(m.viewport.Width).Render("No commentary yet")
	}

	rows := make([]string, 0, len(m.commentary.Timeline))
	for _, entry := range m.commentary.Timeline {
		rows = append(rows, TimelineRow(entry, m.viewport.Width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// TimelineRow formats one feed entry, wrapping the text to width.
func TimelineRow(entry match.TimelineEntry, width int) string {
	if entry.Kind == match.TimelineOverSummary {
		return styles.CommentarySummary.Render(fmt.Sprintf(" End of over %d: %d runs | %d/%d | %s | CRR %s ",
			entry.OverNumber, entry.Runs, entry.ScoreRuns, entry.ScoreWickets, entry.BowlerName, entry.CRR.String()))
	}

	badge := derive.ClassifyBall(match.BallEvent{
		RunsOffBat:  entry.RunsOffBat,
		IsWicket:    entry.IsWicket,
		ExtrasCount: entry.Extras,
		ExtraType:   entry.ExtraType,
	})

	text := strings.TrimSpace(entry.Commentary)
	if text == "" {
		text = entry.Batter
	}

	textWidth := max(width-styles.CommentaryOver.GetWidth()-6, 10)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.CommentaryOver.Render(fmt.Sprintf("%d.%d", entry.Over, entry.Ball)),
		badgeStyle(badge.Kind).Render(badge.Label),
		styles.CommentaryText.Render(wordwrap.String(text, textWidth)))
}

func (m CommentaryModel) View() string {
	title := "Commentary"
	if m.commentary.Inning > 0 {
		title = fmt.Sprintf("Commentary - Innings %d", m.commentary.Inning)
	}

	return model.Container(title, m.viewState.Width-2, m.viewport.Height, m.viewport.View(), true)
}
