package component

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

type TabLabel struct {
	label string
	tab   model.Section
}

func NewTabsModel() TabsModel {
	sections := []model.Section{model.SectionLive, model.SectionScorecard, model.SectionCommentary, model.SectionSquad}
	tabs := make([]TabLabel, 0, len(sections))

	for _, section := range sections {
		tabs = append(tabs, TabLabel{label: section.String(), tab: section})
	}

	return TabsModel{
		tabs:      tabs,
		viewState: model.ViewState{Section: model.SectionLive},
		id:        zone.NewPrefix(),
	}
}

type TabsModel struct {
	tabs      []TabLabel
	viewState model.ViewState
	id        string
}

func (m TabsModel) Init() tea.Cmd {
	return nil
}

func (m TabsModel) Update(msg tea.Msg) (TabsModel, tea.Cmd) {
	changed := false

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for _, item := range m.tabs {
			if zone.Get(m.id + item.label).InBounds(msg) {
				vs := m.viewState
				vs.Section = item.tab

				return m, command.SetViewState(vs)
			}
		}

		return m, nil
	case model.ViewState:
		m.viewState = msg

		return m, nil
	case tea.KeyMsg:
		if m.viewState.Page != model.PageMain || m.viewState.Modal != model.ModalNone {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.NextTab):
			m.viewState.Section++
			if m.viewState.Section > model.SectionSquad {
				m.viewState.Section = model.SectionLive
			}
			changed = true
		case key.Matches(msg, input.Default.PrevTab):
			m.viewState.Section--
			if m.viewState.Section < model.SectionLive {
				m.viewState.Section = model.SectionSquad
			}
			changed = true
		case key.Matches(msg, input.Default.Live):
			m.viewState.Section = model.SectionLive
			changed = true
		case key.Matches(msg, input.Default.Scorecard):
			m.viewState.Section = model.SectionScorecard
			changed = true
		case key.Matches(msg, input.Default.Commentary):
			m.viewState.Section = model.SectionCommentary
			changed = true
		case key.Matches(msg, input.Default.Squad):
			m.viewState.Section = model.SectionSquad
			changed = true
		}
	}

	if changed {
		return m, command.SetViewState(m.viewState)
	}

	return m, nil
}

func (m TabsModel) View() string {
	if m.viewState.Width == 0 {
		return ""
	}

	tabs := make([]string, 0, len(m.tabs))

	for _, tab := range m.tabs {
		if tab.tab == m.viewState.Section {
			tabs = append(tabs, zone.Mark(m.id+tab.label, styles.TabsActive.Render(tab.label)))
		} else {
			tabs = append(tabs, zone.Mark(m.id+tab.label, styles.TabsInactive.Render(tab.label)))
		}
	}

	return styles.TabContainer.Width(m.viewState.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}
