package pages

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

func NewHelp(build BuildInfo, configPath string, cachePath string, apiURL string) Help {
	return Help{
		configPath: configPath,
		cachePath:  cachePath,
		apiURL:     apiURL,
		build:      build,
		helpView:   help.New(),
	}
}

type Help struct {
	helpView   help.Model
	viewState  model.ViewState
	configPath string
	cachePath  string
	apiURL     string
	build      BuildInfo
}

func (m Help) Init() tea.Cmd {
	return nil
}

func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.viewState.Page == model.PageHelp && key.Matches(msg, input.Default.Back) {
			m.viewState.Page = model.PageMain

			return m, command.SetViewState(m.viewState)
		}
	case model.ViewState:
		m.viewState = msg
	}

	return m, nil
}

func (m Help) View() string {
	keys := input.Default

	left := m.helpView.FullHelpView([][]key.Binding{
		{keys.Dot, keys.Single, keys.Double, keys.Triple, keys.Four, keys.Six, keys.Runs},
	})

	middle := m.helpView.FullHelpView([][]key.Binding{
		{keys.Wide, keys.NoBall, keys.Bye, keys.LegBye, keys.Penalty, keys.Wicket, keys.Undo},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{keys.Rotate, keys.Finish, keys.Striker, keys.Partner, keys.Bowler, keys.Refresh},
	})

	nav := m.helpView.FullHelpView([][]key.Binding{
		{keys.NextTab, keys.Live, keys.Scorecard, keys.Commentary, keys.Squad, keys.Settings, keys.Quit},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpBox.Render(left), styles.HelpBox.Render(middle),
		styles.HelpBox.Render(right), styles.HelpBox.Render(nav))

	commit := m.build.Commit
	if len(commit) > 8 {
		commit = commit[0:8]
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.build.Version),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.build.Date),
		styles.DetailRow("Backend", m.apiURL),
		styles.DetailRow("Config Path", m.configPath),
		styles.DetailRow("Cache Path", m.cachePath),
	)

	return lipgloss.Place(lipgloss.Width(content), lipgloss.Height(content),
		lipgloss.Center, lipgloss.Center, content)
}
