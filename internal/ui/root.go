package ui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/network/encoding"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/component"
	"github.com/leighmacdonald/cricket-tui/internal/ui/input"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"github.com/leighmacdonald/cricket-tui/internal/ui/pages"
	"github.com/leighmacdonald/cricket-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

// rootModel is the top level model for the ui side of the app. Its Update is the only place
// snapshots are applied and actions are started.
type rootModel struct {
	ctx          context.Context
	services     Services
	viewState    model.ViewState
	mainPage     *pages.Main
	settingsPage *pages.Settings
	helpPage     pages.Help
	statusModel  component.StatusBarModel
	boardVersion uint64
	// shared is the view state last forwarded to the child models.
	shared       model.ViewState
	headerHeight int
	footerHeight int
}

func newRootModel(ctx context.Context, services Services) *rootModel {
	return &rootModel{
		ctx:          ctx,
		services:     services,
		viewState:    model.ViewState{Page: model.PageMain, Section: model.SectionLive},
		mainPage:     pages.NewMain(services.Board),
		settingsPage: pages.NewSettings(),
		helpPage:     pages.NewHelp(services.Build, services.ConfigPath, services.CachePath, services.APIURL),
		statusModel:  component.NewStatusBarModel(services.Build.Version, services.MatchID),
		headerHeight: 1,
		footerHeight: 1,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cricket-tui"),
		m.mainPage.Init(),
		m.settingsPage.Init(),
		m.helpPage.Init(),
		m.statusModel.Init(),
		m.fetchSnapshot(state.SourceFetch),
	)
}

func (m *rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	var cmd tea.Cmd

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.viewState.Height = msg.Height
		m.viewState.Width = msg.Width
		m.viewState.Upper = m.headerHeight
		m.viewState.Lower = max(msg.Height-m.headerHeight-m.footerHeight, 0)

		return m, command.SetViewState(m.viewState)
	case model.ViewState:
		cmd = m.onViewState(msg)
	case tea.FocusMsg:
		m.services.Visibility.SetVisible(true)
		cmd = m.fetchSnapshot(state.SourceFetch)
	case tea.BlurMsg:
		m.services.Visibility.SetVisible(false)
	case tea.KeyMsg:
		if handled, keyCmd := m.onKey(msg); handled {
			return m, keyCmd
		}
	case command.SnapshotMsg:
		cmd = m.onSnapshot(msg)
	case command.PushMsg:
		if err := m.services.Intake.ApplyBytes(state.SourcePush, msg.Payload); err != nil {
			slog.Warn("Skipped pushed snapshot", slog.String("error", err.Error()))
		} else {
			cmd = m.onApplied()
		}
	case command.ActionMsg:
		cmd = m.onAction(msg)
	case command.ActionResultMsg:
		cmd = m.onActionResult(msg)
	case command.EffectsMsg:
		cmd = tea.Batch(m.runEffects(msg.Effects)...)
	case command.SelectionMsg:
		cmd = m.loadPlayers(msg.Selection)
	case command.PlayersMsg:
		cmd = m.onPlayers(msg)
	case command.CloseModalMsg:
		m.viewState.Modal = model.ModalNone
	case command.ScorecardMsg:
		if msg.Err != nil {
			cmd = command.SetStatusMessage("Failed to load scorecard", true)
		} else {
			m.services.Renderer.RenderScorecard(msg.Scorecard)
		}
	case command.LoadCommentaryMsg:
		cmd = m.fetchCommentary(msg.Inning)
	case command.SaveSettingsMsg:
		cmd = m.saveSettings(msg.Settings)
	case command.SettingsSavedMsg:
		cmd = m.onSettingsSaved(msg)
	case command.SelectSquadMsg:
		cmd = m.selectSquad(msg)
	case command.SquadSelectedMsg:
		cmd = m.onSquadSelected(msg)
	}

	return m.propagate(inMsg, cmd)
}

func (m *rootModel) onKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.viewState.Modal != model.ModalNone || m.viewState.Page == model.PageSettings {
		return false, nil
	}

	switch {
	case key.Matches(msg, input.Default.Quit):
		if m.viewState.Page != model.PageMain {
			return false, nil
		}

		return true, tea.Quit
	case key.Matches(msg, input.Default.Help):
		vs := m.viewState
		if vs.Page == model.PageHelp {
			vs.Page = model.PageMain
		} else {
			vs.Page = model.PageHelp
		}

		return true, command.SetViewState(vs)
	case key.Matches(msg, input.Default.Settings):
		snap, _ := m.services.Store.Current()
		vs := m.viewState
		vs.Page = model.PageSettings

		return true, tea.Batch(m.settingsPage.Load(snap), command.SetViewState(vs))
	case key.Matches(msg, input.Default.Refresh):
		m.services.Squads.Invalidate()

		return true, tea.Batch(m.fetchSnapshot(state.SourceFetch), m.sectionCmd(m.viewState.Section))
	}

	return false, nil
}

func (m *rootModel) onViewState(next model.ViewState) tea.Cmd {
	prev := m.viewState
	m.viewState = next

	if next.Page != model.PageMain {
		return nil
	}

	if prev.Section != next.Section || prev.Page != next.Page {
		return m.sectionCmd(next.Section)
	}

	return nil
}

// sectionCmd loads what a tab shows when it becomes active.
func (m *rootModel) sectionCmd(section model.Section) tea.Cmd {
	switch section {
	case model.SectionScorecard:
		return m.fetchScorecard()
	case model.SectionCommentary:
		return m.fetchCommentary(0)
	case model.SectionSquad:
		return m.fetchSquads()
	case model.SectionLive:
		return nil
	}

	return nil
}

func (m *rootModel) onSnapshot(msg command.SnapshotMsg) tea.Cmd {
	if malformed(msg.Err) {
		_ = m.services.Intake.Reject(msg.Source, msg.Err)

		return nil
	}

	if msg.Err != nil {
		slog.Error("Failed to fetch match data", slog.String("source", string(msg.Source)),
			slog.String("error", msg.Err.Error()))

		return command.SetStatusMessage(styles.IconOffline+" Connection problem, retrying", true)
	}

	if err := m.services.Intake.Apply(msg.Source, msg.Snapshot); err != nil {
		slog.Warn("Skipped snapshot", slog.String("source", string(msg.Source)), slog.String("error", err.Error()))

		return nil
	}

	return m.onApplied()
}

// onApplied announces a new snapshot and refreshes the open tab when the board changed.
func (m *rootModel) onApplied() tea.Cmd {
	at, source := m.services.Store.Updated()
	version := m.services.Board.Version()
	cmds := []tea.Cmd{func() tea.Msg {
		return command.UpdatedMsg{At: at, Source: source, Version: version}
	}}

	if version != m.boardVersion && m.viewState.Section != model.SectionLive {
		cmds = append(cmds, m.sectionCmd(m.viewState.Section))
	}

	m.boardVersion = version

	return tea.Batch(cmds...)
}

func (m *rootModel) onAction(msg command.ActionMsg) tea.Cmd {
	req := msg.Request
	snap, found := m.services.Store.Current()

	if err := m.services.Dispatcher.Check(req.Action, snap, found); err != nil {
		return command.Effects(dispatch.Blocked(err, snap)...)
	}

	switch {
	case req.Action == dispatch.ActionSetBatsman && req.PlayerID == 0:
		return selectionCmd(selectionFor(req.Role, snap))
	case req.Action == dispatch.ActionSetBowler && req.PlayerID == 0:
		return selectionCmd(selectionFor(match.RoleBowler, snap))
	case req.Value == nil && len(dispatch.Menu(req.Action)) > 0:
		m.viewState.Modal = model.ModalPicker

		return m.mainPage.OpenPicker(req.Action.Label(), component.MenuItems(dispatch.Menu(req.Action)), false)
	case req.Action.NeedsConfirm() && !msg.Confirmed:
		m.mainPage.OpenConfirm(req)
		m.viewState.Modal = model.ModalConfirm

		return nil
	default:
		return m.send(snap, found, req)
	}
}

func (m *rootModel) onActionResult(msg command.ActionResultMsg) tea.Cmd {
	if msg.Err != nil {
		if !errors.Is(msg.Err, dispatch.ErrSend) {
			snap, _ := m.services.Store.Current()

			return command.Effects(dispatch.Blocked(msg.Err, snap)...)
		}

		return command.SetStatusMessage("Network error: "+msg.Request.Action.Label()+" was not recorded", true)
	}

	switch {
	case msg.Request.Action == dispatch.ActionSetBatsman,
		msg.Request.Action == dispatch.ActionSetBowler,
		msg.Result.Status == match.ResultWicketFall,
		msg.Result.Status == match.ResultInningBreak:
		m.services.Squads.Invalidate()
	}

	effects := m.services.Intake.HandleActionResponse(msg.Result)
	cmds := append([]tea.Cmd{m.onApplied()}, m.runEffects(effects)...)

	return tea.Batch(cmds...)
}

func (m *rootModel) onPlayers(msg command.PlayersMsg) tea.Cmd {
	if msg.Err != nil {
		return command.SetStatusMessage("Failed to load players", true)
	}

	if len(msg.Players) == 0 {
		return command.SetStatusMessage("No players available for selection", true)
	}

	title := msg.Selection.Title
	if title == "" {
		title = "Select " + msg.Selection.Role.String()
	}

	m.viewState.Modal = model.ModalPicker

	return m.mainPage.OpenPicker(title, component.PlayerItems(msg.Selection.Role, msg.Players), true)
}

func (m *rootModel) onSettingsSaved(msg command.SettingsSavedMsg) tea.Cmd {
	if msg.Err != nil {
		return command.SetStatusMessage("Failed to save settings", true)
	}

	if failure, failed := msg.Result.Failure(); failed {
		return command.SetStatusMessage(failure, true)
	}

	return tea.Batch(command.SetStatusMessage("Match settings saved", false), m.fetchSnapshot(state.SourceFetch))
}

func (m *rootModel) onSquadSelected(msg command.SquadSelectedMsg) tea.Cmd {
	if msg.Err != nil {
		return command.SetStatusMessage("Failed to select squad", true)
	}

	if failure, failed := msg.Result.Failure(); failed {
		return command.SetStatusMessage(failure, true)
	}

	m.services.Squads.Invalidate()

	message := msg.Result.Message
	if message == "" {
		message = "Squad selected"
	}

	return tea.Batch(command.SetStatusMessage(message, false), m.fetchSquads())
}

func (m *rootModel) View() string {
	var content string

	switch m.viewState.Page {
	case model.PageSettings:
		content = m.settingsPage.View()
	case model.PageHelp:
		content = m.helpPage.View()
	case model.PageMain:
		content = m.mainPage.View()
	}

	hdr := styles.HeaderContainerStyle.Width(m.viewState.Width).Render(m.mainPage.Header())
	ftr := styles.FooterContainerStyle.Width(m.viewState.Width).Render(m.statusModel.View())
	ctr := styles.ContentContainerStyle.Height(m.viewState.Lower).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, hdr, ctr, ftr))
}

// propagate forwards a message to the child models. Key presses only reach the active page.
// A view state changed by the root itself is forwarded first.
func (m *rootModel) propagate(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if viewState, ok := msg.(model.ViewState); ok {
		m.shared = viewState
	} else if m.shared != m.viewState {
		_, shareCmd := m.propagate(m.viewState, nil)
		cmd = tea.Batch(cmd, shareCmd)
	}

	cmds := make([]tea.Cmd, 5)
	cmds[0] = cmd

	_, isKey := msg.(tea.KeyMsg)

	if !isKey || m.viewState.Page == model.PageMain {
		m.mainPage, cmds[1] = m.mainPage.Update(msg)
	}

	if !isKey || m.viewState.Page == model.PageSettings {
		m.settingsPage, cmds[2] = m.settingsPage.Update(msg)
	}

	if !isKey || m.viewState.Page == model.PageHelp {
		m.helpPage, cmds[3] = m.helpPage.Update(msg)
	}

	m.statusModel, cmds[4] = m.statusModel.Update(msg)

	return m, tea.Batch(cmds...)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/cricket-tui/cricket-tui.log
func logMsg(inMsg tea.Msg) {
	switch inMsg.(type) {
	case command.TickMsg, command.PushMsg, command.SnapshotMsg, command.UpdatedMsg, tea.MouseMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}

// malformed reports errors for a payload that arrived but is not a usable snapshot, as
// opposed to the backend being unreachable.
func malformed(err error) bool {
	return errors.Is(err, match.ErrMissingInnings) ||
		errors.Is(err, match.ErrDecodeSnapshot) ||
		errors.Is(err, encoding.ErrDecodeJSON)
}
