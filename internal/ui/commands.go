package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/cricket-tui/internal/api"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/model"
	"golang.org/x/sync/errgroup"
)

func (m *rootModel) fetchSnapshot(source state.Source) tea.Cmd {
	ctx, backend, matchID := m.ctx, m.services.Backend, m.services.MatchID

	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		snap, err := backend.MatchData(reqCtx, matchID)

		return command.SnapshotMsg{Source: source, Snapshot: snap, Err: err}
	}
}

// send runs a single dispatch off the update loop. The snapshot is the one the gate was
// checked against.
func (m *rootModel) send(snap match.Snapshot, found bool, req dispatch.Request) tea.Cmd {
	ctx, dispatcher := m.ctx, m.services.Dispatcher

	return func() tea.Msg {
		result, err := dispatcher.Dispatch(ctx, snap, found, req)

		return command.ActionResultMsg{Request: req, Result: result, Err: err}
	}
}

// runEffects turns intake and gate follow ups into commands.
func (m *rootModel) runEffects(effects []intake.Effect) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))

	for _, effect := range effects {
		switch effect := effect.(type) {
		case intake.Notify:
			cmds = append(cmds, command.SetStatusMessage(effect.Message, effect.Err))
		case intake.OpenSelection:
			cmds = append(cmds, selectionCmd(effect))
		case intake.SwitchSection:
			if effect.Section == intake.SectionSquad {
				vs := m.viewState
				vs.Page = model.PageMain
				vs.Section = model.SectionSquad
				cmds = append(cmds, command.SetViewState(vs))
			}
		case intake.Refetch:
			cmds = append(cmds, m.fetchSnapshot(state.SourceFetch))
		}
	}

	return cmds
}

// selectionCmd opens the picker after the selection delay so the board settles first.
func selectionCmd(selection intake.OpenSelection) tea.Cmd {
	if selection.Delay <= 0 {
		return func() tea.Msg { return command.SelectionMsg{Selection: selection} }
	}

	return tea.Tick(selection.Delay, func(_ time.Time) tea.Msg {
		return command.SelectionMsg{Selection: selection}
	})
}

func selectionFor(role match.Role, snap match.Snapshot) intake.OpenSelection {
	selection := intake.OpenSelection{Role: role, TeamID: snap.BattingTeam.ID, Title: "Select " + role.String()}
	if role == match.RoleBowler {
		selection.TeamID = snap.BowlingTeam.ID
	}

	return selection
}

func (m *rootModel) loadPlayers(selection intake.OpenSelection) tea.Cmd {
	ctx, squads := m.ctx, m.services.Squads

	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		players, err := squads.Players(reqCtx, selection.Role, selection.TeamID)
		if err != nil {
			slog.Error("Failed to load players", slog.String("role", string(selection.Role)),
				slog.String("error", err.Error()))
		}

		return command.PlayersMsg{Selection: selection, Players: players, Err: err}
	}
}

func (m *rootModel) fetchScorecard() tea.Cmd {
	ctx, backend, matchID := m.ctx, m.services.Backend, m.services.MatchID

	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		card, err := backend.Scorecard(reqCtx, matchID)
		if err != nil {
			slog.Error("Failed to load scorecard", slog.String("error", err.Error()))
		}

		return command.ScorecardMsg{Scorecard: card, Err: err}
	}
}

// fetchCommentary loads an innings feed. Zero selects the innings in play.
func (m *rootModel) fetchCommentary(inning int) tea.Cmd {
	if inning <= 0 {
		inning = 1
		if snap, found := m.services.Store.Current(); found && snap.Innings != nil && snap.Innings.CurrentInning > 0 {
			inning = snap.Innings.CurrentInning
		}
	}

	ctx, backend, matchID := m.ctx, m.services.Backend, m.services.MatchID

	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		commentary, err := backend.Commentary(reqCtx, matchID, inning)
		if err != nil {
			slog.Error("Failed to load commentary", slog.String("error", err.Error()))
		}

		return command.CommentaryMsg{Commentary: commentary, Err: err}
	}
}

// fetchSquads loads both sides at once for the squad tab.
func (m *rootModel) fetchSquads() tea.Cmd {
	snap, found := m.services.Store.Current()
	if !found {
		return nil
	}

	ctx, squads := m.ctx, m.services.Squads

	return func() tea.Msg {
		msg := command.SquadMsg{
			BattingID:   snap.BattingTeam.ID,
			BattingTeam: snap.BattingTeam.Name,
			BowlingTeam: snap.BowlingTeam.Name,
		}

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			players, err := squads.Players(groupCtx, match.RoleStriker, snap.BattingTeam.ID)
			msg.Batting = players

			return err
		})
		group.Go(func() error {
			players, err := squads.Players(groupCtx, match.RoleBowler, snap.BowlingTeam.ID)
			msg.Bowling = players

			return err
		})

		if err := group.Wait(); err != nil {
			slog.Error("Failed to load squads", slog.String("error", err.Error()))
			msg.Err = err
		}

		return msg
	}
}

func (m *rootModel) saveSettings(settings command.Settings) tea.Cmd {
	ctx, backend, matchID := m.ctx, m.services.Backend, m.services.MatchID

	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		result, err := backend.UpdateSettings(reqCtx, matchID, api.Settings{
			MatchNumber:  settings.MatchNumber,
			TotalOvers:   settings.TotalOvers,
			BallsPerOver: settings.BallsPerOver,
		})

		return command.SettingsSavedMsg{Result: result, Err: err}
	}
}

func (m *rootModel) selectSquad(msg command.SelectSquadMsg) tea.Cmd {
	ctx, backend, matchID := m.ctx, m.services.Backend, m.services.MatchID

	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		result, err := backend.SelectSquad(reqCtx, matchID, msg.TeamID, msg.PlayerIDs)

		return command.SquadSelectedMsg{Result: result, Err: err}
	}
}
