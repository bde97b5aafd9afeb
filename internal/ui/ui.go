package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/cricket-tui/internal/api"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/ui/pages"
	zone "github.com/lrstanley/bubblezone"
)

var ErrUIExit = errors.New("ui error returned")

// Backend is the part of the api the ui calls directly. Scoring commands go through the
// dispatcher instead.
type Backend interface {
	MatchData(ctx context.Context, matchID int) (match.Snapshot, error)
	Scorecard(ctx context.Context, matchID int) (match.Scorecard, error)
	Commentary(ctx context.Context, matchID int, inning int) (match.Commentary, error)
	UpdateSettings(ctx context.Context, matchID int, settings api.Settings) (match.ActionResult, error)
	SelectSquad(ctx context.Context, matchID int, teamID int, playerIDs []int) (match.ActionResult, error)
}

// Squads loads picker candidates.
type Squads interface {
	Players(ctx context.Context, role match.Role, teamID int) ([]match.SquadPlayer, error)
	Invalidate()
}

// Visibility is told when the terminal gains or loses focus.
type Visibility interface {
	SetVisible(visible bool)
}

// Services are the collaborators the ui drives. Intake is only ever called from the update
// loop.
type Services struct {
	MatchID    int
	Backend    Backend
	Intake     *intake.Intake
	Dispatcher *dispatch.Dispatcher
	Store      *state.Store
	Board      *render.Board
	Renderer   *render.Renderer
	Squads     Squads
	Visibility Visibility
	Build      pages.BuildInfo
	ConfigPath string
	CachePath  string
	APIURL     string
}

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, services Services) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(ctx, services),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithReportFocus(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}

// fetchTimeout bounds the reads started from the ui.
const fetchTimeout = 10 * time.Second
