package main

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/cricket-tui/internal/api"
	"github.com/leighmacdonald/cricket-tui/internal/config"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/match"
	"github.com/leighmacdonald/cricket-tui/internal/metrics"
	"github.com/leighmacdonald/cricket-tui/internal/poll"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/squad"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/stream"
	"github.com/leighmacdonald/cricket-tui/internal/ui"
	"github.com/leighmacdonald/cricket-tui/internal/ui/command"
	"github.com/leighmacdonald/cricket-tui/internal/ui/pages"
	"golang.org/x/sync/errgroup"
)

const prefetchTimeout = 10 * time.Second

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// Services are the long lived collaborators built at startup.
type Services struct {
	client     *api.Client
	intake     *intake.Intake
	dispatcher *dispatch.Dispatcher
	store      *state.Store
	board      *render.Board
	renderer   *render.Renderer
	squads     *squad.Fetcher
	recorder   *metrics.Manager
}

// App is the main application container. Very little logic is contained within this struct. Its mostly
// responsible for routing snapshots from the background feeds into the UI.
type App struct {
	ui            UI
	config        config.Config
	services      Services
	poller        *poll.Poller
	streams       *stream.Manager
	configUpdates chan config.Config
}

// NewApp returns a new application instance. To actually start the app you must call
// Start().
func NewApp(conf config.Config, services Services, configUpdates chan config.Config) *App {
	app := &App{
		config:        conf,
		services:      services,
		streams:       stream.NewManager(),
		configUpdates: configUpdates,
	}

	app.poller = poll.New(func(ctx context.Context) (match.Snapshot, error) {
		return services.client.MatchData(ctx, conf.MatchID)
	}, conf.UpdateFreq())

	return app
}

// Start brings up the background feeds and blocks processing config changes until the ui
// exits.
func (app *App) Start(ctx context.Context, done <-chan any) {
	go app.poller.Run(ctx, func(snap match.Snapshot, err error) {
		app.ui.Send(command.SnapshotMsg{Source: state.SourcePoll, Snapshot: snap, Err: err})
	})

	app.openStream(ctx)
	defer app.streams.Close()

	for {
		select {
		case conf := <-app.configUpdates:
			app.onConfig(ctx, conf)
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (app *App) onConfig(ctx context.Context, conf config.Config) {
	previous := app.config
	app.config = conf

	if conf.MatchID != previous.MatchID || conf.APIBaseURL != previous.APIBaseURL {
		slog.Warn("Match or api changes take effect after a restart",
			slog.Int("match_id", conf.MatchID), slog.String("api_base_url", conf.APIBaseURL))
	}

	if conf.PushEnabled != previous.PushEnabled || conf.PushTransport != previous.PushTransport ||
		conf.StreamURL() != previous.StreamURL() {
		app.openStream(ctx)
	}

	app.ui.Send(command.StatusMsg{Message: "Configuration reloaded"})
}

// openStream (re)subscribes to the push channel using the current config. Polling continues
// regardless, so a failed subscription only costs latency.
func (app *App) openStream(ctx context.Context) {
	if !app.config.PushEnabled {
		app.streams.Close()

		return
	}

	subscriber, errSub := stream.New(stream.Transport(app.config.PushTransport), app.config.StreamURL(),
		app.config.MatchID, app.services.recorder)
	if errSub != nil {
		slog.Error("Push disabled", slog.String("error", errSub.Error()))
		app.streams.Close()

		return
	}

	slog.Info("Subscribing to push updates", slog.String("transport", app.config.PushTransport),
		slog.String("url", app.config.StreamURL()))

	app.streams.Open(ctx, subscriber, func(payload []byte) {
		app.ui.Send(command.PushMsg{Payload: payload})
	})
}

// prefetch warms the squad cache so the first selection prompt opens without a round trip.
func (app *App) prefetch(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, prefetchTimeout)
	defer cancel()

	snap, errSnap := app.services.client.MatchData(ctx, app.config.MatchID)
	if errSnap != nil {
		slog.Warn("Failed to prefetch match", slog.String("error", errSnap.Error()))

		return
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		_, err := app.services.squads.Players(groupCtx, match.RoleStriker, snap.BattingTeam.ID)

		return err
	})
	group.Go(func() error {
		_, err := app.services.squads.Players(groupCtx, match.RoleBowler, snap.BowlingTeam.ID)

		return err
	})

	if err := group.Wait(); err != nil {
		slog.Warn("Failed to prefetch squads", slog.String("error", err.Error()))
	}
}

func (app *App) createUI(ctx context.Context, configPath string) UI {
	if app.ui == nil {
		app.ui = ui.New(ctx, ui.Services{
			MatchID:    app.config.MatchID,
			Backend:    app.services.client,
			Intake:     app.services.intake,
			Dispatcher: app.services.dispatcher,
			Store:      app.services.store,
			Board:      app.services.board,
			Renderer:   app.services.renderer,
			Squads:     app.services.squads,
			Visibility: app.poller,
			Build:      pages.BuildInfo{Version: BuildVersion, Date: BuildDate, Commit: BuildCommit},
			ConfigPath: configPath,
			CachePath:  config.PathCache(config.CacheDirName),
			APIURL:     app.config.APIBaseURL,
		})
	}

	return app.ui
}

// runUI runs the program in the background. The returned channel receives once the program
// exits and is buffered so the sender never waits on a Start that already returned.
func runUI(program UI) <-chan any {
	done := make(chan any, 1)

	go func() {
		if err := program.Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		done <- "🏏"
	}()

	return done
}
