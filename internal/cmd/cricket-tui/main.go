package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/cricket-tui/internal/api"
	"github.com/leighmacdonald/cricket-tui/internal/blackbox"
	"github.com/leighmacdonald/cricket-tui/internal/cache"
	"github.com/leighmacdonald/cricket-tui/internal/config"
	"github.com/leighmacdonald/cricket-tui/internal/demo"
	"github.com/leighmacdonald/cricket-tui/internal/dispatch"
	"github.com/leighmacdonald/cricket-tui/internal/intake"
	"github.com/leighmacdonald/cricket-tui/internal/metrics"
	"github.com/leighmacdonald/cricket-tui/internal/render"
	"github.com/leighmacdonald/cricket-tui/internal/squad"
	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/leighmacdonald/cricket-tui/internal/store"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	replayListen   string
	rootCmd        = &cobra.Command{
		Use:   "cricket-tui",
		Short: "Live cricket scorekeeping TUI",
		Long:  `cricket-tui - A terminal scoreboard and scoring console for live cricket matches`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about cricket-tui",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	replayCmd = &cobra.Command{
		Use:   "replay <snapshots.jsonl>",
		Short: "Serve a recorded match as a scoring backend",
		Long:  "Serve a recorded match over the scoring api and push channels. New lines appended to the file are published live.",
		Args:  cobra.ExactArgs(1),
		RunE:  replay,
	}
)

var errApp = errors.New("application error")

func main() {
	configPath := config.Path(config.DefaultConfigName)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", configPath, "Config file path")
	replayCmd.Flags().StringVar(&replayListen, "listen", ":5000", "Address the replay backend listens on")
	rootCmd.AddCommand(versionCmd, replayCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1) //nolint:gocritic
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("cricket-tui - Cricket Scoring Terminal UI\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)                 //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)                  //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)                    //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)             //nolint:forbidigo
}

// replay serves a recorded match until interrupted.
func replay(cmd *cobra.Command, args []string) error {
	backend, errBackend := openReplay(args[0])
	if errBackend != nil {
		return errors.Join(errBackend, errApp)
	}
	defer backend.Close()

	go func() {
		if err := backend.Follow(cmd.Context(), args[0]); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Stopped following replay file", slog.String("error", err.Error()))
		}
	}()

	fmt.Printf("Serving match %d from %s on %s\n", backend.MatchID(), args[0], replayListen) //nolint:forbidigo

	if err := backend.Serve(cmd.Context(), replayListen); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}

func openReplay(filePath string) (*demo.Backend, error) {
	file, errOpen := os.Open(filePath)
	if errOpen != nil {
		return nil, errOpen
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close replay file", slog.String("error", err.Error()))
		}
	}(file)

	frames, errLoad := demo.Load(file)
	if errLoad != nil {
		return nil, errLoad
	}

	return demo.New(frames)
}

// run is the main entry point of cricket-tui.
func run(cmd *cobra.Command, _ []string) error {
	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)

	configLoader := config.NewLoader(configUpdates, path.Dir(cfgFile), ".")
	userConfig, errConfig := configLoader.Read()
	if errConfig != nil {
		return errors.Join(errApp, errConfig)
	}

	level := slog.LevelInfo
	if userConfig.Debug {
		level = slog.LevelDebug
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, level)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting cricket-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()), slog.Int("match_id", userConfig.MatchID))

	// In debug mode a replay file stands in for the live backend.
	if userConfig.Debug && userConfig.ReplayPath != "" {
		baseURL, errReplay := startLocalReplay(cmd.Context(), userConfig.ReplayPath)
		if errReplay != nil {
			return errors.Join(errReplay, errApp)
		}

		userConfig.APIBaseURL = baseURL
		userConfig.PushURL = ""
	}

	// Setup the filesystem cache, creating any necessary directories.
	squadCache, errCache := cache.New(userConfig.CacheTTL())
	if errCache != nil {
		return errors.Join(errCache, errApp)
	}

	httpClient := &http.Client{Timeout: config.DefaultHTTPTimeout}
	client, errClient := api.NewClient(userConfig.APIBaseURL, api.WithHTTPClient(httpClient))
	if errClient != nil {
		return errors.Join(errClient, errApp)
	}

	recorder := metrics.New()
	if userConfig.MetricsAddress != "" {
		go func() {
			if err := recorder.Serve(cmd.Context(), userConfig.MetricsAddress); err != nil {
				slog.Error("Metrics listener failed", slog.String("error", err.Error()))
			}
		}()
	}

	intakeOpts := []intake.Option{intake.WithRecorder(recorder), intake.WithSelectionDelay(userConfig.SelectionDelay())}
	dispatchOpts := []dispatch.Option{dispatch.WithRecorder(recorder)}

	if userConfig.BlackboxEnabled {
		// Setup the sqlite database system.
		database, errDB := store.Open(cmd.Context(), config.Path(config.DefaultDBName), true)
		if errDB != nil {
			return errors.Join(errDB, errApp)
		}

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Error closing database", slog.String("error", err.Error()))
			}
		}()

		journal := blackbox.New(store.New(database), blackbox.DefaultBuffer)
		go journal.Start(cmd.Context())

		intakeOpts = append(intakeOpts, intake.WithJournal(journal))
		dispatchOpts = append(dispatchOpts, dispatch.WithJournal(journal))
	}

	board := render.NewBoard()
	renderer := render.New(board)
	snapshots := state.NewStore()

	app := NewApp(userConfig, Services{
		client:     client,
		intake:     intake.New(snapshots, renderer, intakeOpts...),
		dispatcher: dispatch.New(client, userConfig.MatchID, dispatchOpts...),
		store:      snapshots,
		board:      board,
		renderer:   renderer,
		squads:     squad.New(client, squadCache, userConfig.MatchID),
		recorder:   recorder,
	}, configUpdates)

	go app.prefetch(cmd.Context())

	app.Start(cmd.Context(), runUI(app.createUI(cmd.Context(), configLoader.Path())))

	return nil
}

// startLocalReplay serves a replay file on a loopback port, returning its base url.
func startLocalReplay(ctx context.Context, filePath string) (string, error) {
	backend, errBackend := openReplay(filePath)
	if errBackend != nil {
		return "", errBackend
	}

	listener, errListen := (&net.ListenConfig{}).Listen(ctx, "tcp", "127.0.0.1:0")
	if errListen != nil {
		backend.Close()

		return "", errListen
	}

	server := &http.Server{Handler: backend.Router(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Replay backend stopped", slog.String("error", err.Error()))
		}
	}()

	go func() {
		if err := backend.Follow(ctx, filePath); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Stopped following replay file", slog.String("error", err.Error()))
		}
	}()

	go func() {
		<-ctx.Done()
		backend.Close()

		if err := server.Close(); err != nil {
			slog.Error("Failed to close replay backend", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Replaying match file", slog.String("path", filePath), slog.String("address", listener.Addr().String()))

	return "http://" + listener.Addr().String() + "/", nil
}
