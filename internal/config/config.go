package config

import (
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
	errConfigValue = errors.New("invalid config value")
)

const (
	ConfigDirName      = "cricket-tui"
	DefaultConfigName  = "cricket-tui"
	DefaultDBName      = "cricket-tui.db"
	DefaultLogName     = "cricket-tui.log"
	CacheDirName       = "cache"
	EnvPrefix          = "crickettui"
	DefaultHTTPTimeout = 15 * time.Second
)

type Config struct {
	APIBaseURL       string `mapstructure:"api_base_url"`
	MatchID          int    `mapstructure:"match_id"`
	UpdateFreqMs     int    `mapstructure:"update_freq_ms"`
	PushEnabled      bool   `mapstructure:"push_enabled"`
	PushTransport    string `mapstructure:"push_transport"`
	PushURL          string `mapstructure:"push_url"`
	SelectionDelayMs int    `mapstructure:"selection_delay_ms"`
	CacheTTLMinutes  int    `mapstructure:"cache_ttl_minutes"`
	BlackboxEnabled  bool   `mapstructure:"blackbox_enabled"`
	// MetricsAddress enables a prometheus listener when set, eg: 127.0.0.1:9101
	MetricsAddress string `mapstructure:"metrics_address"`
	// ReplayPath is a JSONL snapshot file replayed in place of the live feed when debug is on.
	ReplayPath string `mapstructure:"replay_path"`
	Debug      bool   `mapstructure:"debug"`
}

func (c Config) UpdateFreq() time.Duration {
	return time.Duration(c.UpdateFreqMs) * time.Millisecond
}

func (c Config) SelectionDelay() time.Duration {
	return time.Duration(c.SelectionDelayMs) * time.Millisecond
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// StreamURL is the push endpoint, derived from the api base url when not set explicitly.
func (c Config) StreamURL() string {
	if c.PushURL != "" {
		return c.PushURL
	}

	base := c.APIBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	if c.PushTransport == "websocket" {
		return base + "ws"
	}

	return base + "events"
}

func (c Config) validate() error {
	if _, err := url.ParseRequestURI(c.APIBaseURL); err != nil {
		return errors.Join(err, errConfigValue)
	}

	if c.MatchID <= 0 {
		return errors.Join(errors.New("match_id must be positive"), errConfigValue)
	}

	switch c.PushTransport {
	case "sse", "websocket":
	default:
		return errors.Join(errors.New("push_transport must be sse or websocket"), errConfigValue)
	}

	return nil
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return cacheDir
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(Path(logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
