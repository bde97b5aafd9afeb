package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

func NewLoader(changes chan<- Config, paths ...string) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("api_base_url", "http://localhost:5000/")
	loader.SetDefault("match_id", 1)
	loader.SetDefault("update_freq_ms", 2000)
	loader.SetDefault("push_enabled", true)
	loader.SetDefault("push_transport", "sse")
	loader.SetDefault("push_url", "")
	loader.SetDefault("selection_delay_ms", 300)
	loader.SetDefault("cache_ttl_minutes", 10)
	loader.SetDefault("blackbox_enabled", true)
	loader.SetDefault("metrics_address", "")
	loader.SetDefault("replay_path", "")
	loader.SetDefault("debug", false)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)

	if len(paths) == 0 {
		paths = []string{Path(""), "."}
	}

	for _, configPath := range paths {
		loader.AddConfigPath(configPath)
	}

	loader.AutomaticEnv()

	if changes != nil {
		loader.WatchConfig()
		loader.OnConfigChange(loader.onConfigChange)
	}

	return &loader
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

func (cl *Loader) Write(config Config) error {
	cl.Set("api_base_url", config.APIBaseURL)
	cl.Set("match_id", config.MatchID)
	cl.Set("update_freq_ms", config.UpdateFreqMs)
	cl.Set("push_enabled", config.PushEnabled)
	cl.Set("push_transport", config.PushTransport)
	cl.Set("push_url", config.PushURL)
	cl.Set("selection_delay_ms", config.SelectionDelayMs)
	cl.Set("cache_ttl_minutes", config.CacheTTLMinutes)
	cl.Set("blackbox_enabled", config.BlackboxEnabled)
	cl.Set("metrics_address", config.MetricsAddress)
	cl.Set("replay_path", config.ReplayPath)

	if err := cl.WriteConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Join(err, errConfigWrite)
		}

		if errSafe := cl.SafeWriteConfig(); errSafe != nil {
			return errors.Join(errSafe, errConfigWrite)
		}
	}

	return nil
}

// Read loads the config file, if any, over the defaults and environment.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if err := config.validate(); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
