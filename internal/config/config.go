package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`      // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`        // Telegram API token loaded from environment
	GeminiAPIKey     string  `mapstructure:"-"`        // Gemini API key loaded from environment
	Gemini           Gemini  `mapstructure:"gemini"`   // content generation settings
	Quiz             Quiz    `mapstructure:"quiz"`     // quiz settings
	Geo              Geo     `mapstructure:"geo"`      // map catalog settings
	Session          Session `mapstructure:"session"`  // chat session settings
	DB               DB      `mapstructure:"database"` // database configuration section
}

// Gemini contains model and retry settings of the content client.
type Gemini struct {
	Model       string        `mapstructure:"model"`        // model name
	MaxAttempts int           `mapstructure:"max_attempts"` // attempts per request, including the first
	BaseDelay   time.Duration `mapstructure:"base_delay"`   // first backoff delay, doubled per retry
	MaxJitter   time.Duration `mapstructure:"max_jitter"`   // upper bound of the random extra delay
}

type Quiz struct {
	Length int `mapstructure:"length"` // questions per quiz run
}

// Geo contains settings of the map catalog.
type Geo struct {
	TopologyURL     string `mapstructure:"topology_url"`     // TopoJSON file with the map regions
	RefreshSchedule string `mapstructure:"refresh_schedule"` // cron spec for reloading the regions
}

// Session contains settings of in-memory chat sessions.
type Session struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`       // sessions idle for longer are dropped
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec for dropping idle sessions
	BannerTTL     time.Duration `mapstructure:"banner_ttl"`     // how long error banners stay visible
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether a database is configured. Without one, results stay in memory.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file when present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.max_attempts", 3)
	v.SetDefault("gemini.base_delay", "1s")
	v.SetDefault("gemini.max_jitter", "500ms")
	v.SetDefault("quiz.length", 5)
	v.SetDefault("geo.topology_url", "https://code.highcharts.com/mapdata/custom/europe.topo.json")
	v.SetDefault("geo.refresh_schedule", "0 4 * * *")
	v.SetDefault("session.idle_ttl", "24h")
	v.SetDefault("session.sweep_schedule", "*/15 * * * *")
	v.SetDefault("session.banner_ttl", "5s")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "API_KEY")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.GeminiAPIKey = v.GetString("gemini_api_key")
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	return &cfg, nil
}
