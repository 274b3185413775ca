package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const appDir = "gophmovies"

// Config holds runtime settings for the gophmovies CLI.
//
// Fields:
//   - APIBaseURL: catalog REST root, e.g. https://api.themoviedb.org/3.
//   - APIToken: bearer token for the catalog. When empty the CLI prompts for it.
//   - DatabasePath: SQLite cache file.
//   - PageSize: window size used by pagination sessions.
//   - RequestTimeout: per-request timeout of the catalog client.
//   - SearchDebounce: how long search text must be stable before it applies.
//   - OnlineCheckInterval: how often the client probes catalog reachability.
//   - LogLevel, LogFile: slog level and JSON log file ("" logs to stderr).
type Config struct {
	APIBaseURL          string
	APIToken            string
	DatabasePath        string
	PageSize            int
	RequestTimeout      time.Duration
	SearchDebounce      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFile             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	dir := defaultDataDir()

	c.APIBaseURL = "https://api.themoviedb.org/3"
	c.APIToken = ""
	c.DatabasePath = filepath.Join(dir, "movies.db")
	c.PageSize = 20
	c.RequestTimeout = 10 * time.Second
	c.SearchDebounce = 400 * time.Millisecond
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "info"
	c.LogFile = filepath.Join(dir, "gophmovies.log")
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q", c.APIBaseURL)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over earlier
// ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, appDir)
	}
	return "."
}
