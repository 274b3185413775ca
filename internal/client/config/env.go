package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL              = "GOPHMOVIES_API_URL"
	EnvAPIToken            = "GOPHMOVIES_API_TOKEN"
	EnvDatabasePath        = "GOPHMOVIES_DB_PATH"
	EnvPageSize            = "GOPHMOVIES_PAGE_SIZE"
	EnvRequestTimeout      = "GOPHMOVIES_REQUEST_TIMEOUT"
	EnvSearchDebounce      = "GOPHMOVIES_SEARCH_DEBOUNCE"
	EnvOnlineCheckInterval = "GOPHMOVIES_ONLINE_CHECK_INTERVAL"
	EnvLogLevel            = "GOPHMOVIES_LOG_LEVEL"
	EnvLogFile             = "GOPHMOVIES_LOG_FILE"

	// EnvTMDBToken is accepted as a fallback for the token.
	EnvTMDBToken = "TMDB_API_TOKEN"
)

// parseEnv overlays Config with environment variables.
//
// A dotenv file is loaded first: the one given via -e/-env, or ./.env when
// present. Variables already set in the process environment win over the
// file. Panics when an explicitly given file cannot be loaded or when a
// numeric or duration variable does not parse.
func parseEnv(cfg *Config) {
	loadDotenv(flagx.EnvFileFlags())

	setString(&cfg.APIBaseURL, EnvAPIURL)
	setString(&cfg.APIToken, EnvTMDBToken)
	setString(&cfg.APIToken, EnvAPIToken)
	setString(&cfg.DatabasePath, EnvDatabasePath)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.LogFile, EnvLogFile)

	if v, ok := os.LookupEnv(EnvPageSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvPageSize, err))
		}
		cfg.PageSize = n
	}

	setDuration(&cfg.RequestTimeout, EnvRequestTimeout)
	setDuration(&cfg.SearchDebounce, EnvSearchDebounce)
	setDuration(&cfg.OnlineCheckInterval, EnvOnlineCheckInterval)
}

func loadDotenv(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = d
}
