package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophmovies/internal/flagx"
	"github.com/dmitrijs2005/gophmovies/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	APIToken            string         `json:"api_token"`
	DatabasePath        string         `json:"database_path"`
	PageSize            int            `json:"page_size"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	SearchDebounce      timex.Duration `json:"search_debounce"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogLevel            string         `json:"log_level"`
	LogFile             string         `json:"log_file"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. Without the flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.APIToken, jc.APIToken)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.PageSize, jc.PageSize)
	overlay(&cfg.RequestTimeout, jc.RequestTimeout.Duration)
	overlay(&cfg.SearchDebounce, jc.SearchDebounce.Duration)
	overlay(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval.Duration)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFile, jc.LogFile)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
