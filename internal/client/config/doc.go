// Package config loads runtime configuration for the gophmovies CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with GOPHMOVIES_ (see parseEnv). A
//     dotenv file given via -e or -env, or ./.env when present, is loaded
//     into the environment first.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   catalog API base URL
//	-d string   path of the SQLite cache
//	-p int      page size
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// The API token is deliberately not a flag; set GOPHMOVIES_API_TOKEN, put it
// in the JSON file, or type it when the CLI asks.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.themoviedb.org/3",
//	  "database_path": "/tmp/movies.db",
//	  "page_size": 20,
//	  "request_timeout": "10s",
//	  "search_debounce": "400ms",
//	  "online_check_interval": "5s",
//	  "log_level": "debug"
//	}
package config
