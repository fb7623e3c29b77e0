// Package config provides centralized configuration for fifastats.
// It loads settings from environment variables (optionally seeded from a
// .env file by main) with defaults, and validates everything up front so a
// bad setting fails before any file is read.
package config

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Data    DataConfig
	CSV     CSVConfig
	Load    LoadConfig
	Roster  RosterConfig
	Report  ReportConfig
	Server  ServerConfig
	Serve   ServeConfig
	Logging LoggingConfig
}

// DataConfig names the input datasets.
type DataConfig struct {
	// Files are the dataset CSV paths, in report order.
	Files []string `env:"DATASETS" default:"FIFA20_official_data.csv,FIFA21_official_data.csv,FIFA22_official_data.csv"`

	// Labels are the display names matching Files. Missing labels are
	// derived from the file name, so the defaults read FIFA 20, 21 and 22.
	Labels []string `env:"DATASET_LABELS"`

	// Dir is prepended to relative file paths (default: working directory)
	Dir string `env:"DATA_DIR" default:"."`
}

// CSVConfig controls how files are split into cells.
type CSVConfig struct {
	// Splitter is "comma" (bare split) or "quoted" (RFC 4180 within a line)
	Splitter string `env:"CSV_SPLITTER" default:"comma"`

	// SkipBOM drops a leading UTF-8 byte order mark (default: true)
	SkipBOM bool `env:"CSV_SKIP_BOM" default:"true"`
}

// LoadConfig controls the loading stage.
type LoadConfig struct {
	// DimensionCache memoizes file shapes across loads (default: true)
	DimensionCache bool `env:"DIMENSION_CACHE" default:"true"`

	// MaxConcurrent is how many datasets load at once; 1 is sequential (default: 3)
	MaxConcurrent int `env:"LOAD_MAX_CONCURRENT" default:"3"`

	// Strict aborts the run when a dataset cannot be read (default: false)
	Strict bool `env:"LOAD_STRICT" default:"false"`
}

// RosterConfig holds the 1-based column offsets and row range of player data.
type RosterConfig struct {
	FirstRow          int  `env:"ROSTER_FIRST_ROW" default:"3"`
	IncludeLastRow    bool `env:"ROSTER_INCLUDE_LAST_ROW" default:"false"`
	NameColumn        int  `env:"ROSTER_COL_NAME" default:"2"`
	AgeColumn         int  `env:"ROSTER_COL_AGE" default:"3"`
	NationalityColumn int  `env:"ROSTER_COL_NATIONALITY" default:"5"`
	OverallColumn     int  `env:"ROSTER_COL_OVERALL" default:"7"`
	PositionColumn    int  `env:"ROSTER_COL_POSITION" default:"62"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	// Format is text, json, yaml, or html (default: text)
	Format string `env:"REPORT_FORMAT" default:"text"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// ServeConfig bounds report builds triggered over HTTP.
type ServeConfig struct {
	// MaxConcurrent is the number of builds allowed at once (default: 2)
	MaxConcurrent int `env:"SERVE_MAX_CONCURRENT" default:"2"`

	// MaxWait is how long a request waits for a build slot (default: 10s)
	MaxWait time.Duration `env:"SERVE_MAX_WAIT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Dataset is one resolved input: display name plus file path.
type Dataset struct {
	Name string
	Path string
}

// Datasets pairs each file with its label and resolves relative paths
// against Dir.
func (c *DataConfig) Datasets() []Dataset {
	out := make([]Dataset, 0, len(c.Files))
	for i, f := range c.Files {
		name := ""
		if i < len(c.Labels) {
			name = c.Labels[i]
		}
		if name == "" {
			name = LabelFromPath(f)
		}

		path := f
		if !filepath.IsAbs(path) && c.Dir != "" && c.Dir != "." {
			path = filepath.Join(c.Dir, path)
		}
		out = append(out, Dataset{Name: name, Path: path})
	}
	return out
}

// LabelFromPath derives a display name from a file name:
// "FIFA21_official_data.csv" -> "FIFA 21", "players.csv" -> "players".
func LabelFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem := base
	if i := strings.IndexByte(stem, '_'); i > 0 {
		stem = stem[:i]
	}

	// Split a trailing number off an alphabetic prefix: FIFA21 -> FIFA 21.
	j := len(stem)
	for j > 0 && stem[j-1] >= '0' && stem[j-1] <= '9' {
		j--
	}
	if j > 0 && j < len(stem) {
		return stem[:j] + " " + stem[j:]
	}
	return base
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
