package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/JonMunkholm/fifastats/internal/roster"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, errors.Wrap(err, "config load")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation")
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		value, set := os.LookupEnv(envName)
		if !set && envAlt != "" {
			value, set = os.LookupEnv(envAlt)
		}
		value = strings.TrimSpace(value)

		if value == "" {
			if required {
				return errors.Newf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return errors.Wrapf(err, "invalid value for %s=%q", envName, value)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return errors.Wrap(err, "invalid duration")
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid integer")
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "invalid boolean")
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return errors.Newf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(SplitList(value)))

	default:
		return errors.Newf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// SplitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	validSplitters = map[string]bool{"comma": true, "quoted": true, "rfc4180": true}
	validReports   = map[string]bool{"text": true, "json": true, "yaml": true, "yml": true, "html": true}
	validLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormat = map[string]bool{"text": true, "json": true}
)

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Data
	if len(c.Data.Files) == 0 {
		errs = append(errs, "DATASETS must name at least one file")
	}
	if len(c.Data.Labels) > len(c.Data.Files) {
		errs = append(errs, fmt.Sprintf("DATASET_LABELS has %d entries but DATASETS has %d",
			len(c.Data.Labels), len(c.Data.Files)))
	}
	seen := make(map[string]bool, len(c.Data.Files))
	for _, ds := range c.Data.Datasets() {
		if seen[ds.Name] {
			errs = append(errs, fmt.Sprintf("dataset name %q is used more than once", ds.Name))
		}
		seen[ds.Name] = true
	}

	// CSV and load
	if !validSplitters[strings.ToLower(c.CSV.Splitter)] {
		errs = append(errs, fmt.Sprintf("CSV_SPLITTER (%q) must be one of: comma, quoted", c.CSV.Splitter))
	}
	if c.Load.MaxConcurrent <= 0 {
		errs = append(errs, "LOAD_MAX_CONCURRENT must be positive")
	}

	// Roster
	if err := c.Layout().Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	// Report
	if !validReports[strings.ToLower(c.Report.Format)] {
		errs = append(errs, fmt.Sprintf("REPORT_FORMAT (%q) must be one of: text, json, yaml, html", c.Report.Format))
	}

	// Server
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}
	if c.Serve.MaxConcurrent <= 0 {
		errs = append(errs, "SERVE_MAX_CONCURRENT must be positive")
	}
	if c.Serve.MaxWait <= 0 {
		errs = append(errs, "SERVE_MAX_WAIT must be positive")
	}

	// Logging
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	if !validLogFormat[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return errors.Newf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Layout converts the roster settings into an extraction layout.
func (c *Config) Layout() roster.Layout {
	return roster.Layout{
		Name:           c.Roster.NameColumn,
		Age:            c.Roster.AgeColumn,
		Nationality:    c.Roster.NationalityColumn,
		Overall:        c.Roster.OverallColumn,
		Position:       c.Roster.PositionColumn,
		FirstRow:       c.Roster.FirstRow,
		IncludeLastRow: c.Roster.IncludeLastRow,
	}
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Data: {Files: %q, Dir: %q}, ", c.Data.Files, c.Data.Dir)
	fmt.Fprintf(&b, "CSV: {Splitter: %q, SkipBOM: %v}, ", c.CSV.Splitter, c.CSV.SkipBOM)
	fmt.Fprintf(&b, "Load: {Cache: %v, MaxConcurrent: %d, Strict: %v}, ",
		c.Load.DimensionCache, c.Load.MaxConcurrent, c.Load.Strict)
	fmt.Fprintf(&b, "Report: {Format: %q}, ", c.Report.Format)
	fmt.Fprintf(&b, "Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
