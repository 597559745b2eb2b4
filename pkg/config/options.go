package config

import (
	"log/slog"
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptInputDir sets the directory holding the raw input files.
func OptInputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input Dir", s) {
			c.Input.Dir = s
		}
	}
}

// OptTrendsGlob sets the filename pattern matching trends files.
func OptTrendsGlob(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Trends Glob", s) {
			c.Input.TrendsGlob = s
		}
	}
}

// OptScorecardFile sets the scorecard reference file name.
func OptScorecardFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Scorecard File", s) {
			c.Input.ScorecardFile = s
		}
	}
}

// OptLinkFile sets the name-to-identifier linkage file name.
func OptLinkFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Link File", s) {
			c.Input.LinkFile = s
		}
	}
}

// OptOutputDir sets the directory report artifacts are written to.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptPlots toggles the plot artifacts.
func OptPlots(b bool) Option {
	return func(c *Config) {
		c.Output.Plots = b
	}
}

// OptSQLite toggles the SQLite results export.
func OptSQLite(b bool) Option {
	return func(c *Config) {
		c.Output.SQLite = b
	}
}

// OptCSV toggles the CSV results export.
func OptCSV(b bool) Option {
	return func(c *Config) {
		c.Output.CSV = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "error", "warn", "info", "debug".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Log Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the logging format.
// Valid values: "text", "json".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Log Format", s) {
			c.Log.Format = s
		}
	}
}

func isValidString(field, s string) bool {
	if s == "" {
		slog.Warn("Ignoring empty value", "field", field)
		return false
	}
	return true
}
