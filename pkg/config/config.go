// Package config provides configuration management for trendshift.
//
// This package has no I/O dependencies; file loading lives in
// internal/ioconfig.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
//   - Default config (from Defaults()) is always valid
//   - All mutations go through Option functions
//   - Invalid option values are rejected with a warning; the config
//     stays in its previous valid state
//
// # Environment Variables
//
// Use the TRENDSHIFT_ prefix with underscores for nesting:
//
//	TRENDSHIFT_INPUT_DIR=./data
//	TRENDSHIFT_OUTPUT_DIR=./results
//	TRENDSHIFT_LOG_LEVEL=debug
package config

// Config represents the complete trendshift configuration.
type Config struct {
	// Input locates the three raw data inputs.
	Input InputConfig `mapstructure:"input" yaml:"input"`

	// Output controls which artifacts a run writes and where.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// InputConfig locates the raw inputs on the filesystem.
type InputConfig struct {
	// Dir is the directory holding all input files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// TrendsGlob is the filename pattern, relative to Dir, matching
	// the per-institution search-interest files.
	TrendsGlob string `mapstructure:"trends_glob" yaml:"trends_glob"`

	// ScorecardFile is the scorecard reference table, relative to Dir.
	ScorecardFile string `mapstructure:"scorecard_file" yaml:"scorecard_file"`

	// LinkFile is the name-to-identifier linkage table, relative to Dir.
	LinkFile string `mapstructure:"link_file" yaml:"link_file"`
}

// OutputConfig controls report artifacts.
type OutputConfig struct {
	// Dir is where plots, tables and exports are written.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Plots toggles the histogram and scatter artifacts.
	Plots bool `mapstructure:"plots" yaml:"plots"`

	// SQLite toggles the results.db export.
	SQLite bool `mapstructure:"sqlite" yaml:"sqlite"`

	// CSV toggles the model_rows.csv export.
	CSV bool `mapstructure:"csv" yaml:"csv"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'.
	Level string `mapstructure:"level" yaml:"level"`
	// Destination can be 'stderr' or 'stdout'.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// Defaults creates a Config with sensible default values. The returned
// config is always valid and ready to use; values can be overridden with
// Option functions via Update.
func Defaults() *Config {
	return &Config{
		Input: InputConfig{
			Dir:           ".",
			TrendsGlob:    "trends_up_to_*.csv",
			ScorecardFile: "Most+Recent+Cohorts+(Scorecard+Elements).csv",
			LinkFile:      "id_name_link.csv",
		},
		Output: OutputConfig{
			Dir:    "results",
			Plots:  true,
			SQLite: true,
			CSV:    true,
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
	}
}
