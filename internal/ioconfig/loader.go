// Package ioconfig provides I/O operations for loading trendshift
// configuration from files, environment variables and flags. This is an
// impure package that touches the file system.
package ioconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source it came from.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // path to config file used, empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a Config with
// source info. If configPath is empty, it searches default locations:
//
//   - ./trendshift.yaml
//   - ~/.config/trendshift/config.yaml
//
// Precedence: flags (applied by the CLI afterwards) > env vars > config
// file > defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TRENDSHIFT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults must be registered before reading the file so viper
	// knows which keys to check for env overrides.
	defaults := config.Defaults()
	v.SetDefault("input.dir", defaults.Input.Dir)
	v.SetDefault("input.trends_glob", defaults.Input.TrendsGlob)
	v.SetDefault("input.scorecard_file", defaults.Input.ScorecardFile)
	v.SetDefault("input.link_file", defaults.Input.LinkFile)
	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.plots", defaults.Output.Plots)
	v.SetDefault("output.sqlite", defaults.Output.SQLite)
	v.SetDefault("output.csv", defaults.Output.CSV)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		for _, candidate := range defaultConfigPaths() {
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				break
			}
		}
	}

	res := &LoadResult{Source: "defaults"}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, LoadError(configPath, err)
		}
		if hasEnvOverrides() {
			res.Source = "defaults+env"
		}
	} else {
		res.Source = "file"
		res.SourcePath = v.ConfigFileUsed()
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, LoadError(v.ConfigFileUsed(), err)
	}
	res.Config = &cfg

	return res, nil
}

// GetConfigDir returns the configuration directory for trendshift.
// Uses ~/.config/trendshift/ on all platforms for consistency.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "trendshift"), nil
}

// GetDefaultConfigPath returns the full path to the default config file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func defaultConfigPaths() []string {
	paths := []string{"trendshift.yaml"}
	if p, err := GetDefaultConfigPath(); err == nil {
		paths = append(paths, p)
	}
	return paths
}

func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "TRENDSHIFT_") {
			return true
		}
	}
	return false
}
