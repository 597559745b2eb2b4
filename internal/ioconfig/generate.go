package ioconfig

import (
	"os"
	"path/filepath"

	"github.com/edmetrics/trendshift/pkg/config"
	"gopkg.in/yaml.v3"
)

const configHeader = `# trendshift configuration.
#
# Precedence (highest to lowest):
#   CLI flags > TRENDSHIFT_* environment variables > this file > defaults
#
# input.dir holds the trends files, the scorecard table and the
# name-to-identifier link table. Paths other than input.dir are relative
# to it.

`

// ConfigFileExists reports whether a config file is present at the
// default location.
func ConfigFileExists() (bool, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// GenerateDefaultConfig writes a documented default config file to the
// default location. Returns the path written. Does NOT overwrite an
// existing file.
func GenerateDefaultConfig() (string, error) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return "", GenerateError(path, err)
	}
	return generateConfigAt(path)
}

func generateConfigAt(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil // keep the user's file
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", GenerateError(path, err)
	}

	body, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return "", GenerateError(path, err)
	}

	content := append([]byte(configHeader), body...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", GenerateError(path, err)
	}

	return path, nil
}
