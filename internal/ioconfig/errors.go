package ioconfig

import (
	"fmt"

	"github.com/edmetrics/trendshift/pkg/errcode"
	"github.com/gnames/gn"
)

// LoadError wraps a failure to read or parse a configuration file.
func LoadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  "Cannot load configuration from <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("ioconfig: cannot load config %s: %w", path, err),
	}
}

// GenerateError wraps a failure to write the default configuration file.
func GenerateError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigGenerateError,
		Msg:  "Cannot generate configuration at <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("ioconfig: cannot generate config %s: %w", path, err),
	}
}
