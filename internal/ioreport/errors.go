package ioreport

import (
	"fmt"

	"github.com/edmetrics/trendshift/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError wraps a failure to create the output directory.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("ioreport: cannot create directory %s: %w", dir, err),
	}
}

// WriteFileError wraps a failure to write a report artifact.
func WriteFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  "Cannot write <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("ioreport: cannot write %s: %w", path, err),
	}
}

// PlotError wraps a failure to render or save a plot.
func PlotError(path string, err error) error {
	return &gn.Error{
		Code: errcode.PlotError,
		Msg:  "Cannot render plot <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("ioreport: cannot render %s: %w", path, err),
	}
}

// ExportError wraps a failure to export results to SQLite or CSV.
func ExportError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  "Cannot export results to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("ioreport: cannot export %s: %w", path, err),
	}
}
