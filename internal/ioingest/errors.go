package ioingest

import (
	"fmt"

	"github.com/edmetrics/trendshift/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingInputError reports that no input data exists for the pattern.
// This is the one fatal condition of the pipeline.
func MissingInputError(pattern string, err error) error {
	if err == nil {
		err = fmt.Errorf("no files match %s", pattern)
	}
	return &gn.Error{
		Code: errcode.MissingInputError,
		Msg:  "No input files match <em>%s</em>",
		Vars: []any{pattern},
		Err:  fmt.Errorf("ioingest: missing input: %w", err),
	}
}

// ReadFileError wraps a failure to open or read an input file.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("ioingest: cannot read %s: %w", path, err),
	}
}
