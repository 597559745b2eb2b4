// Package errcode enumerates error codes used across trendshift.
// Codes identify where in the pipeline an error originated; user-facing
// messages live with the error constructors in each internal package.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Config errors
	ConfigLoadError
	ConfigGenerateError

	// Ingest errors
	MissingInputError
	ReadFileError
	BadHeaderError

	// Pipeline errors
	EmptyTableError

	// Report errors
	CreateDirError
	WriteFileError
	PlotError
	ExportError
)
