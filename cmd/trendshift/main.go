// Package main provides the trendshift CLI application.
// trendshift merges search-interest data with the earnings scorecard and
// estimates whether the disclosure release shifted relative interest
// toward higher-earning institutions.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
