package main

import (
	"fmt"
	"log/slog"

	"github.com/edmetrics/trendshift/internal/ioconfig"
	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/edmetrics/trendshift/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trendshift",
		Short: "trendshift estimates the earnings-disclosure effect on search interest",
		Long: `trendshift joins weekly search-interest data for college keywords with
the earnings scorecard and estimates whether publishing median earnings
shifted relative interest toward higher-earning institutions.

The pipeline runs in one pass:
  1. ingest: read trends files, the scorecard and the name-link table
  2. normalize: z-score each (institution, keyword) series, bucket by month
  3. reconcile: resolve names to identifiers, drop ambiguous ones, join
  4. classify: label institutions Low/Mid/High by per-year earnings percentiles
  5. assemble: mark months pre/post the disclosure release
  6. report: fit the regression models, write tables, plots and exports

Configuration precedence (highest to lowest):
  1. CLI flags (--input, --out, etc.)
  2. Environment variables (TRENDSHIFT_*)
  3. Config file (trendshift.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via TRENDSHIFT_* environment variables.
  Nested fields use underscores (input.dir → TRENDSHIFT_INPUT_DIR).

  Examples:
    TRENDSHIFT_INPUT_DIR             directory with the input tables
    TRENDSHIFT_INPUT_TRENDS_GLOB     glob for the trends files
    TRENDSHIFT_OUTPUT_DIR            directory for results
    TRENDSHIFT_LOG_LEVEL             log level (debug/info/warn/error)

  See 'go doc github.com/edmetrics/trendshift/pkg/config' for the
  complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			slog.SetDefault(logger.New(&cfg.Log))

			switch result.Source {
			case "file":
				slog.Info("Using config file", "path", result.SourcePath)
			case "defaults+env":
				slog.Info("Using built-in defaults with environment variable overrides")
			case "defaults":
				slog.Info("Using built-in defaults (no config file)")
			}

			return nil
		},
	}

	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./trendshift.yaml or ~/.config/trendshift/config.yaml)")

	rootCmd.Flags().BoolP("version", "V", false, "version for trendshift")

	rootCmd.AddCommand(getRunCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}
