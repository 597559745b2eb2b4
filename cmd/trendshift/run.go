package main

import (
	"context"
	"fmt"

	"github.com/edmetrics/trendshift/internal/ioreport"
	"github.com/edmetrics/trendshift/internal/iostudy"
	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/spf13/cobra"
)

var (
	inputDir      string
	scorecardFile string
	linkFile      string
	outputDir     string
	skipPlots     bool
	skipDB        bool
	skipCSV       bool
)

func getRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline",
		Long: `Run the full analysis pipeline on the configured input directory
and write the report artifacts.

This command:
  1. Reads the trends files, the scorecard and the name-link table
  2. Standardizes and reconciles the observations
  3. Classifies institutions into earnings brackets per year
  4. Fits the regression models and writes tables, plots and exports

The run is deterministic: the same inputs produce the same tables on
every invocation.

Examples:
  trendshift run
  trendshift run --input ./data --out ./results
  trendshift run --skip-plots --skip-db`,
		RunE: runRun,
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "",
		"directory holding the trends, scorecard and link files")
	cmd.Flags().StringVar(&scorecardFile, "scorecard", "",
		"scorecard file name inside the input directory")
	cmd.Flags().StringVar(&linkFile, "link", "",
		"name-to-identifier link file name inside the input directory")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "",
		"directory for report artifacts")
	cmd.Flags().BoolVar(&skipPlots, "skip-plots", false,
		"do not write plot images")
	cmd.Flags().BoolVar(&skipDB, "skip-db", false,
		"do not write the SQLite results database")
	cmd.Flags().BoolVar(&skipCSV, "skip-csv", false,
		"do not write the model rows CSV")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig()

	var opts []config.Option
	if inputDir != "" {
		opts = append(opts, config.OptInputDir(inputDir))
	}
	if scorecardFile != "" {
		opts = append(opts, config.OptScorecardFile(scorecardFile))
	}
	if linkFile != "" {
		opts = append(opts, config.OptLinkFile(linkFile))
	}
	if outputDir != "" {
		opts = append(opts, config.OptOutputDir(outputDir))
	}
	if skipPlots {
		opts = append(opts, config.OptPlots(false))
	}
	if skipDB {
		opts = append(opts, config.OptSQLite(false))
	}
	if skipCSV {
		opts = append(opts, config.OptCSV(false))
	}
	cfg.Update(opts)

	res, err := iostudy.New(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if err := ioreport.New(cfg).Report(ctx, res); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	return nil
}
