// Package ioreport renders a finished pipeline run: summary tables on
// stdout, the regression comparison, plot artifacts, and the SQLite/CSV
// exports. This is an impure I/O package and the terminal stage of the
// program; nothing downstream consumes its output.
package ioreport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/edmetrics/trendshift/pkg/study"
)

// Artifact file names within the output directory.
const (
	FileComparison = "model_comparison.txt"
	FileHistogram  = "earnings_histogram.png"
	FileScatter    = "interest_scatter.png"
	FileSQLite     = "results.db"
	FileCSV        = "model_rows.csv"
)

type reporter struct {
	cfg *config.Config
}

// New creates a new Reporter writing into the configured output
// directory.
func New(cfg *config.Config) study.Reporter {
	return &reporter{cfg: cfg}
}

// Report prints the run summary, fits and renders the models, and writes
// the configured artifacts.
func (r *reporter) Report(ctx context.Context, res *study.Result) error {
	outDir := r.cfg.Output.Dir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return CreateDirError(outDir, err)
	}

	printSummary(res)

	fits, err := FitModels(res.Rows)
	if err != nil {
		// Too little data for inference is not a pipeline failure;
		// the summaries and exports still have value.
		slog.Warn("Skipping regression models", "reason", err)
		fits = nil
	}

	if fits != nil {
		table := ComparisonTable(fits)
		fmt.Println(strings.Repeat("─", 60))
		fmt.Print(table)

		bp, err := BreuschPagan(fits[len(fits)-1], RichestDesign(res.Rows))
		if err == nil {
			fmt.Printf("Breusch-Pagan: LM=%.3f, df=%d, p=%.4f\n",
				bp.LM, bp.DF, bp.PVal)
		}

		path := filepath.Join(outDir, FileComparison)
		if err = os.WriteFile(path, []byte(table), 0o644); err != nil {
			return WriteFileError(path, err)
		}
	}

	if r.cfg.Output.Plots {
		if err = earningsHistogram(res.Rows, filepath.Join(outDir, FileHistogram)); err != nil {
			return err
		}
		if err = interestScatter(res.Rows, filepath.Join(outDir, FileScatter)); err != nil {
			return err
		}
	}

	if r.cfg.Output.SQLite {
		if err = exportSQLite(ctx, res, fits, filepath.Join(outDir, FileSQLite)); err != nil {
			return err
		}
	}

	if r.cfg.Output.CSV {
		if err = exportCSV(res.Rows, filepath.Join(outDir, FileCSV)); err != nil {
			return err
		}
	}

	slog.Info("Report written", "dir", outDir)
	return nil
}

// printSummary prints per-phase row tallies and the mean standardized
// interest by bracket and period.
func printSummary(res *study.Result) {
	c := res.Counts
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "phase\trows")
	fmt.Fprintf(w, "search observations\t%d\n", c.TrendsRows)
	fmt.Fprintf(w, "standardized\t%d\n", c.StandardizedRows)
	fmt.Fprintf(w, "joined\t%d\n", c.JoinedRows)
	fmt.Fprintf(w, "classified\t%d\n", c.ClassifiedRows)
	fmt.Fprintf(w, "model-ready\t%d\n", c.ModelRows)
	w.Flush()

	fmt.Println(strings.Repeat("─", 60))

	cells := make(map[[2]string]*zCell)
	for _, row := range res.Rows {
		key := [2]string{row.Bracket, row.Group}
		if cells[key] == nil {
			cells[key] = &zCell{}
		}
		cells[key].sum += row.ZIndex
		cells[key].n++
	}

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "bracket\tpre\tpost")
	for _, bracket := range []string{
		study.BracketLow, study.BracketMid, study.BracketHigh,
	} {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			bracket,
			meanCell(cells[[2]string{bracket, study.GroupPre}]),
			meanCell(cells[[2]string{bracket, study.GroupPost}]),
		)
	}
	w.Flush()
}

type zCell struct {
	sum float64
	n   int
}

func meanCell(c *zCell) string {
	if c == nil || c.n == 0 {
		return "—"
	}
	return fmt.Sprintf("%.4f", c.sum/float64(c.n))
}
