// Package iostudy wires the pipeline together and runs it once, in
// strict sequence: ingest, normalize, reconcile, classify, assemble.
// Each phase hands its whole table to the next; nothing runs
// concurrently and nothing is retried. Reporting is a separate stage
// invoked by the CLI on the returned Result.
package iostudy

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/edmetrics/trendshift/internal/assemble"
	"github.com/edmetrics/trendshift/internal/classify"
	"github.com/edmetrics/trendshift/internal/ioingest"
	"github.com/edmetrics/trendshift/internal/normalize"
	"github.com/edmetrics/trendshift/internal/reconcile"
	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/edmetrics/trendshift/pkg/study"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

type runner struct {
	cfg        *config.Config
	ingestor   study.Ingestor
	normalizer study.Normalizer
	reconciler study.Reconciler
	classifier study.Classifier
	assembler  study.Assembler
}

// New creates a Runner with the standard phase implementations.
func New(cfg *config.Config) study.Runner {
	return &runner{
		cfg:        cfg,
		ingestor:   ioingest.New(cfg),
		normalizer: normalize.New(),
		reconciler: reconcile.New(),
		classifier: classify.New(),
		assembler:  assemble.New(),
	}
}

// Run executes the pipeline once and returns the regression-ready
// result. The only fatal condition is missing input; every data problem
// inside the pipeline resolves to row exclusion.
func (r *runner) Run(ctx context.Context) (*study.Result, error) {
	start := time.Now()
	res := &study.Result{RunID: uuid.NewString()}

	slog.Info("Starting analysis run",
		"run_id", res.RunID,
		"input_dir", r.cfg.Input.Dir,
	)

	obs, err := r.ingestor.SearchObservations(ctx)
	if err != nil {
		return nil, err
	}
	res.Counts.TrendsRows = len(obs)

	links, err := r.ingestor.IdentifierLinks(ctx)
	if err != nil {
		return nil, err
	}

	institutions, err := r.ingestor.InstitutionRecords(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := r.normalizer.Normalize(obs)
	if err != nil {
		return nil, err
	}
	res.Normalized = normalized
	res.Counts.StandardizedRows = len(normalized.Observations)

	joined, err := r.reconciler.Reconcile(
		normalized.Observations, links, institutions)
	if err != nil {
		return nil, err
	}
	res.Counts.JoinedRows = len(joined)

	classified, err := r.classifier.Classify(joined)
	if err != nil {
		return nil, err
	}
	res.Counts.ClassifiedRows = len(classified)
	res.Counts.SentinelRows = len(joined) - len(classified)

	rows, err := r.assembler.Assemble(classified)
	if err != nil {
		return nil, err
	}
	res.Rows = rows
	res.Counts.ModelRows = len(rows)

	slog.Info("Pipeline finished",
		"run_id", res.RunID,
		"model_rows", humanize.Comma(int64(len(rows))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}
