// Package study defines the domain model and phase interfaces of the
// trendshift pipeline. The pipeline is a strict forward chain:
//
//	Ingestor -> Normalizer -> Reconciler -> Classifier -> Assembler
//
// followed by a terminal Reporter. Each phase is a whole-table pass; no
// phase mutates a table after handing it to the next one. All data lives
// in memory for the duration of a run; there is no persistent state
// beyond the artifacts the reporter writes.
package study

import "context"

// Ingestor loads the three raw inputs from the filesystem. Total absence
// of usable input is the only fatal condition in the pipeline; individual
// malformed rows are tolerated with missing fields.
type Ingestor interface {
	// SearchObservations loads and concatenates every trends file
	// matching the configured glob.
	SearchObservations(ctx context.Context) ([]SearchObservation, error)

	// IdentifierLinks loads the name-to-identifier linkage table.
	IdentifierLinks(ctx context.Context) ([]IdentifierLink, error)

	// InstitutionRecords loads the scorecard reference table.
	InstitutionRecords(ctx context.Context) ([]InstitutionRecord, error)
}

// Normalizer derives month buckets and converts raw popularity indexes
// into within-group z-scores.
type Normalizer interface {
	Normalize(obs []SearchObservation) (*NormalizedSet, error)
}

// Reconciler resolves institution names to identifiers and attaches
// scorecard attributes. Names that resolve ambiguously are removed
// entirely, never merged.
type Reconciler interface {
	Reconcile(
		obs []StandardizedObservation,
		links []IdentifierLink,
		institutions []InstitutionRecord,
	) ([]JoinedRow, error)
}

// Classifier assigns per-year earnings percentile brackets.
type Classifier interface {
	Classify(rows []JoinedRow) ([]ClassifiedRow, error)
}

// Assembler derives the pre/post treatment indicator and selects the
// regression-ready column set.
type Assembler interface {
	Assemble(rows []ClassifiedRow) ([]ModelRow, error)
}

// Runner executes the whole pipeline once, in sequence.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// Reporter renders a finished run: summary tables, regression models,
// plots, and exports. Reporting failures never invalidate the Result.
type Reporter interface {
	Report(ctx context.Context, res *Result) error
}
