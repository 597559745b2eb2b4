// Package classify implements the Classifier interface: it parses the
// 10-year earnings field and assigns each row a Low/Mid/High bracket
// from its calendar year's empirical earnings distribution. The package
// is pure; it performs no I/O.
//
// Thresholds are computed independently per year; one year's
// distribution never leaks into another year's labels. Sentinel tokens
// in the earnings field ("PrivacySuppressed", "NULL") and any other
// non-numeric content exclude the row from classification rather than
// coercing it to zero.
package classify

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/edmetrics/trendshift/pkg/study"
)

type classifier struct{}

// New creates a new Classifier.
func New() study.Classifier {
	return &classifier{}
}

// Classify parses earnings, computes per-year percentile thresholds and
// labels each surviving row. Rows with any remaining missing field are
// dropped before the result is returned.
func (c *classifier) Classify(
	rows []study.JoinedRow,
) ([]study.ClassifiedRow, error) {
	type parsed struct {
		row      study.JoinedRow
		year     int
		earnings float64
	}

	var kept []parsed
	sentinels := 0
	for _, row := range rows {
		earnings, ok := parseEarnings(row.Earn10)
		if !ok {
			sentinels++
			continue
		}
		kept = append(kept, parsed{
			row:      row,
			year:     row.Month.Year(),
			earnings: earnings,
		})
	}
	if sentinels > 0 {
		slog.Info("Excluded rows with suppressed or missing earnings",
			"rows", humanize.Comma(int64(sentinels)))
	}

	// Per-year empirical distributions of the earnings field.
	byYear := make(map[int][]float64)
	for _, p := range kept {
		byYear[p.year] = append(byYear[p.year], p.earnings)
	}

	type cutoffs struct {
		low, high float64
	}
	thresholds := make(map[int]cutoffs, len(byYear))
	for year, xs := range byYear {
		sort.Float64s(xs)
		thresholds[year] = cutoffs{
			low:  quantile(study.LowQuantile, xs),
			high: quantile(study.HighQuantile, xs),
		}
	}

	res := make([]study.ClassifiedRow, 0, len(kept))
	for _, p := range kept {
		th := thresholds[p.year]
		cr := study.ClassifiedRow{
			JoinedRow: p.row,
			Year:      p.year,
			Earnings:  p.earnings,
			Bracket:   bracket(p.earnings, th.low, th.high),
		}
		if !complete(cr) {
			continue
		}
		res = append(res, cr)
	}

	slog.Info("Classified rows",
		"rows", humanize.Comma(int64(len(res))),
		"years", len(thresholds),
	)
	return res, nil
}

// bracket labels a value against its year's thresholds. Boundaries are
// inclusive downward: a value equal to the low threshold is "Low", equal
// to the high threshold is "Mid".
func bracket(v, low, high float64) string {
	switch {
	case v <= low:
		return study.BracketLow
	case v <= high:
		return study.BracketMid
	default:
		return study.BracketHigh
	}
}

// parseEarnings parses the text-typed earnings field. Sentinels and any
// other non-numeric content read as missing.
func parseEarnings(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == study.SentinelSuppressed || s == study.SentinelNull {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// quantile estimates the p-th quantile of sorted xs by linear
// interpolation between closest ranks (the pandas/R type-7 estimator,
// which the study's original threshold values came from; gonum's
// CumulantKind variants estimate differently for small samples).
func quantile(p float64, xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return xs[0]
	}
	h := p * float64(n-1)
	i := int(math.Floor(h))
	if i >= n-1 {
		return xs[n-1]
	}
	frac := h - float64(i)
	return xs[i] + frac*(xs[i+1]-xs[i])
}

// complete reports whether every field the downstream models rely on is
// present. The final completeness filter of the pipeline.
func complete(cr study.ClassifiedRow) bool {
	return cr.School != "" &&
		cr.Keyword != "" &&
		!cr.Month.IsZero() &&
		cr.UnitID != "" &&
		cr.State != "" &&
		cr.PredDeg != "" &&
		cr.Bracket != ""
}
