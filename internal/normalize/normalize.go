// Package normalize implements the Normalizer interface: month-bucket
// derivation and within-group standardization of the popularity index.
// The package is pure; it performs no I/O.
//
// Raw index values are comparable only within one (school, keyword)
// pair, so each pair is standardized against its own sample mean and
// standard deviation. Groups where the z-score is undefined (fewer than
// two observations, or zero variance) are excluded entirely rather than
// emitted as Inf/NaN.
package normalize

import (
	"log/slog"
	"sort"
	"time"

	"github.com/edmetrics/trendshift/pkg/study"
	"gonum.org/v1/gonum/stat"
)

// monthLayout parses the 10-character date prefix of the provider's
// "month or week" label.
const monthLayout = "2006-01-02"

type normalizer struct{}

// New creates a new Normalizer.
func New() study.Normalizer {
	return &normalizer{}
}

type groupKey struct {
	school  string
	keyword string
}

// Normalize derives month buckets, computes per-group z-scores, and
// builds the keyword-level and month-level aggregate views. Output
// slices are sorted deterministically so identical inputs produce
// byte-identical outputs.
func (n *normalizer) Normalize(
	obs []study.SearchObservation,
) (*study.NormalizedSet, error) {
	type parsedRow struct {
		key   groupKey
		month time.Time
		index float64
	}

	var rows []parsedRow
	dropped := 0
	for _, o := range obs {
		month, ok := monthBucket(o.Label)
		if !ok || !o.IndexOK || o.School == "" || o.Keyword == "" {
			dropped++
			continue
		}
		rows = append(rows, parsedRow{
			key:   groupKey{school: o.School, keyword: o.Keyword},
			month: month,
			index: o.Index,
		})
	}

	// Grouping pass: collect raw index values per (school, keyword).
	values := make(map[groupKey][]float64)
	for _, r := range rows {
		values[r.key] = append(values[r.key], r.index)
	}

	// Moments per group. Groups without a defined standard deviation
	// are marked for exclusion.
	type moments struct {
		mean, std float64
	}
	stats := make(map[groupKey]moments, len(values))
	droppedGroups := 0
	for key, xs := range values {
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) < 2 || std == 0 {
			droppedGroups++
			continue
		}
		stats[key] = moments{mean: mean, std: std}
	}

	res := &study.NormalizedSet{DroppedGroups: droppedGroups}
	for _, r := range rows {
		m, ok := stats[r.key]
		if !ok {
			dropped++
			continue
		}
		res.Observations = append(res.Observations, study.StandardizedObservation{
			School:  r.key.school,
			Keyword: r.key.keyword,
			Month:   r.month,
			Index:   r.index,
			ZIndex:  (r.index - m.mean) / m.std,
		})
	}
	res.DroppedRows = dropped

	sort.Slice(res.Observations, func(i, j int) bool {
		a, b := res.Observations[i], res.Observations[j]
		if a.School != b.School {
			return a.School < b.School
		}
		if a.Keyword != b.Keyword {
			return a.Keyword < b.Keyword
		}
		return a.Month.Before(b.Month)
	})

	res.KeywordMeans = keywordMeans(res.Observations)
	res.MonthMeans = monthMeans(res.Observations)

	if droppedGroups > 0 || dropped > 0 {
		slog.Debug("Normalization exclusions",
			"dropped_groups", droppedGroups,
			"dropped_rows", dropped,
		)
	}
	return res, nil
}

// monthBucket interprets the first 10 characters of the label as an ISO
// date and truncates it to the first of the month.
func monthBucket(label string) (time.Time, bool) {
	if len(label) < len(monthLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(monthLayout, label[:len(monthLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC), true
}

// keywordMeans aggregates mean z-scores by (school, keyword).
// Input must already be sorted by school, keyword.
func keywordMeans(obs []study.StandardizedObservation) []study.KeywordMean {
	sums := make(map[groupKey]*study.KeywordMean)
	var order []groupKey
	for _, o := range obs {
		key := groupKey{school: o.School, keyword: o.Keyword}
		agg, ok := sums[key]
		if !ok {
			agg = &study.KeywordMean{School: o.School, Keyword: o.Keyword}
			sums[key] = agg
			order = append(order, key)
		}
		agg.MeanZ += o.ZIndex
		agg.N++
	}

	res := make([]study.KeywordMean, 0, len(order))
	for _, key := range order {
		agg := sums[key]
		agg.MeanZ /= float64(agg.N)
		res = append(res, *agg)
	}
	return res
}

type monthKey struct {
	school string
	month  time.Time
}

// monthMeans aggregates mean z-scores by (school, month).
func monthMeans(obs []study.StandardizedObservation) []study.MonthMean {
	sums := make(map[monthKey]*study.MonthMean)
	for _, o := range obs {
		key := monthKey{school: o.School, month: o.Month}
		agg, ok := sums[key]
		if !ok {
			agg = &study.MonthMean{School: o.School, Month: o.Month}
			sums[key] = agg
		}
		agg.MeanZ += o.ZIndex
		agg.N++
	}

	res := make([]study.MonthMean, 0, len(sums))
	for _, agg := range sums {
		agg.MeanZ /= float64(agg.N)
		res = append(res, *agg)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].School != res[j].School {
			return res[i].School < res[j].School
		}
		return res[i].Month.Before(res[j].Month)
	})
	return res
}
