// Package reconcile implements the Reconciler interface: it resolves
// institution names to identifiers and attaches scorecard attributes.
// The package is pure; it performs no I/O.
//
// Identity is enforced, not inferred. A name that maps to more than one
// identifier is removed entirely; there is no precedence rule and no
// merging. Both joins are inner joins: unmatched rows disappear.
package reconcile

import (
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/edmetrics/trendshift/pkg/study"
)

type reconciler struct{}

// New creates a new Reconciler.
func New() study.Reconciler {
	return &reconciler{}
}

// Reconcile joins standardized observations to identifier links by
// school name, then to institution records by identifier, dropping every
// row whose name resolves ambiguously.
func (r *reconciler) Reconcile(
	obs []study.StandardizedObservation,
	links []study.IdentifierLink,
	institutions []study.InstitutionRecord,
) ([]study.JoinedRow, error) {
	linkBySchool, ambiguous := unambiguousLinks(links)
	if ambiguous > 0 {
		slog.Info("Dropped ambiguous institution names",
			"names", ambiguous)
	}

	// A true inner join: the scorecard may in principle repeat an
	// identifier, and each match produces its own output row.
	instByID := make(map[string][]study.InstitutionRecord, len(institutions))
	for _, inst := range institutions {
		instByID[inst.UnitID] = append(instByID[inst.UnitID], inst)
	}

	var joined []study.JoinedRow
	unmatched := 0
	for _, o := range obs {
		link, ok := linkBySchool[o.School]
		if !ok {
			unmatched++
			continue
		}
		matches := instByID[link.UnitID]
		if len(matches) == 0 {
			unmatched++
			continue
		}
		for _, inst := range matches {
			joined = append(joined, study.JoinedRow{
				School:  o.School,
				Keyword: o.Keyword,
				Month:   o.Month,
				ZIndex:  o.ZIndex,
				UnitID:  link.UnitID,
				State:   inst.State,
				PredDeg: inst.PredDeg,
				Earn6:   inst.Earn6,
				Earn8:   inst.Earn8,
				Earn10:  inst.Earn10,
			})
		}
	}
	if unmatched > 0 {
		slog.Debug("Dropped unmatched observations",
			"rows", unmatched)
	}

	joined = enforceSingleIdentity(joined)

	sort.Slice(joined, func(i, j int) bool {
		a, b := joined[i], joined[j]
		if a.School != b.School {
			return a.School < b.School
		}
		if a.Keyword != b.Keyword {
			return a.Keyword < b.Keyword
		}
		return a.Month.Before(b.Month)
	})

	slog.Info("Reconciled observations",
		"rows", humanize.Comma(int64(len(joined))))
	return joined, nil
}

// unambiguousLinks keeps only names that appear in exactly one link row.
// Returns the name index and the count of names dropped.
func unambiguousLinks(
	links []study.IdentifierLink,
) (map[string]study.IdentifierLink, int) {
	counts := make(map[string]int, len(links))
	for _, l := range links {
		counts[l.School]++
	}

	res := make(map[string]study.IdentifierLink, len(links))
	dropped := 0
	for _, n := range counts {
		if n != 1 {
			dropped++
		}
	}
	for _, l := range links {
		if counts[l.School] == 1 {
			res[l.School] = l
		}
	}
	return res, dropped
}

// enforceSingleIdentity applies the hard post-join invariant: a school
// name must map to exactly one distinct identifier across the whole
// joined set. The pre-filter on the link table should make violations
// impossible; if the scorecard itself duplicates an identifier under two
// names the diagnostic fires and the rows are removed anyway.
func enforceSingleIdentity(rows []study.JoinedRow) []study.JoinedRow {
	ids := make(map[string]map[string]bool)
	for _, row := range rows {
		set, ok := ids[row.School]
		if !ok {
			set = make(map[string]bool)
			ids[row.School] = set
		}
		set[row.UnitID] = true
	}

	inconsistent := make(map[string]bool)
	for name, set := range ids {
		if len(set) > 1 {
			inconsistent[name] = true
			slog.Warn("Inconsistent school name resolves to multiple identifiers",
				"school", name, "identifiers", len(set))
		}
	}
	if len(inconsistent) == 0 {
		return rows
	}

	res := rows[:0]
	for _, row := range rows {
		if !inconsistent[row.School] {
			res = append(res, row)
		}
	}
	return res
}
