// Package assemble implements the Assembler interface: the last pipeline
// stage before reporting. It derives the pre/post treatment indicator
// relative to the disclosure cutoff and narrows each row to the fixed
// column subset the regressions consume. The package is pure.
package assemble

import (
	"log/slog"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/edmetrics/trendshift/pkg/study"
)

type assembler struct{}

// New creates a new Assembler.
func New() study.Assembler {
	return &assembler{}
}

// Assemble produces the flat regression-ready table. A month bucket
// equal to the cutoff is "pre"; only strictly later months are "post".
func (a *assembler) Assemble(
	rows []study.ClassifiedRow,
) ([]study.ModelRow, error) {
	res := make([]study.ModelRow, 0, len(rows))
	pre := 0
	for _, row := range rows {
		group := study.GroupPost
		if !row.Month.After(study.DisclosureCutoff) {
			group = study.GroupPre
			pre++
		}
		res = append(res, study.ModelRow{
			Month:    row.Month,
			Year:     row.Year,
			ZIndex:   row.ZIndex,
			Earnings: row.Earnings,
			State:    row.State,
			PredDeg:  row.PredDeg,
			Bracket:  row.Bracket,
			Group:    group,
		})
	}

	sort.Slice(res, func(i, j int) bool {
		a, b := res[i], res[j]
		if !a.Month.Equal(b.Month) {
			return a.Month.Before(b.Month)
		}
		if a.State != b.State {
			return a.State < b.State
		}
		if a.Bracket != b.Bracket {
			return a.Bracket < b.Bracket
		}
		return a.Earnings < b.Earnings
	})

	slog.Info("Assembled model rows",
		"rows", humanize.Comma(int64(len(res))),
		"pre", pre,
		"post", len(res)-pre,
	)
	return res, nil
}
