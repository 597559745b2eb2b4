package assemble_test

import (
	"testing"
	"time"

	"github.com/edmetrics/trendshift/internal/assemble"
	"github.com/edmetrics/trendshift/pkg/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifiedRow(m time.Time, z float64) study.ClassifiedRow {
	return study.ClassifiedRow{
		JoinedRow: study.JoinedRow{
			School:  "Alpha",
			Keyword: "alpha admissions",
			Month:   m,
			ZIndex:  z,
			State:   "AL",
			PredDeg: "3",
		},
		Year:     m.Year(),
		Earnings: 35500,
		Bracket:  study.BracketMid,
	}
}

func TestAssembleGroups(t *testing.T) {
	rows := []study.ClassifiedRow{
		classifiedRow(time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC), 0.1),
		classifiedRow(time.Date(2015, 10, 1, 0, 0, 0, 0, time.UTC), 0.2),
		classifiedRow(time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), 0.3),
	}

	res, err := assemble.New().Assemble(rows)
	require.NoError(t, err)
	require.Len(t, res, 3)

	byMonth := map[time.Time]study.ModelRow{}
	for _, r := range res {
		byMonth[r.Month] = r
	}

	assert.Equal(t, study.GroupPre,
		byMonth[time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)].Group)
	assert.Equal(t, study.GroupPre,
		byMonth[time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC)].Group)
	assert.Equal(t, study.GroupPost,
		byMonth[time.Date(2015, 10, 1, 0, 0, 0, 0, time.UTC)].Group)
}

func TestAssembleCutoffMonthIsPre(t *testing.T) {
	// A row exactly on the cutoff month is "pre", never "post".
	rows := []study.ClassifiedRow{classifiedRow(study.DisclosureCutoff, 0.4)}

	res, err := assemble.New().Assemble(rows)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, study.GroupPre, res[0].Group)
}

func TestAssembleColumnSubset(t *testing.T) {
	m := time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []study.ClassifiedRow{classifiedRow(m, -1.25)}

	res, err := assemble.New().Assemble(rows)
	require.NoError(t, err)
	require.Len(t, res, 1)

	row := res[0]
	assert.Equal(t, m, row.Month)
	assert.Equal(t, 2016, row.Year)
	assert.Equal(t, -1.25, row.ZIndex)
	assert.Equal(t, 35500.0, row.Earnings)
	assert.Equal(t, "AL", row.State)
	assert.Equal(t, "3", row.PredDeg)
	assert.Equal(t, study.BracketMid, row.Bracket)
	assert.Equal(t, study.GroupPost, row.Group)
}

func TestAssembleDeterministicOrder(t *testing.T) {
	rows := []study.ClassifiedRow{
		classifiedRow(time.Date(2015, 10, 1, 0, 0, 0, 0, time.UTC), 0.2),
		classifiedRow(time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC), 0.3),
		classifiedRow(time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC), 0.1),
	}

	first, err := assemble.New().Assemble(rows)
	require.NoError(t, err)
	second, err := assemble.New().Assemble(rows)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2013, first[0].Year)
	assert.Equal(t, 2015, first[2].Year)
}
