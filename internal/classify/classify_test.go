package classify

import (
	"fmt"
	"testing"
	"time"

	"github.com/edmetrics/trendshift/pkg/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func joinedRow(school string, m time.Time, earn10 string) study.JoinedRow {
	return study.JoinedRow{
		School:  school,
		Keyword: school + " admissions",
		Month:   m,
		UnitID:  "u-" + school,
		State:   "AL",
		PredDeg: "3",
		Earn10:  earn10,
	}
}

func TestQuantileType7(t *testing.T) {
	tests := []struct {
		p    float64
		xs   []float64
		want float64
	}{
		{0.5, []float64{1, 2, 3}, 2},
		{0.5, []float64{1, 2, 3, 4}, 2.5},
		{0.35, []float64{10, 20, 30, 40, 50}, 24},
		{0.9, []float64{10, 20, 30, 40, 50}, 46},
		{0.35, []float64{42}, 42},
		{0.9, []float64{42}, 42},
		{0, []float64{1, 5}, 1},
		{1, []float64{1, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("p=%v_n=%d", tt.p, len(tt.xs)), func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.p, tt.xs), 1e-12)
		})
	}
}

func TestClassifyBrackets(t *testing.T) {
	// Eleven institutions, earnings 10k..110k, one year. Type-7
	// thresholds: p35 = 45000, p90 = 100000.
	var rows []study.JoinedRow
	for i := 1; i <= 11; i++ {
		rows = append(rows, joinedRow(
			fmt.Sprintf("School%02d", i),
			month(2015, 3),
			fmt.Sprintf("%d", i*10000),
		))
	}

	res, err := New().Classify(rows)
	require.NoError(t, err)
	require.Len(t, res, 11)

	bySchool := map[string]study.ClassifiedRow{}
	for _, r := range res {
		bySchool[r.School] = r
	}

	assert.Equal(t, study.BracketLow, bySchool["School01"].Bracket)
	assert.Equal(t, study.BracketLow, bySchool["School04"].Bracket)
	assert.Equal(t, study.BracketMid, bySchool["School05"].Bracket)
	assert.Equal(t, study.BracketMid, bySchool["School10"].Bracket)
	assert.Equal(t, study.BracketHigh, bySchool["School11"].Bracket)
}

func TestClassifyBoundaryInclusive(t *testing.T) {
	// A single-row year group: the value is simultaneously its own
	// 35th and 90th percentile, so the <= rule labels it "Low".
	rows := []study.JoinedRow{joinedRow("Solo", month(2014, 6), "40000")}

	res, err := New().Classify(rows)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, study.BracketLow, res[0].Bracket)
	assert.Equal(t, 2014, res[0].Year)
	assert.Equal(t, 40000.0, res[0].Earnings)
}

func TestClassifyPerYearIndependence(t *testing.T) {
	// Disjoint earnings distributions in two years. If one year's
	// thresholds leaked into the other, labels would flip.
	rows := []study.JoinedRow{
		joinedRow("P1", month(2014, 3), "10000"),
		joinedRow("P2", month(2014, 4), "20000"),
		joinedRow("P3", month(2014, 5), "30000"),
		joinedRow("R1", month(2015, 3), "100000"),
		joinedRow("R2", month(2015, 4), "200000"),
		joinedRow("R3", month(2015, 5), "300000"),
	}

	res, err := New().Classify(rows)
	require.NoError(t, err)
	require.Len(t, res, 6)

	brackets := map[string]string{}
	for _, r := range res {
		brackets[r.School] = r.Bracket
	}

	// The poorest rich-year school is still "Low" within its own year
	// even though it out-earns every poor-year school.
	assert.Equal(t, study.BracketLow, brackets["R1"])
	assert.Equal(t, study.BracketHigh, brackets["R3"])
	assert.Equal(t, study.BracketLow, brackets["P1"])
	assert.Equal(t, study.BracketHigh, brackets["P3"])
}

func TestClassifyExcludesSentinels(t *testing.T) {
	rows := []study.JoinedRow{
		joinedRow("A", month(2015, 3), "35500"),
		joinedRow("B", month(2015, 3), "PrivacySuppressed"),
		joinedRow("C", month(2015, 3), "NULL"),
		joinedRow("D", month(2015, 3), ""),
		joinedRow("E", month(2015, 3), "abc"),
		joinedRow("F", month(2014, 3), "41000"),
	}

	res, err := New().Classify(rows)
	require.NoError(t, err)

	// Sentinel rows vanish from classification, and removing them
	// must not disturb unrelated year groups.
	require.Len(t, res, 2)
	schools := map[string]bool{}
	for _, r := range res {
		schools[r.School] = true
	}
	assert.True(t, schools["A"])
	assert.True(t, schools["F"])
}

func TestClassifyCompletenessFilter(t *testing.T) {
	good := joinedRow("A", month(2015, 3), "35500")
	noState := joinedRow("B", month(2015, 3), "36000")
	noState.State = ""
	noDeg := joinedRow("C", month(2015, 3), "37000")
	noDeg.PredDeg = ""

	res, err := New().Classify([]study.JoinedRow{good, noState, noDeg})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "A", res[0].School)
}
