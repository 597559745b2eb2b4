package ioreport

import (
	"database/sql"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/edmetrics/trendshift/pkg/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sampleRows(n int) []study.ModelRow {
	rng := rand.New(rand.NewSource(7))
	groups := []string{study.GroupPre, study.GroupPost}
	brackets := []string{study.BracketLow, study.BracketMid, study.BracketHigh}
	months := []time.Time{
		time.Date(2014, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 11, 1, 0, 0, 0, 0, time.UTC),
	}

	rows := make([]study.ModelRow, 0, n)
	for i := 0; i < n; i++ {
		m := months[i%2]
		rows = append(rows, study.ModelRow{
			Month:    m,
			Year:     m.Year(),
			ZIndex:   rng.NormFloat64(),
			Earnings: 25000 + float64(i%10)*5000,
			State:    []string{"AL", "CA", "NY"}[(i/4)%3],
			PredDeg:  []string{"1", "3"}[(i/2)%2],
			Bracket:  brackets[i%3],
			Group:    groups[i%2],
		})
	}
	return rows
}

func TestComparisonTable(t *testing.T) {
	xs := mat.NewDense(6, 2, []float64{
		1, 1,
		1, 2,
		1, 3,
		1, 4,
		1, 5,
		1, 6,
	})
	ys := []float64{2.1, 4.2, 5.9, 8.1, 9.8, 12.2}
	fit, err := OLS("simple", []string{"(intercept)", "x"}, xs, ys)
	require.NoError(t, err)

	table := ComparisonTable([]*Fit{fit})

	assert.Contains(t, table, "simple")
	assert.Contains(t, table, "(intercept)")
	assert.Contains(t, table, "x")
	assert.Contains(t, table, "N")
	assert.Contains(t, table, "R2")
	assert.Contains(t, table, "Signif. codes")
	// A slope this clean is significant at any conventional level.
	assert.Contains(t, table, "***")
}

func TestStars(t *testing.T) {
	assert.Equal(t, "***", stars(0.001))
	assert.Equal(t, "**", stars(0.02))
	assert.Equal(t, "*", stars(0.07))
	assert.Equal(t, "", stars(0.2))
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model_rows.csv")
	rows := sampleRows(6)

	require.NoError(t, exportCSV(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 7)

	assert.Equal(t, []string{
		"month", "year", "z_index", "earnings",
		"state", "preddeg", "bracket", "group",
	}, recs[0])
	assert.Equal(t, "2014-05-01", recs[1][0])
	assert.Equal(t, "2014", recs[1][1])
}

func TestExportSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.db")
	rows := sampleRows(12)

	res := &study.Result{
		RunID: "test-run",
		Rows:  rows,
		Counts: study.Counts{
			ModelRows: len(rows),
		},
	}
	fits, err := FitModels(rows)
	require.NoError(t, err)

	require.NoError(t, exportSQLite(t.Context(), res, fits, path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t,
		db.QueryRow("SELECT COUNT(*) FROM model_rows").Scan(&n))
	assert.Equal(t, len(rows), n)

	var runID string
	require.NoError(t,
		db.QueryRow("SELECT run_id FROM runs").Scan(&runID))
	assert.Equal(t, "test-run", runID)

	require.NoError(t,
		db.QueryRow("SELECT COUNT(*) FROM model_fits").Scan(&n))
	assert.Greater(t, n, 0)
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()
	rows := sampleRows(30)

	histPath := filepath.Join(dir, "hist.png")
	require.NoError(t, earningsHistogram(rows, histPath))
	info, err := os.Stat(histPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	scatterPath := filepath.Join(dir, "scatter.png")
	require.NoError(t, interestScatter(rows, scatterPath))
	info, err = os.Stat(scatterPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReportWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Update([]config.Option{config.OptOutputDir(filepath.Join(dir, "out"))})

	res := &study.Result{
		RunID: "test-run",
		Rows:  sampleRows(60),
	}

	rep := New(cfg)
	require.NoError(t, rep.Report(t.Context(), res))

	for _, name := range []string{
		FileComparison, FileHistogram, FileScatter, FileSQLite, FileCSV,
	} {
		_, err := os.Stat(filepath.Join(dir, "out", name))
		assert.NoError(t, err, name)
	}

	body, err := os.ReadFile(filepath.Join(dir, "out", FileComparison))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "post:High"))
}
