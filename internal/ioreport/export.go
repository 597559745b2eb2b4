package ioreport

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/edmetrics/trendshift/pkg/study"
	_ "modernc.org/sqlite"
)

const monthLayout = "2006-01-02"

// exportSQLite writes the regression-ready table and the fitted models
// into a SQLite results file. The file is recreated on every run; the
// pipeline itself keeps no persistent state.
func exportSQLite(
	ctx context.Context,
	res *study.Result,
	fits []*Fit,
	path string,
) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return ExportError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return ExportError(path, err)
	}
	defer db.Close()

	const schema = `
CREATE TABLE runs (
	run_id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	model_rows INTEGER NOT NULL
);
CREATE TABLE model_rows (
	month TEXT NOT NULL,
	year INTEGER NOT NULL,
	z_index REAL NOT NULL,
	earnings REAL NOT NULL,
	state TEXT NOT NULL,
	preddeg TEXT NOT NULL,
	bracket TEXT NOT NULL,
	grp TEXT NOT NULL
);
CREATE TABLE model_fits (
	model TEXT NOT NULL,
	term TEXT NOT NULL,
	coef REAL NOT NULL,
	se REAL NOT NULL,
	t_stat REAL NOT NULL,
	p_value REAL NOT NULL
);
`
	if _, err = db.ExecContext(ctx, schema); err != nil {
		return ExportError(path, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ExportError(path, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (run_id, created_at, model_rows) VALUES (?, ?, ?)",
		res.RunID, time.Now().UTC().Format(time.RFC3339), len(res.Rows),
	)
	if err != nil {
		return ExportError(path, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO model_rows
		 (month, year, z_index, earnings, state, preddeg, bracket, grp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ExportError(path, err)
	}
	defer stmt.Close()

	for _, row := range res.Rows {
		_, err = stmt.ExecContext(ctx,
			row.Month.Format(monthLayout), row.Year, row.ZIndex,
			row.Earnings, row.State, row.PredDeg, row.Bracket, row.Group,
		)
		if err != nil {
			return ExportError(path, err)
		}
	}

	fitStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO model_fits (model, term, coef, se, t_stat, p_value)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ExportError(path, err)
	}
	defer fitStmt.Close()

	for _, fit := range fits {
		for j, term := range fit.Terms {
			_, err = fitStmt.ExecContext(ctx,
				fit.Name, term, fit.Coef[j], fit.SE[j],
				fit.TStat[j], fit.PVal[j],
			)
			if err != nil {
				return ExportError(path, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return ExportError(path, err)
	}
	return nil
}

// exportCSV writes the regression-ready table as a flat CSV.
func exportCSV(rows []study.ModelRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return ExportError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"month", "year", "z_index", "earnings",
		"state", "preddeg", "bracket", "group",
	}
	if err = w.Write(header); err != nil {
		return ExportError(path, err)
	}

	for _, row := range rows {
		rec := []string{
			row.Month.Format(monthLayout),
			strconv.Itoa(row.Year),
			strconv.FormatFloat(row.ZIndex, 'g', -1, 64),
			strconv.FormatFloat(row.Earnings, 'g', -1, 64),
			row.State,
			row.PredDeg,
			row.Bracket,
			row.Group,
		}
		if err = w.Write(rec); err != nil {
			return ExportError(path, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return ExportError(path, err)
	}
	return nil
}
