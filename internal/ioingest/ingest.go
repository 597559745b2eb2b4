// Package ioingest implements the Ingestor interface: it reads the
// trends directory and the two reference tables into memory. This is an
// impure I/O package; everything downstream of it is pure.
//
// Ingestion is tolerant by design. Trends files are produced per
// institution and their schemas drift slightly, so a file missing a
// column yields rows with the field marked missing rather than an error.
// Only the total absence of input data is fatal.
package ioingest

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/edmetrics/trendshift/pkg/config"
	"github.com/edmetrics/trendshift/pkg/study"
)

// Trends file columns.
const (
	colSchool  = "schname"
	colKeyword = "keyword"
	colLabel   = "monthorweek"
	colIndex   = "index"
)

// Link file columns.
const (
	colUnitID = "unitid"
	colOPEID  = "opeid"
)

// Scorecard columns.
const (
	colState   = "stabbr"
	colPredDeg = "preddeg"
	colEarn6   = "md_earn_wne_p6"
	colEarn8   = "md_earn_wne_p8"
	colEarn10  = "md_earn_wne_p10"
)

type ingestor struct {
	cfg *config.Config
}

// New creates a new Ingestor reading from the configured input directory.
func New(cfg *config.Config) study.Ingestor {
	return &ingestor{cfg: cfg}
}

// SearchObservations loads every trends file matching the configured glob
// and concatenates them into one table. Zero matching files is fatal.
func (ing *ingestor) SearchObservations(
	ctx context.Context,
) ([]study.SearchObservation, error) {
	pattern := filepath.Join(ing.cfg.Input.Dir, ing.cfg.Input.TrendsGlob)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, MissingInputError(pattern, err)
	}
	if len(files) == 0 {
		return nil, MissingInputError(pattern, nil)
	}
	sort.Strings(files)

	var res []study.SearchObservation
	var skipped int

	bar := pb.Full.Start(len(files))
	bar.Set("prefix", "Reading trends files: ")
	bar.Set(pb.CleanOnFinish, true)

	for _, file := range files {
		if err = ctx.Err(); err != nil {
			bar.Finish()
			return nil, err
		}
		rows, bad, err := readTrendsFile(file)
		if err != nil {
			bar.Finish()
			return nil, err
		}
		res = append(res, rows...)
		skipped += bad
		bar.Increment()
	}
	bar.Finish()

	slog.Info("Loaded search observations",
		"files", len(files),
		"rows", humanize.Comma(int64(len(res))),
		"skipped_rows", skipped,
	)
	return res, nil
}

// IdentifierLinks loads the name-to-identifier linkage table.
func (ing *ingestor) IdentifierLinks(
	ctx context.Context,
) ([]study.IdentifierLink, error) {
	path := filepath.Join(ing.cfg.Input.Dir, ing.cfg.Input.LinkFile)
	var res []study.IdentifierLink
	var skipped int

	err := readCSV(ctx, path, func(get func(string) string) {
		link := study.IdentifierLink{
			School: get(colSchool),
			UnitID: get(colUnitID),
			OPEID:  get(colOPEID),
		}
		// A link without both keys cannot participate in either join.
		if link.School == "" || link.UnitID == "" {
			skipped++
			return
		}
		res = append(res, link)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded identifier links",
		"rows", humanize.Comma(int64(len(res))),
		"skipped_rows", skipped,
	)
	return res, nil
}

// InstitutionRecords loads the scorecard table. Earnings columns stay
// text-typed; sentinel handling belongs to the classifier.
func (ing *ingestor) InstitutionRecords(
	ctx context.Context,
) ([]study.InstitutionRecord, error) {
	path := filepath.Join(ing.cfg.Input.Dir, ing.cfg.Input.ScorecardFile)
	var res []study.InstitutionRecord
	var skipped int

	err := readCSV(ctx, path, func(get func(string) string) {
		rec := study.InstitutionRecord{
			UnitID:  get(colUnitID),
			State:   get(colState),
			PredDeg: get(colPredDeg),
			Earn6:   get(colEarn6),
			Earn8:   get(colEarn8),
			Earn10:  get(colEarn10),
		}
		if rec.UnitID == "" {
			skipped++
			return
		}
		res = append(res, rec)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded institution records",
		"rows", humanize.Comma(int64(len(res))),
		"skipped_rows", skipped,
	)
	return res, nil
}

// readTrendsFile reads one trends CSV. Returns parsed rows and the count
// of structurally unreadable records.
func readTrendsFile(path string) ([]study.SearchObservation, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, ReadFileError(path, err)
	}
	defer f.Close()

	r := newReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, 0, ReadFileError(path, err)
	}
	cols := columnIndex(header)

	var rows []study.SearchObservation
	var skipped int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed record: skip the row, keep reading.
			skipped++
			continue
		}
		obs := study.SearchObservation{
			School:  field(rec, cols, colSchool),
			Keyword: field(rec, cols, colKeyword),
			Label:   field(rec, cols, colLabel),
		}
		obs.Index, obs.IndexOK = parseIndex(field(rec, cols, colIndex))
		rows = append(rows, obs)
	}
	return rows, skipped, nil
}

// readCSV streams one reference CSV, calling row with a field accessor
// per record. Missing columns read as "".
func readCSV(
	ctx context.Context,
	path string,
	row func(get func(string) string),
) error {
	f, err := os.Open(path)
	if err != nil {
		return ReadFileError(path, err)
	}
	defer f.Close()

	r := newReader(f)

	header, err := r.Read()
	if err != nil {
		return ReadFileError(path, err)
	}
	cols := columnIndex(header)

	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue
		}
		row(func(name string) string {
			return field(rec, cols, name)
		})
	}
}

func newReader(f *os.File) *csv.Reader {
	r := csv.NewReader(f)
	// Schemas drift between files; record length is not enforced.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

// columnIndex maps lower-cased header names to positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

// field returns the named column of rec, or "" when the column is absent
// from the header or the record is too short.
func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseIndex(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
