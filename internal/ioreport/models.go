package ioreport

import (
	"sort"

	"github.com/edmetrics/trendshift/pkg/study"
	"gonum.org/v1/gonum/mat"
)

// The three model specifications, in increasing order of controls:
//
//	1. z ~ post + bracket + post:bracket
//	2. model 1 + predominant-degree dummies
//	3. model 2 + state dummies
//
// "Low" and "pre" are the omitted base levels, so the post:High
// interaction reads directly as the post-disclosure shift in relative
// interest toward high-earning institutions.

// design holds one model's matrix and column names.
type design struct {
	name  string
	terms []string
	xs    *mat.Dense
}

// FitModels estimates the three specifications on the assembled rows.
func FitModels(rows []study.ModelRow) ([]*Fit, error) {
	specs := []struct {
		name      string
		withDeg   bool
		withState bool
	}{
		{name: "interaction", withDeg: false, withState: false},
		{name: "+degree", withDeg: true, withState: false},
		{name: "+degree+state", withDeg: true, withState: true},
	}

	ys := make([]float64, len(rows))
	for i, row := range rows {
		ys[i] = row.ZIndex
	}

	fits := make([]*Fit, 0, len(specs))
	for _, spec := range specs {
		d := buildDesign(rows, spec.name, spec.withDeg, spec.withState)
		fit, err := OLS(d.name, d.terms, d.xs, ys)
		if err != nil {
			return nil, err
		}
		fits = append(fits, fit)
	}
	return fits, nil
}

// RichestDesign rebuilds the design matrix of the fullest specification,
// for diagnostics run after fitting.
func RichestDesign(rows []study.ModelRow) *mat.Dense {
	return buildDesign(rows, "+degree+state", true, true).xs
}

func buildDesign(rows []study.ModelRow, name string, withDeg, withState bool) design {
	terms := []string{
		"(intercept)",
		"post",
		"bracket:Mid",
		"bracket:High",
		"post:Mid",
		"post:High",
	}

	var degLevels, stateLevels []string
	if withDeg {
		degLevels = dummyLevels(rows, func(r study.ModelRow) string { return r.PredDeg })
		for _, lvl := range degLevels {
			terms = append(terms, "preddeg:"+lvl)
		}
	}
	if withState {
		stateLevels = dummyLevels(rows, func(r study.ModelRow) string { return r.State })
		for _, lvl := range stateLevels {
			terms = append(terms, "state:"+lvl)
		}
	}

	k := len(terms)
	data := make([]float64, 0, len(rows)*k)
	for _, row := range rows {
		post := b2f(row.Group == study.GroupPost)
		mid := b2f(row.Bracket == study.BracketMid)
		high := b2f(row.Bracket == study.BracketHigh)

		data = append(data, 1, post, mid, high, post*mid, post*high)
		for _, lvl := range degLevels {
			data = append(data, b2f(row.PredDeg == lvl))
		}
		for _, lvl := range stateLevels {
			data = append(data, b2f(row.State == lvl))
		}
	}

	return design{
		name:  name,
		terms: terms,
		xs:    mat.NewDense(len(rows), k, data),
	}
}

// dummyLevels returns the sorted distinct values of a factor with the
// first level omitted as the base.
func dummyLevels(rows []study.ModelRow, get func(study.ModelRow) string) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[get(row)] = true
	}
	levels := make([]string, 0, len(seen))
	for lvl := range seen {
		levels = append(levels, lvl)
	}
	sort.Strings(levels)
	if len(levels) == 0 {
		return nil
	}
	return levels[1:]
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
