package ioreport

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"
)

// ComparisonTable renders the fitted models side by side in the usual
// journal layout: one row per term with the coefficient, significance
// stars and the standard error beneath it.
func ComparisonTable(fits []*Fit) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprint(w, "term")
	for _, fit := range fits {
		fmt.Fprintf(w, "\t%s", fit.Name)
	}
	fmt.Fprintln(w)

	for _, term := range termOrder(fits) {
		fmt.Fprint(w, term)
		for _, fit := range fits {
			j := termIndex(fit, term)
			if j < 0 {
				fmt.Fprint(w, "\t")
				continue
			}
			fmt.Fprintf(w, "\t%.4f%s", fit.Coef[j], stars(fit.PVal[j]))
		}
		fmt.Fprintln(w)

		fmt.Fprint(w, "")
		for _, fit := range fits {
			j := termIndex(fit, term)
			if j < 0 {
				fmt.Fprint(w, "\t")
				continue
			}
			fmt.Fprintf(w, "\t(%.4f)", fit.SE[j])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "N")
	for _, fit := range fits {
		fmt.Fprintf(w, "\t%d", fit.N)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "R2")
	for _, fit := range fits {
		fmt.Fprintf(w, "\t%.4f", fit.R2)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "adj. R2")
	for _, fit := range fits {
		fmt.Fprintf(w, "\t%.4f", fit.AdjR2)
	}
	fmt.Fprintln(w)

	w.Flush()
	sb.WriteString("\nSignif. codes: *** p<0.01, ** p<0.05, * p<0.1\n")
	return sb.String()
}

// termOrder lists every term of every model once, in the order of first
// appearance across models (state dummies last).
func termOrder(fits []*Fit) []string {
	var order []string
	seen := make(map[string]bool)
	for _, fit := range fits {
		for _, term := range fit.Terms {
			if !seen[term] {
				seen[term] = true
				order = append(order, term)
			}
		}
	}
	return order
}

func termIndex(fit *Fit, term string) int {
	for j, t := range fit.Terms {
		if t == term {
			return j
		}
	}
	return -1
}

func stars(p float64) string {
	switch {
	case math.IsNaN(p):
		return ""
	case p < 0.01:
		return "***"
	case p < 0.05:
		return "**"
	case p < 0.1:
		return "*"
	default:
		return ""
	}
}
