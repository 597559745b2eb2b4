package study

import "time"

// Analysis parameters. They are deliberately constants, not configuration:
// the study is defined by these values and a run with different ones is a
// different study.
const (
	// LowQuantile is the upper bound of the "Low" earnings bracket.
	LowQuantile = 0.35

	// HighQuantile is the lower bound of the "High" earnings bracket.
	// The accompanying write-up describes an 80th-percentile boundary,
	// but the analysis as executed used the 90th; we follow the
	// executed logic. See DESIGN.md.
	HighQuantile = 0.90
)

// Earnings bracket labels, assigned per calendar year.
const (
	BracketLow  = "Low"
	BracketMid  = "Mid"
	BracketHigh = "High"
)

// Treatment-group labels relative to DisclosureCutoff.
const (
	GroupPre  = "pre"
	GroupPost = "post"
)

// Sentinel tokens the scorecard uses in earnings columns. Any other
// non-numeric content is treated the same way: the row is excluded from
// classification rather than coerced.
const (
	SentinelSuppressed = "PrivacySuppressed"
	SentinelNull       = "NULL"
)

// DisclosureCutoff is the first day of the month the earnings-disclosure
// dataset went public (the College Scorecard release, September 2015).
// Month buckets less than or equal to the cutoff are labeled "pre".
var DisclosureCutoff = time.Date(2015, time.September, 1, 0, 0, 0, 0, time.UTC)
