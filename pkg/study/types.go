package study

import "time"

// SearchObservation is one row of raw search-interest data: one
// (institution, keyword, week-or-month label) triple with the provider's
// popularity index. Index values are comparable only within the same
// (School, Keyword) pair, never across pairs.
type SearchObservation struct {
	// School is the institution name as it appears in the trends files.
	// It is a non-unique key until reconciliation.
	School string

	// Keyword is the search term the index was collected for.
	Keyword string

	// Label is the provider's free-text "month or week" field, e.g.
	// "2015-03-01 - 2015-03-07". The first 10 characters carry the
	// ISO date used to derive the month bucket.
	Label string

	// Index is the raw popularity index on the provider's scale.
	Index float64

	// IndexOK is false when the source cell was absent, empty or
	// non-numeric. Such rows carry no usable signal and are dropped
	// during normalization.
	IndexOK bool
}

// StandardizedObservation is a search observation with its month bucket
// resolved and the popularity index replaced by a z-score computed within
// its (School, Keyword) group. Only rows from groups with a defined
// standard deviation survive into this type.
type StandardizedObservation struct {
	School  string
	Keyword string
	Month   time.Time
	Index   float64
	ZIndex  float64
}

// KeywordMean is the mean standardized index over one (School, Keyword)
// group.
type KeywordMean struct {
	School  string
	Keyword string
	MeanZ   float64
	N       int
}

// MonthMean is the mean standardized index over one (School, Month) group.
type MonthMean struct {
	School string
	Month  time.Time
	MeanZ  float64
	N      int
}

// NormalizedSet is the normalizer's full output: the per-row standardized
// observations plus the two aggregate views.
type NormalizedSet struct {
	Observations []StandardizedObservation
	KeywordMeans []KeywordMean
	MonthMeans   []MonthMean

	// DroppedGroups counts (School, Keyword) groups excluded because
	// they had fewer than two values or zero variance.
	DroppedGroups int

	// DroppedRows counts rows lost to dropped groups, unparsable date
	// labels, or missing index values.
	DroppedRows int
}

// IdentifierLink maps an institution name to its federal identifiers.
type IdentifierLink struct {
	School string
	UnitID string
	OPEID  string
}

// InstitutionRecord is one scorecard row keyed by UnitID. The earnings
// fields stay text-typed: the source mixes dollar amounts with sentinel
// tokens such as "PrivacySuppressed" and "NULL".
type InstitutionRecord struct {
	UnitID  string
	State   string
	PredDeg string
	Earn6   string
	Earn8   string
	Earn10  string
}

// JoinedRow is a standardized observation joined to its identifier link
// and scorecard record. After reconciliation every School value maps to
// exactly one UnitID across the whole set.
type JoinedRow struct {
	School  string
	Keyword string
	Month   time.Time
	ZIndex  float64
	UnitID  string
	State   string
	PredDeg string
	Earn6   string
	Earn8   string
	Earn10  string
}

// ClassifiedRow is a joined row whose 10-year earnings parsed to a number
// and which received a percentile bracket within its calendar year.
type ClassifiedRow struct {
	JoinedRow
	Year     int
	Earnings float64
	Bracket  string
}

// ModelRow is one regression-ready observation: the fixed column subset
// the models consume, nothing else.
type ModelRow struct {
	Month    time.Time
	Year     int
	ZIndex   float64
	Earnings float64
	State    string
	PredDeg  string
	Bracket  string
	Group    string
}

// Counts carries per-phase row tallies for the run summary.
type Counts struct {
	TrendsRows       int
	StandardizedRows int
	JoinedRows       int
	SentinelRows     int
	ClassifiedRows   int
	ModelRows        int
}

// Result is everything a pipeline run produces for the reporting stage.
type Result struct {
	RunID      string
	Normalized *NormalizedSet
	Rows       []ModelRow
	Counts     Counts
}
