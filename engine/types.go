package engine

// ============================================================================
// ENGINE TYPES — Filter criteria and chart-ready outputs
// ============================================================================
// The engine turns an immutable Dataset plus a Criteria tuple into a filtered
// View and a handful of count aggregations. Output shapes are deliberately
// plain — ordered (label, count) pairs — so the presentation layer can feed
// them straight into whatever chart widget it uses.
// ============================================================================

// AllValues is the sentinel meaning "no constraint" for a categorical filter.
// It is always the first entry of FilterChoices and the default selection.
const AllValues = "All"

// Criteria is one interaction's filter state: four optional exact-match
// constraints plus an optional free-text query. Empty or AllValues means
// unconstrained; all active constraints are ANDed.
type Criteria struct {
	Country    string `json:"country"`
	Category   string `json:"category"`
	Evidence   string `json:"evidence"`
	SourceType string `json:"sourceType"`
	Query      string `json:"query"`
}

// Bucket is one aggregation entry: a distinct value and its count.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the KPI roll-up shown above the charts.
type Summary struct {
	TotalRows    int `json:"totalRows"`
	FilteredRows int `json:"filteredRows"`
	Countries    int `json:"countries"`    // distinct non-empty country_label in the view
	Institutions int `json:"institutions"` // distinct non-empty institution_name in the view
	Tools        int `json:"tools"`        // distinct non-empty tool_name in the view
}
