package dataset

// ============================================================================
// DATASET — Fixed-schema text records for the usage explorer
// ============================================================================
// Every value is text. The loader guarantees that all expected columns exist
// on every record (empty string for anything the source file lacked), so the
// engine never has to distinguish "missing column" from "empty value".
// ============================================================================

// Expected column names. The curated CSV is matched against these after
// column-name normalization; anything missing is synthesized empty.
const (
	ColCountry     = "country_label"
	ColInstitution = "institution_name"
	ColWebsite     = "official_website"
	ColToolName    = "tool_name"
	ColCategory    = "tool_category"
	ColUseCase     = "use_case"
	ColEvidence    = "evidence_strength"
	ColSourceType  = "source_type"
	ColSourceTitle = "source_title"
	ColSourceDate  = "source_date"
	ColSourceLink  = "source_link"
	ColSnippet     = "exact_snippet_or_quote"
	ColRationale   = "why_it_supports_the_claim"
	ColNotes       = "notes"
)

// ExpectedColumns lists the fixed schema in display order.
func ExpectedColumns() []string {
	return []string{
		ColCountry,
		ColInstitution,
		ColWebsite,
		ColToolName,
		ColCategory,
		ColUseCase,
		ColEvidence,
		ColSourceType,
		ColSourceTitle,
		ColSourceDate,
		ColSourceLink,
		ColSnippet,
		ColRationale,
		ColNotes,
	}
}

// Record is a single data row. All values are trimmed text; lookups of
// expected columns always succeed on records produced by Load.
type Record map[string]string

// Get returns the value of a column, or "" if the record lacks it.
// Only non-expected columns can be absent.
func (r Record) Get(column string) string {
	return r[column]
}

// Dataset is an ordered, immutable sequence of records plus the column order
// of the source file (with synthesized expected columns appended). It is
// loaded once and never mutated, so concurrent reads are safe.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// HasColumn reports whether the dataset carries a column (expected or extra).
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}
