package engine

import (
	"sort"
	"strings"

	"github.com/gridscope-org/gridscope/dataset"
)

// ============================================================================
// FILTERS — Categorical AND free-text filtering
// ============================================================================
// Single pass: each record is checked against all active constraints in one
// loop and the survivors' indices become the View. Categorical constraints
// are exact, case-sensitive matches (values come from the dataset's own
// distinct lists, so case never varies in practice). The free-text query is
// a case-insensitive substring match over all expected fields.
// ============================================================================

// searchSeparator joins field values for the free-text haystack. The token
// keeps a query from spuriously matching across a field boundary — "ance
// bal" must not match a record whose country ends in "ance" and whose next
// field starts with "bal".
const searchSeparator = " | "

// constraint pairs a categorical column with its required value.
type constraint struct {
	column string
	value  string
}

func (c Criteria) active() []constraint {
	all := []constraint{
		{dataset.ColCountry, c.Country},
		{dataset.ColCategory, c.Category},
		{dataset.ColEvidence, c.Evidence},
		{dataset.ColSourceType, c.SourceType},
	}
	out := all[:0]
	for _, con := range all {
		if con.value != "" && con.value != AllValues {
			out = append(out, con)
		}
	}
	return out
}

// Apply returns the view of ds satisfying every active constraint of c.
// With no active constraints and a blank query it returns the full dataset.
func Apply(ds *dataset.Dataset, c Criteria) *View {
	constraints := c.active()
	query := strings.ToLower(strings.TrimSpace(c.Query))

	n := ds.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		rec := ds.Records[i]

		pass := true
		for _, con := range constraints {
			if rec.Get(con.column) != con.value {
				pass = false
				break
			}
		}
		if pass && query != "" && !matchesQuery(rec, query) {
			pass = false
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newView(ds, indices)
}

// matchesQuery reports whether the lowercased query occurs in the record's
// searchable text: every expected field's value, joined by searchSeparator.
func matchesQuery(rec dataset.Record, lowerQuery string) bool {
	var b strings.Builder
	for i, col := range dataset.ExpectedColumns() {
		if i > 0 {
			b.WriteString(searchSeparator)
		}
		b.WriteString(rec.Get(col))
	}
	return strings.Contains(strings.ToLower(b.String()), lowerQuery)
}

// ============================================================================
// FILTER CHOICES
// ============================================================================

// DistinctValues returns the distinct non-empty values of a column across the
// whole dataset, sorted case-insensitively. Used to populate filter controls.
func DistinctValues(ds *dataset.Dataset, column string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, rec := range ds.Records {
		v := rec.Get(column)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
	return values
}

// FilterChoices returns DistinctValues with the AllValues sentinel prepended,
// ready for a select control whose default is "no constraint".
func FilterChoices(ds *dataset.Dataset, column string) []string {
	return append([]string{AllValues}, DistinctValues(ds, column)...)
}
