package engine

import (
	"sort"

	"github.com/gridscope-org/gridscope/dataset"
)

// ============================================================================
// AGGREGATORS — Count-based summaries over a View
// ============================================================================
// Every field is text by contract, so all aggregations are counts: value
// counts for the tool-distribution chart, group counts for the geographic
// summary, distinct counts for KPIs, untruncated breakdowns for the category
// and evidence charts.
//
// Ordering is descending by count; ties keep the sequence's encounter order
// (sort.SliceStable over buckets built in first-occurrence order). An empty
// view yields an empty result — a valid "no data for current filters" state,
// never an error.
// ============================================================================

// ValueCounts counts occurrences of each distinct value of column across the
// view. Empty values are excluded unless WithUnknown substitutes a
// placeholder for them, in which case the placeholder bucket ranks ahead of
// data values with the same count. The result is truncated to the configured
// top N (default 20).
func ValueCounts(view *View, column string, opts ...CountOption) []Bucket {
	cfg := applyCountOptions(opts)

	counts := make(map[string]int)
	var order []string
	for i := 0; i < view.Len(); i++ {
		v := view.Value(i, column)
		if v == "" {
			if cfg.UnknownLabel == "" {
				continue
			}
			v = cfg.UnknownLabel
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	// The placeholder is synthetic, not a data value: pin it ahead of the
	// encounter order so it sorts before data values on equal counts.
	if cfg.UnknownLabel != "" {
		if _, ok := counts[cfg.UnknownLabel]; ok {
			reordered := make([]string, 0, len(order))
			reordered = append(reordered, cfg.UnknownLabel)
			for _, v := range order {
				if v != cfg.UnknownLabel {
					reordered = append(reordered, v)
				}
			}
			order = reordered
		}
	}

	buckets := make([]Bucket, 0, len(order))
	for _, v := range order {
		buckets = append(buckets, Bucket{Label: v, Count: counts[v]})
	}
	sortBuckets(buckets)

	if cfg.TopN > 0 && len(buckets) > cfg.TopN {
		buckets = buckets[:cfg.TopN]
	}
	return buckets
}

// Breakdown is ValueCounts with empties excluded and no truncation. Used for
// the category and evidence-strength summaries.
func Breakdown(view *View, column string) []Bucket {
	return ValueCounts(view, column, WithTopN(0))
}

// GroupCount counts rows per distinct non-empty value of column. Drives the
// per-country geographic summary.
func GroupCount(view *View, column string) []Bucket {
	return Breakdown(view, column)
}

// GroupDistinctCount groups the view by groupColumn and counts the distinct
// non-empty values of countColumn within each group (e.g. distinct tool
// names per country). Empty group keys are excluded.
func GroupDistinctCount(view *View, groupColumn, countColumn string) []Bucket {
	distinct := make(map[string]map[string]bool)
	var order []string
	for i := 0; i < view.Len(); i++ {
		group := view.Value(i, groupColumn)
		if group == "" {
			continue
		}
		set, seen := distinct[group]
		if !seen {
			set = make(map[string]bool)
			distinct[group] = set
			order = append(order, group)
		}
		if v := view.Value(i, countColumn); v != "" {
			set[v] = true
		}
	}

	buckets := make([]Bucket, 0, len(order))
	for _, group := range order {
		buckets = append(buckets, Bucket{Label: group, Count: len(distinct[group])})
	}
	sortBuckets(buckets)
	return buckets
}

// sortBuckets orders descending by count, keeping encounter order for ties.
func sortBuckets(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
}

// ============================================================================
// SUMMARY
// ============================================================================

// Summarize computes the KPI roll-up for a view over its dataset.
func Summarize(ds *dataset.Dataset, view *View) Summary {
	return Summary{
		TotalRows:    ds.Len(),
		FilteredRows: view.Len(),
		Countries:    distinctCount(view, dataset.ColCountry),
		Institutions: distinctCount(view, dataset.ColInstitution),
		Tools:        distinctCount(view, dataset.ColToolName),
	}
}

func distinctCount(view *View, column string) int {
	seen := make(map[string]bool)
	for i := 0; i < view.Len(); i++ {
		if v := view.Value(i, column); v != "" {
			seen[v] = true
		}
	}
	return len(seen)
}
