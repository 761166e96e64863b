package engine

import "github.com/gridscope-org/gridscope/dataset"

// ============================================================================
// VIEW — Zero-copy filtered subsequence of a Dataset
// ============================================================================
// A View holds indices into its parent Dataset, never copies of records.
// Every record reachable through a View belongs to the original Dataset, and
// a View is always ≤ its parent in length. Views are recomputed in full when
// criteria change — the dataset is a single small file, not a stream.
// ============================================================================

// View is a filtered, ordered subsequence of a Dataset.
type View struct {
	ds      *dataset.Dataset
	indices []int
}

// FullView returns a view over every record of ds, in order.
func FullView(ds *dataset.Dataset) *View {
	indices := make([]int, ds.Len())
	for i := range indices {
		indices[i] = i
	}
	return &View{ds: ds, indices: indices}
}

func newView(ds *dataset.Dataset, indices []int) *View {
	return &View{ds: ds, indices: indices}
}

// Len returns the number of records in the view.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.indices)
}

// Record returns the i-th record of the view.
func (v *View) Record(i int) dataset.Record {
	return v.ds.Records[v.indices[i]]
}

// Value returns column's value on the i-th record.
func (v *View) Value(i int, column string) string {
	return v.Record(i).Get(column)
}

// Records materializes the view as a record slice for tabular display.
// The records themselves are shared with the Dataset, not copied.
func (v *View) Records() []dataset.Record {
	out := make([]dataset.Record, v.Len())
	for i := range out {
		out[i] = v.Record(i)
	}
	return out
}
