package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ============================================================================
// EXPORT — Serialize records back to delimited text
// ============================================================================
// The download artifact for "export filtered CSV": a header row of column
// names followed by one row per record, comma-delimited. Re-parsing the
// output yields value-equal records (the round-trip property).
// ============================================================================

// RecordSource is any ordered sequence of records — the Dataset itself or a
// filtered view of it.
type RecordSource interface {
	Len() int
	Record(i int) Record
}

// Record makes *Dataset a RecordSource.
func (d *Dataset) Record(i int) Record {
	return d.Records[i]
}

// WriteCSV writes columns as a header row followed by each record of src, in
// order. Columns absent from a record are written empty.
func WriteCSV(w io.Writer, columns []string, src RecordSource) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(columns))
	for i := 0; i < src.Len(); i++ {
		rec := src.Record(i)
		for j, col := range columns {
			row[j] = rec.Get(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
