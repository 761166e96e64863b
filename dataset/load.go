package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ============================================================================
// LOADER — Delimited text → normalized Dataset
// ============================================================================
// The source file's delimiter is unknown (curated exports arrive as comma,
// semicolon, or tab separated), so it is sniffed from the leading lines
// rather than assumed. Every cell is treated as text: no numeric or date
// parsing, no nulls — absent values become "".
//
// Load is memoized by cleaned absolute path for the lifetime of the process.
// ============================================================================

// NotFoundError reports a dataset file that does not exist. It unwraps to
// fs.ErrNotExist so errors.Is(err, fs.ErrNotExist) also holds.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// ── Cache ───────────────────────────────────────────────────────────────────

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*Dataset)
)

// Load reads and normalizes the dataset at path. The result is cached by
// cleaned absolute path; subsequent calls return the same *Dataset without
// touching the file until Invalidate.
func Load(path string) (*Dataset, error) {
	key := cacheKey(path)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if ds, ok := cache[key]; ok {
		return ds, nil
	}

	ds, err := read(path)
	if err != nil {
		return nil, err
	}
	cache[key] = ds
	return ds, nil
}

// Invalidate drops the cached dataset for path, forcing the next Load to
// re-read the file.
func Invalidate(path string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	delete(cache, cacheKey(path))
}

// InvalidateAll drops every cached dataset.
func InvalidateAll() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = make(map[string]*Dataset)
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// ── Reading ─────────────────────────────────────────────────────────────────

func read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data)
}

// Parse normalizes raw delimited bytes into a Dataset. Exposed for callers
// that already hold the bytes (tests, uploads); Load is the cached entry
// point for files.
func Parse(data []byte) (*Dataset, error) {
	text := string(data)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1 // ragged rows are padded, not rejected
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = NormalizeColumn(h)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}

	// Synthesize any expected column the source lacked. Contract: after
	// normalization every expected column exists on every record.
	colSet := make(map[string]bool, len(columns))
	for _, c := range columns {
		colSet[c] = true
	}
	for _, want := range ExpectedColumns() {
		if colSet[want] {
			continue
		}
		columns = append(columns, want)
		for _, rec := range records {
			rec[want] = ""
		}
	}

	return &Dataset{Columns: columns, Records: records}, nil
}

// ── Column-name normalization ───────────────────────────────────────────────

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeColumn trims a header cell and collapses internal whitespace runs
// to a single underscore, so "Country Label " and "country_label" resolve to
// the same field.
func NormalizeColumn(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
}

// ── Delimiter sniffing ──────────────────────────────────────────────────────

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffDelimiter picks the candidate delimiter that parses the leading lines
// into the most columns, consistently across lines. Falls back to comma.
func sniffDelimiter(text string) rune {
	sample := text
	if idx := nthLineEnd(sample, 10); idx > 0 {
		sample = sample[:idx]
	}

	best := ','
	bestCols := 1
	for _, cand := range delimiterCandidates {
		r := csv.NewReader(strings.NewReader(sample))
		r.Comma = cand
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		cols := 0
		consistent := true
		lines := 0
		for {
			row, err := r.Read()
			if err != nil {
				break
			}
			lines++
			if cols == 0 {
				cols = len(row)
			} else if len(row) != cols {
				consistent = false
			}
		}
		if lines == 0 || cols <= 1 {
			continue
		}
		if !consistent {
			cols = 2 // parses, but unevenly — outranked by any consistent split
		}
		if cols > bestCols {
			bestCols = cols
			best = cand
		}
	}
	return best
}

func nthLineEnd(s string, n int) int {
	for i, c := range s {
		if c == '\n' {
			n--
			if n == 0 {
				return i
			}
		}
	}
	return -1
}
