package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gridscope-org/gridscope/dataset"
	"github.com/gridscope-org/gridscope/engine"
)

// ============================================================================
// REQUEST PARAMS — Per-interaction filter and display state
// ============================================================================
// Ephemeral UI state (selected filters, top-N slider, include-unknown
// checkbox, chosen columns) arrives as query parameters and lives only for
// the request. It is decoded into a plain struct, never stored.
// ============================================================================

// Top-N slider bounds.
const (
	defaultTopN = 20
	minTopN     = 5
	maxTopN     = 50
)

type params struct {
	Criteria       engine.Criteria
	TopN           int
	IncludeUnknown bool
	Columns        []string
}

func decodeParams(r *http.Request) params {
	q := r.URL.Query()

	p := params{
		Criteria: engine.Criteria{
			Country:    q.Get("country"),
			Category:   q.Get("category"),
			Evidence:   q.Get("evidence"),
			SourceType: q.Get("source_type"),
			Query:      q.Get("q"),
		},
		TopN:           defaultTopN,
		IncludeUnknown: q.Get("include_unknown") == "true",
	}

	if raw := q.Get("top_n"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			p.TopN = clampTopN(n)
		}
	}

	if raw := q.Get("columns"); raw != "" {
		for _, col := range strings.Split(raw, ",") {
			col = dataset.NormalizeColumn(col)
			if col != "" {
				p.Columns = append(p.Columns, col)
			}
		}
	}

	return p
}

func clampTopN(n int) int {
	if n < minTopN {
		return minTopN
	}
	if n > maxTopN {
		return maxTopN
	}
	return n
}
