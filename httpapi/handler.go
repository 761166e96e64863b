// Package httpapi exposes the explorer's filtered views and aggregations as
// JSON for a dashboard frontend. The dataset is loaded once at construction;
// every request is a pure recomputation over it, so handlers share no
// mutable state.
package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gridscope-org/gridscope/dataset"
	"github.com/gridscope-org/gridscope/engine"
)

// Handler serves the dashboard API over an immutable dataset.
type Handler struct {
	ds  *dataset.Dataset
	log zerolog.Logger
}

// New constructs a Handler over a loaded dataset.
func New(ds *dataset.Dataset, log zerolog.Logger) *Handler {
	return &Handler{ds: ds, log: log}
}

// Router returns a chi router with all API routes mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", h.handleOptions)
		r.Get("/records", h.handleRecords)
		r.Get("/summary", h.handleSummary)
		r.Get("/charts/tools", h.handleToolChart)
		r.Get("/charts/countries", h.handleCountryChart)
		r.Get("/charts/categories", h.handleCategoryChart)
		r.Get("/charts/evidence", h.handleEvidenceChart)
		r.Get("/export", h.handleExport)
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ── Filter controls ─────────────────────────────────────────────────────────

// optionsResponse lists the choices for each categorical filter control.
// Each list starts with the "All" sentinel, the default selection.
type optionsResponse struct {
	Countries   []string `json:"countries"`
	Categories  []string `json:"categories"`
	Evidence    []string `json:"evidence"`
	SourceTypes []string `json:"sourceTypes"`
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Countries:   engine.FilterChoices(h.ds, dataset.ColCountry),
		Categories:  engine.FilterChoices(h.ds, dataset.ColCategory),
		Evidence:    engine.FilterChoices(h.ds, dataset.ColEvidence),
		SourceTypes: engine.FilterChoices(h.ds, dataset.ColSourceType),
	})
}

// ── Records table ───────────────────────────────────────────────────────────

type recordsResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)

	columns := p.Columns
	if len(columns) == 0 {
		columns = defaultDisplayColumns()
	}

	rows := make([][]string, view.Len())
	for i := 0; i < view.Len(); i++ {
		row := make([]string, len(columns))
		for j, col := range columns {
			v := view.Value(i, col)
			if col == dataset.ColWebsite || col == dataset.ColSourceLink {
				v = engine.SafeURL(v)
			}
			row[j] = v
		}
		rows[i] = row
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Columns: columns,
		Rows:    rows,
		Total:   view.Len(),
	})
}

// defaultDisplayColumns mirrors the table's default column selection: the
// first ten display columns, evidence before source details.
func defaultDisplayColumns() []string {
	return []string{
		dataset.ColCountry,
		dataset.ColInstitution,
		dataset.ColToolName,
		dataset.ColCategory,
		dataset.ColUseCase,
		dataset.ColEvidence,
		dataset.ColSourceType,
		dataset.ColSourceTitle,
		dataset.ColSourceDate,
		dataset.ColSourceLink,
	}
}

// ── Summary & charts ────────────────────────────────────────────────────────

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)
	writeJSON(w, http.StatusOK, engine.Summarize(h.ds, view))
}

type chartResponse struct {
	Buckets []engine.Bucket `json:"buckets"`
}

func (h *Handler) handleToolChart(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)

	opts := []engine.CountOption{engine.WithTopN(p.TopN)}
	if p.IncludeUnknown {
		opts = append(opts, engine.WithUnknown("Unknown"))
	}

	writeJSON(w, http.StatusOK, chartResponse{
		Buckets: engine.ValueCounts(view, dataset.ColToolName, opts...),
	})
}

// countryChartResponse carries both series the geographic summary needs:
// record counts and distinct tool counts per country.
type countryChartResponse struct {
	Records       []engine.Bucket `json:"records"`
	DistinctTools []engine.Bucket `json:"distinctTools"`
}

func (h *Handler) handleCountryChart(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)

	writeJSON(w, http.StatusOK, countryChartResponse{
		Records:       engine.GroupCount(view, dataset.ColCountry),
		DistinctTools: engine.GroupDistinctCount(view, dataset.ColCountry, dataset.ColToolName),
	})
}

func (h *Handler) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)
	writeJSON(w, http.StatusOK, chartResponse{
		Buckets: engine.Breakdown(view, dataset.ColCategory),
	})
}

func (h *Handler) handleEvidenceChart(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)
	writeJSON(w, http.StatusOK, chartResponse{
		Buckets: engine.Breakdown(view, dataset.ColEvidence),
	})
}

// ── Export ──────────────────────────────────────────────────────────────────

const exportFilename = "filtered_grid_operators_modelling_usage.csv"

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	p := decodeParams(r)
	view := engine.Apply(h.ds, p.Criteria)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))

	if err := dataset.WriteCSV(w, h.ds.Columns, view); err != nil {
		// Headers are gone by now; log and give up on the stream.
		h.log.Error().Err(err).Msg("csv export failed mid-stream")
	}
}
