package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope-org/gridscope/dataset"
	"github.com/gridscope-org/gridscope/engine"
)

var testCSV = []byte(`country_label,institution_name,tool_name,tool_category,use_case,evidence_strength,source_type,official_website
France,RTE,PLEXOS,Market modelling,Adequacy studies,Strong,Official report,rte-france.com
France,RTE,,Market modelling,Balancing services,Weak,News article,rte-france.com
Germany,Amprion,PyPSA,Open-source framework,Grid expansion planning,Strong,Official report,https://amprion.net
Spain,Red Electrica,TIMES,Scenario modelling,Long-term planning,Medium,Academic paper,ree.es
`)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	ds, err := dataset.Parse(testCSV)
	require.NoError(t, err)
	return New(ds, zerolog.Nop())
}

func get(t *testing.T, h *Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestOptions(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	opts := decode[optionsResponse](t, rec)
	assert.Equal(t, []string{"All", "France", "Germany", "Spain"}, opts.Countries)
	assert.Equal(t, "All", opts.Evidence[0])
	assert.Contains(t, opts.SourceTypes, "Academic paper")
}

func TestRecordsFiltered(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/records?country=France")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[recordsResponse](t, rec)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, dataset.ColCountry, resp.Columns[0])
}

func TestRecordsChosenColumnsAndSafeURLs(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/records?country=Spain&columns=institution_name,official_website")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[recordsResponse](t, rec)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, []string{"institution_name", "official_website"}, resp.Columns)
	assert.Equal(t, "Red Electrica", resp.Rows[0][0])
	// Scheme-less link cells get https:// prepended for display.
	assert.Equal(t, "https://ree.es", resp.Rows[0][1])
}

func TestSummary(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/summary?country=France")
	require.Equal(t, http.StatusOK, rec.Code)

	sum := decode[engine.Summary](t, rec)
	assert.Equal(t, 4, sum.TotalRows)
	assert.Equal(t, 2, sum.FilteredRows)
	assert.Equal(t, 1, sum.Countries)
	assert.Equal(t, 1, sum.Tools)
}

func TestToolChartUnknownToggle(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/api/charts/tools?country=France")
	resp := decode[chartResponse](t, rec)
	require.Len(t, resp.Buckets, 1)
	assert.Equal(t, engine.Bucket{Label: "PLEXOS", Count: 1}, resp.Buckets[0])

	rec = get(t, h, "/api/charts/tools?country=France&include_unknown=true")
	resp = decode[chartResponse](t, rec)
	require.Len(t, resp.Buckets, 2)
	assert.Equal(t, "Unknown", resp.Buckets[0].Label)
	assert.Equal(t, "PLEXOS", resp.Buckets[1].Label)
}

func TestToolChartTopNClamped(t *testing.T) {
	h := newTestHandler(t)

	// top_n below the slider minimum is clamped to 5, not rejected.
	rec := get(t, h, "/api/charts/tools?top_n=1")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[chartResponse](t, rec)
	assert.LessOrEqual(t, len(resp.Buckets), 5)
}

func TestCountryChart(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/charts/countries")
	resp := decode[countryChartResponse](t, rec)

	assert.Equal(t, engine.Bucket{Label: "France", Count: 2}, resp.Records[0])
	// France has one distinct tool (the empty tool_name doesn't count).
	for _, b := range resp.DistinctTools {
		if b.Label == "France" {
			assert.Equal(t, 1, b.Count)
		}
	}
}

func TestEmptyViewIsRenderableNotAnError(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/api/charts/tools?country=Atlantis")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[chartResponse](t, rec)
	assert.Empty(t, resp.Buckets)

	rec = get(t, h, "/api/records?country=Atlantis")
	require.Equal(t, http.StatusOK, rec.Code)
	records := decode[recordsResponse](t, rec)
	assert.Zero(t, records.Total)
}

func TestExportRoundTrip(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/export?country=Germany")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	back, err := dataset.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, back.Len())
	assert.Equal(t, "Amprion", back.Records[0].Get(dataset.ColInstitution))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Equal(t, 2, len(lines)) // header + one record
}
