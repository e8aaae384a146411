package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/model"
)

const stopsCSV = `Start Time,End Time,Status,Location,Equipment,Cause
2025-05-05 09:00,2025-05-05 15:00,Closed,North,Truck 1,Preventive wash cycle
2025-05-12 08:30,2025-05-13 09:50,Closed,South,Truck 2,Brake failure
2025-05-20 10:00,,Open,North,Truck 1,Engine failure
`

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	s := New(config.Default(), nil)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, h http.Handler) {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/dataset?format=csv&name=stops.csv", []byte(stopsCSV), "text/csv")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNoDataset(t *testing.T) {
	_, h := newTestServer(t)
	for _, path := range []string{"/api/dataset", "/api/report", "/api/export.csv"} {
		rec := do(t, h, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), errNoDataset.Error())
	}
}

func TestUploadRawCSV(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/dataset?format=csv&name=stops.csv", []byte(stopsCSV), "text/csv")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp datasetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stops.csv", resp.Source)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, []string{"North", "South"}, resp.Locations)
	assert.Equal(t, []string{"Closed", "Open"}, resp.Statuses)
	assert.True(t, resp.Schema.DerivedHours)
	assert.NotEmpty(t, resp.ID)

	rec = do(t, h, http.MethodGet, "/api/dataset", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadMultipart(t *testing.T) {
	_, h := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "stops.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(stopsCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := do(t, h, http.MethodPost, "/api/dataset", body.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"source":"stops.csv"`)
}

func TestUploadErrors(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/dataset?format=csv", []byte("Location,Cause\nNorth,x\n"), "text/csv")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var er errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Equal(t, []string{model.ColStart, model.ColStatus}, er.Missing)

	rec = do(t, h, http.MethodPost, "/api/dataset?format=ods", []byte("x"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/dataset", []byte(stopsCSV), "text/csv")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/dataset?format=xlsx", []byte("not a zip"), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A failed upload leaves the slot empty.
	rec = do(t, h, http.MethodGet, "/api/report", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReport(t *testing.T) {
	_, h := newTestServer(t)
	upload(t, h)

	rec := do(t, h, http.MethodGet, "/api/report", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rep model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 3, rep.Filtered)
	assert.Equal(t, 2, rep.KPI.ClosedCount)
	assert.Equal(t, 1, rep.KPI.OpenCount)
	assert.InDelta(t, 81.29, rep.KPI.AvailabilityPct, 0.01)
	assert.InDelta(t, 15.67, rep.KPI.MTTR, 0.01)
	assert.Len(t, rep.Pyramid, 5)

	rec = do(t, h, http.MethodGet, "/api/report?location=North&status=Closed", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Filtered)
	assert.Equal(t, model.PhaseSingle, rep.KPI.Phase)
	assert.InDelta(t, 6.0, rep.KPI.MTTR, 1e-9)

	rec = do(t, h, http.MethodGet, "/api/report?from=2025-05-12&to=2025-05-12", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Filtered)

	rec = do(t, h, http.MethodGet, "/api/report?from=12/05/2025", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	_, h := newTestServer(t)
	upload(t, h)

	rec := do(t, h, http.MethodGet, "/api/export.csv?location=South", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Start Time,End Time,Status,Location,Equipment,Cause,downtime_hours,month,maintenance_type", lines[0])
	assert.Equal(t, "2025-05-12 08:30:00,2025-05-13 09:50:00,Closed,South,Truck 2,Brake failure,25.33,2025-05,Corrective", lines[1])
}

func TestMetrics(t *testing.T) {
	_, h := newTestServer(t)
	upload(t, h)
	do(t, h, http.MethodGet, "/api/report", nil, "")

	rec := do(t, h, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `mtop_dataset_uploads_total{result="ok"} 1`)
	assert.Contains(t, body, "mtop_dataset_rows 3")
	assert.Contains(t, body, `mtop_kpi{metric="mttr_hours"}`)
	assert.Contains(t, body, `mtop_http_requests_total{route="report",status="200"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Serve.EnableMetrics = false
	h := New(cfg, nil).Handler()

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", nil, "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", nil, "").Code)
}

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection(map[string][]string{
		"location": {"North", "South"},
		"to":       {"2025-05-31"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, sel.Locations)
	assert.Nil(t, sel.Statuses)
	assert.Nil(t, sel.From)
	require.NotNil(t, sel.To)
	assert.Equal(t, "2025-05-31", sel.To.Format("2006-01-02"))
}
