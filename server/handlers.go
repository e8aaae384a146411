package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/loader"
	"github.com/ftahirops/mtop/model"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// datasetResponse describes the active dataset and its filter values.
type datasetResponse struct {
	model.DatasetInfo
	Schema    model.Schema    `json:"schema"`
	Warnings  []model.Warning `json:"warnings,omitempty"`
	Locations []string        `json:"locations,omitempty"`
	Equipment []string        `json:"equipment,omitempty"`
	Statuses  []string        `json:"statuses"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a multipart form with a "file" field, or a raw body
// with ?format=csv|xlsx.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.Serve.MaxUploadMB << 20
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	body, name, format, err := uploadBody(r)
	if err != nil {
		s.metrics.Upload("invalid")
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer body.Close()

	ds, err := loader.LoadReader(body, format, name, s.loaderOptions())
	if err != nil {
		var missing *loader.MissingColumnsError
		if errors.As(err, &missing) {
			s.metrics.Upload("missing_columns")
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Missing: missing.Missing})
			return
		}
		s.metrics.Upload("invalid")
		s.log.Warn("upload rejected", zap.String("name", name), zap.Error(err))
		writeError(w, http.StatusBadRequest, err)
		return
	}

	eng := s.install(ds)
	s.metrics.Upload("ok")
	writeJSON(w, http.StatusCreated, s.describe(eng))
}

func uploadBody(r *http.Request) (io.ReadCloser, string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, hdr, err := r.FormFile("file")
		if err != nil {
			return nil, "", "", fmt.Errorf("read upload: %w", err)
		}
		format := r.URL.Query().Get("format")
		if format == "" {
			format = filepath.Ext(hdr.Filename)
		}
		return file, hdr.Filename, format, nil
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		return nil, "", "", fmt.Errorf("%w: missing ?format= for raw upload", loader.ErrUnsupportedFormat)
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload." + strings.TrimPrefix(format, ".")
	}
	return r.Body, name, format, nil
}

func (s *Server) describe(eng *engine.Engine) datasetResponse {
	ds := eng.Dataset()
	f := engine.BuildFacets(ds)
	return datasetResponse{
		DatasetInfo: engine.Info(ds, s.cfg.UI.PreviewRows),
		Schema:      ds.Schema,
		Warnings:    ds.Warnings,
		Locations:   f.Locations,
		Equipment:   f.Equipment,
		Statuses:    f.Statuses,
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	eng, err := s.store.get()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, s.describe(eng))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	eng, err := s.store.get()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rep := eng.Compute(sel)
	s.metrics.ObserveReport(rep)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	eng, err := s.store.get()
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := eng.ExportCSV(sel)
	if err != nil {
		s.log.Error("csv export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="maintenance_filtered.csv"`)
	_, _ = w.Write(data)
}

// parseSelection reads location, equipment and status (repeatable) and
// from/to (YYYY-MM-DD). Absent facets select everything.
func parseSelection(q url.Values) (model.Selection, error) {
	sel := model.Selection{
		Locations: q["location"],
		Equipment: q["equipment"],
		Statuses:  q["status"],
	}
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &sel.From}, {"to", &sel.To}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return sel, fmt.Errorf("invalid %s date %q: want YYYY-MM-DD", p.key, v)
		}
		*p.dst = &t
	}
	return sel, nil
}
