package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ftahirops/mtop/model"
)

// Metrics holds the Prometheus collectors of one server. Each server owns
// its registry so several can run in one process.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	uploadsTotal      *prometheus.CounterVec
	datasetRows       prometheus.Gauge
	kpi               *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mtop_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mtop_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		uploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mtop_dataset_uploads_total",
			Help: "Dataset uploads by result (ok, missing_columns, invalid).",
		}, []string{"result"}),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mtop_dataset_rows",
			Help: "Rows in the loaded dataset.",
		}),
		kpi: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mtop_kpi",
			Help: "KPIs of the last computed report (mttr_hours, mtbf_hours, availability_pct, downtime_hours).",
		}, []string{"metric"}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.uploadsTotal,
		m.datasetRows,
		m.kpi,
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request count and latency for route.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Upload counts an upload attempt.
func (m *Metrics) Upload(result string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(result).Inc()
}

// SetDataset records the size of the loaded dataset.
func (m *Metrics) SetDataset(rows int) {
	if m == nil {
		return
	}
	m.datasetRows.Set(float64(rows))
}

// ObserveReport publishes the KPIs of rep.
func (m *Metrics) ObserveReport(rep *model.Report) {
	if m == nil {
		return
	}
	m.kpi.WithLabelValues("mttr_hours").Set(rep.KPI.MTTR)
	m.kpi.WithLabelValues("mtbf_hours").Set(rep.KPI.MTBF)
	m.kpi.WithLabelValues("availability_pct").Set(rep.KPI.AvailabilityPct)
	m.kpi.WithLabelValues("downtime_hours").Set(rep.KPI.TotalDowntime)
}
