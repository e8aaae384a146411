// Package server exposes the KPI engine over HTTP for a single uploaded
// dataset.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ftahirops/mtop/config"
	"github.com/ftahirops/mtop/engine"
	"github.com/ftahirops/mtop/loader"
	"github.com/ftahirops/mtop/model"
)

// Server serves one dataset slot over HTTP.
type Server struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *Metrics
	store   store
	now     func() time.Time
}

// New creates a server. A nil logger disables logging.
func New(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{cfg: cfg, log: log, now: time.Now}
	if cfg.Serve.EnableMetrics {
		s.metrics = NewMetrics()
	}
	return s
}

// Preload installs ds as the active dataset.
func (s *Server) Preload(ds *model.Dataset) {
	s.install(ds)
}

func (s *Server) install(ds *model.Dataset) *engine.Engine {
	opts := engine.OptionsFromConfig(s.cfg)
	opts.Logger = s.log
	opts.Now = s.now
	eng := engine.New(ds, opts)
	s.store.set(eng)
	s.metrics.SetDataset(len(ds.Records))
	return eng
}

func (s *Server) loaderOptions() loader.Options {
	return loader.Options{Aliases: s.cfg.Columns.Aliases, Logger: s.log, Now: s.now}
}

// Handler returns the routed handler with access logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	route := func(path, name string, h http.HandlerFunc, methods ...string) {
		r.Handle(path, s.metrics.WrapHandler(name, h)).Methods(methods...)
	}
	route("/healthz", "healthz", s.handleHealth, http.MethodGet)
	route("/api/dataset", "dataset_upload", s.handleUpload, http.MethodPost)
	route("/api/dataset", "dataset_info", s.handleDataset, http.MethodGet)
	route("/api/report", "report", s.handleReport, http.MethodGet)
	route("/api/export.csv", "export_csv", s.handleExport, http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	access := zap.NewStdLog(s.log.Named("http")).Writer()
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(
		handlers.CombinedLoggingHandler(access, r))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
