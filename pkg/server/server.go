// Package server implements the nicelist HTTP surface: a single
// classification endpoint instrumented with a request counter and a
// latency histogram, plus a health check.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/santalabs/nicelist/pkg/classifier"
	"github.com/santalabs/nicelist/pkg/config"
	"github.com/santalabs/nicelist/pkg/telemetry"
)

// HandlerFunc is an http.HandlerFunc that reports failure to the framework
// layer instead of deciding the HTTP status itself. Errors returned here
// have already been measured by the time the status is written.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Server hosts the classification endpoint.
type Server struct {
	cfg        *config.Config
	tel        *telemetry.Telemetry
	classifier *classifier.Classifier
	httpServer *http.Server
}

// New creates a server with its routes installed.
func New(cfg *config.Config, tel *telemetry.Telemetry, cls *classifier.Classifier) *Server {
	s := &Server{
		cfg:        cfg,
		tel:        tel,
		classifier: cls,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /{name}/{$}", s.instrumented(s.handleClassify))

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the configured routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// instrumented builds the full middleware chain around a handler:
// request ID, tracing span, then the measure-and-forward wrapper, and
// finally the error-to-status adapter.
func (s *Server) instrumented(h HandlerFunc) http.Handler {
	return s.withRequestID(s.withSpan(s.toHTTP(s.measure(h))))
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := s.tel.Logger.NewComponentLogger("server")

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// handleHealth answers liveness probes. It is deliberately outside the
// instrument chain so probes do not pollute the request metrics.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
