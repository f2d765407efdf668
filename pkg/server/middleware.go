package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/santalabs/nicelist/pkg/telemetry"
)

// measure wraps a handler in the measure-and-forward pattern: the elapsed
// time is recorded on the latency histogram for every invocation, with the
// error message attached as a separate attribute on the failure path, and
// the original failure is then forwarded unchanged. Panics are measured
// like errors and re-raised.
func (s *Server) measure(next HandlerFunc) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		name := r.PathValue("name")
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				elapsed := elapsedMillis(start)
				s.tel.Instruments.RecordFailure(r.Context(), name, fmt.Sprint(p), elapsed)
				panic(p)
			}
		}()

		err := next(w, r)
		elapsed := elapsedMillis(start)
		if err != nil {
			s.tel.Instruments.RecordFailure(r.Context(), name, err.Error(), elapsed)
			return err
		}
		s.tel.Instruments.RecordLatency(r.Context(), name, elapsed)
		return nil
	}
}

// toHTTP adapts a HandlerFunc to http.Handler. Measurement has already
// happened by the time an error arrives here; this layer only decides the
// status and logs the failure.
func (s *Server) toHTTP(next HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			telemetry.FromContext(r.Context()).WithError(err).Error("request failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})
}

// withRequestID assigns each request a UUID and attaches a request-scoped
// logger to the context.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		logger := s.tel.Logger.WithRequestID(requestID)
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

// withSpan opens one server span per request.
func (s *Server) withSpan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tel.Tracer.StartRequestSpan(r.Context(), r.PathValue("name"))
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// elapsedMillis returns the time since start in milliseconds.
func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
