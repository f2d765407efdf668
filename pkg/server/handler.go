package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/santalabs/nicelist/pkg/classifier"
	"github.com/santalabs/nicelist/pkg/telemetry"
)

// handleClassify answers GET /{name}/ with the subject's verdict. The
// request counter fires before classification, so a classification failure
// still leaves the counter untouched only if it happens earlier; the
// latency histogram is handled by the surrounding measure middleware.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) error {
	name := r.PathValue("name")
	if name == "" {
		// The route pattern guarantees a non-empty segment; this guard
		// covers handlers mounted outside the usual mux in tests.
		return fmt.Errorf("empty subject name")
	}

	ctx := r.Context()
	s.tel.Instruments.RecordRequest(ctx, name)

	if s.cfg.MaxJitter > 0 {
		if err := sleepJitter(ctx, s.cfg.MaxJitter); err != nil {
			return err
		}
	}

	verdict := s.classifier.Classify(name)
	telemetry.FromContext(ctx).WithSubject(name).Infof("classified as %s", verdict)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := fmt.Fprint(w, classifier.Sentence(name, verdict))
	return err
}

// sleepJitter waits a uniformly random duration in [0, max), honoring
// context cancellation. Used only when demo jitter is configured.
func sleepJitter(ctx context.Context, max time.Duration) error {
	d := time.Duration(rand.Int64N(int64(max)))
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
