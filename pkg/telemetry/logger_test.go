package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newFileLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nicelist.log")
	logger, err := NewLogger(LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: path,
	})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	return logger, path
}

func TestSetLevelAppliesAtRuntime(t *testing.T) {
	logger, path := newFileLogger(t)

	logger.Info("before")
	logger.SetLevel("error")
	logger.Info("suppressed")
	logger.Error("after")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "before") {
		t.Error("info line before the level change is missing")
	}
	if strings.Contains(out, "suppressed") {
		t.Error("info line after raising the level should be suppressed")
	}
	if !strings.Contains(out, "after") {
		t.Error("error line after the level change is missing")
	}
}

// Exercises the serve-path interleaving: the config watcher changing the
// level while request goroutines derive field loggers from the same shared
// instance. Run with -race; the level swap must not race the derivations.
func TestSetLevelConcurrentWithFieldDerivation(t *testing.T) {
	logger, _ := newFileLogger(t)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		levels := []string{"debug", "info", "warn", "error"}
		for i := 0; i < 200; i++ {
			logger.SetLevel(levels[i%len(levels)])
		}
	}()

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				reqLogger := logger.WithRequestID(fmt.Sprintf("req-%d-%d", n, j))
				reqLogger.WithSubject("Alice").Info("classified")
				logger.WithField("iteration", j).Debug("derived")
			}
		}(i)
	}

	wg.Wait()
}
