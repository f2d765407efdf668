package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/santalabs/nicelist/pkg/classifier"
	"github.com/santalabs/nicelist/pkg/config"
	"github.com/santalabs/nicelist/pkg/server"
	"github.com/santalabs/nicelist/pkg/telemetry"
)

func newServeCommand() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the classification HTTP server",
		Long: `Start the nicelist HTTP server.

The server answers GET /{name}/ with the subject's verdict and records a
request counter and latency histogram per call. The metric exporter is
selected from configuration (file, environment, or defaults).`,
		Example: `  # Serve with console metric export
  nicelist serve

  # Serve against a local collector
  NICELIST_METRICS_EXPORTER=otlp NICELIST_METRICS_ENDPOINT=localhost:4317 nicelist serve

  # Serve with a Prometheus scrape endpoint on :9090
  NICELIST_METRICS_EXPORTER=prometheus nicelist serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}

			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides config)")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	tel, err := telemetry.New(cfg.Telemetry())
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			tel.Logger.WithError(err).Warn("telemetry shutdown failed")
		}
	}()

	logger := tel.Logger.NewComponentLogger("serve")
	tel.Meter.StartScrapeServer(func(err error) {
		logger.WithError(err).Error("metrics scrape server failed")
	})

	// Apply log-level changes from config file rewrites at runtime
	if configPath != "" {
		err := config.Watch(ctx, configPath,
			func(next *config.Config) {
				logger.Infof("config reloaded, log level now %s", next.Logging.Level)
				tel.Logger.SetLevel(next.Logging.Level)
			},
			func(err error) {
				logger.WithError(err).Warn("ignoring config reload")
			},
		)
		if err != nil {
			logger.WithError(err).Warn("config watching disabled")
		}
	}

	srv := server.New(cfg, tel, classifier.New())
	return srv.Run(tel.WithContext(ctx))
}
