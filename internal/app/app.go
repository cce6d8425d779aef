package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	servernet "legend-of-kiro/internal/net"
	"legend-of-kiro/internal/net/ws"
	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/logging"
	loggingSinks "legend-of-kiro/logging/sinks"
)

const shutdownTimeout = 5 * time.Second

// Run serves the game until ctx is cancelled or the listener fails.
func Run(ctx context.Context, cfg Config) error {
	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	fallbackLogger := log.Default()
	if provider, ok := telemetryLogger.(interface{ StandardLogger() *log.Logger }); ok {
		if candidate := provider.StandardLogger(); candidate != nil {
			fallbackLogger = candidate
		}
	}

	cfg = applyEnv(cfg, telemetryLogger, os.LookupEnv).normalized()

	sinks, err := buildSinks(cfg.Logging)
	if err != nil {
		return err
	}
	router, err := logging.NewRouter(cfg.Logging, logging.SystemClock{}, fallbackLogger, sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	metrics := logging.NewMetrics()
	router.AttachMetrics(metrics)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	handler := servernet.NewHTTPHandler(servernet.HTTPHandlerConfig{
		ClientDir:     cfg.ClientDir,
		Logger:        telemetryLogger,
		Observability: cfg.Observability,
		LogStats:      router.Stats,
		WS: ws.HandlerConfig{
			Logger:    telemetryLogger,
			Publisher: router,
			Metrics:   metrics,
			Session:   cfg.Session,
			Loop:      cfg.Loop,
		},
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		telemetryLogger.Printf("server listening on %s (tick rate %d Hz)", srv.Addr, cfg.Loop.TickRate)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// buildSinks opens every sink the logging config enables.
func buildSinks(cfg logging.Config) (map[string]logging.Sink, error) {
	sinks := map[string]logging.Sink{
		logging.SinkConsole: loggingSinks.NewConsole(os.Stdout),
	}
	if !cfg.HasSink(logging.SinkJSON) {
		return sinks, nil
	}
	// Stdout is shared with the console sink and must outlive the JSON sink.
	var w io.Writer = struct{ io.Writer }{os.Stdout}
	if cfg.JSON.FilePath != "" {
		file, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open json log %s: %w", cfg.JSON.FilePath, err)
		}
		w = file
	}
	sinks[logging.SinkJSON] = loggingSinks.NewJSON(w, cfg.JSON.FlushInterval)
	return sinks, nil
}
