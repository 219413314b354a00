// Package bootstrap wires configuration, storage, the job registry, the
// inference engine, and the HTTP transport into a runnable server.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"speech-transcriber/internal/api"
	"speech-transcriber/internal/config"
	"speech-transcriber/internal/diagnostics"
	"speech-transcriber/internal/jobs"
	"speech-transcriber/internal/service"
	"speech-transcriber/internal/storage"
	"speech-transcriber/internal/whisper"
)

// shutdownTimeout bounds how long an exiting server waits for open
// connections to drain.
const shutdownTimeout = 10 * time.Second

// eventLogCapacity bounds the in-memory lifecycle event history.
const eventLogCapacity = 1000

// App holds the wired service and its HTTP server.
type App struct {
	cfg         *config.Config
	logger      *log.Logger
	transcriber *service.Transcriber
	server      *http.Server
}

// New runs startup diagnostics and wires all components. A failing
// diagnostic aborts boot: the server must not accept work it cannot finish.
func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	report := diagnostics.NewChecker().Run(cfg)
	for _, item := range report.Items {
		logger.Printf("diagnostic %s: %s (%s)", item.ID, item.Status, item.Message)
	}
	if report.HasFailures {
		return nil, errors.New("startup diagnostics failed")
	}

	store := storage.NewLocalStore(cfg.UploadDir, cfg.OutputDir, cfg.APIPrefix, logger)
	registry := jobs.NewRegistry()
	events := jobs.NewEventLog(eventLogCapacity)
	engine := whisper.NewEngine(cfg.WhisperBin, cfg.ModelSize, cfg.Device)
	transcriber := service.NewTranscriber(store, registry, engine, events, logger)

	handler := api.NewHandler(transcriber, events, cfg.MaxUploadBytes())
	router := api.NewRouter(handler, cfg.APIPrefix, cfg.AllowedOrigins)

	return &App{
		cfg:         cfg,
		logger:      logger,
		transcriber: transcriber,
		server: &http.Server{
			Addr:    cfg.Addr,
			Handler: router,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down and
// waits for in-flight transcription jobs to settle.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Printf("listening on %s (api prefix %s)", a.cfg.Addr, a.cfg.APIPrefix)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.logger.Printf("waiting for in-flight jobs")
	a.transcriber.Wait()
	return nil
}
