package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkarlsen/notedoc/internal/api"
	"github.com/dkarlsen/notedoc/internal/config"
	"github.com/dkarlsen/notedoc/internal/docsapi"
	"github.com/dkarlsen/notedoc/internal/parser"
	"github.com/dkarlsen/notedoc/internal/pipeline"
	"github.com/dkarlsen/notedoc/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	parser.SetPdftotextFallback(cfg.PDFFallbackPdftotext)

	// Render backends: local docx always, remote only when configured.
	backends := []string{"docx"}
	var docs *docsapi.Client
	if cfg.DocsAPIURL != "" {
		docs = docsapi.NewClient(cfg.DocsAPIURL, cfg.DocsAPIKey)
		backends = append(backends, "remote")
	}
	renderers := make(map[string]render.Renderer, len(backends))
	for _, name := range backends {
		r, err := render.ForFormat(name, docs)
		if err != nil {
			log.Error("renderer setup failed", "renderer", name, "error", err)
			os.Exit(1)
		}
		renderers[name] = r
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, renderers, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if docs != nil {
			docs.Close()
		}
	}()

	log.Info("starting notedoc", "port", cfg.Port, "default_renderer", cfg.DefaultRenderer)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
