package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgallion1/layoutchunk/internal/analysis"
	"github.com/dgallion1/layoutchunk/internal/api"
	"github.com/dgallion1/layoutchunk/internal/config"
	"github.com/dgallion1/layoutchunk/internal/pipeline"
	"github.com/dgallion1/layoutchunk/internal/store"
	"github.com/joho/godotenv"
	"github.com/philippgille/chromem-go"
)

func main() {
	godotenv.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize stores.
	embed := chromem.NewEmbeddingFuncOllama(cfg.OllamaEmbedModel, cfg.OllamaURL+"/api")
	vector, err := store.NewVectorStore(filepath.Join(cfg.DataDir, "vectors"), embed)
	if err != nil {
		log.Error("failed to open vector store", "error", err)
		os.Exit(1)
	}
	search, err := store.NewSearchIndex(filepath.Join(cfg.DataDir, "search.bleve"))
	if err != nil {
		log.Error("failed to open search index", "error", err)
		os.Exit(1)
	}

	// Remote analysis client is optional.
	var analyzer *analysis.Client
	if cfg.AnalysisURL != "" {
		analyzer = analysis.NewClient(cfg.AnalysisURL, cfg.AnalysisAPIKey).
			WithPollInterval(cfg.AnalysisPollInterval)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, analyzer, vector, search, log)
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

		if analyzer != nil {
			analyzer.Close()
		}
		search.Close()
	}()

	log.Info("starting layoutchunk", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
