package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/bookseg/internal/api"
	"github.com/dgallion1/bookseg/internal/config"
	"github.com/dgallion1/bookseg/internal/pipeline"
	"github.com/dgallion1/bookseg/internal/segment"
	"github.com/dgallion1/bookseg/internal/store"
	"github.com/dgallion1/bookseg/internal/token"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Optional .env for local development; real deployments set env vars.
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("open store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	// Exact BPE counts when the encoding loads, word-ratio estimate
	// otherwise (tiktoken fetches encoding data on first use).
	var counter token.Counter
	if tk, err := token.NewTiktoken(cfg.TokenEncoding); err != nil {
		log.Warn("tiktoken unavailable, using estimator", "encoding", cfg.TokenEncoding, "error", err)
		counter = token.Estimator{}
	} else {
		counter = tk
	}
	seg := segment.New(counter, segment.Granularity(cfg.Granularity))

	orch := pipeline.NewOrchestrator(cfg, st, seg, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, st, seg, log, cfg)

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

		// Stop accepting uploads before draining the pipeline.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		st.Close()
	}()

	log.Info("starting bookseg", "port", cfg.Port, "granularity", cfg.Granularity)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
