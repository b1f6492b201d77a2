package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/notifier"
	"github.com/meetscribe/scribe/internal/orchestrator"
	"github.com/meetscribe/scribe/internal/server"
	"github.com/meetscribe/scribe/internal/storage"
	"github.com/meetscribe/scribe/internal/summarizer"
	"github.com/meetscribe/scribe/internal/transcriber"
	"github.com/meetscribe/scribe/internal/watcher"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Scribe")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcription provider: %s", providerName(cfg.TranscriptionConfigured(), "AssemblyAI"))
	log.Info(ctx, "Summary provider: %s", summaryProvider(cfg))
	log.Info(ctx, "Email notifications: %t", cfg.EmailConfigured())
	log.Info(ctx, "Output directory: %s", cfg.Output.Dir)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Error(ctx, "Failed to create output directory: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies; provider selection happens once here.
	manager := orchestrator.NewManager(orchestrator.Deps{
		Transcriber: transcriber.New(cfg, log),
		Summarizer:  summarizer.New(cfg, log),
		Store:       storage.New(cfg.Output.Dir, cfg.Output.ExportDocx, log),
		Notifier:    notifier.New(cfg, log),
		Logger:      log,
		Config:      cfg,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)

	// Optional unattended mode: watch an inbox directory for dropped recordings.
	if cfg.Output.InboxDir != "" {
		if err := os.MkdirAll(cfg.Output.InboxDir, 0755); err != nil {
			log.Error(ctx, "Failed to create inbox directory: %v", err)
			os.Exit(1)
		}
		w, err := watcher.New(cfg.Output.InboxDir, manager.IngestFile, log, 2)
		if err != nil {
			log.Error(ctx, "Failed to create inbox watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()
		log.Info(ctx, "Inbox: %s", cfg.Output.InboxDir)
	}

	srv := server.New(cfg, manager, log)
	go func() {
		if err := srv.Run(ctx); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	log.Info(ctx, "Meeting Scribe stopped")
}

func providerName(configured bool, name string) string {
	if configured {
		return name
	}
	return "deterministic fallback"
}

func summaryProvider(cfg *config.Config) string {
	switch {
	case cfg.LLM.OpenAIKey != "" || cfg.LLM.BaseURL != "":
		return "OpenAI (" + cfg.LLM.OpenAIModel + ")"
	case cfg.LLM.GeminiKey != "":
		return "Gemini (" + cfg.LLM.GeminiModel + ")"
	default:
		return "deterministic fallback"
	}
}
