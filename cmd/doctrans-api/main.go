// Package main provides the translation API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/doctrans/doctrans/internal/config"
	"github.com/doctrans/doctrans/internal/observability"
	"github.com/doctrans/doctrans/internal/ocr"
	"github.com/doctrans/doctrans/internal/pdf"
	"github.com/doctrans/doctrans/internal/translate"
	"github.com/doctrans/doctrans/pkg/doctrans"
)

func main() {
	// Load environment variables; a missing .env is fine.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "doctrans-api",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("target", cfg.Translation.TargetLanguage).
		Str("ocr_language", cfg.Extraction.OCRLanguage).
		Msg("Starting translation API")

	// Wire the service
	recognizer := ocr.New()
	defer recognizer.Close()

	extractor := pdf.NewExtractor(recognizer, logger,
		pdf.WithNativeTextThreshold(cfg.Extraction.NativeTextThreshold))

	var clientOpts []translate.ClientOption
	if cfg.Translation.Endpoint != "" {
		clientOpts = append(clientOpts, translate.WithEndpoint(cfg.Translation.Endpoint))
	}
	translator := translate.NewClient(logger, clientOpts...)

	orchestrator := translate.NewOrchestrator(translator, logger,
		translate.WithMaxChunkLen(cfg.Translation.MaxChunkLen),
		translate.WithConcurrency(cfg.Translation.Concurrency))

	service := doctrans.NewService(extractor, orchestrator, logger)

	router := NewRouter(logger, cfg, service)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}
