// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/doctrans/doctrans/cmd/doctrans-api/handlers"
	"github.com/doctrans/doctrans/internal/config"
	"github.com/doctrans/doctrans/internal/observability"
	"github.com/doctrans/doctrans/pkg/doctrans"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, service *doctrans.Service) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	defaults := doctrans.Options{
		DPI:            cfg.Extraction.DPI,
		OCRLanguage:    cfg.Extraction.OCRLanguage,
		TargetLanguage: cfg.Translation.TargetLanguage,
	}
	translateHandler := handlers.NewTranslateHandler(logger, service, defaults, cfg.Server.MaxUploadBytes)

	r.Post("/translate", translateHandler.Translate)

	return r
}
