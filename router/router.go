// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/auth"
	"github.com/fangel123/proyek-gereja/cliparse"
	"github.com/fangel123/proyek-gereja/handlers"
	"github.com/fangel123/proyek-gereja/metrics"
	"github.com/fangel123/proyek-gereja/middleware"
)

// Banner is served at GET /
const Banner = "proyek-gereja API v1"

const healthTimeout = 2 * time.Second

// NewRouter builds the full handler: route table, auth gate, metrics,
// request ids and CORS
func NewRouter(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token manager: %w", err)
	}

	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, tokens, m)
	klasifikasiHandler := handlers.NewKlasifikasiHandler(db, cfg)
	ibadahHandler := handlers.NewIbadahHandler(db, cfg, m)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)
	exportHandler := handlers.NewExportHandler(db, cfg, m)

	observed := middleware.WithMetrics(m)
	public := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(observed(h))
	}
	requireAuth := middleware.RequireAuth(tokens)
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return public(requireAuth(h))
	}
	// register and login share one per-IP budget
	authLimit := middleware.RateLimit(cfg.AuthRateLimit)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Authentication
	mux.HandleFunc("POST /api/auth/register", public(authLimit(authHandler.Register)))
	mux.HandleFunc("POST /api/auth/login", public(authLimit(authHandler.Login)))
	mux.HandleFunc("GET /api/auth/me", protected(authHandler.Me))

	// Classifications
	mux.HandleFunc("GET /api/klasifikasi", protected(klasifikasiHandler.ListKlasifikasi))
	mux.HandleFunc("POST /api/klasifikasi", protected(klasifikasiHandler.CreateKlasifikasi))
	mux.HandleFunc("PUT /api/klasifikasi/{id}", protected(klasifikasiHandler.UpdateKlasifikasi))
	mux.HandleFunc("DELETE /api/klasifikasi/{id}", protected(klasifikasiHandler.DeleteKlasifikasi))

	// Services, attendance and agenda
	mux.HandleFunc("GET /api/ibadah", protected(ibadahHandler.ListIbadah))
	mux.HandleFunc("POST /api/ibadah", protected(ibadahHandler.CreateIbadah))
	mux.HandleFunc("GET /api/ibadah/{id}", protected(ibadahHandler.GetIbadah))
	mux.HandleFunc("PUT /api/ibadah/{id}", protected(ibadahHandler.UpdateIbadah))
	mux.HandleFunc("DELETE /api/ibadah/{id}", protected(ibadahHandler.DeleteIbadah))
	mux.HandleFunc("PUT /api/ibadah/{id}/kehadiran", protected(ibadahHandler.UpsertKehadiran))
	mux.HandleFunc("POST /api/ibadah/{id}/agenda", protected(ibadahHandler.CreateAgenda))
	mux.HandleFunc("PUT /api/ibadah/{id}/agenda/{agenda_id}", protected(ibadahHandler.UpdateAgenda))
	mux.HandleFunc("DELETE /api/ibadah/{id}/agenda/{agenda_id}", protected(ibadahHandler.DeleteAgenda))

	// Analytics
	mux.HandleFunc("GET /api/analytics/kehadiran", protected(analyticsHandler.KehadiranSeries))
	mux.HandleFunc("GET /api/analytics/dashboard", protected(analyticsHandler.Dashboard))
	mux.HandleFunc("GET /api/analytics/klasifikasi", protected(analyticsHandler.Klasifikasi))

	// Exports
	mux.HandleFunc("GET /api/export/ibadah/{id}/pdf", protected(exportHandler.AgendaPDF))
	mux.HandleFunc("GET /api/export/kehadiran/excel", protected(exportHandler.AttendanceExcel))

	// Unknown API paths get an envelope instead of the plain-text 404
	mux.HandleFunc("/api/", public(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, r, apperr.ErrNotFound)
	}))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return middleware.CORS(cfg.CORSOrigins)(middleware.RequestID(mux)), nil
}
