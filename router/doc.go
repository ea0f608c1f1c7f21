// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the proyek-gereja API.

# Route Registration

NewRouter returns the complete http.Handler: a Go 1.22+ http.ServeMux
wrapped in request-id and CORS middleware.

	handler, err := router.NewRouter(db, cfg, metrics.New())

# Endpoints

Operational:

	GET /health  - "OK" after a database ping, 503 otherwise
	GET /metrics - Prometheus exposition
	GET /        - Banner

Authentication (register and login are rate limited per IP):

	POST /api/auth/register
	POST /api/auth/login
	GET  /api/auth/me

Everything below requires "Authorization: Bearer <token>":

	GET    /api/klasifikasi
	POST   /api/klasifikasi
	PUT    /api/klasifikasi/{id}
	DELETE /api/klasifikasi/{id}

	GET    /api/ibadah
	POST   /api/ibadah
	GET    /api/ibadah/{id}
	PUT    /api/ibadah/{id}
	DELETE /api/ibadah/{id}
	PUT    /api/ibadah/{id}/kehadiran
	POST   /api/ibadah/{id}/agenda
	PUT    /api/ibadah/{id}/agenda/{agenda_id}
	DELETE /api/ibadah/{id}/agenda/{agenda_id}

	GET /api/analytics/kehadiran
	GET /api/analytics/dashboard
	GET /api/analytics/klasifikasi

	GET /api/export/ibadah/{id}/pdf
	GET /api/export/kehadiran/excel

Unknown paths under /api/ answer with a NOT_FOUND envelope.

# Middleware Order

Outermost first: CORS, RequestID, then per route WithLogging, WithMetrics,
RateLimit (auth routes) or RequireAuth (protected routes).
*/
package router
