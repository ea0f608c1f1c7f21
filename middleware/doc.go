// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs completion with method, path, status, duration_ms and request_id.
Request start is logged at debug level.

# Request IDs

RequestID wraps the whole mux. It reuses an incoming X-Request-ID when it is
a UUID, otherwise generates one, and echoes it in the response. Every
envelope carries it in meta.request_id.

# CORS

	handler := middleware.CORS(cfg.CORSOrigins)(mux)

Backed by go-chi/cors. Allows GET, POST, PUT, DELETE, OPTIONS and exposes
X-Request-ID and Content-Disposition so the frontend can name downloads.

# Authentication

	mux.HandleFunc("GET /api/ibadah", protect(h.ListIbadah))

RequireAuth accepts only "Authorization: Bearer <jwt>". Missing headers,
malformed tokens, expired tokens and bad signatures are logged with their
reason and all answered with the same 401 UNAUTHORIZED envelope. The
verified claims are available through ClaimsFromContext.

# Rate Limiting

RateLimit returns a per-IP limiter backed by go-chi/httprate. One call
creates one budget; wrap several handlers with the same returned function to
share it (login and register do). Over-limit requests get 429 RATE_LIMITED.

# Metrics

WithMetrics records Prometheus request counts and latency labelled by
r.Pattern.

# JSON Helpers

	middleware.Success(w, r, http.StatusCreated, ibadah)
	middleware.List(w, r, items, len(items))
	middleware.WriteError(w, r, err)

All responses use the envelope {success, data, error, meta}. WriteError
writes *apperr.Error values as they are; any other error is logged and
answered with SERVER_ERROR so driver messages never reach the client.

	var req models.IbadahRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

ParseJSONBody reports an empty or malformed body as VALIDATION_ERROR.
Encoding and decoding use goccy/go-json.

# Client IP

GetClientIP checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
