// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/fangel123/proyek-gereja/apperr"
)

var errRateLimited = apperr.New(apperr.CodeRateLimited, http.StatusTooManyRequests,
	"terlalu banyak permintaan, coba lagi nanti")

// RateLimit allows perMinute requests per client IP across every handler
// wrapped by the returned middleware. A non-positive limit disables it.
func RateLimit(perMinute int) func(http.HandlerFunc) http.HandlerFunc {
	if perMinute <= 0 {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	limit := httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded",
				"path", r.URL.Path,
				"remote", GetClientIP(r),
				"request_id", RequestIDFromContext(r.Context()),
			)
			ErrorResponse(w, r, errRateLimited)
		}),
	)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return limit(next).ServeHTTP
	}
}
