// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/auth"
)

type claimsKey struct{}

// RequireAuth rejects requests without a valid bearer token. The rejection
// reason is logged; the client always gets the same 401.
func RequireAuth(tm *auth.TokenManager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err == nil {
				var claims *auth.Claims
				claims, err = tm.Verify(token)
				if err == nil {
					ctx := context.WithValue(r.Context(), claimsKey{}, claims)
					next(w, r.WithContext(ctx))
					return
				}
			}

			slog.Info("request rejected",
				"reason", err.Error(),
				"method", r.Method,
				"path", r.URL.Path,
				"remote", GetClientIP(r),
				"request_id", RequestIDFromContext(r.Context()),
			)
			ErrorResponse(w, r, apperr.Unauthorized("token tidak valid atau tidak ada"))
		}
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}
