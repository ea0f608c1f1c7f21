// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/models"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := RequestIDFromContext(r.Context())

		// Log request
		slog.Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
			"request_id", requestID,
		)

		sw := wrapStatus(w)
		next(sw, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", duration.Milliseconds(),
			"request_id", requestID,
		)
	}
}

// JSONResponse writes v as JSON with the given status
func JSONResponse(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// Success writes a successful envelope around data
func Success(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	JSONResponse(w, statusCode, models.Envelope{
		Success: true,
		Data:    data,
		Meta:    &models.Meta{RequestID: RequestIDFromContext(r.Context())},
	})
}

// List writes a successful envelope around a collection, recording its size
// in meta.count
func List(w http.ResponseWriter, r *http.Request, data any, count int) {
	JSONResponse(w, http.StatusOK, models.Envelope{
		Success: true,
		Data:    data,
		Meta:    &models.Meta{Count: &count, RequestID: RequestIDFromContext(r.Context())},
	})
}

// ErrorResponse writes an error envelope
func ErrorResponse(w http.ResponseWriter, r *http.Request, e *apperr.Error) {
	JSONResponse(w, e.StatusCode, models.Envelope{
		Success: false,
		Error: &models.APIError{
			Code:    e.Code,
			Message: e.Message,
			Details: e.Details,
		},
		Meta: &models.Meta{RequestID: RequestIDFromContext(r.Context())},
	})
}

// WriteError writes err as an error envelope. Errors that are not
// *apperr.Error are logged and reported as SERVER_ERROR without detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.From(err)
	if !ok {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	ErrorResponse(w, r, e)
}

// ParseJSONBody parses the request body into the given struct. Failures
// come back as VALIDATION_ERROR.
func ParseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return apperr.Validation("body request wajib diisi", nil)
	default:
		return apperr.Validation("body request bukan JSON yang valid", map[string]any{"reason": err.Error()})
	}
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For (load balancers), first IP in chain
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func wrapStatus(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
	}
	return sw.ResponseWriter.Write(b)
}

func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
