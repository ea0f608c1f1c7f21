// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/auth"
	"github.com/fangel123/proyek-gereja/metrics"
	"github.com/fangel123/proyek-gereja/models"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	return env
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	// Test that logging doesn't interfere with various response codes
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"id":1}`},
		{"BadRequest", http.StatusBadRequest, `{"success":false}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/api/ibadah", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       any
		expected   string
	}{
		{
			name:       "simple map",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "klasifikasi",
			statusCode: http.StatusCreated,
			data:       models.Klasifikasi{ID: 3, Nama: "Pemuda"},
			expected:   `{"id":3,"nama":"Pemuda"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"a", "b", "c"},
			expected:   `["a","b","c"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestSuccessAndList(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/klasifikasi", nil)

	w := httptest.NewRecorder()
	Success(w, req, http.StatusCreated, models.Klasifikasi{ID: 1, Nama: "Anak"})
	env := decodeEnvelope(t, w)
	if w.Code != http.StatusCreated || !env.Success || env.Error != nil {
		t.Errorf("unexpected success envelope %+v (status %d)", env, w.Code)
	}

	w = httptest.NewRecorder()
	List(w, req, []models.Klasifikasi{{ID: 1}, {ID: 2}}, 2)
	env = decodeEnvelope(t, w)
	if env.Meta == nil || env.Meta.Count == nil || *env.Meta.Count != 2 {
		t.Errorf("expected meta.count 2, got %+v", env.Meta)
	}
}

func TestWriteError(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode string
		status       int
		message      string
	}{
		{"not found", apperr.NotFound("ibadah"), apperr.CodeNotFound, http.StatusNotFound, "ibadah tidak ditemukan"},
		{"daily limit", apperr.ErrDailyLimitReached, apperr.CodeDailyLimitReached, http.StatusConflict, apperr.ErrDailyLimitReached.Message},
		{"wrapped app error", errors.Join(errors.New("ctx"), apperr.ErrReferenceExists), apperr.CodeReferenceExists, http.StatusConflict, apperr.ErrReferenceExists.Message},
		{"driver error is masked", errors.New("pq: connection refused"), apperr.CodeServer, http.StatusInternalServerError, apperr.ErrServer.Message},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/ibadah/1", nil)

			WriteError(w, req, tc.err)

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}
			env := decodeEnvelope(t, w)
			if env.Success || env.Error == nil {
				t.Fatalf("Expected error envelope, got %+v", env)
			}
			if env.Error.Code != tc.expectedCode {
				t.Errorf("Expected code %s, got %s", tc.expectedCode, env.Error.Code)
			}
			if env.Error.Message != tc.message {
				t.Errorf("Expected message %q, got %q", tc.message, env.Error.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"nama":"Ibadah Raya","tanggal":"2024-03-10"}`))

		var parsed models.IbadahRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Nama != "Ibadah Raya" || parsed.Tanggal != "2024-03-10" {
			t.Errorf("Unexpected parse result %+v", parsed)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.IbadahRequest
		err := ParseJSONBody(req, &parsed)
		if !errors.Is(err, apperr.Validation("", nil)) {
			t.Errorf("Expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.IbadahRequest
		err := ParseJSONBody(req, &parsed)
		if !errors.Is(err, apperr.Validation("", nil)) {
			t.Errorf("Expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"kehadiran":[{"klasifikasi_id":"satu"}]}`))

		var parsed models.UpsertKehadiranRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for string id")
		}
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"nama":"Remaja","unknown_field":"ignored"}`))

		var parsed models.KlasifikasiRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Nama != "Remaja" {
			t.Errorf("Expected nama 'Remaja', got '%s'", parsed.Nama)
		}
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		if seen == "" || w.Header().Get(RequestIDHeader) != seen {
			t.Errorf("Expected generated id in context and header, got %q / %q", seen, w.Header().Get(RequestIDHeader))
		}
	})

	t.Run("incoming uuid reused", func(t *testing.T) {
		const id = "3f2c8a4e-9b1d-4c7a-8e5f-0a1b2c3d4e5f"
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, id)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if seen != id {
			t.Errorf("Expected %s, got %s", id, seen)
		}
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if seen == "<script>" || seen == "" {
			t.Errorf("Expected a fresh id, got %q", seen)
		}
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})
	handler := CORS([]string{"http://localhost:5173"})(next)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/ibadah", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Body.String() == "handled" {
			t.Error("Preflight should not reach the handler")
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Expected allowed origin echoed, got %q", got)
		}
	})

	t.Run("disallowed origin gets no header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/ibadah", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Expected no allow-origin header, got %q", got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	tm, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	token, _, _ := tm.Issue(9, "admin@gereja.id")

	var gotClaims *auth.Claims
	handler := RequireAuth(tm)(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + token, http.StatusUnauthorized},
		{"malformed token", "Bearer abc", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest("GET", "/api/ibadah", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.status {
				t.Fatalf("Expected status %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusUnauthorized {
				env := decodeEnvelope(t, w)
				if env.Error == nil || env.Error.Code != apperr.CodeUnauthorized {
					t.Errorf("Expected UNAUTHORIZED, got %+v", env.Error)
				}
				return
			}
			if gotClaims == nil || gotClaims.UserID != 9 {
				t.Errorf("Expected claims for user 9, got %+v", gotClaims)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	limited := RateLimit(2)
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	login := limited(ok)
	register := limited(ok)

	codes := make([]int, 0, 3)
	for _, h := range []http.HandlerFunc{login, register, login} {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		h(w, req)
		codes = append(codes, w.Code)

		if w.Code == http.StatusTooManyRequests {
			env := decodeEnvelope(t, w)
			if env.Error == nil || env.Error.Code != apperr.CodeRateLimited {
				t.Errorf("Expected RATE_LIMITED, got %+v", env.Error)
			}
		}
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 200, 200, 429 across shared limiter, got %v", codes)
	}

	t.Run("disabled", func(t *testing.T) {
		h := RateLimit(0)(ok)
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest("POST", "/", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected no limiting, got %d", w.Code)
			}
		}
	})
}

func TestWithMetrics(t *testing.T) {
	m := metrics.New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ibadah/{id}", WithMetrics(m)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, path := range []string{"/api/ibadah/1", "/api/ibadah/2"} {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	got := promtest.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /api/ibadah/{id}", "404"))
	if got != 2 {
		t.Errorf("Expected 2 requests under the route pattern, got %v", got)
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		expected   string
	}{
		{"X-Forwarded-For single IP", "203.0.113.195", "", "10.0.0.1:12345", "203.0.113.195"},
		{"X-Forwarded-For chain", "203.0.113.195, 70.41.3.18", "", "10.0.0.1:12345", "203.0.113.195"},
		{"X-Real-IP", "", "198.51.100.178", "10.0.0.1:12345", "198.51.100.178"},
		{"RemoteAddr with port", "", "", "192.168.1.1:54321", "192.168.1.1"},
		{"IPv6 RemoteAddr", "", "", "[::1]:8080", "::1"},
		{"RemoteAddr without port", "", "", "192.168.1.1", "192.168.1.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				req.Header.Set("X-Real-IP", tc.xri)
			}

			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("Expected IP '%s', got '%s'", tc.expected, got)
			}
		})
	}
}
