// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/auth"
	"github.com/fangel123/proyek-gereja/cliparse"
	"github.com/fangel123/proyek-gereja/db"
	"github.com/fangel123/proyek-gereja/metrics"
	"github.com/fangel123/proyek-gereja/middleware"
	"github.com/fangel123/proyek-gereja/models"
)

type AuthHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	tokens  *auth.TokenManager
	metrics *metrics.Metrics
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, tokens *auth.TokenManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, tokens: tokens, metrics: m}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeValid(w, r, &req, func() { req.Email = auth.NormalizeEmail(req.Email) }) {
		h.metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var user models.UserInfo
	err = h.db.QueryRowContext(r.Context(), `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email
	`, req.Email, hash).Scan(&user.ID, &user.Email)

	if db.IsUniqueViolation(err) {
		h.metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		middleware.WriteError(w, r, apperr.ErrEmailExists)
		return
	}
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	slog.Info("user registered", "user_id", user.ID)

	middleware.Success(w, r, http.StatusCreated, models.RegisterResponse{User: user})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeValid(w, r, &req, func() { req.Email = auth.NormalizeEmail(req.Email) }) {
		return
	}

	var user models.User
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, email, password_hash FROM users WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Email, &user.PasswordHash)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		middleware.WriteError(w, r, err)
		return
	}

	// Unknown email and wrong password take the same path and answer
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		h.metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		slog.Info("login failed", "remote", middleware.GetClientIP(r))
		middleware.WriteError(w, r, apperr.ErrInvalidCredentials)
		return
	}

	token, expiresAt, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	slog.Info("user logged in", "user_id", user.ID)

	middleware.Success(w, r, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.UserInfo{ID: user.ID, Email: user.Email},
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, r, apperr.Unauthorized("token tidak valid atau tidak ada"))
		return
	}

	middleware.Success(w, r, http.StatusOK, models.UserInfo{ID: claims.UserID, Email: claims.Email})
}
