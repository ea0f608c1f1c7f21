// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the response envelope
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidID          = "INVALID_ID"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeReferenceExists    = "REFERENCE_EXISTS"
	CodeDailyLimitReached  = "DAILY_LIMIT_REACHED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeServer             = "SERVER_ERROR"
)

// Error is an error that is safe to show to API callers.
type Error struct {
	Code       string
	Message    string
	StatusCode int
	Details    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so callers can compare against the sentinel values below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code string, statusCode int, message string) *Error {
	return &Error{Code: code, Message: message, StatusCode: statusCode}
}

func Newf(code string, statusCode int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), StatusCode: statusCode}
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrNotFound           = New(CodeNotFound, http.StatusNotFound, "data tidak ditemukan")
	ErrInvalidID          = New(CodeInvalidID, http.StatusBadRequest, "id harus berupa bilangan bulat positif")
	ErrDuplicateName      = New(CodeDuplicateName, http.StatusConflict, "nama klasifikasi sudah ada")
	ErrEmailExists        = New(CodeEmailExists, http.StatusConflict, "email sudah terdaftar")
	ErrReferenceExists    = New(CodeReferenceExists, http.StatusConflict, "klasifikasi masih digunakan oleh data kehadiran")
	ErrDailyLimitReached  = New(CodeDailyLimitReached, http.StatusConflict, "batas ibadah harian (3) telah tercapai")
	ErrInvalidCredentials = New(CodeInvalidCredentials, http.StatusUnauthorized, "email atau password salah")
	ErrServer             = New(CodeServer, http.StatusInternalServerError, "terjadi kesalahan pada server")
)

// NotFound returns a NOT_FOUND error naming the missing entity.
func NotFound(entity string) *Error {
	return Newf(CodeNotFound, http.StatusNotFound, "%s tidak ditemukan", entity)
}

// Validation returns a VALIDATION_ERROR with the given message and details.
func Validation(message string, details any) *Error {
	return &Error{Code: CodeValidation, Message: message, StatusCode: http.StatusBadRequest, Details: details}
}

// Unauthorized returns a 401 with a caller-facing message.
func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, http.StatusUnauthorized, message)
}

// From extracts an *Error from err. Anything else becomes ErrServer and
// ok is false, meaning the original error must not be shown to callers.
func From(err error) (e *Error, ok bool) {
	if errors.As(err, &e) {
		return e, true
	}
	return ErrServer, false
}
