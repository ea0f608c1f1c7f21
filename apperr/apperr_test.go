// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantOK   bool
	}{
		{"app error", ErrDailyLimitReached, CodeDailyLimitReached, true},
		{"wrapped app error", fmt.Errorf("create ibadah: %w", ErrReferenceExists), CodeReferenceExists, true},
		{"driver error", sql.ErrConnDone, CodeServer, false},
		{"plain error", errors.New("boom"), CodeServer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := From(tt.err)
			if ok != tt.wantOK {
				t.Errorf("From() ok = %v, want %v", ok, tt.wantOK)
			}
			if e.Code != tt.wantCode {
				t.Errorf("From() code = %s, want %s", e.Code, tt.wantCode)
			}
		})
	}
}

func TestFromStatusCode(t *testing.T) {
	tests := []struct {
		err    error
		want   int
		wantOK bool
	}{
		{ErrNotFound, http.StatusNotFound, true},
		{ErrInvalidID, http.StatusBadRequest, true},
		{ErrEmailExists, http.StatusConflict, true},
		{ErrInvalidCredentials, http.StatusUnauthorized, true},
		{Validation("bad", nil), http.StatusBadRequest, true},
		{fmt.Errorf("wrapped: %w", ErrReferenceExists), http.StatusConflict, true},
		{errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		e, ok := From(tt.err)
		if e.StatusCode != tt.want || ok != tt.wantOK {
			t.Errorf("From(%v) = (%d, %v), want (%d, %v)", tt.err, e.StatusCode, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsMatchesOnCode(t *testing.T) {
	specific := NotFound("ibadah")
	if !errors.Is(specific, ErrNotFound) {
		t.Error("NotFound(...) should match ErrNotFound")
	}
	if errors.Is(specific, ErrDuplicateName) {
		t.Error("NotFound(...) should not match ErrDuplicateName")
	}
}

func TestWithDetailsCopies(t *testing.T) {
	d := ErrNotFound.WithDetails(map[string]any{"klasifikasi_id": 9})
	if ErrNotFound.Details != nil {
		t.Error("WithDetails must not mutate the sentinel")
	}
	if d.Details == nil {
		t.Error("expected details on the copy")
	}
}
