// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/middleware"
	"github.com/fangel123/proyek-gereja/validation"
)

// pathID reads a positive integer path parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ErrInvalidID.WithDetails(map[string]string{"param": name, "value": r.PathValue(name)})
	}
	return id, nil
}

// nullable trims s and turns an empty result into NULL
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// decodeValid parses the JSON body into v, applies the normalize steps and
// runs the validation rules. On failure the error response has already been
// written.
func decodeValid(w http.ResponseWriter, r *http.Request, v any, normalize ...func()) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.WriteError(w, r, err)
		return false
	}
	for _, fn := range normalize {
		fn()
	}
	if res := validation.Struct(v); res != nil {
		middleware.WriteError(w, r, res.AppError())
		return false
	}
	return true
}
