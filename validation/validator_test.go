// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/models"
)

func intPtr(n int) *int { return &n }

// fields returns the failing field paths of a result
func fields(res *Result) map[string]string {
	out := map[string]string{}
	if res == nil {
		return out
	}
	for _, fe := range res.Errors {
		out[fe.Field] = fe.Tag
	}
	return out
}

func TestRegisterRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.RegisterRequest
		wantField string
		wantTag   string
	}{
		{"valid", models.RegisterRequest{Email: "admin@gereja.id", Password: "Rahasia#2024"}, "", ""},
		{"missing email", models.RegisterRequest{Password: "Rahasia#2024"}, "email", "required"},
		{"bad email", models.RegisterRequest{Email: "bukan-email", Password: "Rahasia#2024"}, "email", "email"},
		{"weak password", models.RegisterRequest{Email: "admin@gereja.id", Password: "password"}, "password", "strongpassword"},
		// 43 characters but 83 bytes
		{"multibyte over bcrypt limit", models.RegisterRequest{Email: "admin@gereja.id", Password: "A1!" + strings.Repeat("é", 40)}, "password", "maxbytes"},
		{"multibyte within limit", models.RegisterRequest{Email: "admin@gereja.id", Password: "A1!" + strings.Repeat("é", 34)}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Struct(tt.req)
			if tt.wantField == "" {
				if res != nil {
					t.Fatalf("expected no errors, got %v", res.Errors)
				}
				return
			}
			if got := fields(res)[tt.wantField]; got != tt.wantTag {
				t.Errorf("field %s: tag = %q, want %q (all: %v)", tt.wantField, got, tt.wantTag, fields(res))
			}
		})
	}
}

func TestIbadahRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.IbadahRequest
		wantErr []string
	}{
		{"valid", models.IbadahRequest{Nama: "Ibadah Minggu Pagi", Tanggal: "2024-03-10", Waktu: "07:00"}, nil},
		{"missing both", models.IbadahRequest{}, []string{"nama", "tanggal"}},
		{"bad date", models.IbadahRequest{Nama: "Ibadah", Tanggal: "10-03-2024"}, []string{"tanggal"}},
		{"impossible date", models.IbadahRequest{Nama: "Ibadah", Tanggal: "2024-02-30"}, []string{"tanggal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fields(Struct(tt.req))
			if len(got) != len(tt.wantErr) {
				t.Fatalf("errors = %v, want fields %v", got, tt.wantErr)
			}
			for _, f := range tt.wantErr {
				if _, ok := got[f]; !ok {
					t.Errorf("missing error for %s in %v", f, got)
				}
			}
		})
	}
}

func TestUpsertKehadiranRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := models.UpsertKehadiranRequest{Kehadiran: []models.KehadiranItem{
			{KlasifikasiID: 1, JumlahHadir: intPtr(0)},
			{KlasifikasiID: 2, JumlahHadir: intPtr(45)},
		}}
		if res := Struct(req); res != nil {
			t.Fatalf("expected no errors, got %v", res.Errors)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		got := fields(Struct(models.UpsertKehadiranRequest{Kehadiran: []models.KehadiranItem{}}))
		if got["kehadiran"] != "min" {
			t.Errorf("errors = %v, want kehadiran/min", got)
		}
	})

	t.Run("negative and missing counts", func(t *testing.T) {
		req := models.UpsertKehadiranRequest{Kehadiran: []models.KehadiranItem{
			{KlasifikasiID: 1, JumlahHadir: intPtr(-5)},
			{KlasifikasiID: 2},
		}}
		got := fields(Struct(req))
		if got["kehadiran[0].jumlah_hadir"] != "gte" {
			t.Errorf("expected gte on first item, got %v", got)
		}
		if got["kehadiran[1].jumlah_hadir"] != "required" {
			t.Errorf("expected required on second item, got %v", got)
		}
	})

	t.Run("duplicate klasifikasi", func(t *testing.T) {
		req := models.UpsertKehadiranRequest{Kehadiran: []models.KehadiranItem{
			{KlasifikasiID: 3, JumlahHadir: intPtr(1)},
			{KlasifikasiID: 3, JumlahHadir: intPtr(2)},
		}}
		if got := fields(Struct(req)); got["kehadiran"] != "unique" {
			t.Errorf("errors = %v, want kehadiran/unique", got)
		}
	})
}

func TestUpsertKehadiranCollectsAllErrors(t *testing.T) {
	req := models.UpsertKehadiranRequest{Kehadiran: []models.KehadiranItem{
		{KlasifikasiID: 1, JumlahHadir: intPtr(1)},
		{KlasifikasiID: 1, JumlahHadir: intPtr(-1)},
		{KlasifikasiID: -3, JumlahHadir: intPtr(1)},
	}}

	got := fields(Struct(req))
	want := map[string]string{
		"kehadiran":                   "unique",
		"kehadiran[1].jumlah_hadir":   "gte",
		"kehadiran[2].klasifikasi_id": "gt",
	}
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for field, tag := range want {
		if got[field] != tag {
			t.Errorf("field %s: tag = %q, want %q (all: %v)", field, got[field], tag, got)
		}
	}
}

func TestIntegerColumnBounds(t *testing.T) {
	const tooBig = 3_000_000_000

	kehadiran := models.UpsertKehadiranRequest{Kehadiran: []models.KehadiranItem{
		{KlasifikasiID: 1, JumlahHadir: intPtr(tooBig)},
		{KlasifikasiID: 2, JumlahHadir: intPtr(2147483647)},
	}}
	if got := fields(Struct(kehadiran)); len(got) != 1 || got["kehadiran[0].jumlah_hadir"] != "max" {
		t.Errorf("errors = %v, want kehadiran[0].jumlah_hadir/max only", got)
	}

	agenda := models.AgendaRequest{Urutan: tooBig, NamaAgenda: "Doa Syafaat"}
	if got := fields(Struct(agenda)); got["urutan"] != "max" {
		t.Errorf("errors = %v, want urutan/max", got)
	}

	agenda.Urutan = 2147483647
	if res := Struct(agenda); res != nil {
		t.Errorf("expected INTEGER maximum to pass, got %v", res.Errors)
	}
}

func TestAnalyticsQuery(t *testing.T) {
	tests := []struct {
		name      string
		q         models.AnalyticsQuery
		wantField string
		wantTag   string
	}{
		{"no filters", models.AnalyticsQuery{}, "", ""},
		{"full range", models.AnalyticsQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"}, "", ""},
		{"same day", models.AnalyticsQuery{StartDate: "2024-01-01", EndDate: "2024-01-01"}, "", ""},
		{"only start", models.AnalyticsQuery{StartDate: "2024-01-01"}, "endDate", "required_with"},
		{"only end", models.AnalyticsQuery{EndDate: "2024-01-31"}, "startDate", "required_with"},
		{"reversed", models.AnalyticsQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"}, "startDate", "daterange"},
		{"bad date", models.AnalyticsQuery{StartDate: "2024/01/01", EndDate: "2024-01-31"}, "startDate", "datetime"},
		{"bad klasifikasi", models.AnalyticsQuery{KlasifikasiID: "abc"}, "klasifikasiId", "posint"},
		{"zero klasifikasi", models.AnalyticsQuery{KlasifikasiID: "0"}, "klasifikasiId", "posint"},
		{"good klasifikasi", models.AnalyticsQuery{KlasifikasiID: "4", GroupBy: "klasifikasi"}, "", ""},
		{"bad groupBy", models.AnalyticsQuery{GroupBy: "bulan"}, "groupBy", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Struct(tt.q)
			if tt.wantField == "" {
				if res != nil {
					t.Fatalf("expected no errors, got %v", res.Errors)
				}
				return
			}
			if got := fields(res)[tt.wantField]; got != tt.wantTag {
				t.Errorf("field %s: tag = %q, want %q (all: %v)", tt.wantField, got, tt.wantTag, fields(res))
			}
		})
	}
}

func TestResultAppError(t *testing.T) {
	res := Struct(models.KlasifikasiRequest{})
	if res == nil {
		t.Fatal("expected an error for empty nama")
	}

	appErr := res.AppError()
	if appErr.Code != apperr.CodeValidation || appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected app error %+v", appErr)
	}
	if !errors.Is(appErr, apperr.Validation("", nil)) {
		t.Error("expected errors.Is to match VALIDATION_ERROR")
	}

	details, ok := appErr.Details.(map[string]any)
	if !ok {
		t.Fatalf("details type = %T", appErr.Details)
	}
	fes, ok := details["fields"].([]FieldError)
	if !ok || len(fes) != 1 || fes[0].Field != "nama" {
		t.Errorf("unexpected field errors %v", details["fields"])
	}
	if fes[0].Message != "nama wajib diisi" {
		t.Errorf("message = %q", fes[0].Message)
	}
}
