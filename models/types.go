// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// DateLayout is the wire format for every date field.
const DateLayout = "2006-01-02"

// MaxIbadahPerDay is the daily cap on scheduled services.
const MaxIbadahPerDay = 3

// Request types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72,strongpassword"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type KlasifikasiRequest struct {
	Nama string `json:"nama" validate:"required,max=100"`
}

type IbadahRequest struct {
	Nama      string `json:"nama" validate:"required,max=150"`
	Tanggal   string `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Waktu     string `json:"waktu" validate:"max=50"`
	Deskripsi string `json:"deskripsi" validate:"max=2000"`
}

type AgendaRequest struct {
	Urutan          int    `json:"urutan" validate:"required,gt=0,max=2147483647"`
	NamaAgenda      string `json:"nama_agenda" validate:"required,max=255"`
	PenanggungJawab string `json:"penanggung_jawab" validate:"max=150"`
}

// KehadiranItem is one (klasifikasi, count) pair. JumlahHadir is a pointer
// so an omitted count is rejected instead of silently becoming zero. Counts
// and agenda positions are capped at the PostgreSQL INTEGER maximum.
type KehadiranItem struct {
	KlasifikasiID int64 `json:"klasifikasi_id" validate:"required,gt=0"`
	JumlahHadir   *int  `json:"jumlah_hadir" validate:"required,gte=0,max=2147483647"`
}

// Duplicate klasifikasi ids are reported by a struct-level rule so the
// per-item errors are still collected.
type UpsertKehadiranRequest struct {
	Kehadiran []KehadiranItem `json:"kehadiran" validate:"required,min=1,dive"`
}

// AnalyticsQuery holds the query-string filters shared by the time series
// and the Excel export. Values stay strings until validated.
type AnalyticsQuery struct {
	StartDate     string `json:"startDate" validate:"required_with=EndDate,omitempty,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required_with=StartDate,omitempty,datetime=2006-01-02"`
	KlasifikasiID string `json:"klasifikasiId" validate:"omitempty,posint"`
	GroupBy       string `json:"groupBy" validate:"omitempty,oneof=tanggal klasifikasi"`
}

// HasRange reports whether both date bounds were given.
func (q AnalyticsQuery) HasRange() bool {
	return q.StartDate != "" && q.EndDate != ""
}

// Response types

type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type RegisterResponse struct {
	User UserInfo `json:"user"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type UpsertKehadiranResponse struct {
	Message   string      `json:"message"`
	Kehadiran []Kehadiran `json:"kehadiran"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Klasifikasi struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
}

type Ibadah struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Tanggal   string    `json:"tanggal"`
	Waktu     *string   `json:"waktu"`
	Deskripsi *string   `json:"deskripsi"`
	CreatedAt time.Time `json:"created_at"`
}

type Agenda struct {
	ID              int64   `json:"id"`
	IbadahID        int64   `json:"ibadah_id"`
	Urutan          int     `json:"urutan"`
	NamaAgenda      string  `json:"nama_agenda"`
	PenanggungJawab *string `json:"penanggung_jawab"`
}

type Kehadiran struct {
	ID            int64 `json:"id"`
	IbadahID      int64 `json:"ibadah_id"`
	KlasifikasiID int64 `json:"klasifikasi_id"`
	JumlahHadir   int   `json:"jumlah_hadir"`
}

// KehadiranEntry is one row of the dense classification x count table in
// the service detail. Recorded is false for synthesized zero rows.
type KehadiranEntry struct {
	KlasifikasiID int64  `json:"klasifikasi_id"`
	Nama          string `json:"nama"`
	JumlahHadir   int    `json:"jumlah_hadir"`
	Recorded      bool   `json:"recorded"`
}

type IbadahDetail struct {
	Ibadah
	Agenda         []Agenda         `json:"agenda"`
	Kehadiran      []KehadiranEntry `json:"kehadiran"`
	TotalKehadiran int              `json:"total_kehadiran"`
}

// Analytics types

type KehadiranPoint struct {
	Tanggal         string  `json:"tanggal"`
	KlasifikasiID   *int64  `json:"klasifikasi_id,omitempty"`
	NamaKlasifikasi *string `json:"nama_klasifikasi,omitempty"`
	TotalKehadiran  int64   `json:"total_kehadiran"`
}

type RankedItem struct {
	ID    *int64 `json:"id"`
	Nama  string `json:"nama"`
	Total int64  `json:"total"`
}

type DashboardSummary struct {
	MingguMulai          string     `json:"minggu_mulai"`
	MingguSelesai        string     `json:"minggu_selesai"`
	TotalJemaatMingguIni int64      `json:"total_jemaat_minggu_ini"`
	IbadahTeramai        RankedItem `json:"ibadah_teramai"`
	KlasifikasiTeramai   RankedItem `json:"klasifikasi_teramai"`
}

// AttendanceReportRow is one line of the Excel detail sheet.
type AttendanceReportRow struct {
	Tanggal     string
	Ibadah      string
	Waktu       string
	Klasifikasi string
	JumlahHadir int
}

// Envelope

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Meta struct {
	Count     *int   `json:"count,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}
