// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fangel123/proyek-gereja/cliparse"
	"github.com/fangel123/proyek-gereja/middleware"
	"github.com/fangel123/proyek-gereja/models"
	"github.com/fangel123/proyek-gereja/validation"
)

type AnalyticsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewAnalyticsHandler(db *sql.DB, cfg cliparse.Config) *AnalyticsHandler {
	return &AnalyticsHandler{db: db, cfg: cfg, now: time.Now}
}

// KehadiranSeries handles GET /api/analytics/kehadiran
func (h *AnalyticsHandler) KehadiranSeries(w http.ResponseWriter, r *http.Request) {
	q, err := analyticsQuery(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	points, err := KehadiranSeries(r.Context(), h.db, q)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.List(w, r, points, len(points))
}

// Dashboard handles GET /api/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := DashboardSummary(r.Context(), h.db, h.now())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.Success(w, r, http.StatusOK, summary)
}

// Klasifikasi handles GET /api/analytics/klasifikasi
func (h *AnalyticsHandler) Klasifikasi(w http.ResponseWriter, r *http.Request) {
	list, err := ListKlasifikasi(r.Context(), h.db, "nama")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.List(w, r, list, len(list))
}

// analyticsQuery reads and validates the shared date-range filters
func analyticsQuery(r *http.Request) (models.AnalyticsQuery, error) {
	values := r.URL.Query()
	q := models.AnalyticsQuery{
		StartDate:     strings.TrimSpace(values.Get("startDate")),
		EndDate:       strings.TrimSpace(values.Get("endDate")),
		KlasifikasiID: strings.TrimSpace(values.Get("klasifikasiId")),
		GroupBy:       strings.TrimSpace(values.Get("groupBy")),
	}
	if res := validation.Struct(q); res != nil {
		return q, res.AppError()
	}
	return q, nil
}

// whereClause builds the shared filter on ibadah i / kehadiran h
func whereClause(q models.AnalyticsQuery) (string, []any) {
	var clauses []string
	var args []any

	if q.HasRange() {
		args = append(args, q.StartDate, q.EndDate)
		clauses = append(clauses, fmt.Sprintf("i.tanggal BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}
	if q.KlasifikasiID != "" {
		id, _ := strconv.ParseInt(q.KlasifikasiID, 10, 64)
		args = append(args, id)
		clauses = append(clauses, fmt.Sprintf("h.klasifikasi_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// KehadiranSeries sums attendance per date, optionally split per
// classification, in ascending date order
func KehadiranSeries(ctx context.Context, conn *sql.DB, q models.AnalyticsQuery) ([]models.KehadiranPoint, error) {
	where, args := whereClause(q)
	byKlasifikasi := q.GroupBy == "klasifikasi"

	var query string
	if byKlasifikasi {
		query = `
			SELECT to_char(i.tanggal, 'YYYY-MM-DD'), k.id, k.nama, SUM(h.jumlah_hadir)
			FROM kehadiran h
			JOIN ibadah i ON h.ibadah_id = i.id
			JOIN klasifikasi k ON h.klasifikasi_id = k.id
			` + where + `
			GROUP BY i.tanggal, k.id, k.nama
			ORDER BY i.tanggal ASC, k.nama ASC, k.id ASC
		`
	} else {
		query = `
			SELECT to_char(i.tanggal, 'YYYY-MM-DD'), SUM(h.jumlah_hadir)
			FROM kehadiran h
			JOIN ibadah i ON h.ibadah_id = i.id
			` + where + `
			GROUP BY i.tanggal
			ORDER BY i.tanggal ASC
		`
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kehadiran series: %w", err)
	}
	defer rows.Close()

	points := []models.KehadiranPoint{}
	for rows.Next() {
		var p models.KehadiranPoint
		if byKlasifikasi {
			var id int64
			var nama string
			err = rows.Scan(&p.Tanggal, &id, &nama, &p.TotalKehadiran)
			p.KlasifikasiID, p.NamaKlasifikasi = &id, &nama
		} else {
			err = rows.Scan(&p.Tanggal, &p.TotalKehadiran)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan kehadiran series: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// WeekBounds returns the Monday and Sunday of the week containing now,
// in now's location
func WeekBounds(now time.Time) (monday, sunday time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// DashboardSummary computes the weekly total and the all-time busiest
// service and classification. Ties go to the lowest id.
func DashboardSummary(ctx context.Context, conn *sql.DB, now time.Time) (models.DashboardSummary, error) {
	monday, sunday := WeekBounds(now)
	summary := models.DashboardSummary{
		MingguMulai:   monday.Format(models.DateLayout),
		MingguSelesai: sunday.Format(models.DateLayout),
	}

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(h.jumlah_hadir), 0)
		FROM kehadiran h
		JOIN ibadah i ON h.ibadah_id = i.id
		WHERE i.tanggal BETWEEN $1 AND $2
	`, summary.MingguMulai, summary.MingguSelesai).Scan(&summary.TotalJemaatMingguIni)
	if err != nil {
		return summary, fmt.Errorf("failed to sum weekly kehadiran: %w", err)
	}

	summary.IbadahTeramai, err = topRanked(ctx, tx, `
		SELECT i.id, i.nama, SUM(h.jumlah_hadir) AS total
		FROM kehadiran h
		JOIN ibadah i ON h.ibadah_id = i.id
		GROUP BY i.id, i.nama
		ORDER BY total DESC, i.id ASC
		LIMIT 1
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to rank ibadah: %w", err)
	}

	summary.KlasifikasiTeramai, err = topRanked(ctx, tx, `
		SELECT k.id, k.nama, SUM(h.jumlah_hadir) AS total
		FROM kehadiran h
		JOIN klasifikasi k ON h.klasifikasi_id = k.id
		GROUP BY k.id, k.nama
		ORDER BY total DESC, k.id ASC
		LIMIT 1
	`)
	if err != nil {
		return summary, fmt.Errorf("failed to rank klasifikasi: %w", err)
	}

	return summary, tx.Commit()
}

// topRanked reads a single (id, nama, total) row, or the "-" placeholder
// when there is no attendance at all
func topRanked(ctx context.Context, tx *sql.Tx, query string) (models.RankedItem, error) {
	var id int64
	item := models.RankedItem{}
	err := tx.QueryRowContext(ctx, query).Scan(&id, &item.Nama, &item.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RankedItem{Nama: "-"}, nil
	}
	if err != nil {
		return item, err
	}
	item.ID = &id
	return item, nil
}
