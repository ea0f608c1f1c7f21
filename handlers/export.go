// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fangel123/proyek-gereja/cliparse"
	"github.com/fangel123/proyek-gereja/export"
	"github.com/fangel123/proyek-gereja/metrics"
	"github.com/fangel123/proyek-gereja/middleware"
	"github.com/fangel123/proyek-gereja/models"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewExportHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{db: db, cfg: cfg, metrics: m}
}

// AgendaPDF handles GET /api/export/ibadah/{id}/pdf
func (h *ExportHandler) AgendaPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	ib, err := GetIbadah(r.Context(), h.db, id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	agenda, err := listAgenda(r.Context(), h.db, id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	// Render fully before writing so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := export.AgendaPDF(&buf, h.cfg.ChurchName, ib, agenda); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.metrics.ExportsTotal.WithLabelValues("pdf").Inc()
	slog.Info("agenda exported", "ibadah_id", id, "items", len(agenda), "bytes", buf.Len())
	writeAttachment(w, contentTypePDF, "agenda-ibadah-"+strconv.FormatInt(id, 10)+".pdf", buf.Bytes())
}

// AttendanceExcel handles GET /api/export/kehadiran/excel
func (h *ExportHandler) AttendanceExcel(w http.ResponseWriter, r *http.Request) {
	q, err := analyticsQuery(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	rows, err := AttendanceReport(r.Context(), h.db, q)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.AttendanceWorkbook(&buf, rows); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.metrics.ExportsTotal.WithLabelValues("xlsx").Inc()
	slog.Info("kehadiran exported", "rows", len(rows), "start", q.StartDate, "end", q.EndDate)
	writeAttachment(w, contentTypeXLSX, "laporan-kehadiran.xlsx", buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write attachment", "filename", filename, "error", err)
	}
}

// AttendanceReport lists every recorded attendance row in the filter,
// ordered by date, service and classification
func AttendanceReport(ctx context.Context, conn *sql.DB, q models.AnalyticsQuery) ([]models.AttendanceReportRow, error) {
	where, args := whereClause(q)
	rows, err := conn.QueryContext(ctx, `
		SELECT to_char(i.tanggal, 'YYYY-MM-DD'), i.nama, COALESCE(i.waktu, ''), k.nama, h.jumlah_hadir
		FROM kehadiran h
		JOIN ibadah i ON h.ibadah_id = i.id
		JOIN klasifikasi k ON h.klasifikasi_id = k.id
		`+where+`
		ORDER BY i.tanggal ASC, i.id ASC, k.nama ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance report: %w", err)
	}
	defer rows.Close()

	var report []models.AttendanceReportRow
	for rows.Next() {
		var row models.AttendanceReportRow
		if err := rows.Scan(&row.Tanggal, &row.Ibadah, &row.Waktu, &row.Klasifikasi, &row.JumlahHadir); err != nil {
			return nil, fmt.Errorf("failed to scan attendance report: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
