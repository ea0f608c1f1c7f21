// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/cliparse"
	"github.com/fangel123/proyek-gereja/metrics"
	"github.com/fangel123/proyek-gereja/middleware"
	"github.com/fangel123/proyek-gereja/models"
)

type IbadahHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewIbadahHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *IbadahHandler {
	return &IbadahHandler{db: db, cfg: cfg, metrics: m}
}

// ListIbadah handles GET /api/ibadah
func (h *IbadahHandler) ListIbadah(w http.ResponseWriter, r *http.Request) {
	list, err := ListIbadah(r.Context(), h.db)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.List(w, r, list, len(list))
}

// GetIbadah handles GET /api/ibadah/{id}
func (h *IbadahHandler) GetIbadah(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	detail, err := GetIbadahDetail(r.Context(), h.db, id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.Success(w, r, http.StatusOK, detail)
}

// CreateIbadah handles POST /api/ibadah
func (h *IbadahHandler) CreateIbadah(w http.ResponseWriter, r *http.Request) {
	var req models.IbadahRequest
	if !decodeValid(w, r, &req) {
		return
	}

	ib, err := CreateIbadah(r.Context(), h.db, req)
	if err != nil {
		h.countDailyLimit(err, req.Tanggal)
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("ibadah created", "ibadah_id", ib.ID, "tanggal", ib.Tanggal)
	middleware.Success(w, r, http.StatusCreated, ib)
}

// UpdateIbadah handles PUT /api/ibadah/{id}
func (h *IbadahHandler) UpdateIbadah(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.IbadahRequest
	if !decodeValid(w, r, &req) {
		return
	}

	ib, err := UpdateIbadah(r.Context(), h.db, id, req)
	if err != nil {
		h.countDailyLimit(err, req.Tanggal)
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("ibadah updated", "ibadah_id", ib.ID, "tanggal", ib.Tanggal)
	middleware.Success(w, r, http.StatusOK, ib)
}

// DeleteIbadah handles DELETE /api/ibadah/{id}
func (h *IbadahHandler) DeleteIbadah(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := DeleteIbadah(r.Context(), h.db, id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("ibadah deleted", "ibadah_id", id)
	middleware.Success(w, r, http.StatusOK, models.MessageResponse{Message: "ibadah berhasil dihapus"})
}

// UpsertKehadiran handles PUT /api/ibadah/{id}/kehadiran
func (h *IbadahHandler) UpsertKehadiran(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.UpsertKehadiranRequest
	if !decodeValid(w, r, &req) {
		return
	}

	written, err := UpsertKehadiran(r.Context(), h.db, id, req.Kehadiran)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	h.metrics.KehadiranUpserts.Add(float64(len(written)))
	slog.Info("kehadiran saved", "ibadah_id", id, "rows", len(written))

	middleware.Success(w, r, http.StatusOK, models.UpsertKehadiranResponse{
		Message:   "data kehadiran berhasil disimpan",
		Kehadiran: written,
	})
}

// CreateAgenda handles POST /api/ibadah/{id}/agenda
func (h *IbadahHandler) CreateAgenda(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.AgendaRequest
	if !decodeValid(w, r, &req) {
		return
	}

	a, err := CreateAgenda(r.Context(), h.db, id, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("agenda created", "ibadah_id", id, "agenda_id", a.ID)
	middleware.Success(w, r, http.StatusCreated, a)
}

// UpdateAgenda handles PUT /api/ibadah/{id}/agenda/{agenda_id}
func (h *IbadahHandler) UpdateAgenda(w http.ResponseWriter, r *http.Request) {
	ibadahID, agendaID, err := agendaPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.AgendaRequest
	if !decodeValid(w, r, &req) {
		return
	}

	a, err := UpdateAgenda(r.Context(), h.db, ibadahID, agendaID, req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.Success(w, r, http.StatusOK, a)
}

// DeleteAgenda handles DELETE /api/ibadah/{id}/agenda/{agenda_id}
func (h *IbadahHandler) DeleteAgenda(w http.ResponseWriter, r *http.Request) {
	ibadahID, agendaID, err := agendaPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := DeleteAgenda(r.Context(), h.db, ibadahID, agendaID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.Success(w, r, http.StatusOK, models.MessageResponse{Message: "agenda berhasil dihapus"})
}

func agendaPath(r *http.Request) (ibadahID, agendaID int64, err error) {
	if ibadahID, err = pathID(r, "id"); err != nil {
		return 0, 0, err
	}
	if agendaID, err = pathID(r, "agenda_id"); err != nil {
		return 0, 0, err
	}
	return ibadahID, agendaID, nil
}

func (h *IbadahHandler) countDailyLimit(err error, tanggal string) {
	if errors.Is(err, apperr.ErrDailyLimitReached) {
		h.metrics.DailyLimitRejections.Inc()
		slog.Info("daily ibadah limit reached", "tanggal", tanggal)
	}
}
