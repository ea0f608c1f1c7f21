// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/cliparse"
	"github.com/fangel123/proyek-gereja/db"
	"github.com/fangel123/proyek-gereja/middleware"
	"github.com/fangel123/proyek-gereja/models"
)

type KlasifikasiHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewKlasifikasiHandler(db *sql.DB, cfg cliparse.Config) *KlasifikasiHandler {
	return &KlasifikasiHandler{db: db, cfg: cfg}
}

// ListKlasifikasi handles GET /api/klasifikasi
func (h *KlasifikasiHandler) ListKlasifikasi(w http.ResponseWriter, r *http.Request) {
	list, err := ListKlasifikasi(r.Context(), h.db, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.List(w, r, list, len(list))
}

// CreateKlasifikasi handles POST /api/klasifikasi
func (h *KlasifikasiHandler) CreateKlasifikasi(w http.ResponseWriter, r *http.Request) {
	var req models.KlasifikasiRequest
	if !decodeValid(w, r, &req, func() { req.Nama = strings.TrimSpace(req.Nama) }) {
		return
	}

	k, err := CreateKlasifikasi(r.Context(), h.db, req.Nama)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("klasifikasi created", "klasifikasi_id", k.ID, "nama", k.Nama)
	middleware.Success(w, r, http.StatusCreated, k)
}

// UpdateKlasifikasi handles PUT /api/klasifikasi/{id}
func (h *KlasifikasiHandler) UpdateKlasifikasi(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var req models.KlasifikasiRequest
	if !decodeValid(w, r, &req, func() { req.Nama = strings.TrimSpace(req.Nama) }) {
		return
	}

	k, err := RenameKlasifikasi(r.Context(), h.db, id, req.Nama)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("klasifikasi renamed", "klasifikasi_id", k.ID, "nama", k.Nama)
	middleware.Success(w, r, http.StatusOK, k)
}

// DeleteKlasifikasi handles DELETE /api/klasifikasi/{id}
func (h *KlasifikasiHandler) DeleteKlasifikasi(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := DeleteKlasifikasi(r.Context(), h.db, id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("klasifikasi deleted", "klasifikasi_id", id)
	middleware.Success(w, r, http.StatusOK, models.MessageResponse{Message: "klasifikasi berhasil dihapus"})
}

// ListKlasifikasi returns every classification ordered by id or by nama
func ListKlasifikasi(ctx context.Context, conn *sql.DB, orderBy string) ([]models.Klasifikasi, error) {
	query := `SELECT id, nama FROM klasifikasi ORDER BY id`
	if orderBy == "nama" {
		query = `SELECT id, nama FROM klasifikasi ORDER BY nama, id`
	}

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query klasifikasi: %w", err)
	}
	defer rows.Close()

	list := []models.Klasifikasi{}
	for rows.Next() {
		var k models.Klasifikasi
		if err := rows.Scan(&k.ID, &k.Nama); err != nil {
			return nil, fmt.Errorf("failed to scan klasifikasi: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

// CreateKlasifikasi inserts a classification, reporting DUPLICATE_NAME when
// the name is taken
func CreateKlasifikasi(ctx context.Context, conn *sql.DB, nama string) (models.Klasifikasi, error) {
	k := models.Klasifikasi{Nama: nama}
	err := conn.QueryRowContext(ctx,
		`INSERT INTO klasifikasi (nama) VALUES ($1) RETURNING id`, nama,
	).Scan(&k.ID)

	if db.IsUniqueViolation(err) {
		return models.Klasifikasi{}, apperr.ErrDuplicateName
	}
	if err != nil {
		return models.Klasifikasi{}, fmt.Errorf("failed to insert klasifikasi: %w", err)
	}
	return k, nil
}

// RenameKlasifikasi changes the name of an existing classification. The
// pre-check gives a clean DUPLICATE_NAME; the unique constraint covers a
// concurrent writer that wins between check and update.
func RenameKlasifikasi(ctx context.Context, conn *sql.DB, id int64, nama string) (models.Klasifikasi, error) {
	var taken bool
	err := conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM klasifikasi WHERE nama = $1 AND id <> $2)`, nama, id,
	).Scan(&taken)
	if err != nil {
		return models.Klasifikasi{}, fmt.Errorf("failed to check klasifikasi name: %w", err)
	}
	if taken {
		return models.Klasifikasi{}, apperr.ErrDuplicateName
	}

	k := models.Klasifikasi{ID: id}
	err = conn.QueryRowContext(ctx,
		`UPDATE klasifikasi SET nama = $1 WHERE id = $2 RETURNING nama`, nama, id,
	).Scan(&k.Nama)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Klasifikasi{}, apperr.NotFound("klasifikasi")
	case db.IsUniqueViolation(err):
		return models.Klasifikasi{}, apperr.ErrDuplicateName
	case err != nil:
		return models.Klasifikasi{}, fmt.Errorf("failed to update klasifikasi: %w", err)
	}
	return k, nil
}

// DeleteKlasifikasi removes a classification that no attendance row
// references. The row lock makes a concurrent upsert naming this
// classification wait until the delete decides.
func DeleteKlasifikasi(ctx context.Context, conn *sql.DB, id int64) error {
	return db.InTx(ctx, conn, func(tx *sql.Tx) error {
		var locked int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM klasifikasi WHERE id = $1 FOR UPDATE`, id,
		).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("klasifikasi")
		}
		if err != nil {
			return fmt.Errorf("failed to lock klasifikasi: %w", err)
		}

		var refs int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM kehadiran WHERE klasifikasi_id = $1`, id,
		).Scan(&refs)
		if err != nil {
			return fmt.Errorf("failed to count kehadiran references: %w", err)
		}
		if refs > 0 {
			return apperr.ErrReferenceExists.WithDetails(map[string]int{"kehadiran": refs})
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM klasifikasi WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete klasifikasi: %w", err)
		}
		return nil
	})
}
