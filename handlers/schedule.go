// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/db"
	"github.com/fangel123/proyek-gereja/models"
	"github.com/fangel123/proyek-gereja/validation"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const ibadahColumns = `id, nama, to_char(tanggal, 'YYYY-MM-DD'), waktu, deskripsi, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIbadah(s rowScanner) (models.Ibadah, error) {
	var ib models.Ibadah
	err := s.Scan(&ib.ID, &ib.Nama, &ib.Tanggal, &ib.Waktu, &ib.Deskripsi, &ib.CreatedAt)
	return ib, err
}

// ListIbadah returns all services, newest date first
func ListIbadah(ctx context.Context, conn *sql.DB) ([]models.Ibadah, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT `+ibadahColumns+`
		FROM ibadah
		ORDER BY tanggal DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ibadah: %w", err)
	}
	defer rows.Close()

	list := []models.Ibadah{}
	for rows.Next() {
		ib, err := scanIbadah(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ibadah: %w", err)
		}
		list = append(list, ib)
	}
	return list, rows.Err()
}

// GetIbadah loads one service or returns NOT_FOUND
func GetIbadah(ctx context.Context, q querier, id int64) (models.Ibadah, error) {
	ib, err := scanIbadah(q.QueryRowContext(ctx, `SELECT `+ibadahColumns+` FROM ibadah WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ibadah{}, apperr.NotFound("ibadah")
	}
	if err != nil {
		return models.Ibadah{}, fmt.Errorf("failed to query ibadah %d: %w", id, err)
	}
	return ib, nil
}

// countOnDate counts services on date, ignoring excludeID (0 ignores none)
func countOnDate(ctx context.Context, tx *sql.Tx, date string, excludeID int64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ibadah WHERE tanggal = $1 AND id <> $2`, date, excludeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count ibadah on %s: %w", date, err)
	}
	return n, nil
}

// lockDay serializes writers for the date of req and fails with
// DAILY_LIMIT_REACHED when the day is already full
func lockDay(ctx context.Context, tx *sql.Tx, date string, excludeID int64) error {
	day, err := validation.ParseDate(date)
	if err != nil {
		return apperr.Validation("tanggal harus berformat YYYY-MM-DD", nil)
	}
	if err := db.LockDate(ctx, tx, day); err != nil {
		return err
	}

	n, err := countOnDate(ctx, tx, date, excludeID)
	if err != nil {
		return err
	}
	if n >= models.MaxIbadahPerDay {
		return apperr.ErrDailyLimitReached.WithDetails(map[string]any{"tanggal": date, "jumlah": n})
	}
	return nil
}

// CreateIbadah schedules a service, enforcing the daily cap. Count and
// insert run under the date lock, so concurrent creators for one date can
// never exceed the cap.
func CreateIbadah(ctx context.Context, conn *sql.DB, req models.IbadahRequest) (models.Ibadah, error) {
	var ib models.Ibadah
	err := db.InTx(ctx, conn, func(tx *sql.Tx) error {
		if err := lockDay(ctx, tx, req.Tanggal, 0); err != nil {
			return err
		}

		var err error
		ib, err = scanIbadah(tx.QueryRowContext(ctx, `
			INSERT INTO ibadah (nama, tanggal, waktu, deskripsi)
			VALUES ($1, $2, $3, $4)
			RETURNING `+ibadahColumns,
			strings.TrimSpace(req.Nama), req.Tanggal, nullable(req.Waktu), nullable(req.Deskripsi)))
		if err != nil {
			return fmt.Errorf("failed to insert ibadah: %w", err)
		}
		return nil
	})
	return ib, err
}

// UpdateIbadah replaces the fields of a service. Moving it to another date
// applies the daily cap to the new date.
func UpdateIbadah(ctx context.Context, conn *sql.DB, id int64, req models.IbadahRequest) (models.Ibadah, error) {
	var ib models.Ibadah
	err := db.InTx(ctx, conn, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx,
			`SELECT to_char(tanggal, 'YYYY-MM-DD') FROM ibadah WHERE id = $1 FOR UPDATE`, id,
		).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("ibadah")
		}
		if err != nil {
			return fmt.Errorf("failed to lock ibadah %d: %w", id, err)
		}

		if current != req.Tanggal {
			if err := lockDay(ctx, tx, req.Tanggal, id); err != nil {
				return err
			}
		}

		ib, err = scanIbadah(tx.QueryRowContext(ctx, `
			UPDATE ibadah
			SET nama = $1, tanggal = $2, waktu = $3, deskripsi = $4
			WHERE id = $5
			RETURNING `+ibadahColumns,
			strings.TrimSpace(req.Nama), req.Tanggal, nullable(req.Waktu), nullable(req.Deskripsi), id))
		if err != nil {
			return fmt.Errorf("failed to update ibadah %d: %w", id, err)
		}
		return nil
	})
	return ib, err
}

// DeleteIbadah removes a service together with its agenda and attendance
func DeleteIbadah(ctx context.Context, conn *sql.DB, id int64) error {
	res, err := conn.ExecContext(ctx, `DELETE FROM ibadah WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ibadah %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("ibadah")
	}
	return nil
}

// GetIbadahDetail loads a service with its agenda and a dense attendance
// table: one entry per classification, zero where nothing was recorded.
// All reads share one snapshot.
func GetIbadahDetail(ctx context.Context, conn *sql.DB, id int64) (models.IbadahDetail, error) {
	var detail models.IbadahDetail
	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return detail, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	detail.Ibadah, err = GetIbadah(ctx, tx, id)
	if err != nil {
		return detail, err
	}

	detail.Agenda, err = listAgenda(ctx, tx, id)
	if err != nil {
		return detail, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT k.id, k.nama, COALESCE(h.jumlah_hadir, 0), h.id IS NOT NULL
		FROM klasifikasi k
		LEFT JOIN kehadiran h ON h.klasifikasi_id = k.id AND h.ibadah_id = $1
		ORDER BY k.nama, k.id
	`, id)
	if err != nil {
		return detail, fmt.Errorf("failed to query kehadiran for ibadah %d: %w", id, err)
	}
	defer rows.Close()

	detail.Kehadiran = []models.KehadiranEntry{}
	for rows.Next() {
		var e models.KehadiranEntry
		if err := rows.Scan(&e.KlasifikasiID, &e.Nama, &e.JumlahHadir, &e.Recorded); err != nil {
			return detail, fmt.Errorf("failed to scan kehadiran: %w", err)
		}
		detail.TotalKehadiran += e.JumlahHadir
		detail.Kehadiran = append(detail.Kehadiran, e)
	}
	if err := rows.Err(); err != nil {
		return detail, err
	}

	return detail, tx.Commit()
}
