// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/fangel123/proyek-gereja/apperr"
	"github.com/fangel123/proyek-gereja/db"
	"github.com/fangel123/proyek-gereja/models"
)

// UpsertKehadiran writes every (klasifikasi, count) pair of the batch for
// one service. The batch is all-or-nothing: one bad pair rolls back the
// rest. Existing rows are overwritten, never deleted. Pairs are written in
// klasifikasi id order so concurrent batches lock rows in the same order.
func UpsertKehadiran(ctx context.Context, conn *sql.DB, ibadahID int64, items []models.KehadiranItem) ([]models.Kehadiran, error) {
	items = slices.SortedFunc(slices.Values(items), func(a, b models.KehadiranItem) int {
		return cmp.Compare(a.KlasifikasiID, b.KlasifikasiID)
	})
	written := make([]models.Kehadiran, 0, len(items))

	err := db.InTx(ctx, conn, func(tx *sql.Tx) error {
		// Share-lock the service so a concurrent delete waits for the batch
		var exists int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM ibadah WHERE id = $1 FOR SHARE`, ibadahID,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("ibadah")
		}
		if err != nil {
			return fmt.Errorf("failed to lock ibadah %d: %w", ibadahID, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO kehadiran (ibadah_id, klasifikasi_id, jumlah_hadir)
			VALUES ($1, $2, $3)
			ON CONFLICT (ibadah_id, klasifikasi_id)
			DO UPDATE SET jumlah_hadir = EXCLUDED.jumlah_hadir
			RETURNING id, ibadah_id, klasifikasi_id, jumlah_hadir
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare kehadiran upsert: %w", err)
		}
		defer stmt.Close()

		for _, item := range items {
			var k models.Kehadiran
			err := stmt.QueryRowContext(ctx, ibadahID, item.KlasifikasiID, *item.JumlahHadir).
				Scan(&k.ID, &k.IbadahID, &k.KlasifikasiID, &k.JumlahHadir)
			switch {
			case db.IsForeignKeyViolation(err) && db.ConstraintName(err) == db.ConstraintKehadiranIbadah:
				return apperr.NotFound("ibadah")
			case db.IsForeignKeyViolation(err):
				return apperr.NotFound("klasifikasi").WithDetails(map[string]int64{"klasifikasi_id": item.KlasifikasiID})
			case db.IsCheckViolation(err):
				return apperr.Validation("jumlah_hadir tidak boleh negatif", map[string]int64{"klasifikasi_id": item.KlasifikasiID})
			case err != nil:
				return fmt.Errorf("failed to upsert kehadiran (ibadah %d, klasifikasi %d): %w", ibadahID, item.KlasifikasiID, err)
			}
			written = append(written, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}
