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
)

const agendaColumns = `id, ibadah_id, urutan, nama_agenda, penanggung_jawab`

func scanAgenda(s rowScanner) (models.Agenda, error) {
	var a models.Agenda
	err := s.Scan(&a.ID, &a.IbadahID, &a.Urutan, &a.NamaAgenda, &a.PenanggungJawab)
	return a, err
}

// listAgenda returns the run-of-show of a service in order
func listAgenda(ctx context.Context, q querier, ibadahID int64) ([]models.Agenda, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+agendaColumns+`
		FROM agenda
		WHERE ibadah_id = $1
		ORDER BY urutan, id
	`, ibadahID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agenda for ibadah %d: %w", ibadahID, err)
	}
	defer rows.Close()

	list := []models.Agenda{}
	for rows.Next() {
		a, err := scanAgenda(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agenda: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CreateAgenda appends an item to the run-of-show of a service
func CreateAgenda(ctx context.Context, conn *sql.DB, ibadahID int64, req models.AgendaRequest) (models.Agenda, error) {
	a, err := scanAgenda(conn.QueryRowContext(ctx, `
		INSERT INTO agenda (ibadah_id, urutan, nama_agenda, penanggung_jawab)
		VALUES ($1, $2, $3, $4)
		RETURNING `+agendaColumns,
		ibadahID, req.Urutan, strings.TrimSpace(req.NamaAgenda), nullable(req.PenanggungJawab)))

	if db.IsForeignKeyViolation(err) {
		return models.Agenda{}, apperr.NotFound("ibadah")
	}
	if err != nil {
		return models.Agenda{}, fmt.Errorf("failed to insert agenda: %w", err)
	}
	return a, nil
}

// UpdateAgenda edits an item, but only when it belongs to ibadahID
func UpdateAgenda(ctx context.Context, conn *sql.DB, ibadahID, agendaID int64, req models.AgendaRequest) (models.Agenda, error) {
	a, err := scanAgenda(conn.QueryRowContext(ctx, `
		UPDATE agenda
		SET urutan = $1, nama_agenda = $2, penanggung_jawab = $3
		WHERE id = $4 AND ibadah_id = $5
		RETURNING `+agendaColumns,
		req.Urutan, strings.TrimSpace(req.NamaAgenda), nullable(req.PenanggungJawab), agendaID, ibadahID))

	if errors.Is(err, sql.ErrNoRows) {
		return models.Agenda{}, apperr.NotFound("agenda")
	}
	if err != nil {
		return models.Agenda{}, fmt.Errorf("failed to update agenda %d: %w", agendaID, err)
	}
	return a, nil
}

// DeleteAgenda removes an item, but only when it belongs to ibadahID
func DeleteAgenda(ctx context.Context, conn *sql.DB, ibadahID, agendaID int64) error {
	res, err := conn.ExecContext(ctx,
		`DELETE FROM agenda WHERE id = $1 AND ibadah_id = $2`, agendaID, ibadahID)
	if err != nil {
		return fmt.Errorf("failed to delete agenda %d: %w", agendaID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("agenda")
	}
	return nil
}
