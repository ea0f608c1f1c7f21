// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every application table. Used by tests.
func DropSchema(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, `
		DROP TABLE IF EXISTS kehadiran CASCADE;
		DROP TABLE IF EXISTS agenda CASCADE;
		DROP TABLE IF EXISTS ibadah CASCADE;
		DROP TABLE IF EXISTS klasifikasi CASCADE;
		DROP TABLE IF EXISTS users CASCADE;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

const schema = `
-- Administrators
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Congregant classifications
CREATE TABLE IF NOT EXISTS klasifikasi (
    id BIGSERIAL PRIMARY KEY,
    nama VARCHAR(100) NOT NULL UNIQUE
);

-- Worship services
CREATE TABLE IF NOT EXISTS ibadah (
    id BIGSERIAL PRIMARY KEY,
    nama VARCHAR(150) NOT NULL,
    tanggal DATE NOT NULL,
    waktu VARCHAR(50),
    deskripsi TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_ibadah_tanggal ON ibadah(tanggal);

-- Run-of-show items
CREATE TABLE IF NOT EXISTS agenda (
    id BIGSERIAL PRIMARY KEY,
    ibadah_id BIGINT NOT NULL REFERENCES ibadah(id) ON DELETE CASCADE,
    urutan INTEGER NOT NULL CHECK (urutan > 0),
    nama_agenda VARCHAR(255) NOT NULL,
    penanggung_jawab VARCHAR(150)
);

CREATE INDEX IF NOT EXISTS idx_agenda_ibadah_id ON agenda(ibadah_id);

-- Attendance per service and classification
CREATE TABLE IF NOT EXISTS kehadiran (
    id BIGSERIAL PRIMARY KEY,
    ibadah_id BIGINT NOT NULL REFERENCES ibadah(id) ON DELETE CASCADE,
    klasifikasi_id BIGINT NOT NULL REFERENCES klasifikasi(id) ON DELETE CASCADE,
    jumlah_hadir INTEGER NOT NULL DEFAULT 0 CHECK (jumlah_hadir >= 0),
    UNIQUE (ibadah_id, klasifikasi_id)
);

CREATE INDEX IF NOT EXISTS idx_kehadiran_klasifikasi_id ON kehadiran(klasifikasi_id);
`
