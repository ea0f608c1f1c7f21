// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the PostgreSQL connection pool, schema creation and
transaction plumbing.

# Connecting

	conn, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns)

Open sizes the pool and pings the server with a 5 second timeout.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: Administrator accounts (email stored lower-cased)
  - klasifikasi: Congregant classifications, unique by name
  - ibadah: Worship services, at most three per date
  - agenda: Ordered run-of-show items of a service
  - kehadiran: Attendance count per (service, classification)

# Relationships

	ibadah 1──* agenda
	ibadah 1──* kehadiran
	klasifikasi 1──* kehadiran

Child rows use ON DELETE CASCADE. Deleting a classification that still has
attendance is refused by the handlers before the cascade can apply.

# Transactions

	err := db.InTx(ctx, conn, func(tx *sql.Tx) error { ... })

LockDate takes a transaction-scoped advisory lock for one calendar day. The
daily service cap counts and inserts under this lock.

# Driver Errors

IsUniqueViolation, IsForeignKeyViolation and IsCheckViolation classify
lib/pq errors by SQLSTATE.
*/
package db
