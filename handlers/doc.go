// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the church administration API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Administrator registration, login and identity
  - KlasifikasiHandler: Attendance classification CRUD
  - IbadahHandler: Services, their agenda and attendance
  - AnalyticsHandler: Attendance series and dashboard
  - ExportHandler: Agenda PDF and attendance workbook downloads

Handlers are created via constructor functions that accept *sql.DB and Config:

	ibadahHandler := handlers.NewIbadahHandler(db, cfg, m)

The domain operations behind each endpoint are plain functions taking a
context and *sql.DB (CreateIbadah, UpsertKehadiran, DashboardSummary, ...),
so they can be reused without an HTTP request.

# Daily Cap

At most models.MaxIbadahPerDay services may share a date. Creating a
service, or moving one to another date, takes a transaction-scoped advisory
lock on the target date before counting, so concurrent requests cannot
overshoot the cap. Rejections return DAILY_LIMIT_REACHED (409).

# Attendance

	PUT /api/ibadah/{id}/kehadiran → UpsertKehadiran

The batch is one transaction: each (ibadah, klasifikasi) pair is inserted or
overwritten, and an unknown classification rolls back the whole batch.
The service detail always lists every classification, with 0 for pairs
that were never recorded.

# Errors

Handlers return *apperr.Error values through middleware.WriteError; anything
else is logged and reported as SERVER_ERROR.
*/
package handlers
