// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, carrying validate tags:

  - RegisterRequest, LoginRequest: email, password
  - KlasifikasiRequest: nama
  - IbadahRequest: nama, tanggal, waktu, deskripsi
  - AgendaRequest: urutan, nama_agenda, penanggung_jawab
  - UpsertKehadiranRequest: kehadiran (list of KehadiranItem)
  - AnalyticsQuery: startDate, endDate, klasifikasiId, groupBy (query string)

# Domain Types

  - User: administrator account (password hash never serialized)
  - Klasifikasi: congregant classification
  - Ibadah: scheduled service
  - Agenda: one run-of-show item of a service
  - Kehadiran: attendance count for one (ibadah, klasifikasi) pair
  - IbadahDetail: service with agenda and the dense attendance table

# Analytics Types

  - KehadiranPoint: one point of the attendance series
  - DashboardSummary, RankedItem: weekly total and busiest entries
  - AttendanceReportRow: one line of the Excel export

# Envelope

Every JSON response is wrapped in Envelope:

	{"success": true, "data": ..., "meta": {"count": 3, "request_id": "..."}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}}

# Constants

	DateLayout      = "2006-01-02"
	MaxIbadahPerDay = 3
*/
package models
