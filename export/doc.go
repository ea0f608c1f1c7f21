// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export renders downloadable documents.

# Agenda PDF

	err := export.AgendaPDF(w, cfg.ChurchName, ibadah, agenda)

An A4 sheet headed by the church name and "Susunan Acara Ibadah", then the
service name and its date written out in Indonesian ("Minggu, 10 Maret
2024"). The agenda table has the columns No., Agenda and Penanggung Jawab;
a missing person in charge prints as "-". Long agenda names wrap and rows
flow onto new pages. Built with go-pdf/fpdf core fonts.

# Attendance Workbook

	err := export.AttendanceWorkbook(w, rows)

An XLSX file with two sheets built with excelize:

  - Detail Kehadiran: Tanggal, Ibadah, Waktu, Klasifikasi, Jumlah Hadir
  - Ringkasan Harian: Tanggal, Total Kehadiran

The summary is computed from the detail rows, so both sheets always agree.
*/
package export
