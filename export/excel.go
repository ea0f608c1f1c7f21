// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fangel123/proyek-gereja/models"
)

// Sheet names of the attendance workbook
const (
	SheetDetail  = "Detail Kehadiran"
	SheetSummary = "Ringkasan Harian"
)

// DailyTotals sums attendance per date, keeping the order in which dates
// first appear in rows.
func DailyTotals(rows []models.AttendanceReportRow) []models.KehadiranPoint {
	index := make(map[string]int)
	var totals []models.KehadiranPoint
	for _, row := range rows {
		i, ok := index[row.Tanggal]
		if !ok {
			i = len(totals)
			index[row.Tanggal] = i
			totals = append(totals, models.KehadiranPoint{Tanggal: row.Tanggal})
		}
		totals[i].TotalKehadiran += int64(row.JumlahHadir)
	}
	return totals
}

// AttendanceWorkbook writes an XLSX report with one detail line per
// (service, classification) and a daily summary sheet.
func AttendanceWorkbook(w io.Writer, rows []models.AttendanceReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDetail); err != nil {
		return fmt.Errorf("naming detail sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	detail := [][]any{{"Tanggal", "Ibadah", "Waktu", "Klasifikasi", "Jumlah Hadir"}}
	for _, row := range rows {
		detail = append(detail, []any{row.Tanggal, row.Ibadah, row.Waktu, row.Klasifikasi, row.JumlahHadir})
	}
	if err := writeSheet(f, SheetDetail, detail, headerStyle, []float64{14, 32, 12, 24, 14}); err != nil {
		return err
	}

	summary := [][]any{{"Tanggal", "Total Kehadiran"}}
	for _, p := range DailyTotals(rows) {
		summary = append(summary, []any{p.Tanggal, p.TotalKehadiran})
	}
	if err := writeSheet(f, SheetSummary, summary, headerStyle, []float64{14, 18}); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int, widths []float64) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("sizing %s column %s: %w", sheet, col, err)
		}
	}
	return nil
}
