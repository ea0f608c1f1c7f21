// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/fangel123/proyek-gereja/models"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
	colNoWidth = 15.0
	colPJWidth = 55.0
)

// AgendaPDF renders the run-of-show sheet of one service as an A4 PDF.
func AgendaPDF(w io.Writer, churchName string, ibadah models.Ibadah, agenda []models.Agenda) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Susunan Acara Ibadah - "+ibadah.Nama, true)
	pdf.SetCreator(churchName, true)

	// Core fonts are cp1252; translate so names with accents survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(churchName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Susunan Acara Ibadah"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(ibadah.Nama), "", "C", false)
	pdf.SetFont("Helvetica", "", 11)
	dateLine := "Tanggal: " + LongDateString(ibadah.Tanggal)
	if ibadah.Waktu != nil && *ibadah.Waktu != "" {
		dateLine += ", pukul " + *ibadah.Waktu
	}
	pdf.CellFormat(0, 7, tr(dateLine), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pageWidth, _ := pdf.GetPageSize()
	colAgendaWidth := pageWidth - 2*pageMargin - colNoWidth - colPJWidth
	widths := []float64{colNoWidth, colAgendaWidth, colPJWidth}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range []string{"No.", "Agenda", "Penanggung Jawab"} {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range agenda {
		pj := "-"
		if item.PenanggungJawab != nil && *item.PenanggungJawab != "" {
			pj = *item.PenanggungJawab
		}
		drawRow(pdf, widths, []string{strconv.Itoa(item.Urutan), tr(item.NamaAgenda), tr(pj)})
	}
	if len(agenda) == 0 {
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Belum ada agenda.", "1", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering agenda pdf: %w", err)
	}
	return nil
}

// drawRow draws one table row whose cells wrap to the tallest cell.
func drawRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	lines := make([][]string, len(cells))
	maxLines := 1
	for i, text := range cells {
		lines[i] = pdf.SplitText(text, widths[i]-2)
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	rowHeight := float64(maxLines)*lineHeight + 2

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+rowHeight > pageHeight-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	for i := range cells {
		pdf.Rect(x, y, widths[i], rowHeight, "D")
		pdf.SetXY(x+1, y+1)
		for _, line := range lines[i] {
			pdf.CellFormat(widths[i]-2, lineHeight, line, "", 2, "L", false, 0, "")
		}
		x += widths[i]
		pdf.SetXY(x, y)
	}
	pdf.SetXY(pageMargin, y+rowHeight)
}
