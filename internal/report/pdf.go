package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
)

const (
	pdfPageWidth  = 210.0 // A4 portrait, mm
	pdfMargin     = 15.0
	pdfImageWidth = pdfPageWidth - 2*pdfMargin
)

func writePDF(path string, view *analytics.View, images []charts.Image, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "E-Commerce Delivery Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, reportSubtitle(view, generatedAt), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdfSectionTitle(pdf, titleOverview)
	for _, row := range overviewRows(view) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdfSectionTitle(pdf, titlePlatforms)
	pdfTable(pdf, platformHeader, platformRows(view))
	pdf.Ln(4)

	pdfSectionTitle(pdf, titleCategories)
	pdfTable(pdf, categoryHeader, categoryRows(view))

	for _, img := range images {
		pdf.AddPage()
		pdfSectionTitle(pdf, img.Title)

		name := "chart_" + img.Name
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
		pdf.ImageOptions(name, pdfMargin, pdf.GetY(), pdfImageWidth, 0, false, opts, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(44, 62, 80)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(0, 8, " "+title, "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

func pdfTable(pdf *fpdf.Fpdf, header []string, rows [][]string) {
	colWidth := pdfImageWidth / float64(len(header))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(236, 240, 241)
	for _, h := range header {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(colWidth, 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
