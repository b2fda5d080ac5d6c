package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
)

const (
	sheetSummary = "Summary"
	sheetCharts  = "Charts"
)

func writeExcel(path string, view *analytics.View, images []charts.Image, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetSummary)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2C3E50"}},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	f.SetCellValue(sheetSummary, cell(1, row), "E-Commerce Delivery Analysis Report")
	f.SetCellStyle(sheetSummary, cell(1, row), cell(1, row), boldStyle)
	row++
	f.SetCellValue(sheetSummary, cell(1, row), reportSubtitle(view, generatedAt))
	row += 2

	row = excelSection(f, row, titleOverview, headerStyle)
	for _, kv := range overviewRows(view) {
		f.SetCellValue(sheetSummary, cell(1, row), kv[0])
		f.SetCellValue(sheetSummary, cell(2, row), kv[1])
		row++
	}
	row++

	row = excelSection(f, row, titlePlatforms, headerStyle)
	row = excelTable(f, row, platformHeader, platformRows(view), boldStyle)
	row++

	row = excelSection(f, row, titleCategories, headerStyle)
	excelTable(f, row, categoryHeader, categoryRows(view), boldStyle)

	if _, err := f.NewSheet(sheetCharts); err != nil {
		return fmt.Errorf("create charts sheet: %w", err)
	}
	// Roughly 23 rows per chart at default row height
	anchor := 1
	for _, img := range images {
		f.SetCellValue(sheetCharts, cell(1, anchor), img.Title)
		f.SetCellStyle(sheetCharts, cell(1, anchor), cell(1, anchor), boldStyle)
		if err := f.AddPictureFromBytes(sheetCharts, cell(1, anchor+1), &excelize.Picture{
			Extension: ".png",
			File:      img.PNG,
			Format:    &excelize.GraphicOptions{ScaleX: 0.75, ScaleY: 0.75},
		}); err != nil {
			return fmt.Errorf("embed chart %s: %w", img.Name, err)
		}
		anchor += 23
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func excelSection(f *excelize.File, row int, title string, style int) int {
	f.SetCellValue(sheetSummary, cell(1, row), title)
	f.SetCellStyle(sheetSummary, cell(1, row), cell(6, row), style)
	return row + 1
}

func excelTable(f *excelize.File, row int, header []string, rows [][]string, headerStyle int) int {
	for c, h := range header {
		f.SetCellValue(sheetSummary, cell(c+1, row), h)
	}
	f.SetCellStyle(sheetSummary, cell(1, row), cell(len(header), row), headerStyle)
	row++

	for _, r := range rows {
		for c, v := range r {
			f.SetCellValue(sheetSummary, cell(c+1, row), v)
		}
		row++
	}
	return row
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
