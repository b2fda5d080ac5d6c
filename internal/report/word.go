package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fumiama/go-docx"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
)

func writeWord(path string, view *analytics.View, images []charts.Image, generatedAt time.Time) error {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText("E-Commerce Delivery Analysis Report").Size("36").Color("2C3E50")

	subtitle := w.AddParagraph().Justification("center")
	subtitle.AddText(reportSubtitle(view, generatedAt)).Size("18").Color("7F8C8D")
	w.AddParagraph()

	wordHeading(w, titleOverview)
	if err := wordKeyValueTable(w, overviewRows(view)); err != nil {
		return err
	}
	w.AddParagraph()

	wordHeading(w, titlePlatforms)
	if err := wordTable(w, platformHeader, platformRows(view)); err != nil {
		return err
	}
	w.AddParagraph()

	wordHeading(w, titleCategories)
	if err := wordTable(w, categoryHeader, categoryRows(view)); err != nil {
		return err
	}
	w.AddParagraph()

	// Inline drawings are loaded from disk, so the PNGs go through a
	// scratch directory first.
	tmpDir, err := os.MkdirTemp("", "deliverypulse-charts-")
	if err != nil {
		return fmt.Errorf("create chart scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	wordHeading(w, titleCharts)
	for _, img := range images {
		imgPath := filepath.Join(tmpDir, img.Name+".png")
		if err := os.WriteFile(imgPath, img.PNG, 0o644); err != nil {
			return fmt.Errorf("write chart %s: %w", img.Name, err)
		}

		caption := w.AddParagraph()
		caption.AddText(img.Title).Size("24").Color("2C3E50")

		para := w.AddParagraph().Justification("center")
		if _, err := para.AddInlineDrawingFrom(imgPath); err != nil {
			return fmt.Errorf("embed chart %s: %w", img.Name, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func wordHeading(w *docx.Docx, title string) {
	para := w.AddParagraph()
	para.AddText(title).Size("28").Color("2C3E50")
}

func wordKeyValueTable(w *docx.Docx, rows [][2]string) error {
	tbl := w.AddTable(len(rows), 2, 0, nil)
	for i, row := range rows {
		tbl.TableRows[i].TableCells[0].AddParagraph().AddText(row[0])
		tbl.TableRows[i].TableCells[1].AddParagraph().AddText(row[1])
	}
	return nil
}

func wordTable(w *docx.Docx, header []string, rows [][]string) error {
	tbl := w.AddTable(len(rows)+1, len(header), 0, nil)
	for c, h := range header {
		tbl.TableRows[0].TableCells[c].AddParagraph().AddText(h).Bold()
	}
	for r, row := range rows {
		for c, cell := range row {
			tbl.TableRows[r+1].TableCells[c].AddParagraph().AddText(cell)
		}
	}
	return nil
}
