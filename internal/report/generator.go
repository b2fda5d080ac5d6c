// Package report writes analysis reports in PDF, Word and Excel formats.
// Each report carries the aggregate tables and the rendered charts for
// the selected data slice.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
	apperrors "deliverypulse/internal/errors"
)

// Format is a supported report output format.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatWord  Format = "docx"
	FormatExcel Format = "xlsx"
)

// ParseFormat validates a format string from the API.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatWord, FormatExcel:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

// Info describes a generated report file.
type Info struct {
	Path        string    `json:"path"`
	Filename    string    `json:"filename"`
	Format      Format    `json:"format"`
	Size        int64     `json:"size"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Generator writes reports into a fixed output directory.
type Generator struct {
	dir      string
	renderer *charts.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewGenerator creates a report generator writing into dir.
func NewGenerator(dir string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		dir:      dir,
		renderer: charts.NewRenderer(),
		logger:   logger,
		now:      time.Now,
	}
}

// Generate renders the charts and writes the report in the requested
// format. The file lands in the generator's directory with a timestamped
// name; any failure removes the partial file.
func (g *Generator) Generate(ctx context.Context, view *analytics.View, points *charts.ScatterPoints, format Format) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	images, err := g.renderer.RenderAll(view, points)
	if err != nil {
		return nil, err
	}

	generatedAt := g.now()
	filename := fmt.Sprintf("ecommerce_analysis_report_%s.%s",
		generatedAt.Format("20060102_150405"), format)
	path := filepath.Join(g.dir, filename)

	g.logger.InfoContext(ctx, "generating report",
		slog.String("format", string(format)),
		slog.String("path", path),
		slog.Int("charts", len(images)))

	switch format {
	case FormatPDF:
		err = writePDF(path, view, images, generatedAt)
	case FormatWord:
		err = writeWord(path, view, images, generatedAt)
	case FormatExcel:
		err = writeExcel(path, view, images, generatedAt)
	default:
		return nil, apperrors.ReportWriteError(string(format), fmt.Errorf("unsupported format"))
	}
	if err != nil {
		os.Remove(path)
		return nil, apperrors.ReportWriteError(string(format), err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.ReportWriteError(string(format), err)
	}

	g.logger.InfoContext(ctx, "report written",
		slog.String("path", path),
		slog.Int64("bytes", stat.Size()))

	return &Info{
		Path:        path,
		Filename:    filename,
		Format:      format,
		Size:        stat.Size(),
		GeneratedAt: generatedAt,
	}, nil
}

// section titles shared by all three writers
const (
	titleOverview   = "Overview"
	titlePlatforms  = "Platform Performance"
	titleCategories = "Category Performance"
	titleCharts     = "Charts"
)

func overviewRows(view *analytics.View) [][2]string {
	ov := view.Overview
	return [][2]string{
		{"Total Orders", fmt.Sprintf("%d", ov.TotalOrders)},
		{"Platforms", fmt.Sprintf("%d", ov.PlatformCount)},
		{"Product Categories", fmt.Sprintf("%d", ov.CategoryCount)},
		{"Total Revenue (INR)", fmt.Sprintf("%.2f", ov.TotalRevenue)},
		{"High-Value Orders", fmt.Sprintf("%d", ov.HighValueOrders)},
		{"Avg Order Value (INR)", fmt.Sprintf("%.2f", ov.AvgOrderValue)},
		{"Avg Delivery Time (Minutes)", fmt.Sprintf("%.1f", ov.AvgDeliveryTime)},
		{"Avg Service Rating", fmt.Sprintf("%.2f", ov.AvgRating)},
	}
}

var platformHeader = []string{"Platform", "Orders", "Revenue (INR)", "Avg Value", "Avg Time", "Median Time", "P90 Time", "Avg Rating"}

func platformRows(view *analytics.View) [][]string {
	rows := make([][]string, 0, len(view.Platforms))
	for _, p := range view.Platforms {
		rows = append(rows, []string{
			p.Platform,
			fmt.Sprintf("%d", p.Orders),
			fmt.Sprintf("%.2f", p.TotalRevenue),
			fmt.Sprintf("%.2f", p.AvgOrderValue),
			fmt.Sprintf("%.1f", p.AvgDeliveryTime),
			fmt.Sprintf("%.1f", p.MedianDeliveryTime),
			fmt.Sprintf("%.1f", p.P90DeliveryTime),
			fmt.Sprintf("%.2f", p.AvgRating),
		})
	}
	return rows
}

var categoryHeader = []string{"Category", "Orders", "Revenue (INR)", "Avg Value", "Avg Time (Min)", "Avg Rating"}

func categoryRows(view *analytics.View) [][]string {
	rows := make([][]string, 0, len(view.Categories))
	for _, c := range view.Categories {
		rows = append(rows, []string{
			c.Category,
			fmt.Sprintf("%d", c.Orders),
			fmt.Sprintf("%.2f", c.TotalRevenue),
			fmt.Sprintf("%.2f", c.AvgOrderValue),
			fmt.Sprintf("%.1f", c.AvgDeliveryTime),
			fmt.Sprintf("%.2f", c.AvgRating),
		})
	}
	return rows
}

func reportSubtitle(view *analytics.View, generatedAt time.Time) string {
	scope := "All platforms and categories"
	if view.Filter.Platform != "" && view.Filter.Category != "" {
		scope = fmt.Sprintf("Platform: %s, Category: %s", view.Filter.Platform, view.Filter.Category)
	} else if view.Filter.Platform != "" {
		scope = "Platform: " + view.Filter.Platform
	} else if view.Filter.Category != "" {
		scope = "Category: " + view.Filter.Category
	}
	return fmt.Sprintf("%s | Generated %s", scope, generatedAt.Format("2006-01-02 15:04:05"))
}
