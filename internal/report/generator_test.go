package report

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
	"deliverypulse/internal/dataset"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testView() (*analytics.View, *charts.ScatterPoints) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []dataset.DeliveryRecord{
		{OrderID: "ORD-001", Platform: "Blinkit", OrderValue: 400, DeliveryTimeMin: 10, Category: "Grocery", Rating: 4, OrderedAt: day},
		{OrderID: "ORD-002", Platform: "Zepto", OrderValue: 200, DeliveryTimeMin: 20, Category: "Snacks", Rating: 5, OrderedAt: day},
		{OrderID: "ORD-003", Platform: "Blinkit", OrderValue: 1200, DeliveryTimeMin: 30, Category: "Electronics", Rating: 3, OrderedAt: day.AddDate(0, 0, 1)},
	}
	points := &charts.ScatterPoints{}
	for _, r := range records {
		points.Values = append(points.Values, r.OrderValue)
		points.Times = append(points.Times, r.DeliveryTimeMin)
	}
	return analytics.Build(records, dataset.Filter{}), points
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"pdf", "docx", "xlsx"} {
		f, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), f)
	}

	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func TestGenerateEachFormat(t *testing.T) {
	view, points := testView()

	for _, format := range []Format{FormatPDF, FormatWord, FormatExcel} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			gen := NewGenerator(dir, testLogger())

			info, err := gen.Generate(context.Background(), view, points, format)
			require.NoError(t, err)
			require.NotNil(t, info)

			assert.Equal(t, format, info.Format)
			assert.Equal(t, dir, filepath.Dir(info.Path))
			assert.Contains(t, info.Filename, "ecommerce_analysis_report_")
			assert.Contains(t, info.Filename, "."+string(format))
			assert.Greater(t, info.Size, int64(0))

			stat, err := os.Stat(info.Path)
			require.NoError(t, err)
			assert.Equal(t, info.Size, stat.Size())
		})
	}
}

func TestGenerateFilenameTimestamp(t *testing.T) {
	view, points := testView()
	gen := NewGenerator(t.TempDir(), testLogger())
	gen.now = func() time.Time {
		return time.Date(2025, 3, 15, 14, 30, 5, 0, time.UTC)
	}

	info, err := gen.Generate(context.Background(), view, points, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "ecommerce_analysis_report_20250315_143005.pdf", info.Filename)
}

func TestGenerateCancelledContext(t *testing.T) {
	view, points := testView()
	gen := NewGenerator(t.TempDir(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, view, points, FormatPDF)
	assert.Error(t, err)
}

func TestGenerateBadDirectory(t *testing.T) {
	view, points := testView()
	gen := NewGenerator(filepath.Join(t.TempDir(), "missing", "nested"), testLogger())

	_, err := gen.Generate(context.Background(), view, points, FormatPDF)
	assert.Error(t, err)
}
