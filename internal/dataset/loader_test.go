package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Order ID,Platform,Order Value (INR),Delivery Time (Minutes),Product Category,Service Rating
ORD-001,Blinkit,450.50,12,Grocery,4.5
ORD-002,Zepto,199.00,9,Snacks,4.0
ORD-003,Blinkit,1250.75,18,Electronics,3.5
ORD-004,Swiggy Instamart,320.00,15,Grocery,5.0
`

const timestampedCSV = `Order ID,Platform,Order Value (INR),Delivery Time (Minutes),Product Category,Service Rating,Timestamp
ORD-001,Blinkit,450.50,12,Grocery,4.5,2025-03-01 10:15:00
ORD-002,Zepto,199.00,9,Snacks,4.0,2025-03-02 18:40:00
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestReadWellFormed(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV), "sample.csv", testLogger())
	require.NoError(t, err)
	require.NotNil(t, ds)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Blinkit", "Swiggy Instamart", "Zepto"}, ds.Platforms())
	assert.Equal(t, []string{"Electronics", "Grocery", "Snacks"}, ds.Categories())
	assert.False(t, ds.HasTimestamps())
	assert.Equal(t, "sample.csv", ds.Source())

	first := ds.Records()[0]
	assert.Equal(t, "ORD-001", first.OrderID)
	assert.Equal(t, "Blinkit", first.Platform)
	assert.InDelta(t, 450.50, first.OrderValue, 1e-9)
	assert.InDelta(t, 12, first.DeliveryTimeMin, 1e-9)
	assert.Equal(t, "Grocery", first.Category)
	assert.InDelta(t, 4.5, first.Rating, 1e-9)
}

func TestReadWithTimestamps(t *testing.T) {
	ds, err := Read(strings.NewReader(timestampedCSV), "timestamped.csv", testLogger())
	require.NoError(t, err)

	assert.True(t, ds.HasTimestamps())
	assert.Equal(t, 2025, ds.Records()[0].OrderedAt.Year())
	assert.Equal(t, 10, ds.Records()[0].OrderedAt.Hour())
}

func TestReadMissingColumns(t *testing.T) {
	csv := `Order ID,Platform,Product Category
ORD-001,Blinkit,Grocery
`
	ds, err := Read(strings.NewReader(csv), "broken.csv", testLogger())
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), `"Order Value (INR)"`)
	assert.Contains(t, err.Error(), `"Delivery Time (Minutes)"`)
	assert.Contains(t, err.Error(), `"Service Rating"`)
}

func TestReadMalformedNumeric(t *testing.T) {
	csv := `Order ID,Platform,Order Value (INR),Delivery Time (Minutes),Product Category,Service Rating
ORD-001,Blinkit,450.50,12,Grocery,4.5
ORD-002,Zepto,not-a-number,9,Snacks,4.0
`
	ds, err := Read(strings.NewReader(csv), "malformed.csv", testLogger())
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), `"Order Value (INR)"`)
	assert.Contains(t, err.Error(), "line 3")
}

func TestReadMalformedTimestamp(t *testing.T) {
	csv := `Order ID,Platform,Order Value (INR),Delivery Time (Minutes),Product Category,Service Rating,Timestamp
ORD-001,Blinkit,450.50,12,Grocery,4.5,yesterday
`
	ds, err := Read(strings.NewReader(csv), "badts.csv", testLogger())
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Contains(t, err.Error(), `"Timestamp"`)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "delivery.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ds, err := Load(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, path, ds.Source())
	assert.False(t, ds.LoadedAt().IsZero())
}

func TestLoadMissingFile(t *testing.T) {
	ds, err := Load(filepath.Join(t.TempDir(), "nope.csv"), testLogger())
	require.Error(t, err)
	assert.Nil(t, ds)
}

func TestFilterApply(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV), "sample.csv", testLogger())
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"zero filter matches all", Filter{}, 4},
		{"platform only", Filter{Platform: "Blinkit"}, 2},
		{"category only", Filter{Category: "Grocery"}, 2},
		{"platform and category", Filter{Platform: "Blinkit", Category: "Grocery"}, 1},
		{"no matches", Filter{Platform: "Dunzo"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.filter.Apply(ds.Records()), tt.want)
		})
	}
}
