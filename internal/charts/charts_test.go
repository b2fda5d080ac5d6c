package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/dataset"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func testView(t *testing.T) *analytics.View {
	t.Helper()
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []dataset.DeliveryRecord{
		{OrderID: "ORD-001", Platform: "Blinkit", OrderValue: 400, DeliveryTimeMin: 10, Category: "Grocery", Rating: 4, OrderedAt: day},
		{OrderID: "ORD-002", Platform: "Zepto", OrderValue: 200, DeliveryTimeMin: 20, Category: "Snacks", Rating: 5, OrderedAt: day},
		{OrderID: "ORD-003", Platform: "Blinkit", OrderValue: 1200, DeliveryTimeMin: 30, Category: "Electronics", Rating: 3, OrderedAt: day.AddDate(0, 0, 1)},
	}
	return analytics.Build(records, dataset.Filter{})
}

func TestRenderEachChart(t *testing.T) {
	r := NewRenderer()
	view := testView(t)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			png, err := r.Render(name, view)
			require.NoError(t, err)
			require.Greater(t, len(png), len(pngMagic))
			assert.Equal(t, pngMagic, png[:len(pngMagic)])
		})
	}
}

func TestRenderUnknownChart(t *testing.T) {
	r := NewRenderer()
	png, err := r.Render("pie_of_doom", testView(t))
	require.Error(t, err)
	assert.Nil(t, png)
}

func TestRenderAll(t *testing.T) {
	r := NewRenderer()
	images, err := r.RenderAll(testView(t), nil)
	require.NoError(t, err)
	require.Len(t, images, 5)
	for _, img := range images {
		assert.NotEmpty(t, img.Title)
		assert.Equal(t, pngMagic, img.PNG[:len(pngMagic)])
	}
}

func TestRenderAllSkipsDailyWithoutTimestamps(t *testing.T) {
	records := []dataset.DeliveryRecord{
		{OrderID: "A", Platform: "P", Category: "C", OrderValue: 100, DeliveryTimeMin: 10, Rating: 4},
		{OrderID: "B", Platform: "Q", Category: "D", OrderValue: 200, DeliveryTimeMin: 20, Rating: 5},
	}
	view := analytics.Build(records, dataset.Filter{})

	images, err := NewRenderer().RenderAll(view, nil)
	require.NoError(t, err)
	require.Len(t, images, 4)
	for _, img := range images {
		assert.NotEqual(t, NameDailySeries, img.Name)
	}
}

func TestValueVsTimeFromPoints(t *testing.T) {
	png, err := NewRenderer().ValueVsTimeFromPoints(&ScatterPoints{
		Values: []float64{100, 200, 300},
		Times:  []float64{10, 20, 15},
	})
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestRenderSingleRecordView(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []dataset.DeliveryRecord{
		{OrderID: "ORD-001", Platform: "Blinkit", OrderValue: 400, DeliveryTimeMin: 10, Category: "Grocery", Rating: 4, OrderedAt: day},
	}
	view := analytics.Build(records, dataset.Filter{})

	r := NewRenderer()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			png, err := r.Render(name, view)
			require.NoError(t, err)
			assert.Equal(t, pngMagic, png[:len(pngMagic)])
		})
	}

	images, err := r.RenderAll(view, &ScatterPoints{Values: []float64{400}, Times: []float64{10}})
	require.NoError(t, err)
	assert.Len(t, images, 5)
}

func TestRenderSingleCategoryGroup(t *testing.T) {
	records := []dataset.DeliveryRecord{
		{OrderID: "A", Platform: "Blinkit", Category: "Grocery", OrderValue: 100, DeliveryTimeMin: 12, Rating: 4},
		{OrderID: "B", Platform: "Zepto", Category: "Grocery", OrderValue: 250, DeliveryTimeMin: 18, Rating: 5},
		{OrderID: "C", Platform: "Blinkit", Category: "Grocery", OrderValue: 300, DeliveryTimeMin: 25, Rating: 3},
	}
	view := analytics.Build(records, dataset.Filter{Category: "Grocery"})

	png, err := NewRenderer().Render(NameCategoryTimes, view)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestRenderUniformValues(t *testing.T) {
	records := []dataset.DeliveryRecord{
		{OrderID: "A", Platform: "P", Category: "C", OrderValue: 150, DeliveryTimeMin: 15, Rating: 4},
		{OrderID: "B", Platform: "P", Category: "C", OrderValue: 150, DeliveryTimeMin: 15, Rating: 4},
	}
	view := analytics.Build(records, dataset.Filter{})

	r := NewRenderer()
	for _, name := range []string{NameDeliveryHistogram, NameValueVsTime, NamePlatformValues} {
		png, err := r.Render(name, view)
		require.NoError(t, err, name)
		assert.Equal(t, pngMagic, png[:len(pngMagic)])
	}
}

func TestRenderEmptyViewFails(t *testing.T) {
	view := analytics.Build(nil, dataset.Filter{})
	_, err := NewRenderer().Render(NameDeliveryHistogram, view)
	assert.Error(t, err)
}
