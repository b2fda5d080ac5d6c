// Package charts renders PNG charts from aggregate views using
// go-chart. Rendering is stateless and safe for concurrent use.
package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"deliverypulse/internal/analytics"
	apperrors "deliverypulse/internal/errors"
)

// Chart names served under /charts/{name}.png.
const (
	NameDeliveryHistogram = "delivery_histogram"
	NameCategoryTimes     = "category_times"
	NameValueVsTime       = "value_vs_time"
	NamePlatformValues    = "platform_values"
	NameDailySeries       = "daily_series"
)

const (
	defaultWidth  = 900
	defaultHeight = 450
)

// Image is one rendered chart.
type Image struct {
	Name  string
	Title string
	PNG   []byte
}

// Renderer draws the dashboard charts from an aggregate view.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a renderer with the default dimensions.
func NewRenderer() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

// Names lists every chart the renderer can draw, in dashboard order.
func Names() []string {
	return []string{
		NameDeliveryHistogram,
		NameCategoryTimes,
		NameValueVsTime,
		NamePlatformValues,
		NameDailySeries,
	}
}

// Render draws the named chart for the view. Unknown names return
// ErrChartNotFound; the daily series additionally requires timestamped
// data.
func (r *Renderer) Render(name string, view *analytics.View) ([]byte, error) {
	switch name {
	case NameDeliveryHistogram:
		return r.DeliveryHistogram(view)
	case NameCategoryTimes:
		return r.CategoryTimes(view)
	case NameValueVsTime:
		return r.ValueVsTime(view)
	case NamePlatformValues:
		return r.PlatformValues(view)
	case NameDailySeries:
		return r.DailySeries(view)
	default:
		return nil, apperrors.NotFoundError(fmt.Sprintf("chart %q", name))
	}
}

// ScatterPoints carries the raw per-order points for the value vs time
// scatter chart. Values[i] pairs with Times[i].
type ScatterPoints struct {
	Values []float64
	Times  []float64
}

// RenderAll draws every chart available for the view. Raw scatter points
// are used when provided; the daily series is skipped when the view has
// no timestamped data.
func (r *Renderer) RenderAll(view *analytics.View, points *ScatterPoints) ([]Image, error) {
	titles := map[string]string{
		NameDeliveryHistogram: "Delivery Time Distribution",
		NameCategoryTimes:     "Average Delivery Time by Category",
		NameValueVsTime:       "Order Value vs Delivery Time",
		NamePlatformValues:    "Revenue by Platform",
		NameDailySeries:       "Orders per Day",
	}

	images := make([]Image, 0, len(titles))
	for _, name := range Names() {
		if name == NameDailySeries && len(view.Daily) == 0 {
			continue
		}

		var png []byte
		var err error
		if name == NameValueVsTime && points != nil {
			png, err = r.scatter(name, points.Values, points.Times)
		} else {
			png, err = r.Render(name, view)
		}
		if err != nil {
			return nil, err
		}
		images = append(images, Image{Name: name, Title: titles[name], PNG: png})
	}
	return images, nil
}

// DeliveryHistogram draws the delivery-time histogram as a bar chart.
func (r *Renderer) DeliveryHistogram(view *analytics.View) ([]byte, error) {
	bars := make([]chart.Value, 0, len(view.Histogram))
	for _, bin := range view.Histogram {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%.0f-%.0f", bin.Low, bin.High),
			Value: float64(bin.Count),
		})
	}
	return r.renderBars(NameDeliveryHistogram, "Delivery Time Distribution (Minutes)", bars)
}

// CategoryTimes draws average delivery time per product category.
func (r *Renderer) CategoryTimes(view *analytics.View) ([]byte, error) {
	bars := make([]chart.Value, 0, len(view.Categories))
	for _, c := range view.Categories {
		bars = append(bars, chart.Value{Label: c.Category, Value: c.AvgDeliveryTime})
	}
	return r.renderBars(NameCategoryTimes, "Average Delivery Time by Category", bars)
}

// PlatformValues draws total revenue per platform.
func (r *Renderer) PlatformValues(view *analytics.View) ([]byte, error) {
	bars := make([]chart.Value, 0, len(view.Platforms))
	for _, p := range view.Platforms {
		bars = append(bars, chart.Value{Label: p.Platform, Value: p.TotalRevenue})
	}
	return r.renderBars(NamePlatformValues, "Revenue by Platform (INR)", bars)
}

// ValueVsTime draws order value against delivery time. Without raw
// points it falls back to per-platform averages.
func (r *Renderer) ValueVsTime(view *analytics.View) ([]byte, error) {
	xs := make([]float64, 0, len(view.Platforms))
	ys := make([]float64, 0, len(view.Platforms))
	for _, p := range view.Platforms {
		xs = append(xs, p.AvgOrderValue)
		ys = append(ys, p.AvgDeliveryTime)
	}
	return r.scatter(NameValueVsTime, xs, ys)
}

// ValueVsTimeFromPoints draws the scatter from raw per-order points
// instead of platform averages.
func (r *Renderer) ValueVsTimeFromPoints(points *ScatterPoints) ([]byte, error) {
	return r.scatter(NameValueVsTime, points.Values, points.Times)
}

func (r *Renderer) scatter(name string, xs, ys []float64) ([]byte, error) {
	if len(xs) == 0 {
		return nil, apperrors.ChartRenderError(name, fmt.Errorf("no data points"))
	}

	ch := chart.Chart{
		Title:  "Order Value vs Delivery Time",
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{Name: "Order Value (INR)", Range: seriesRange(xs)},
		YAxis:  chart.YAxis{Name: "Delivery Time (Minutes)", Range: seriesRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    drawing.ColorFromHex("2980b9"),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.ChartRenderError(name, err)
	}
	return buf.Bytes(), nil
}

// DailySeries draws the per-day order count as a time series.
func (r *Renderer) DailySeries(view *analytics.View) ([]byte, error) {
	if len(view.Daily) == 0 {
		return nil, apperrors.ChartRenderError(NameDailySeries, fmt.Errorf("no timestamped data"))
	}

	xs := make([]float64, 0, len(view.Daily))
	ys := make([]float64, 0, len(view.Daily))
	ticks := make([]chart.Tick, 0, len(view.Daily))
	for i, p := range view.Daily {
		xs = append(xs, float64(i))
		ys = append(ys, float64(p.Orders))
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Date})
	}

	ch := chart.Chart{
		Title:  "Orders per Day",
		Width:  r.Width,
		Height: r.Height,
		XAxis:  chart.XAxis{Ticks: ticks, Range: seriesRange(xs)},
		YAxis:  chart.YAxis{Name: "Orders", Range: seriesRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("27ae60"),
					StrokeWidth: 2,
					DotWidth:    3,
					DotColor:    drawing.ColorFromHex("27ae60"),
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.ChartRenderError(NameDailySeries, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderBars(name, title string, bars []chart.Value) ([]byte, error) {
	if len(bars) == 0 {
		return nil, apperrors.ChartRenderError(name, fmt.Errorf("no data points"))
	}

	for i := range bars {
		bars[i].Style = chart.Style{
			FillColor:   chart.GetDefaultColor(i),
			StrokeColor: chart.GetDefaultColor(i),
		}
	}

	ch := chart.BarChart{
		Title:    title,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: 48,
		XAxis:    chart.Style{},
		YAxis:    chart.YAxis{Range: barRange(bars)},
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.ChartRenderError(name, err)
	}
	return buf.Bytes(), nil
}

// barRange gives bar charts an explicit y-axis range. go-chart rejects
// a zero-width range, which a single bar or uniform values would
// otherwise produce.
func barRange(bars []chart.Value) *chart.ContinuousRange {
	top := 0.0
	for _, b := range bars {
		if b.Value > top {
			top = b.Value
		}
	}
	if top <= 0 {
		top = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: top * 1.1}
}

// seriesRange pads a degenerate axis range so a single point or a
// constant series still renders.
func seriesRange(vals []float64) *chart.ContinuousRange {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 1
		}
		lo -= pad
		hi += pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
