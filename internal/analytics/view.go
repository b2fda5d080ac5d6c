package analytics

import "deliverypulse/internal/dataset"

// Overview carries the headline figures shown at the top of the dashboard.
// HighValueOrders counts orders whose value exceeds the mean order value.
type Overview struct {
	TotalOrders     int     `json:"total_orders"`
	PlatformCount   int     `json:"platform_count"`
	CategoryCount   int     `json:"category_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	HighValueOrders int     `json:"high_value_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
	AvgRating       float64 `json:"avg_rating"`
}

// PlatformSummary aggregates all orders for one platform.
type PlatformSummary struct {
	Platform           string  `json:"platform"`
	Orders             int     `json:"orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	MinOrderValue      float64 `json:"min_order_value"`
	MaxOrderValue      float64 `json:"max_order_value"`
	AvgDeliveryTime    float64 `json:"avg_delivery_time"`
	MedianDeliveryTime float64 `json:"median_delivery_time"`
	P90DeliveryTime    float64 `json:"p90_delivery_time"`
	MinDeliveryTime    float64 `json:"min_delivery_time"`
	MaxDeliveryTime    float64 `json:"max_delivery_time"`
	AvgRating          float64 `json:"avg_rating"`
}

// CategorySummary aggregates all orders for one product category.
type CategorySummary struct {
	Category           string  `json:"category"`
	Orders             int     `json:"orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	AvgDeliveryTime    float64 `json:"avg_delivery_time"`
	MedianDeliveryTime float64 `json:"median_delivery_time"`
	AvgRating          float64 `json:"avg_rating"`
}

// MetricExtreme summarises one numeric metric across the filtered set,
// naming the platforms with the highest and lowest per-platform mean.
type MetricExtreme struct {
	Metric          string  `json:"metric"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	Avg             float64 `json:"avg"`
	HighestPlatform string  `json:"highest_platform"`
	LowestPlatform  string  `json:"lowest_platform"`
}

// CorrelationMatrix holds pairwise Pearson correlations between the
// numeric metrics. Values[i][j] is the correlation of Metrics[i] with
// Metrics[j].
type CorrelationMatrix struct {
	Metrics []string    `json:"metrics"`
	Values  [][]float64 `json:"values"`
}

// HistogramBin is one bucket of the delivery-time histogram. Low is
// inclusive, High exclusive except for the last bin.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// DailyPoint is one day of the order time series. Only produced when the
// dataset carries timestamps.
type DailyPoint struct {
	Date            string  `json:"date"`
	Orders          int     `json:"orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
	AvgRating       float64 `json:"avg_rating"`
}

// Percentiles holds the quartile spread of a metric.
type Percentiles struct {
	Metric string  `json:"metric"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// View is the full aggregate picture for one filtered slice of the
// dataset. It is a pure function of the records and never references
// the dataset it was built from.
type View struct {
	Filter      dataset.Filter    `json:"filter"`
	Overview    Overview          `json:"overview"`
	Platforms   []PlatformSummary `json:"platforms"`
	Categories  []CategorySummary `json:"categories"`
	Extremes    []MetricExtreme   `json:"extremes"`
	Percentiles []Percentiles     `json:"percentiles"`
	Correlation CorrelationMatrix `json:"correlation"`
	Histogram   []HistogramBin    `json:"delivery_histogram"`
	Daily       []DailyPoint      `json:"daily_series,omitempty"`
}

// Empty reports whether the view was built from zero records.
func (v *View) Empty() bool {
	return v.Overview.TotalOrders == 0
}
