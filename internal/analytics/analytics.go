// Package analytics builds aggregate views over delivery records. All
// functions are pure; the same records and filter always produce the
// same view.
package analytics

import (
	"math"
	"sort"

	"deliverypulse/internal/dataset"
)

// HistogramBins is the number of equal-width buckets in the
// delivery-time histogram.
const HistogramBins = 10

// metricNames is the fixed ordering used for extremes, percentiles and
// the correlation matrix.
var metricNames = []string{
	dataset.ColOrderValue,
	dataset.ColDeliveryTime,
	dataset.ColRating,
}

func metricValue(r dataset.DeliveryRecord, metric string) float64 {
	switch metric {
	case dataset.ColOrderValue:
		return r.OrderValue
	case dataset.ColDeliveryTime:
		return r.DeliveryTimeMin
	default:
		return r.Rating
	}
}

// Build computes the aggregate view for the records matching the filter.
// An empty match yields a view with zeroed overview and empty sections
// rather than an error.
func Build(records []dataset.DeliveryRecord, filter dataset.Filter) *View {
	matched := filter.Apply(records)
	platforms := buildPlatforms(matched)

	return &View{
		Filter:      filter,
		Overview:    buildOverview(matched),
		Platforms:   platforms,
		Categories:  buildCategories(matched),
		Extremes:    buildExtremes(matched, platforms),
		Percentiles: buildPercentiles(matched),
		Correlation: buildCorrelation(matched),
		Histogram:   buildHistogram(matched),
		Daily:       buildDaily(matched),
	}
}

func buildOverview(records []dataset.DeliveryRecord) Overview {
	ov := Overview{TotalOrders: len(records)}
	if len(records) == 0 {
		return ov
	}

	platforms := make(map[string]struct{})
	categories := make(map[string]struct{})
	var sumValue, sumTime, sumRating float64
	for _, r := range records {
		platforms[r.Platform] = struct{}{}
		categories[r.Category] = struct{}{}
		sumValue += r.OrderValue
		sumTime += r.DeliveryTimeMin
		sumRating += r.Rating
	}

	n := float64(len(records))
	ov.PlatformCount = len(platforms)
	ov.CategoryCount = len(categories)
	ov.TotalRevenue = sumValue
	ov.AvgOrderValue = sumValue / n
	ov.AvgDeliveryTime = sumTime / n
	ov.AvgRating = sumRating / n

	// High-value means above the mean order value of the filtered set
	for _, r := range records {
		if r.OrderValue > ov.AvgOrderValue {
			ov.HighValueOrders++
		}
	}
	return ov
}

func buildPlatforms(records []dataset.DeliveryRecord) []PlatformSummary {
	groups := groupBy(records, func(r dataset.DeliveryRecord) string { return r.Platform })

	summaries := make([]PlatformSummary, 0, len(groups))
	for name, recs := range groups {
		values := metricColumn(recs, dataset.ColOrderValue)
		times := metricColumn(recs, dataset.ColDeliveryTime)
		sort.Float64s(times)

		summaries = append(summaries, PlatformSummary{
			Platform:           name,
			Orders:             len(recs),
			TotalRevenue:       sum(values),
			AvgOrderValue:      mean(values),
			MinOrderValue:      minOf(values),
			MaxOrderValue:      maxOf(values),
			AvgDeliveryTime:    mean(times),
			MedianDeliveryTime: percentile(times, 50),
			P90DeliveryTime:    percentile(times, 90),
			MinDeliveryTime:    times[0],
			MaxDeliveryTime:    times[len(times)-1],
			AvgRating:          mean(metricColumn(recs, dataset.ColRating)),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Platform < summaries[j].Platform
	})
	return summaries
}

func buildCategories(records []dataset.DeliveryRecord) []CategorySummary {
	groups := groupBy(records, func(r dataset.DeliveryRecord) string { return r.Category })

	summaries := make([]CategorySummary, 0, len(groups))
	for name, recs := range groups {
		values := metricColumn(recs, dataset.ColOrderValue)
		times := metricColumn(recs, dataset.ColDeliveryTime)
		sort.Float64s(times)

		summaries = append(summaries, CategorySummary{
			Category:           name,
			Orders:             len(recs),
			TotalRevenue:       sum(values),
			AvgOrderValue:      mean(values),
			AvgDeliveryTime:    mean(times),
			MedianDeliveryTime: percentile(times, 50),
			AvgRating:          mean(metricColumn(recs, dataset.ColRating)),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Category < summaries[j].Category
	})
	return summaries
}

// buildExtremes summarises each metric and names the platforms with the
// highest and lowest per-platform mean of that metric.
func buildExtremes(records []dataset.DeliveryRecord, platforms []PlatformSummary) []MetricExtreme {
	if len(records) == 0 {
		return nil
	}

	platformMean := func(p PlatformSummary, metric string) float64 {
		switch metric {
		case dataset.ColOrderValue:
			return p.AvgOrderValue
		case dataset.ColDeliveryTime:
			return p.AvgDeliveryTime
		default:
			return p.AvgRating
		}
	}

	extremes := make([]MetricExtreme, 0, len(metricNames))
	for _, metric := range metricNames {
		values := metricColumn(records, metric)
		ex := MetricExtreme{
			Metric: metric,
			Min:    minOf(values),
			Max:    maxOf(values),
			Avg:    mean(values),
		}

		if len(platforms) > 0 {
			highest, lowest := platforms[0], platforms[0]
			for _, p := range platforms[1:] {
				if platformMean(p, metric) > platformMean(highest, metric) {
					highest = p
				}
				if platformMean(p, metric) < platformMean(lowest, metric) {
					lowest = p
				}
			}
			ex.HighestPlatform = highest.Platform
			ex.LowestPlatform = lowest.Platform
		}
		extremes = append(extremes, ex)
	}
	return extremes
}

func buildPercentiles(records []dataset.DeliveryRecord) []Percentiles {
	if len(records) == 0 {
		return nil
	}

	out := make([]Percentiles, 0, len(metricNames))
	for _, metric := range metricNames {
		values := metricColumn(records, metric)
		sort.Float64s(values)
		out = append(out, Percentiles{
			Metric: metric,
			P25:    percentile(values, 25),
			P50:    percentile(values, 50),
			P75:    percentile(values, 75),
			P90:    percentile(values, 90),
		})
	}
	return out
}

func buildCorrelation(records []dataset.DeliveryRecord) CorrelationMatrix {
	matrix := CorrelationMatrix{
		Metrics: append([]string(nil), metricNames...),
		Values:  make([][]float64, len(metricNames)),
	}

	columns := make([][]float64, len(metricNames))
	for i, metric := range metricNames {
		columns[i] = metricColumn(records, metric)
	}

	for i := range metricNames {
		matrix.Values[i] = make([]float64, len(metricNames))
		for j := range metricNames {
			matrix.Values[i][j] = pearson(columns[i], columns[j])
		}
	}
	return matrix
}

func buildHistogram(records []dataset.DeliveryRecord) []HistogramBin {
	if len(records) == 0 {
		return nil
	}

	times := metricColumn(records, dataset.ColDeliveryTime)
	lo, hi := minOf(times), maxOf(times)

	// All identical values collapse into a single bin
	if lo == hi {
		return []HistogramBin{{Low: lo, High: hi, Count: len(records)}}
	}

	width := (hi - lo) / HistogramBins
	bins := make([]HistogramBin, HistogramBins)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[len(bins)-1].High = hi

	for _, t := range times {
		idx := int((t - lo) / width)
		if idx >= HistogramBins {
			idx = HistogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

func buildDaily(records []dataset.DeliveryRecord) []DailyPoint {
	days := make(map[string][]dataset.DeliveryRecord)
	for _, r := range records {
		if r.OrderedAt.IsZero() {
			continue
		}
		key := r.OrderedAt.Format("2006-01-02")
		days[key] = append(days[key], r)
	}
	if len(days) == 0 {
		return nil
	}

	points := make([]DailyPoint, 0, len(days))
	for date, recs := range days {
		values := metricColumn(recs, dataset.ColOrderValue)
		points = append(points, DailyPoint{
			Date:            date,
			Orders:          len(recs),
			TotalRevenue:    sum(values),
			AvgOrderValue:   mean(values),
			AvgDeliveryTime: mean(metricColumn(recs, dataset.ColDeliveryTime)),
			AvgRating:       mean(metricColumn(recs, dataset.ColRating)),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func groupBy(records []dataset.DeliveryRecord, key func(dataset.DeliveryRecord) string) map[string][]dataset.DeliveryRecord {
	groups := make(map[string][]dataset.DeliveryRecord)
	for _, r := range records {
		groups[key(r)] = append(groups[key(r)], r)
	}
	return groups
}

func metricColumn(records []dataset.DeliveryRecord, metric string) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = metricValue(r, metric)
	}
	return values
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// percentile uses the nearest-rank method over pre-sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// pearson returns the Pearson correlation of x and y. A constant column
// has no defined correlation; 0 is reported instead of NaN, including on
// the diagonal.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
