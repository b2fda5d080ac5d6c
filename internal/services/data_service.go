// Package services holds the application services sitting between the
// HTTP transport and the dataset, analytics and report packages.
package services

import (
	"context"
	"log/slog"
	"sync"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
	"deliverypulse/internal/dataset"
	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/infrastructure"
)

// DataService serves aggregate views over the loaded dataset. The
// dataset is immutable, so views are cached per filter.
type DataService struct {
	ds     *dataset.Dataset
	logger *slog.Logger

	mu    sync.RWMutex
	views map[dataset.Filter]*analytics.View
}

// NewDataService wraps a loaded dataset.
func NewDataService(ds *dataset.Dataset, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	infrastructure.DatasetRows.Set(float64(ds.Len()))
	return &DataService{
		ds:     ds,
		logger: logger,
		views:  make(map[dataset.Filter]*analytics.View),
	}
}

// Dataset exposes the underlying dataset for read-only use.
func (s *DataService) Dataset() *dataset.Dataset {
	return s.ds
}

// Aggregates returns the aggregate view for the filter, validating the
// filter values against the dataset first.
func (s *DataService) Aggregates(ctx context.Context, filter dataset.Filter) (*analytics.View, error) {
	if err := s.validateFilter(filter); err != nil {
		return nil, err
	}

	s.mu.RLock()
	view, ok := s.views[filter]
	s.mu.RUnlock()
	if ok {
		return view, nil
	}

	view = analytics.Build(s.ds.Records(), filter)

	s.mu.Lock()
	s.views[filter] = view
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "aggregate view built",
		slog.String("platform", filter.Platform),
		slog.String("category", filter.Category),
		slog.Int("orders", view.Overview.TotalOrders))

	return view, nil
}

// Platforms lists the distinct platforms in the dataset.
func (s *DataService) Platforms() []string {
	return s.ds.Platforms()
}

// Categories lists the distinct product categories in the dataset.
func (s *DataService) Categories() []string {
	return s.ds.Categories()
}

// Records returns the records matching the filter, validating the
// filter first.
func (s *DataService) Records(filter dataset.Filter) ([]dataset.DeliveryRecord, error) {
	if err := s.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter.Apply(s.ds.Records()), nil
}

// ScatterPoints extracts the raw order value and delivery time pairs for
// the records matching the filter.
func (s *DataService) ScatterPoints(filter dataset.Filter) *charts.ScatterPoints {
	matched := filter.Apply(s.ds.Records())
	points := &charts.ScatterPoints{
		Values: make([]float64, 0, len(matched)),
		Times:  make([]float64, 0, len(matched)),
	}
	for _, r := range matched {
		points.Values = append(points.Values, r.OrderValue)
		points.Times = append(points.Times, r.DeliveryTimeMin)
	}
	return points
}

// validateFilter rejects platform or category values that do not exist
// in the dataset. Empty values always pass.
func (s *DataService) validateFilter(filter dataset.Filter) error {
	if filter.Platform != "" && !contains(s.ds.Platforms(), filter.Platform) {
		return apperrors.ErrValidation("platform", "unknown platform: "+filter.Platform)
	}
	if filter.Category != "" && !contains(s.ds.Categories(), filter.Category) {
		return apperrors.ErrValidation("category", "unknown category: "+filter.Category)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
