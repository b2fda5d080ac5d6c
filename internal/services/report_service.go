package services

import (
	"context"
	"log/slog"
	"time"

	"deliverypulse/internal/dataset"
	"deliverypulse/internal/infrastructure"
	"deliverypulse/internal/report"
)

// ReportService generates analysis reports from the current dataset.
type ReportService struct {
	data      *DataService
	generator *report.Generator
	logger    *slog.Logger
}

// NewReportService wires the report generator to the data service.
func NewReportService(data *DataService, reportsDir string, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		data:      data,
		generator: report.NewGenerator(reportsDir, logger),
		logger:    logger,
	}
}

// Generate builds the aggregate view for the filter and writes a report
// in the requested format.
func (s *ReportService) Generate(ctx context.Context, filter dataset.Filter, format report.Format) (*report.Info, error) {
	start := time.Now()

	view, err := s.data.Aggregates(ctx, filter)
	if err != nil {
		infrastructure.ReportsGenerated.WithLabelValues(string(format), "error").Inc()
		return nil, err
	}

	info, err := s.generator.Generate(ctx, view, s.data.ScatterPoints(filter), format)
	if err != nil {
		infrastructure.ReportsGenerated.WithLabelValues(string(format), "error").Inc()
		s.logger.ErrorContext(ctx, "report generation failed",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return nil, err
	}

	infrastructure.ReportsGenerated.WithLabelValues(string(format), "success").Inc()
	infrastructure.ReportDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())

	return info, nil
}
