package http

import (
	"log/slog"
	"net/http"

	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/exporter"
	"deliverypulse/internal/services"
)

// ExportHandler streams filtered records as a CSV download.
type ExportHandler struct {
	data   *services.DataService
	errors *apperrors.ErrorHandler
	logger *slog.Logger
}

// NewExportHandler creates the CSV export handler.
func NewExportHandler(data *services.DataService, errHandler *apperrors.ErrorHandler, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{data: data, errors: errHandler, logger: logger}
}

// ExportCSV handles GET /api/export.csv.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.data.Records(filterFromQuery(r))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="delivery_export.csv"`)

	err = exporter.WriteCSV(w, records, exporter.WriteOptions{
		BOMPrefix:        true,
		IncludeTimestamp: h.data.Dataset().HasTimestamps(),
	})
	if err != nil {
		// Headers are already out; all we can do is log
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("error", err.Error()))
	}
}
