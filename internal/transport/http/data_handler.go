package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"deliverypulse/internal/dataset"
	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/services"
)

// DataHandler serves the JSON aggregate API.
type DataHandler struct {
	data   *services.DataService
	errors *apperrors.ErrorHandler
	logger *slog.Logger
}

// NewDataHandler creates the aggregate API handler.
func NewDataHandler(data *services.DataService, errHandler *apperrors.ErrorHandler, logger *slog.Logger) *DataHandler {
	return &DataHandler{data: data, errors: errHandler, logger: logger}
}

// filterFromQuery reads the optional platform and category parameters.
func filterFromQuery(r *http.Request) dataset.Filter {
	return dataset.Filter{
		Platform: r.URL.Query().Get("platform"),
		Category: r.URL.Query().Get("category"),
	}
}

// GetAggregates handles GET /api/aggregates.
func (h *DataHandler) GetAggregates(w http.ResponseWriter, r *http.Request) {
	view, err := h.data.Aggregates(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, view)
}

// GetPlatforms handles GET /api/platforms.
func (h *DataHandler) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string][]string{"platforms": h.data.Platforms()})
}

// GetCategories handles GET /api/categories.
func (h *DataHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string][]string{"categories": h.data.Categories()})
}
