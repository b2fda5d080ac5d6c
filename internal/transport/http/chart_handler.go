package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"deliverypulse/internal/charts"
	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/infrastructure"
	"deliverypulse/internal/services"
)

// ChartHandler serves rendered chart PNGs.
type ChartHandler struct {
	data     *services.DataService
	renderer *charts.Renderer
	errors   *apperrors.ErrorHandler
	logger   *slog.Logger
}

// NewChartHandler creates the chart image handler.
func NewChartHandler(data *services.DataService, errHandler *apperrors.ErrorHandler, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{
		data:     data,
		renderer: charts.NewRenderer(),
		errors:   errHandler,
		logger:   logger,
	}
}

// GetChart handles GET /charts/{name}.png. The filter query parameters
// apply the same way as on the aggregate API.
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".png")

	if !isKnownChart(name) {
		infrastructure.ChartsRendered.WithLabelValues(name, "not_found").Inc()
		h.errors.HandleError(w, r, apperrors.ErrChartNotFound)
		return
	}

	filter := filterFromQuery(r)
	view, err := h.data.Aggregates(r.Context(), filter)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	var png []byte
	if name == charts.NameValueVsTime {
		png, err = h.renderer.ValueVsTimeFromPoints(h.data.ScatterPoints(filter))
	} else {
		png, err = h.renderer.Render(name, view)
	}
	if err != nil {
		infrastructure.ChartsRendered.WithLabelValues(name, "error").Inc()
		h.errors.HandleError(w, r, err)
		return
	}

	infrastructure.ChartsRendered.WithLabelValues(name, "success").Inc()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func isKnownChart(name string) bool {
	for _, known := range charts.Names() {
		if name == known {
			return true
		}
	}
	return false
}
