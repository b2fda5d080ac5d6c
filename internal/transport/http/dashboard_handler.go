package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"deliverypulse/internal/analytics"
	"deliverypulse/internal/charts"
	"deliverypulse/internal/dataset"
	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/services"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// chartTile pairs a chart name with its display title and image URL.
type chartTile struct {
	Name  string
	Title string
	URL   string
}

// dashboardData is the template context for the dashboard page.
type dashboardData struct {
	View       *analytics.View
	Platforms  []string
	Categories []string
	Charts     []chartTile
	Source     string
}

// DashboardHandler renders the HTML dashboard page.
type DashboardHandler struct {
	data   *services.DataService
	errors *apperrors.ErrorHandler
	logger *slog.Logger
}

// NewDashboardHandler creates the dashboard page handler.
func NewDashboardHandler(data *services.DataService, errHandler *apperrors.ErrorHandler, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{data: data, errors: errHandler, logger: logger}
}

// GetDashboard handles GET /. Unknown filter values fall back to the
// unfiltered view rather than erroring the whole page.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := filterFromQuery(r)

	view, err := h.data.Aggregates(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid dashboard filter, using unfiltered view",
			slog.String("platform", filter.Platform),
			slog.String("category", filter.Category))
		filter = dataset.Filter{}
		view, err = h.data.Aggregates(ctx, filter)
		if err != nil {
			h.errors.HandleError(w, r, err)
			return
		}
	}

	data := dashboardData{
		View:       view,
		Platforms:  h.data.Platforms(),
		Categories: h.data.Categories(),
		Charts:     chartTiles(view, filter),
		Source:     h.data.Dataset().Source(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		h.logger.ErrorContext(ctx, "dashboard render failed", slog.String("error", err.Error()))
	}
}

func chartTiles(view *analytics.View, filter dataset.Filter) []chartTile {
	titles := map[string]string{
		charts.NameDeliveryHistogram: "Delivery Time Distribution",
		charts.NameCategoryTimes:     "Average Delivery Time by Category",
		charts.NameValueVsTime:       "Order Value vs Delivery Time",
		charts.NamePlatformValues:    "Revenue by Platform",
		charts.NameDailySeries:       "Orders per Day",
	}

	query := url.Values{}
	if filter.Platform != "" {
		query.Set("platform", filter.Platform)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	suffix := ""
	if encoded := query.Encode(); encoded != "" {
		suffix = "?" + encoded
	}

	tiles := make([]chartTile, 0, len(titles))
	for _, name := range charts.Names() {
		if name == charts.NameDailySeries && len(view.Daily) == 0 {
			continue
		}
		if view.Empty() {
			continue
		}
		tiles = append(tiles, chartTile{
			Name:  name,
			Title: titles[name],
			URL:   "/charts/" + name + ".png" + suffix,
		})
	}
	return tiles
}
