package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"deliverypulse/internal/dataset"
	apperrors "deliverypulse/internal/errors"
	"deliverypulse/internal/report"
	"deliverypulse/internal/services"
)

var validate = validator.New()

// GenerateReportRequest is the body of POST /api/reports.
type GenerateReportRequest struct {
	Format   string `json:"format" validate:"required,oneof=pdf docx xlsx"`
	Platform string `json:"platform,omitempty"`
	Category string `json:"category,omitempty"`
}

// GenerateReportResponse describes the generated report file.
type GenerateReportResponse struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	Size        int64  `json:"size"`
	GeneratedAt string `json:"generated_at"`
}

// ReportHandler serves report generation requests.
type ReportHandler struct {
	reports *services.ReportService
	errors  *apperrors.ErrorHandler
	logger  *slog.Logger
}

// NewReportHandler creates the report generation handler.
func NewReportHandler(reports *services.ReportService, errHandler *apperrors.ErrorHandler, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, errors: errHandler, logger: logger}
}

// GenerateReport handles POST /api/reports.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req GenerateReportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errors.HandleError(w, r, apperrors.ErrInvalidRequest)
		return
	}

	if err := validate.Struct(&req); err != nil {
		h.errors.HandleError(w, r, apperrors.ErrValidation("format", "format must be one of pdf, docx, xlsx"))
		return
	}

	format, err := report.ParseFormat(req.Format)
	if err != nil {
		h.errors.HandleError(w, r, apperrors.ErrValidation("format", err.Error()))
		return
	}

	filter := dataset.Filter{Platform: req.Platform, Category: req.Category}
	info, err := h.reports.Generate(r.Context(), filter, format)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, GenerateReportResponse{
		Path:        info.Path,
		Filename:    info.Filename,
		Format:      string(info.Format),
		Size:        info.Size,
		GeneratedAt: info.GeneratedAt.Format("2006-01-02 15:04:05"),
	})
}
