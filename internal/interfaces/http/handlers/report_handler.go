package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/interfaces/http/response"
)

type ReportService interface {
	Create(ctx context.Context, reporterID uuid.UUID, input *entities.CreateReportInput) (*entities.Report, error)
}

// ReportHandler handles user-filed reports
type ReportHandler struct {
	reportUsecase ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportUsecase ReportService) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// CreateReport files a report as the caller
// POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input entities.CreateReportInput
	if !bindJSON(c, &input) {
		return
	}

	report, err := h.reportUsecase.Create(c.Request.Context(), user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, report)
}
