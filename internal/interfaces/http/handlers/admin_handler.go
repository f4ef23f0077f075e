package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/interfaces/http/response"
	"localtrade.backend/pkg/utils"
)

type AdminService interface {
	Stats(ctx context.Context) (*entities.Stats, error)
	ListReports(ctx context.Context, status *entities.ReportStatus) ([]*entities.Report, error)
	GetReport(ctx context.Context, id uuid.UUID) (*entities.Report, error)
	AdvanceReport(ctx context.Context, adminID, reportID uuid.UUID, status entities.ReportStatus) (*entities.Report, error)
	ListUsers(ctx context.Context, search string) ([]*entities.User, error)
	SetSuspended(ctx context.Context, adminID, userID uuid.UUID, suspended bool) (*entities.User, error)
	SetVerified(ctx context.Context, adminID, userID uuid.UUID, verified bool) (*entities.User, error)
	ListAuditLogs(ctx context.Context, page, limit int) (*utils.Page[*entities.AuditLog], error)
}

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	adminUsecase AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// GetStats returns dashboard counts
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListReports lists reports, optionally by status
// GET /api/admin/reports
func (h *AdminHandler) ListReports(c *gin.Context) {
	var status *entities.ReportStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s := entities.ReportStatus(raw)
		status = &s
	}

	reports, err := h.adminUsecase.ListReports(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reports)
}

// GetReport returns one report
// GET /api/admin/reports/:id
func (h *AdminHandler) GetReport(c *gin.Context) {
	id, ok := pathID(c, "Invalid report id")
	if !ok {
		return
	}

	report, err := h.adminUsecase.GetReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// AdvanceReport moves a report forward
// PATCH /api/admin/reports/:id
func (h *AdminHandler) AdvanceReport(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid report id")
	if !ok {
		return
	}

	var input entities.AdvanceReportInput
	if !bindJSON(c, &input) {
		return
	}

	report, err := h.adminUsecase.AdvanceReport(c.Request.Context(), admin.ID, id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// ListUsers lists users
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// SuspendUser suspends or reinstates a user
// PATCH /api/admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid user id")
	if !ok {
		return
	}

	var input entities.SuspendUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.adminUsecase.SetSuspended(c.Request.Context(), admin.ID, id, *input.IsSuspended)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// VerifyUser grants or revokes verification
// PATCH /api/admin/users/:id/verify
func (h *AdminHandler) VerifyUser(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid user id")
	if !ok {
		return
	}

	var input entities.VerifyUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.adminUsecase.SetVerified(c.Request.Context(), admin.ID, id, *input.IsVerified)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ListAuditLogs returns one page of the audit trail
// GET /api/admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageLimit)))

	logs, err := h.adminUsecase.ListAuditLogs(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs)
}
