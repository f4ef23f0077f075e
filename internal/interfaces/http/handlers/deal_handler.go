package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/interfaces/http/response"
)

type DealService interface {
	List(ctx context.Context, userID uuid.UUID, status *entities.DealStatus) ([]*entities.Deal, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*entities.Deal, error)
	Create(ctx context.Context, callerID uuid.UUID, input *entities.CreateDealInput) (*entities.Deal, error)
	Update(ctx context.Context, id, callerID uuid.UUID, input *entities.UpdateDealInput) (*entities.Deal, error)
}

// DealHandler handles deal endpoints
type DealHandler struct {
	dealUsecase DealService
}

// NewDealHandler creates a new deal handler
func NewDealHandler(dealUsecase DealService) *DealHandler {
	return &DealHandler{dealUsecase: dealUsecase}
}

// ListDeals lists the caller's deals
// GET /api/deals
func (h *DealHandler) ListDeals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var status *entities.DealStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s := entities.DealStatus(raw)
		status = &s
	}

	deals, err := h.dealUsecase.List(c.Request.Context(), user.ID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, deals)
}

// GetDeal returns a deal the caller takes part in
// GET /api/deals/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid deal id")
	if !ok {
		return
	}

	deal, err := h.dealUsecase.Get(c.Request.Context(), id, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, deal)
}

// CreateDeal opens a deal against an offer
// POST /api/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input entities.CreateDealInput
	if !bindJSON(c, &input) {
		return
	}

	deal, err := h.dealUsecase.Create(c.Request.Context(), user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, deal)
}

// UpdateDeal changes status, notes or tx hash of a deal
// PATCH /api/deals/:id
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid deal id")
	if !ok {
		return
	}

	var input entities.UpdateDealInput
	if !bindJSON(c, &input) {
		return
	}

	deal, err := h.dealUsecase.Update(c.Request.Context(), id, user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, deal)
}
