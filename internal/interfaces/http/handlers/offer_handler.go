package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/interfaces/http/response"
)

type OfferService interface {
	List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Offer, error)
	Create(ctx context.Context, userID uuid.UUID, input *entities.CreateOfferInput) (*entities.Offer, error)
	Update(ctx context.Context, id, userID uuid.UUID, input *entities.UpdateOfferInput) (*entities.Offer, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type OfferMapService interface {
	Markers(ctx context.Context, filter entities.OfferFilter) ([]*entities.OfferMarker, error)
}

// OfferHandler handles offer endpoints
type OfferHandler struct {
	offerUsecase OfferService
	mapUsecase   OfferMapService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerUsecase OfferService, mapUsecase OfferMapService) *OfferHandler {
	return &OfferHandler{offerUsecase: offerUsecase, mapUsecase: mapUsecase}
}

// ListOffers lists offers, newest first
// GET /api/offers
func (h *OfferHandler) ListOffers(c *gin.Context) {
	filter, err := offerFilter(c, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	offers, err := h.offerUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offers)
}

// Markers groups offers into map markers. Only active offers unless asked otherwise.
// GET /api/offers/map
func (h *OfferHandler) Markers(c *gin.Context) {
	active := true
	filter, err := offerFilter(c, &active)
	if err != nil {
		response.Error(c, err)
		return
	}

	markers, err := h.mapUsecase.Markers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, markers)
}

// GetOffer returns one offer
// GET /api/offers/:id
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, ok := pathID(c, "Invalid offer id")
	if !ok {
		return
	}

	offer, err := h.offerUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// CreateOffer posts an offer owned by the caller
// POST /api/offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input entities.CreateOfferInput
	if !bindJSON(c, &input) {
		return
	}

	offer, err := h.offerUsecase.Create(c.Request.Context(), user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, offer)
}

// UpdateOffer updates an offer owned by the caller
// PATCH /api/offers/:id
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid offer id")
	if !ok {
		return
	}

	var input entities.UpdateOfferInput
	if !bindJSON(c, &input) {
		return
	}

	offer, err := h.offerUsecase.Update(c.Request.Context(), id, user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, offer)
}

// DeleteOffer deletes an offer owned by the caller
// DELETE /api/offers/:id
func (h *OfferHandler) DeleteOffer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Invalid offer id")
	if !ok {
		return
	}

	if err := h.offerUsecase.Delete(c.Request.Context(), id, user.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
