package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/interfaces/http/middleware"
	"localtrade.backend/internal/interfaces/http/response"
)

// currentUser returns the caller attached by WalletAuth, writing 401 when absent
func currentUser(c *gin.Context) (*entities.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return nil, false
	}
	return user, true
}

func pathID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest(message))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

// offerFilter parses type, isActive and userId. defaultActive applies when
// isActive is absent.
func offerFilter(c *gin.Context, defaultActive *bool) (entities.OfferFilter, error) {
	filter := entities.OfferFilter{IsActive: defaultActive}

	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t := entities.OfferType(raw)
		if !t.Valid() {
			return filter, domainerrors.BadRequest("Invalid offer type")
		}
		filter.Type = &t
	}
	if raw := strings.TrimSpace(c.Query("isActive")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, domainerrors.BadRequest("Invalid isActive value")
		}
		filter.IsActive = &active
	}
	if raw := strings.TrimSpace(c.Query("userId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domainerrors.BadRequest("Invalid user id")
		}
		filter.UserID = &id
	}
	return filter, nil
}
