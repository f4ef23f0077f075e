package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/interfaces/http/response"
)

type AuthService interface {
	Connect(ctx context.Context, walletAddress string) (*entities.User, error)
}

// AuthHandler handles wallet connection
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Connect gets or creates the user for a wallet address
// POST /api/auth/connect
func (h *AuthHandler) Connect(c *gin.Context) {
	var input entities.ConnectWalletInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.authUsecase.Connect(c.Request.Context(), input.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
