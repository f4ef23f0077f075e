package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/interfaces/http/response"
	"localtrade.backend/pkg/logger"
	"localtrade.backend/pkg/wallet"
)

const (
	// WalletAddressHeader carries the caller's wallet address
	WalletAddressHeader = "X-Wallet-Address"
	// CurrentUserKey is the gin context key for the resolved user
	CurrentUserKey = "currentUser"
)

// CallerResolver resolves a wallet address to a user, provisioning unseen wallets
type CallerResolver interface {
	ResolveCaller(ctx context.Context, walletAddress string) (*entities.User, error)
}

// AdminChecker reports whether a user holds the admin capability
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// WalletAuth resolves the caller from the X-Wallet-Address header. Without the
// header the request is rejected unless allowAnonymous substitutes the placeholder.
func WalletAuth(resolver CallerResolver, allowAnonymous bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := strings.TrimSpace(c.GetHeader(WalletAddressHeader))
		if address == "" {
			if !allowAnonymous {
				response.ErrorMessage(c, http.StatusUnauthorized, "Wallet address header is required")
				return
			}
			logger.Warn(c.Request.Context(), "Missing wallet header, using placeholder identity",
				zap.String("path", c.Request.URL.Path),
			)
			address = wallet.PlaceholderAddress
		}

		user, err := resolver.ResolveCaller(c.Request.Context(), address)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(CurrentUserKey, user)
		ctx := context.WithValue(c.Request.Context(), logger.WalletAddressKey, user.WalletAddress)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin rejects callers without an admin row. It must run after WalletAuth.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			response.ErrorMessage(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), user.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if !isAdmin {
			response.ErrorMessage(c, http.StatusForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}

// RequireActive rejects suspended callers
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			response.ErrorMessage(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if user.IsSuspended {
			response.ErrorMessage(c, http.StatusForbidden, "Account suspended")
			return
		}
		c.Next()
	}
}

// GetCurrentUser gets the resolved caller from context
func GetCurrentUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok && user != nil
}
