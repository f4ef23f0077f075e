package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends {"error": message}. AppErrors carry their own status, bare
// domain sentinels are mapped, and anything else is logged and becomes 500.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(appErr.Status, gin.H{"error": appErr.Message})
}

// ErrorMessage sends {"error": message} with status
func ErrorMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("Resource already exists")
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrInvalidTransition):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("Authentication required")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("Access denied")
	case errors.Is(err, domainerrors.ErrSuspended):
		return domainerrors.Forbidden("Account suspended")
	}
	return domainerrors.InternalError(err)
}
