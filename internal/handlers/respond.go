package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
)

// respondServiceError maps a service failure onto an HTTP status: missing
// resources become 404, validation failures 400, duplicates 409 and
// classified sheet errors keep their own status. Anything else is a 500 with
// the fallback message so store internals never reach the client.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Status >= http.StatusBadRequest {
			c.JSON(appErr.Status, gin.H{"error": fallback})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
