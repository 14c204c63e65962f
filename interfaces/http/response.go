package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"tubenotes/infrastructure/logger"
	"tubenotes/usecase"
)

// respondError maps the usecase error taxonomy onto HTTP statuses. Every
// failure body is a flat object with at least an "error" field.
func respondError(ctx *gin.Context, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, usecase.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.GetLogger().WithField("error", err).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "details": err.Error()})
	}
}
