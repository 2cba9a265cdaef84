package handlers

import (
	"errors"
	"net/http"

	"github.com/converseiq/converseiq-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy to HTTP statuses:
// not found -> 404, state conflict -> 409, missing prior state -> 412,
// rejected input -> 400, anything else -> 500.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation conflicts with the current state"})
	case errors.Is(err, services.ErrPreconditionFailed):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "Required prior state is missing"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
