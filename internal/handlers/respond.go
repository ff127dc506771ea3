package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/apexstock/apex-stock-api/internal/services"
)

// respondError maps service errors onto HTTP status codes and the shared
// {"error", "kind"} body shape. Conflicts additionally carry items_count.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var duplicateErr *services.DuplicateError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "kind": "validation_failed"})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": duplicateErr.Error(), "kind": "duplicate_key"})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":       conflictErr.Error(),
			"kind":        "conflict",
			"items_count": conflictErr.ItemsCount,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "kind": "unauthenticated"})
	case errors.Is(err, services.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "self_delete_forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "kind": "internal"})
	}
}

// parseID reads a numeric path parameter. A non-numeric value is rejected
// before any service call.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "kind": "validation_failed"})
		return 0, false
	}
	return uint(id), true
}
