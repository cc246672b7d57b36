package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/textcanvas/backend/internal/services"
)

// respondError maps the service error taxonomy to HTTP statuses and emits
// the failure envelope {success: false, message, detail?}. Storage detail
// is only exposed outside production.
func respondError(c *gin.Context, env string, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   string(verr.Kind),
			"message": verr.Message,
		})
		return
	}

	var rerr *services.ResourceError
	if errors.As(err, &rerr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   string(rerr.Kind),
			"message": rerr.Message,
		})
		return
	}

	if errors.Is(err, services.ErrDesignNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "design not found",
		})
		return
	}

	body := gin.H{
		"success": false,
		"message": "internal server error",
	}
	var serr *services.StorageError
	if errors.As(err, &serr) && env != "production" {
		body["detail"] = serr.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
