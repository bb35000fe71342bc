package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/model"
)

// writeError translates service errors into HTTP responses. Expected
// errors carry their own status and detail; everything else is a 500 with
// a generic message.
func writeError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"detail": apiErr.Message})
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
