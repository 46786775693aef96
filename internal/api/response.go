package api

import (
	"errors"
	"net/http"

	"trainlog/workout-app/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondSuccess writes the success envelope {status, data}.
func respondSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

// respondError translates the domain error taxonomy to its fixed HTTP status
// and the error envelope {status, message}. Anything outside the taxonomy is
// reported as a plain internal error without leaking detail.
func respondError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.AbortWithStatusJSON(domainErr.Status(), gin.H{"status": "error", "message": domainErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
}
