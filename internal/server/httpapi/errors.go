package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes and a client-safe
// message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, common.ErrorServiceUnavailable):
		return http.StatusServiceUnavailable, "Object storage is not configured"
	case errors.Is(err, common.ErrorInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Resource or file not found"
	case errors.Is(err, common.ErrorUnreachable):
		return http.StatusBadGateway, "Upstream service unreachable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func abortWithError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
