package api

import (
	"errors"
	"net/http"

	"billing_system/internal/domain"
	"billing_system/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps err onto a status and writes {key: message}. Unknown
// errors are logged and answered with a generic 500.
func respondError(c *gin.Context, key string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{key: ve.Message})
	case errors.Is(err, errMalformedBody):
		c.JSON(http.StatusBadRequest, gin.H{key: "Invalid JSON format"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{key: "Invalid request"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{key: "Already exists"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{key: "Customer not found"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{key: "Invalid credentials"})
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"request_id": c.GetString(middleware.CtxRequestID),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{key: "Internal server error"})
	}
}
