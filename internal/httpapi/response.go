package httpapi

import (
	"errors"
	"net/http"

	"lingotutor/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Business codes carried in every envelope
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
	CodeTutorDown    = 50301
)

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

func fail(c *gin.Context, status, code int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    code,
		"message": msg,
	})
}

// errorStatus maps a service error to its HTTP status, business code and client message
func errorStatus(err error) (int, int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeAuth, "not authenticated"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, CodeAuth, "invalid or expired token"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeAuth, "incorrect email or password"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, CodeNotFound, "user not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "not found"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, CodeInvalidParam, "email already registered"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidParam, err.Error()
	case errors.Is(err, domain.ErrTutorUnavailable):
		return http.StatusServiceUnavailable, CodeTutorDown, "tutor is unavailable, try again later"
	default:
		return http.StatusInternalServerError, CodeServerErr, "internal error"
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status, code, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
	}
	fail(c, status, code, msg)
}
