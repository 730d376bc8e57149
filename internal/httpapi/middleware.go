package httpapi

import (
	"time"

	"lingotutor/internal/domain"
	"lingotutor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	currentUserKey = "currentUser"
	requestIDKey   = "requestID"
	requestIDHdr   = "X-Request-ID"
)

// RequestLogger tags every request with an id and writes one access log line for it
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHdr)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHdr, id)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if u := currentUser(c); u != nil {
			fields = append(fields, zap.Int64("user_id", u.ID))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("HTTP request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}
	}
}

// AuthMiddleware resolves the bearer token into the current user and aborts otherwise
func AuthMiddleware(authService *service.AuthService, h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authService.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			h.writeError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
