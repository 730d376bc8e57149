// Package httpapi exposes the services as a JSON REST API on gin.
package httpapi

import (
	"net/http"
	"strconv"

	"lingotutor/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves every API route
type Handler struct {
	authService         *service.AuthService
	vocabularyService   *service.VocabularyService
	conversationService *service.ConversationService
	statsService        *service.StatsService
	logger              *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	authService *service.AuthService,
	vocabularyService *service.VocabularyService,
	conversationService *service.ConversationService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:         authService,
		vocabularyService:   vocabularyService,
		conversationService: conversationService,
		statsService:        statsService,
		logger:              logger,
	}
}

func (h *Handler) root(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"message": "lingotutor API", "status": "running"})
}

func (h *Handler) health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"status": "healthy"})
}

// queryInt reads a non-negative integer query parameter, or def when it is absent
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		fail(c, http.StatusBadRequest, CodeInvalidParam, key+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "invalid id")
		return 0, false
	}
	return id, true
}
