package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with every route registered
func NewRouter(h *Handler, mode string, logger *zap.Logger) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery(), cors.New(corsConfig()))

	r.GET("/", h.root)
	r.GET("/health", h.health)

	api := r.Group("/api")

	// open
	api.POST("/auth/signup", h.signup)
	api.POST("/auth/login", h.login)

	protected := api.Group("")
	protected.Use(AuthMiddleware(h.authService, h))
	{
		protected.GET("/auth/me", h.me)
		protected.PUT("/auth/profile", h.updateProfile)

		protected.POST("/conversation/chat", h.chat)
		protected.GET("/conversation/history", h.history)

		protected.POST("/vocabulary", h.addWord)
		protected.GET("/vocabulary", h.listWords)
		protected.GET("/vocabulary/review", h.reviewWords)
		protected.GET("/vocabulary/stats", h.vocabularyStats)
		protected.GET("/vocabulary/export", h.exportWords)
		protected.POST("/vocabulary/import", h.importWords)
		protected.PUT("/vocabulary/:id/master", h.setMastery)
		protected.DELETE("/vocabulary/:id", h.deleteWord)

		protected.GET("/statistics/overview", h.overview)
		protected.GET("/statistics/today", h.today)
		protected.GET("/statistics/weekly", h.weekly)
		protected.GET("/statistics/progress", h.progress)
	}

	return r
}

// corsConfig lets browser and mobile clients from any origin call the API with a bearer token
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", requestIDHdr},
		ExposeHeaders:   []string{requestIDHdr, "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}
}
