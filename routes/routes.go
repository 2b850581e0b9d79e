package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripflow/handlers"
	"tripflow/middleware"
)

// RegisterTravelRoutes registers the planning pipeline endpoints.
func RegisterTravelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/travel")
	{
		api.POST("/search", hb.SearchTravelHandler)
		api.GET("/session/:sessionID", hb.GetSessionHandler)
		api.POST("/confirm/:sessionID", hb.ConfirmTravelHandler)
	}
}

// RegisterCacheRoutes registers response-cache maintenance endpoints.
func RegisterCacheRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cache")
	{
		api.GET("/stats", hb.CacheStatsHandler)
		api.POST("/cleanup", hb.CacheCleanupHandler)
		api.DELETE("/clear", hb.CacheClearHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Tripflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterTravelRoutes(r, hb)
	RegisterCacheRoutes(r, hb)
}
