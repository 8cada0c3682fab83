package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/greshilov/collider/internal/api/handlers"
	"github.com/greshilov/collider/internal/config"
	"github.com/greshilov/collider/internal/middleware"
	"github.com/greshilov/collider/internal/store"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] Aggressive no-cache headers enabled for all routes")
	}

	router.GET("/health", handlers.HealthCheck)

	scores := store.NewScoreStore(db)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handlers.CreateSession)
			sessions.GET("/:id", handlers.GetSession)
			sessions.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleSessionWebSocket)
			sessions.POST("/:id/particles", handlers.AddParticle)
			sessions.POST("/:id/segments", handlers.AddSegment)
			sessions.POST("/:id/player", handlers.AddPlayerParticle(cfg))
			sessions.POST("/:id/player/move", handlers.MovePlayerParticle)
			sessions.DELETE("/:id", handlers.DeleteSession(cfg))
		}
	}

	// Score submission and leaderboard, kept at the top level to mirror
	// the reference backend's /api/submit and /api/top endpoints.
	router.POST("/api/submit", handlers.SubmitScore(cfg, scores))
	router.GET("/api/top", handlers.Top(scores))
}
