package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/greshilov/collider/internal/api"
	"github.com/greshilov/collider/internal/config"
	"github.com/greshilov/collider/internal/database"
	"github.com/greshilov/collider/internal/middleware"
	"github.com/greshilov/collider/internal/migrations"
	"github.com/greshilov/collider/internal/redis"
	"github.com/greshilov/collider/internal/session"
	"github.com/greshilov/collider/internal/store"
	"github.com/greshilov/collider/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Initialize session manager; it starts its own idle-reaper goroutine.
	session.InitializeManager(cfg, store.NewScoreStore(db))

	// Wire Redis into the WS layer and start the leaderboard subscriber
	// so a score recorded at the end of a game on one instance reaches
	// viewers on another. Scores posted to /api/submit are not published.
	ws.SetRedisClient(rdb)
	ws.StartLeaderboardSubscriber(context.Background(), ws.Hub())

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(router, db, rdb, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting collider server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
