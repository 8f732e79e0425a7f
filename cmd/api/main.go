package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SmileHubSystems/dental-scheduler/internal/config"
	dbpkg "github.com/SmileHubSystems/dental-scheduler/internal/db"
	"github.com/SmileHubSystems/dental-scheduler/internal/logger"
	"github.com/SmileHubSystems/dental-scheduler/internal/middleware"
	"github.com/SmileHubSystems/dental-scheduler/internal/routes"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()
	log := logger.Get()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
