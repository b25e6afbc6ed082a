package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pickdateai/scheduler-api/internal/cache"
	"github.com/pickdateai/scheduler-api/internal/config"
	dbpkg "github.com/pickdateai/scheduler-api/internal/db"
	"github.com/pickdateai/scheduler-api/internal/logging"
	"github.com/pickdateai/scheduler-api/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New()

	db := dbpkg.NewDB(cfg)

	rdb := cache.NewRedis(cfg.RedisAddr, log)
	availability := cache.NewAvailabilityCache(rdb, log)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, availability, log)

	log.WithField("addr", cfg.Addr()).Info("server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
