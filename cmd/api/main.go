package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/StudioAgenda/salon-scheduler/internal/config"
	dbpkg "github.com/StudioAgenda/salon-scheduler/internal/db"
	"github.com/StudioAgenda/salon-scheduler/internal/routes"
	"github.com/StudioAgenda/salon-scheduler/internal/timezone"
)

func main() {

	cfg := config.Load()

	if !timezone.IsValid(cfg.Timezone) {
		log.Fatalf("invalid SALON_TIMEZONE: %q", cfg.Timezone)
	}

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
