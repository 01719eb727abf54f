package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"waste-bi-backend/internal/config"
	"waste-bi-backend/internal/http/middleware"
)

// NewRouter wires the API routes with CORS, rate limiting, and read caching.
func NewRouter(handler *Handler, cfg *config.Config, respCache *cache.Cache) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.HTTP.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	cacheTTL := time.Duration(cfg.HTTP.CacheTTLSeconds) * time.Second
	caching := middleware.Cache(respCache, cacheTTL)
	limited := middleware.RateLimit(rate.Limit(cfg.HTTP.RateLimitPerSec), cfg.HTTP.RateLimitBurst)

	api := router.Group("/api")
	api.Use(limited)
	{
		api.GET("/health", handler.health)

		api.POST("/trucks", handler.createTruck)
		api.GET("/trucks", handler.listTrucks)
		api.GET("/trucks/:id", handler.getTruck)
		api.POST("/trucks/:id/sorting", handler.applySorting)
		api.DELETE("/trucks/:id", handler.deleteTruck)
		api.DELETE("/trucks", handler.clearTrucks)

		api.GET("/stats", caching, handler.getStats)
		api.GET("/categories", caching, handler.listCategories)

		api.GET("/settings", handler.getSettings)
		api.PUT("/settings", handler.updateSettings)

		api.GET("/export/csv", handler.exportCSV)
		api.GET("/export/excel", handler.exportExcel)
		api.GET("/export/pdf", handler.exportPDF)
	}

	return router
}
