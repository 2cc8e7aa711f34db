package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fitmenthandlers "github.com/orris-inc/fitment/internal/interfaces/http/handlers/fitment"
)

type FitmentRouteConfig struct {
	Handler          *fitmenthandlers.Handler
	LookupHandler    *fitmenthandlers.LookupHandler
	DashboardHandler *fitmenthandlers.DashboardHandler
	HealthHandler    *fitmenthandlers.HealthHandler
	// RateLimit guards /api when set
	RateLimit gin.HandlerFunc
	// MetricsPath exposes the Prometheus handler when non-empty
	MetricsPath string
}

func SetupFitmentRoutes(engine *gin.Engine, config *FitmentRouteConfig) {
	engine.GET("/", config.DashboardHandler.Dashboard)
	engine.StaticFS("/static", fitmenthandlers.StaticFS())
	engine.GET("/health", config.HealthHandler.HealthCheck)

	if config.MetricsPath != "" {
		engine.GET(config.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := engine.Group("/api")
	if config.RateLimit != nil {
		api.Use(config.RateLimit)
	}
	{
		api.GET("/stats", config.LookupHandler.QuickStats)

		lookups := api.Group("/lookups")
		{
			lookups.GET("/makes", config.LookupHandler.Makes)
			lookups.GET("/models", config.LookupHandler.Models)
			lookups.GET("/years", config.LookupHandler.Years)
			lookups.GET("/trims", config.LookupHandler.Trims)
			lookups.GET("/part-types", config.LookupHandler.PartTypes)
			lookups.GET("/positions", config.LookupHandler.Positions)
			lookups.GET("/drives", config.LookupHandler.Drives)
			lookups.GET("/brands", config.LookupHandler.Brands)
		}

		api.POST("/fitment/search", config.Handler.Search)
		api.POST("/fitment/coverage", config.Handler.Coverage)

		api.GET("/quality/:report", config.Handler.QualityReport)

		api.GET("/schema/tables", config.Handler.ListTables)
		api.GET("/schema/tables/:name/preview", config.Handler.PreviewTable)

		api.POST("/aliases/lookup", config.Handler.LookupAliases)
	}
}
