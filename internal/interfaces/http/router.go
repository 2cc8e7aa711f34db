package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/orris-inc/fitment/internal/infrastructure/config"
	"github.com/orris-inc/fitment/internal/interfaces/http/middleware"
	"github.com/orris-inc/fitment/internal/interfaces/http/routes"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter wires the container; call SetupRoutes before serving.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log.Named("access")))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	var rateLimit gin.HandlerFunc
	if r.rateLimiter != nil {
		rateLimit = middleware.RateLimit(r.rateLimiter, r.log.Named("ratelimit"))
	}

	metricsPath := ""
	if r.cfg.Metrics.Enabled {
		metricsPath = r.cfg.Metrics.Path
	}

	routes.SetupFitmentRoutes(r.engine, &routes.FitmentRouteConfig{
		Handler:          r.hdlrs.fitment,
		LookupHandler:    r.hdlrs.lookups,
		DashboardHandler: r.hdlrs.dashboard,
		HealthHandler:    r.hdlrs.health,
		RateLimit:        rateLimit,
		MetricsPath:      metricsPath,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
