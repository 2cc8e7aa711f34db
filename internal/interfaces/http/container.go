package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	fitmentApp "github.com/orris-inc/fitment/internal/application/fitment"
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/infrastructure/cache"
	"github.com/orris-inc/fitment/internal/infrastructure/config"
	"github.com/orris-inc/fitment/internal/infrastructure/metrics"
	"github.com/orris-inc/fitment/internal/infrastructure/ratelimit"
	"github.com/orris-inc/fitment/internal/infrastructure/repository"
	"github.com/orris-inc/fitment/internal/infrastructure/sqlbuilder"
	fitmenthandlers "github.com/orris-inc/fitment/internal/interfaces/http/handlers/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/services/markdown"
)

// Container holds all infrastructure components, the fitment service and the handlers. It is
// responsible for wiring everything together and providing a Shutdown() method for graceful
// termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Store access and caches
	fitmentRepo *repository.FitmentRepositoryImpl
	lookupCache cache.LookupCache
	rateLimiter ratelimit.RateLimiter

	fitmentService *fitmentApp.ServiceDDD

	// Handlers
	hdlrs *allHandlers
}

type allHandlers struct {
	fitment   *fitmenthandlers.Handler
	lookups   *fitmenthandlers.LookupHandler
	dashboard *fitmenthandlers.DashboardHandler
	health    *fitmenthandlers.HealthHandler
}

// NewContainer creates a new Container with all dependencies wired together. db is owned by the
// caller; Shutdown releases only what the container opened.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:      gin.New(),
		db:          db,
		cfg:         cfg,
		log:         log,
		lookupCache: cache.NopLookupCache{},
	}

	// Section 1: Infrastructure - Redis, repository, cache, rate limiter
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Application service
	c.initServices()

	// Section 3: Handlers
	if err := c.initHandlers(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	dialect, err := sqlbuilder.DialectFor(cfg.Database.Driver)
	if err != nil {
		return err
	}
	c.fitmentRepo = repository.NewFitmentRepository(
		c.db,
		sqlbuilder.New(dialect),
		cfg.Database.QueryTimeout(),
		metrics.QueryRecorder{},
		log.Named("repository"),
	)

	if !cfg.Redis.Enabled {
		log.Infow("redis disabled; lookup cache and rate limiting are off")
		return nil
	}

	c.redis = initRedis(cfg, log)
	if c.redis == nil {
		return nil
	}

	c.lookupCache = cache.NewRedisLookupCache(c.redis, cfg.Cache.LookupTTL(), log.Named("cache"))
	if cfg.RateLimit.Enabled {
		c.rateLimiter = ratelimit.NewRedisRateLimiter(c.redis, ratelimit.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window(),
		})
	}
	return nil
}

// initRedis creates and tests the Redis client connection. An unreachable Redis leaves the
// dashboard running without cache and rate limiting.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, continuing without it", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}

func (c *Container) initServices() {
	var diagnostics fitment.DiagnosticsRepository
	if c.cfg.Diagnostics.Enabled {
		diagnostics = c.fitmentRepo
	}
	c.fitmentService = fitmentApp.NewServiceDDD(c.fitmentRepo, diagnostics, c.lookupCache, c.log.Named("fitment"))
}

func (c *Container) initHandlers() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	svc := c.fitmentService
	log := c.log.Named("http")

	c.hdlrs = &allHandlers{
		fitment: fitmenthandlers.NewHandler(
			svc.SearchUseCase(),
			svc.CoverageUseCase(),
			svc.ReportUseCase(),
			svc.SchemaUseCase(),
			svc.AliasesUseCase(),
			markdown.NewRenderer(),
			log,
		),
		lookups:   fitmenthandlers.NewLookupHandler(svc.LookupsUseCase(), svc.QuickStatsUseCase(), log),
		dashboard: fitmenthandlers.NewDashboardHandler(svc.LookupsUseCase(), svc.QuickStatsUseCase(), svc.SchemaUseCase(), log),
		health:    fitmenthandlers.NewHealthHandler(sqlDB, log),
	}
	return nil
}

// Shutdown releases the Redis client.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
