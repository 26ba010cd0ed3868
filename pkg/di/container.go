package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"decorlens/application/serviceimpl"
	"decorlens/domain/repositories"
	"decorlens/domain/services"
	"decorlens/infrastructure/cache"
	"decorlens/infrastructure/catalog"
	"decorlens/infrastructure/gemini"
	"decorlens/infrastructure/metrics"
	"decorlens/infrastructure/postgres"
	"decorlens/infrastructure/redis"
	"decorlens/infrastructure/websocket"
	"decorlens/interfaces/api/handlers"
	"decorlens/pkg/config"
	"decorlens/pkg/logger"
	"decorlens/pkg/retailquery"
	"decorlens/pkg/scheduler"
)

const reconcileJobID = "reconcile-board-counts"

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB               *gorm.DB
	RedisClient      *redis.RedisClient
	RedisAvailable   bool
	Metrics          *metrics.Metrics
	Vision           services.VisionModel
	VisionConfigured bool
	ImageCache       services.ImageCache
	WebSocketManager *websocket.Manager
	Scheduler        *scheduler.GocronScheduler

	// Repositories
	BoardRepository        repositories.BoardRepository
	DetectedItemRepository repositories.DetectedItemRepository
	ProductRepository      repositories.ProductRepository
	MatchRepository        repositories.MatchRepository

	// Services
	BoardService           services.BoardService
	ProductService         services.ProductService
	DesignService          services.DesignService
	DecorValidationService services.DecorValidationService
	ImageProxyService      services.ImageProxyService

	ctx    context.Context
	cancel context.CancelFunc
}

func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{ctx: ctx, cancel: cancel}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg

	if err := logger.Init(cfg.App.LogDir, true); err != nil {
		return err
	}
	logger.Startup("config_loaded", "Configuration loaded", map[string]interface{}{
		"env":     cfg.App.Env,
		"log_dir": cfg.App.LogDir,
	})
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	c.Metrics = metrics.New()
	c.WebSocketManager = websocket.NewManager(c.Metrics)

	// Redis backs the shared image cache and cross-instance board events.
	// Without it both fall back to process-local implementations.
	c.RedisClient = redis.NewRedisClient(redis.RedisConfig{
		Host:     c.Config.Redis.Host,
		Port:     c.Config.Redis.Port,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := c.RedisClient.Ping(c.ctx); err != nil {
		logger.StartupWarn("redis_connection_failed", "Redis connection failed, using in-memory cache", map[string]interface{}{"error": err.Error()})
		c.ImageCache = cache.NewMemoryImageCache(time.Duration(c.Config.Proxy.CacheTTLSeconds) * time.Second)
	} else {
		c.RedisAvailable = true
		c.ImageCache = cache.NewRedisImageCache(c.RedisClient)

		bus := websocket.NewRedisBus(c.RedisClient, websocket.DefaultChannel)
		if err := c.WebSocketManager.UseBus(c.ctx, bus); err != nil {
			logger.StartupWarn("redis_bus_failed", "Board events stay local to this instance", map[string]interface{}{"error": err.Error()})
		}
		logger.Startup("redis_connected", "Redis connected", nil)
	}

	timeout := time.Duration(c.Config.Gemini.TimeoutSeconds) * time.Second
	geminiClient, err := gemini.NewGeminiClient(c.ctx, c.Config.Gemini.APIKey, c.Config.Gemini.Model, timeout, gemini.Options{
		Metrics: c.Metrics,
	})
	if err != nil {
		logger.StartupWarn("gemini_not_configured", "Vision model unavailable, AI routes will fail", map[string]interface{}{"error": err.Error()})
		c.Vision = gemini.Unconfigured{}
	} else {
		c.Vision = geminiClient
		c.VisionConfigured = true
		logger.Startup("gemini_initialized", "Gemini client initialized", map[string]interface{}{"model": c.Config.Gemini.Model})
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.BoardRepository = postgres.NewBoardRepository(c.DB)
	c.DetectedItemRepository = postgres.NewDetectedItemRepository(c.DB)
	c.ProductRepository = postgres.NewProductRepository(c.DB)
	c.MatchRepository = postgres.NewMatchRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	cfg := c.Config

	c.BoardService = serviceimpl.NewBoardService(
		c.BoardRepository,
		c.DetectedItemRepository,
		c.Vision,
		c.WebSocketManager,
		c.Metrics,
	)

	provider := catalog.NewPlaceholderProvider(retailquery.Affiliate{
		AmazonTag:  cfg.Affiliate.AmazonTag,
		WayfairRef: cfg.Affiliate.WayfairRef,
	})
	c.ProductService = serviceimpl.NewProductService(
		c.DetectedItemRepository,
		c.ProductRepository,
		c.MatchRepository,
		provider,
		cfg.Catalog.Candidates,
		c.Metrics,
	)

	c.DesignService = serviceimpl.NewDesignService(c.Vision, c.DetectedItemRepository, serviceimpl.FanoutOptions{
		BatchSize: cfg.Fanout.BatchSize,
		Delay:     time.Duration(cfg.Fanout.DelayMS) * time.Millisecond,
	}, c.Metrics)

	c.DecorValidationService = serviceimpl.NewDecorValidationService(c.Vision, nil, c.Metrics)

	c.ImageProxyService = serviceimpl.NewImageProxyService(nil, c.ImageCache, serviceimpl.ImageProxyOptions{
		MaxBytes: cfg.Proxy.MaxBytes,
		Timeout:  time.Duration(cfg.Proxy.TimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(cfg.Proxy.CacheTTLSeconds) * time.Second,
	}, c.Metrics)

	logger.Startup("services_initialized", "Services initialized", map[string]interface{}{
		"catalog_provider": provider.Name(),
	})
	return nil
}

func (c *Container) initScheduler() error {
	c.Scheduler = scheduler.NewScheduler()

	if c.Config.Reconcile.Enabled {
		err := c.Scheduler.AddJob(reconcileJobID, c.Config.Reconcile.Cron, 5*time.Minute, func(ctx context.Context) error {
			result, err := c.BoardService.ReconcileCounts(ctx)
			if err != nil {
				return err
			}
			if result.Repaired > 0 || result.Failed > 0 {
				logger.Scheduler("reconcile_done", "Board counts reconciled", map[string]interface{}{
					"checked":  result.Checked,
					"repaired": result.Repaired,
					"failed":   result.Failed,
				})
			}
			return nil
		})
		if err != nil {
			logger.StartupWarn("reconcile_schedule_failed", "Failed to schedule reconcile job", map[string]interface{}{"error": err.Error()})
		}
	}

	c.Scheduler.Start()
	logger.Startup("scheduler_started", "Scheduler started", nil)
	return nil
}

func (c *Container) Cleanup() error {
	logger.Startup("cleanup_started", "Starting cleanup...", nil)

	c.cancel()

	if c.Scheduler != nil && c.Scheduler.IsRunning() {
		c.Scheduler.Stop()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.StartupWarn("db_close_failed", "Failed to close database connection", map[string]interface{}{"error": err.Error()})
			} else {
				logger.Startup("db_closed", "Database connection closed", nil)
			}
		}
	}

	logger.Startup("cleanup_completed", "Cleanup completed", nil)
	logger.Default().Close()
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		BoardService:           c.BoardService,
		ProductService:         c.ProductService,
		DesignService:          c.DesignService,
		DecorValidationService: c.DecorValidationService,
		ImageProxyService:      c.ImageProxyService,
	}
}

func (c *Container) GetHandlerInfrastructure() *handlers.Infrastructure {
	infra := &handlers.Infrastructure{
		DB:               c.DB,
		BoardRepository:  c.BoardRepository,
		Scheduler:        c.Scheduler,
		VisionConfigured: c.VisionConfigured,
	}
	if c.RedisAvailable {
		infra.RedisClient = c.RedisClient
	}
	return infra
}
