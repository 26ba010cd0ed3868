package handlers

import (
	"gorm.io/gorm"

	"decorlens/domain/repositories"
	"decorlens/domain/services"
	"decorlens/infrastructure/redis"
	"decorlens/pkg/config"
	"decorlens/pkg/retailquery"
	"decorlens/pkg/scheduler"
)

// Services contains all the services needed for handlers
type Services struct {
	BoardService           services.BoardService
	ProductService         services.ProductService
	DesignService          services.DesignService
	DecorValidationService services.DecorValidationService
	ImageProxyService      services.ImageProxyService
}

// Infrastructure is what the health handler inspects
type Infrastructure struct {
	DB               *gorm.DB
	RedisClient      *redis.RedisClient
	BoardRepository  repositories.BoardRepository
	Scheduler        scheduler.JobScheduler
	VisionConfigured bool
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Board    *BoardHandler
	Design   *DesignHandler
	Product  *ProductHandler
	Decor    *DecorHandler
	Proxy    *ProxyHandler
	Retailer *RetailerHandler
	Admin    *AdminHandler
	Log      *LogHandler
	Health   *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(svc *Services, infra *Infrastructure, cfg *config.Config) *Handlers {
	affiliate := retailquery.Affiliate{
		AmazonTag:  cfg.Affiliate.AmazonTag,
		WayfairRef: cfg.Affiliate.WayfairRef,
	}

	return &Handlers{
		Board:    NewBoardHandler(svc.BoardService),
		Design:   NewDesignHandler(svc.DesignService),
		Product:  NewProductHandler(svc.ProductService),
		Decor:    NewDecorHandler(svc.DecorValidationService),
		Proxy:    NewProxyHandler(svc.ImageProxyService),
		Retailer: NewRetailerHandler(affiliate),
		Admin:    NewAdminHandler(svc.BoardService),
		Log:      NewLogHandler(),
		Health:   NewHealthHandler(infra, cfg.App.Name),
	}
}
