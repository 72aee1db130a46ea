package provider

import (
	"time"

	"github.com/balju-mate/internal/cache"
	"github.com/balju-mate/internal/config"
	"github.com/balju-mate/internal/logger"
	"github.com/balju-mate/internal/models"
	"github.com/balju-mate/internal/queue"
	"github.com/balju-mate/internal/repository"
	"github.com/balju-mate/internal/rowquery"
	"github.com/balju-mate/internal/service"
)

// Container 의존성 주입 컨테이너
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Catalog     rowquery.Executor
	Location    *time.Location

	// Repositories
	ProductRepo   repository.ProductRepository
	SupplierRepo  repository.SupplierRepository
	OrderRepo     repository.OrderRepository
	EventRepo     repository.EventRepository
	EventLineRepo repository.EventLineRepository
	SettingRepo   repository.SettingRepository
	DashboardRepo repository.DashboardRepository

	// Services
	SettingService     *service.SettingService
	ProductService     *service.ProductService
	SupplierService    *service.SupplierService
	DraftService       *service.DraftService
	OrderService       *service.OrderService
	EventService       *service.EventService
	CatalogSyncService *service.CatalogSyncService
	DashboardService   *service.DashboardService
}

// NewContainer 컨테이너 초기화
func NewContainer(cfg *config.Config) *Container {
	// 캐시 초기화
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 큐 클라이언트 초기화
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		logger.Warnw("provider_load_timezone_failed", "timezone", cfg.Server.Timezone, "error", err)
		location = time.Local
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Catalog:     newCatalogExecutor(&cfg.Catalog),
		Location:    location,
	}

	// 1. Repositories 초기화
	c.initRepositories()

	// 2. Services 초기화
	c.initServices()

	return c
}

func newCatalogExecutor(cfg *config.CatalogConfig) rowquery.Executor {
	if cfg == nil || !cfg.Bridge.Enabled {
		return rowquery.NewDisabledExecutor()
	}
	return rowquery.NewHTTPExecutor(rowquery.Config{
		URL:     cfg.Bridge.URL,
		APIKey:  cfg.Bridge.APIKey,
		Timeout: time.Duration(cfg.Bridge.TimeoutMS) * time.Millisecond,
	})
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.EventRepo = repository.NewEventRepository(db)
	c.EventLineRepo = repository.NewEventLineRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.SupplierService = service.NewSupplierService(c.SupplierRepo)
	c.DraftService = service.NewDraftService(
		c.OrderRepo,
		c.ProductRepo,
		c.Catalog,
		service.NewDraftJournal(),
		c.Location,
		c.Config.Order.DraftTTLHours,
	)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.SettingService, c.QueueClient, c.Location)
	c.EventService = service.NewEventService(c.EventRepo, c.EventLineRepo, c.ProductRepo, c.Location)
	c.CatalogSyncService = service.NewCatalogSyncService(c.ProductRepo, c.Catalog, c.QueueClient, &c.Config.Catalog)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Location)
}
